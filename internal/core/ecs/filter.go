package ecs

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// ClauseKind is one term of a filter signature.
type ClauseKind int

const (
	ClauseAllOf ClauseKind = iota
	ClauseAnyOf
	ClauseNoneOf
	// ClauseNone marks a context that never matches any entity — used for
	// systems that participate only for ordering or unique-context
	// registration.
	ClauseNone
)

// Access is carried on a clause as a read/write hint. It never affects the
// matching algorithm, but it is part of context identity: two clauses over
// the same ids with different access yield distinct contexts.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
)

// Clause is one filter term: a kind, an access hint, and the (already
// registry-expanded) component ids it names.
type Clause struct {
	Kind   ClauseKind
	Access Access
	IDs    []ComponentID
}

func normalizeIDs(ids []ComponentID) []ComponentID {
	set := make(map[ComponentID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]ComponentID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func AllOf(ids ...ComponentID) Clause { return Clause{Kind: ClauseAllOf, IDs: normalizeIDs(ids)} }
func AnyOf(ids ...ComponentID) Clause { return Clause{Kind: ClauseAnyOf, IDs: normalizeIDs(ids)} }
func NoneOf(ids ...ComponentID) Clause { return Clause{Kind: ClauseNoneOf, IDs: normalizeIDs(ids)} }
func NoneMatch() Clause                { return Clause{Kind: ClauseNone} }

// Write returns a copy of c tagged for write access. Present for
// declarative clarity in system descriptors; matching ignores it.
func (c Clause) Write() Clause { c.Access = AccessWrite; return c }

// Signature is the ordered set of clauses defining a Context. Two
// signatures denote the same context iff their canonical forms are equal.
type Signature struct {
	Clauses []Clause
}

// canonical returns a copy with clauses sorted by (kind, ids, access) and
// each clause's ids already deduped/sorted, so two logically-identical
// filters built in different declaration order still hash identically.
func (s Signature) canonical() Signature {
	clauses := make([]Clause, len(s.Clauses))
	for i, c := range s.Clauses {
		clauses[i] = Clause{Kind: c.Kind, Access: c.Access, IDs: normalizeIDs(c.IDs)}
	}
	sort.Slice(clauses, func(i, j int) bool {
		if clauses[i].Kind != clauses[j].Kind {
			return clauses[i].Kind < clauses[j].Kind
		}
		a, b := clauses[i].IDs, clauses[j].IDs
		for k := 0; k < len(a) && k < len(b); k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return clauses[i].Access < clauses[j].Access
	})
	return Signature{Clauses: clauses}
}

// hash computes the context's canonical identifier: an xxhash digest of the
// canonicalized signature. Using a stable hash (rather than Go's randomized
// map hashing) keeps context ids reproducible across process restarts,
// which the diagnostics sink relies on to correlate historical samples.
func (s Signature) hash() uint64 {
	canon := s.canonical()
	h := xxhash.New()
	var buf [8]byte
	for _, c := range canon.Clauses {
		binary.LittleEndian.PutUint64(buf[:], uint64(c.Kind))
		h.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], uint64(c.Access))
		h.Write(buf[:])
		for _, id := range c.IDs {
			binary.LittleEndian.PutUint64(buf[:], uint64(id))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// doesMatch rejects on any missing all-of id or present none-of id; if any
// any-of clause exists, it requires at least one satisfied per clause. A
// ClauseNone clause anywhere forces a permanent rejection.
func doesMatch(sig Signature, e *Entity) bool {
	for _, c := range sig.Clauses {
		switch c.Kind {
		case ClauseNone:
			return false
		case ClauseNoneOf:
			for _, id := range c.IDs {
				if e.Has(id) {
					return false
				}
			}
		case ClauseAllOf:
			for _, id := range c.IDs {
				if !e.Has(id) {
					return false
				}
			}
		case ClauseAnyOf:
			if len(c.IDs) == 0 {
				continue
			}
			found := false
			for _, id := range c.IDs {
				if e.Has(id) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}
