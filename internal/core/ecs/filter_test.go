package ecs

import "testing"

func TestSignatureHashIgnoresClauseAndIDOrder(t *testing.T) {
	a := Signature{Clauses: []Clause{AllOf(3, 1, 2), NoneOf(9)}}
	b := Signature{Clauses: []Clause{NoneOf(9), AllOf(2, 3, 1)}}
	if a.hash() != b.hash() {
		t.Fatal("logically identical signatures must hash identically regardless of declaration order")
	}

	c := Signature{Clauses: []Clause{AllOf(3, 1, 2), NoneOf(8)}}
	if a.hash() == c.hash() {
		t.Fatal("different signatures should not collide")
	}
}

func TestAccessNeverAffectsMatching(t *testing.T) {
	w := newTestWorld()
	aID := w.Registry().IDOf(aComp{})
	e := w.AddEntity(aComp{})

	plain := Signature{Clauses: []Clause{AllOf(aID)}}
	written := Signature{Clauses: []Clause{AllOf(aID).Write()}}
	if doesMatch(plain, e) != doesMatch(written, e) {
		t.Fatal("Write() must not change matching behavior")
	}
}

func TestClauseNoneNeverMatches(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity()
	sig := Signature{Clauses: []Clause{NoneMatch()}}
	if doesMatch(sig, e) {
		t.Fatal("a ClauseNone signature must never match any entity")
	}
}

func TestAnyOfRequiresAtLeastOne(t *testing.T) {
	w := newTestWorld()
	aID := w.Registry().IDOf(aComp{})
	bID := w.Registry().IDOf(bComp{})
	e := w.AddEntity(aComp{})

	sig := Signature{Clauses: []Clause{AnyOf(aID, bID)}}
	if !doesMatch(sig, e) {
		t.Fatal("AnyOf should match when at least one listed id is present")
	}

	e2 := w.AddEntity()
	if doesMatch(sig, e2) {
		t.Fatal("AnyOf should not match when none of the listed ids are present")
	}
}
