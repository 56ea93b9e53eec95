package ecs

import (
	"reflect"
	"sync"
)

// staticEntry is a component type registered ahead of time via
// RegisterStatic, so ComponentsUnder can walk a deterministic table instead
// of whatever was discovered lazily at runtime.
type staticEntry struct {
	typ reflect.Type
	id  ComponentID
}

// Registry is a process-local bijection between component/message Go types
// and dense integer ids. The first reservedComponentCount ids are the
// framework's carrier interfaces; everything else is assigned on first
// sight, in id_of order. There is no reflection-based discovery of the
// registry implementation itself — the host constructs one explicitly and
// hands it to the World.
type Registry struct {
	mu       sync.Mutex
	typeToID map[reflect.Type]ComponentID
	idToType map[ComponentID]reflect.Type
	relative map[ComponentID]struct{}
	next     ComponentID
	static   []staticEntry
}

func NewRegistry() *Registry {
	return &Registry{
		typeToID: make(map[reflect.Type]ComponentID),
		idToType: make(map[ComponentID]reflect.Type),
		relative: map[ComponentID]struct{}{TransformComponentID: {}},
		next:     reservedComponentCount,
	}
}

// RegisterStatic pre-assigns an id for a known component type, ahead of any
// runtime discovery through IDOf. It is meant to be called once per
// component type at world-construction time, in declaration order, so that
// ComponentsUnder has a stable table to walk. Calling it twice for the same
// type is a no-op returning the previously assigned id.
func (r *Registry) RegisterStatic(sample any) ComponentID {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.idOfLocked(sample)
	t := reflect.TypeOf(sample)
	for _, e := range r.static {
		if e.typ == t {
			return id
		}
	}
	r.static = append(r.static, staticEntry{typ: t, id: id})
	return id
}

// IDOf returns the id for sample's type, assigning one lazily on first
// sight. If the type is not itself one of the reserved carrier interfaces
// but its value implements one, the call is aliased onto that interface's
// reserved id instead of minting a new one — this is what lets a context
// filter for "any state-machine component" without enumerating concrete
// types.
func (r *Registry) IDOf(sample any) ComponentID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idOfLocked(sample)
}

func (r *Registry) idOfLocked(sample any) ComponentID {
	t := reflect.TypeOf(sample)
	if id, ok := r.typeToID[t]; ok {
		return id
	}

	var id ComponentID
	switch sample.(type) {
	case StateMachineCarrier:
		id = StateMachineComponentID
	case InteractiveCarrier:
		id = InteractiveComponentID
	case TransformCarrier:
		id = TransformComponentID
	default:
		id = r.next
		r.next++
	}

	r.typeToID[t] = id
	if _, exists := r.idToType[id]; !exists {
		r.idToType[id] = t
	}
	if _, ok := sample.(ParentRelative); ok {
		r.relative[id] = struct{}{}
	}
	return id
}

// TypeOf returns the type registered for id, if any (diagnostic use only:
// the mapping is populated best-effort as ids are minted, and only the
// first type ever aliased to a shared carrier id is retained).
func (r *Registry) TypeOf(id ComponentID) (reflect.Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.idToType[id]
	return t, ok
}

// IsRelative reports whether id is parent-relative: the built-in transform
// id, or any user type that implements ParentRelative.
func (r *Registry) IsRelative(id ComponentID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.relative[id]
	return ok
}

// ComponentTypeID pairs a statically registered type with its id, returned
// by ComponentsUnder.
type ComponentTypeID struct {
	Type reflect.Type
	ID   ComponentID
}

// ComponentsUnder walks the statically registered table (populated by
// RegisterStatic, not the dynamically-discovered IDOf table) and returns
// every entry whose type implements iface.
func (r *Registry) ComponentsUnder(iface reflect.Type) []ComponentTypeID {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []ComponentTypeID
	for _, e := range r.static {
		if e.typ.Implements(iface) {
			out = append(out, ComponentTypeID{Type: e.typ, ID: e.id})
		}
	}
	return out
}
