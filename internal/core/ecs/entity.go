package ecs

import (
	"reflect"
	"sort"
)

// EntityID encodes a 32-bit slot index in the lower bits and a 32-bit
// generation in the upper bits, so a stale reference to a destroyed and
// recycled slot is never mistaken for the entity that now occupies it.
type EntityID uint64

func newEntityID(index, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) index() uint32      { return uint32(id) }
func (id EntityID) generation() uint32 { return uint32(id >> 32) }

// Subscription is an opaque handle returned by Entity.Subscribe. It is safe
// to pass to Unsubscribe from inside the very handler it names.
type Subscription = subscription

// Entity is a mutable bag of components keyed by ComponentID, plus the
// activation/destruction flags and event subscriptions the rest of the
// runtime hangs off of. All construction happens through World.AddEntity.
type Entity struct {
	id       EntityID
	world    *World
	comps    map[ComponentID]any
	messages map[ComponentID][]any
	active   bool
	destroyed bool
	dispatcher
}

func newEntity(id EntityID, w *World) *Entity {
	return &Entity{
		id:         id,
		world:      w,
		comps:      make(map[ComponentID]any),
		messages:   make(map[ComponentID][]any),
		dispatcher: newDispatcher(),
	}
}

func (e *Entity) ID() EntityID    { return e.id }
func (e *Entity) Active() bool    { return e.active }
func (e *Entity) Destroyed() bool { return e.destroyed }

func (e *Entity) failFastIfDestroyed(op string) {
	if e.destroyed {
		raise(ErrDestroyedEntity, op)
	}
}

// Add inserts component, which must not already be present for its id.
// Fires EventComponentAdded.
func (e *Entity) Add(component any) {
	e.failFastIfDestroyed("Entity.Add")
	id := e.world.registry.IDOf(component)
	if _, exists := e.comps[id]; exists {
		raise(ErrDuplicateComponent, componentSubject(id))
	}
	if _, ok := component.(Unique); ok {
		e.world.claimUnique(id, e)
	}
	e.comps[id] = component
	e.fire(Event{Kind: EventComponentAdded, Entity: e, Component: id})
}

// Remove deletes the component for id if present; no-op otherwise. Fires
// EventBeforeRemoving then EventComponentRemoved.
func (e *Entity) Remove(id ComponentID) {
	e.failFastIfDestroyed("Entity.Remove")
	e.removeComponent(id, false)
}

func (e *Entity) removeComponent(id ComponentID, causedByDestroy bool) {
	existing, ok := e.comps[id]
	if !ok {
		return
	}
	e.fire(Event{Kind: EventBeforeRemoving, Entity: e, Component: id, CausedByDestroy: causedByDestroy})
	delete(e.comps, id)
	if _, ok := existing.(Unique); ok {
		e.world.releaseUnique(id, e)
	}
	e.fire(Event{Kind: EventComponentRemoved, Entity: e, Component: id, CausedByDestroy: causedByDestroy})
}

// Replace bulk-upserts components: for each supplied value, if the entity
// already carries a value for that id and it bears KeepOnReplace (or its id
// is listed in forceKeep), the existing value is preserved untouched;
// otherwise the value is set (added if absent, replaced if different) and
// EventBeforeModifying/EventComponentModified fire for that id. Values
// equal to what is already stored produce no event.
func (e *Entity) Replace(components []any, forceKeep ...ComponentID) {
	e.failFastIfDestroyed("Entity.Replace")
	keep := make(map[ComponentID]struct{}, len(forceKeep))
	for _, id := range forceKeep {
		keep[id] = struct{}{}
	}
	for _, c := range components {
		id := e.world.registry.IDOf(c)
		existing, has := e.comps[id]
		if has {
			if _, forced := keep[id]; forced || implementsKeepOnReplace(c) {
				continue
			}
			if reflect.DeepEqual(existing, c) {
				continue
			}
		}
		if _, ok := c.(Unique); ok {
			e.world.claimUnique(id, e)
		}
		e.fire(Event{Kind: EventBeforeModifying, Entity: e, Component: id})
		e.comps[id] = c
		e.fire(Event{Kind: EventComponentModified, Entity: e, Component: id})
	}
}

func implementsKeepOnReplace(c any) bool {
	_, ok := c.(KeepOnReplace)
	return ok
}

// NotifyModified fires BeforeModifying/Modified for id's stored component
// after it has been mutated in place (through a pointer or other shared
// reference), without going through Replace. Only meaningful for a
// component whose value implements Modifiable; called for any other id, or
// one not present on the entity, it is a no-op.
func (e *Entity) NotifyModified(id ComponentID) {
	e.failFastIfDestroyed("Entity.NotifyModified")
	c, ok := e.comps[id]
	if !ok {
		return
	}
	if _, ok := c.(Modifiable); !ok {
		return
	}
	e.fire(Event{Kind: EventBeforeModifying, Entity: e, Component: id})
	e.fire(Event{Kind: EventComponentModified, Entity: e, Component: id})
}

// Has reports whether id is present. Never fails on a destroyed entity:
// destroyed entities remain addressable for the rest of the frame so
// queued notifications can carry a valid reference.
func (e *Entity) Has(id ComponentID) bool {
	_, ok := e.comps[id]
	return ok
}

// Get returns the component for id, if present.
func (e *Entity) Get(id ComponentID) (any, bool) {
	v, ok := e.comps[id]
	return v, ok
}

// Activate sets the active flag and fires EventActivated. Re-entrant calls
// are no-ops.
func (e *Entity) Activate() {
	e.failFastIfDestroyed("Entity.Activate")
	if e.active {
		return
	}
	e.active = true
	e.fire(Event{Kind: EventActivated, Entity: e})
}

// Deactivate clears the active flag and fires EventDeactivated. Re-entrant
// calls are no-ops.
func (e *Entity) Deactivate() {
	e.failFastIfDestroyed("Entity.Deactivate")
	if !e.active {
		return
	}
	e.active = false
	e.fire(Event{Kind: EventDeactivated, Entity: e})
}

// Destroy sets destroyed, removes every component in descending id order
// (firing before-removing/removed with CausedByDestroy=true for each), then
// clears all listeners. Idempotent: a second call is a no-op. Reclamation
// of the entity slot is always deferred to World.EndOfFrame, whether or not
// any watcher still has a pending notification referencing it.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	e.active = false

	ids := make([]ComponentID, 0, len(e.comps))
	for id := range e.comps {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
	for _, id := range ids {
		e.removeComponent(id, true)
	}
	e.dispatcher = newDispatcher()
	e.world.finalizeDestroy(e)
}

// SendMessage records message in the current frame's bucket for this
// entity and fires EventMessageSent. The message never outlives the frame
// it was sent in.
func (e *Entity) SendMessage(message any) {
	e.failFastIfDestroyed("Entity.SendMessage")
	id := e.world.registry.IDOf(message)
	e.messages[id] = append(e.messages[id], message)
	e.world.trackMessageHolder(e)
	e.world.recordMessage(e, id, message)
	e.fire(Event{Kind: EventMessageSent, Entity: e, Component: id, Message: message})
	e.world.deliverMessage(e, id, message)
}

// Messages returns the messages of type id pending for this entity in the
// current frame.
func (e *Entity) Messages(id ComponentID) []any {
	return e.messages[id]
}

func (e *Entity) clearMessages() {
	for k := range e.messages {
		delete(e.messages, k)
	}
}

func (e *Entity) Subscribe(kind EventKind, fn func(Event)) Subscription {
	return e.subscribe(kind, fn)
}

func (e *Entity) Unsubscribe(sub Subscription) {
	e.unsubscribe(sub)
}

func (e *Entity) OnComponentAdded(fn func(Event)) Subscription    { return e.Subscribe(EventComponentAdded, fn) }
func (e *Entity) OnBeforeRemoving(fn func(Event)) Subscription    { return e.Subscribe(EventBeforeRemoving, fn) }
func (e *Entity) OnComponentRemoved(fn func(Event)) Subscription  { return e.Subscribe(EventComponentRemoved, fn) }
func (e *Entity) OnBeforeModifying(fn func(Event)) Subscription   { return e.Subscribe(EventBeforeModifying, fn) }
func (e *Entity) OnComponentModified(fn func(Event)) Subscription { return e.Subscribe(EventComponentModified, fn) }
func (e *Entity) OnMessageSent(fn func(Event)) Subscription       { return e.Subscribe(EventMessageSent, fn) }
func (e *Entity) OnActivated(fn func(Event)) Subscription         { return e.Subscribe(EventActivated, fn) }
func (e *Entity) OnDeactivated(fn func(Event)) Subscription       { return e.Subscribe(EventDeactivated, fn) }
