package ecs

// EventKind tags why an Entity fired an event. The event vocabulary is
// closed, so a small tagged enumeration is used instead of reflect.Type
// keys over arbitrary event structs.
type EventKind int

const (
	EventComponentAdded EventKind = iota
	EventBeforeRemoving
	EventComponentRemoved
	EventBeforeModifying
	EventComponentModified
	EventMessageSent
	EventActivated
	EventDeactivated
)

// Event is delivered synchronously to an Entity's subscribers. Component is
// only meaningful for the component-scoped kinds; Message only for
// EventMessageSent.
type Event struct {
	Kind            EventKind
	Entity          *Entity
	Component       ComponentID
	CausedByDestroy bool
	Message         any
}

// subscription is an opaque handle returned by Entity.Subscribe, safe to
// pass to Unsubscribe from inside a handler.
type subscription struct {
	kind EventKind
	id   uint64
}

type handler struct {
	id uint64
	fn func(Event)
}

// dispatcher is embedded in Entity. Handler sets are snapshotted before
// dispatch so a handler may subscribe or unsubscribe other handlers of the
// same kind without corrupting the in-flight iteration.
type dispatcher struct {
	handlers map[EventKind][]handler
	nextID   uint64
}

func newDispatcher() dispatcher {
	return dispatcher{handlers: make(map[EventKind][]handler)}
}

func (d *dispatcher) subscribe(kind EventKind, fn func(Event)) subscription {
	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], handler{id: id, fn: fn})
	return subscription{kind: kind, id: id}
}

func (d *dispatcher) unsubscribe(sub subscription) {
	hs := d.handlers[sub.kind]
	for i, h := range hs {
		if h.id == sub.id {
			d.handlers[sub.kind] = append(hs[:i:i], hs[i+1:]...)
			return
		}
	}
}

func (d *dispatcher) fire(ev Event) {
	hs := d.handlers[ev.Kind]
	if len(hs) == 0 {
		return
	}
	snapshot := make([]handler, len(hs))
	copy(snapshot, hs)
	for _, h := range snapshot {
		h.fn(ev)
	}
}
