package ecs

import "sync"

// NotificationKind is the vocabulary a ComponentWatcher batches by. Reactive
// drain always visits kinds in this fixed order.
type NotificationKind int

const (
	NotifyAdded NotificationKind = iota
	NotifyModified
	NotifyRemoved
	NotifyEnabled
	NotifyDisabled
)

var drainOrder = [...]NotificationKind{NotifyAdded, NotifyModified, NotifyRemoved, NotifyEnabled, NotifyDisabled}

// orderedEntities preserves insertion order within one notification bucket
// while still allowing O(1) membership checks and erasure, per the
// same-entity-appears-at-most-once-per-kind invariant.
type orderedEntities struct {
	order    []EntityID
	entities map[EntityID]*Entity
}

func newOrderedEntities() *orderedEntities {
	return &orderedEntities{entities: make(map[EntityID]*Entity)}
}

func (o *orderedEntities) insert(e *Entity) {
	if _, exists := o.entities[e.ID()]; exists {
		return
	}
	o.entities[e.ID()] = e
	o.order = append(o.order, e.ID())
}

func (o *orderedEntities) erase(id EntityID) bool {
	if _, ok := o.entities[id]; !ok {
		return false
	}
	delete(o.entities, id)
	for i, existing := range o.order {
		if existing == id {
			o.order = append(o.order[:i:i], o.order[i+1:]...)
			break
		}
	}
	return true
}

func (o *orderedEntities) len() int { return len(o.order) }

// ComponentWatcher batches, per frame, the notifications a reactive system
// cares about for one (context, target component id) pair. Cancellation is
// enforced at enqueue time, not at drain time.
type ComponentWatcher struct {
	id        uint64
	context   *Context
	target    ComponentID
	world     *World
	mu        sync.Mutex
	pending   map[NotificationKind]*orderedEntities
	destroyed map[EntityID]bool
}

func newComponentWatcher(id uint64, ctx *Context, target ComponentID, w *World) *ComponentWatcher {
	return &ComponentWatcher{
		id:        id,
		context:   ctx,
		target:    target,
		world:     w,
		pending:   make(map[NotificationKind]*orderedEntities),
		destroyed: make(map[EntityID]bool),
	}
}

func (w *ComponentWatcher) ID() uint64          { return w.id }
func (w *ComponentWatcher) Target() ComponentID { return w.target }
func (w *ComponentWatcher) Context() *Context   { return w.context }

// queue enqueues a notification, applying the added/removed and
// added/disabled cancellation rules before recording anything: if a
// pending Added exists for the same entity, both the Added and the
// incoming Removed/Disabled are dropped — the entity never appeared from
// the observer's perspective, whether it left by removal or by going
// inactive ("born into anonymity").
func (w *ComponentWatcher) queue(kind NotificationKind, e *Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if kind == NotifyRemoved || kind == NotifyDisabled {
		if w.eraseLocked(NotifyAdded, e.ID()) {
			// The entity was queued as newly-added earlier this frame and
			// is now leaving (removed) or going anonymous (disabled)
			// before that Added was ever drained: from the observer's
			// perspective it never appeared at all, so neither side of
			// the pair is recorded.
			if e.Destroyed() {
				w.destroyed[e.ID()] = true
			}
			return
		}
	}

	bucket := w.pending[kind]
	if bucket == nil {
		bucket = newOrderedEntities()
		w.pending[kind] = bucket
	}
	wasEmpty := bucket.len() == 0
	bucket.insert(e)
	if wasEmpty {
		w.world.markWatcherPending(w.id)
	}
	if e.Destroyed() {
		w.destroyed[e.ID()] = true
	}
}

func (w *ComponentWatcher) eraseLocked(kind NotificationKind, id EntityID) bool {
	bucket := w.pending[kind]
	if bucket == nil {
		return false
	}
	return bucket.erase(id)
}

// Notifications is a drained, ordered view of one frame's batch.
type Notifications struct {
	Kind     NotificationKind
	Entities []*Entity
}

// PopNotifications atomically returns and clears the pending table, kind by
// kind in drain order (added, modified, removed, enabled, disabled), each
// kind's entities in original insertion order. Entities are filtered out of
// every bucket except Removed if they have since been destroyed —
// removals of destroyed entities are always delivered.
func (w *ComponentWatcher) PopNotifications() []Notifications {
	w.mu.Lock()
	pending := w.pending
	destroyed := w.destroyed
	w.pending = make(map[NotificationKind]*orderedEntities)
	w.destroyed = make(map[EntityID]bool)
	w.mu.Unlock()

	var out []Notifications
	for _, kind := range drainOrder {
		bucket := pending[kind]
		if bucket == nil || bucket.len() == 0 {
			continue
		}
		entities := make([]*Entity, 0, bucket.len())
		for _, id := range bucket.order {
			if kind != NotifyRemoved && destroyed[id] {
				continue
			}
			entities = append(entities, bucket.entities[id])
		}
		if len(entities) > 0 {
			out = append(out, Notifications{Kind: kind, Entities: entities})
		}
	}
	return out
}

// HasPending reports whether any bucket currently holds a notification.
func (w *ComponentWatcher) HasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, bucket := range w.pending {
		if bucket.len() > 0 {
			return true
		}
	}
	return false
}
