package ecs

import "sort"

// Context is one per distinct filter signature: it maintains the matching
// entity set and fans component-level events out to the watchers attached
// to it.
type Context struct {
	id        uint64
	world     *World
	signature Signature

	active       map[EntityID]*Entity
	deactivated  map[EntityID]*Entity
	snapshot     []*Entity
	snapshotDone bool

	watchers  map[ComponentID][]*ComponentWatcher
	allTarget []*ComponentWatcher // watchers whose lifecycle (enabled/disabled) fan-out applies regardless of target id

	// per-entity bookkeeping so filterEntity/detach can unsubscribe cleanly.
	tracking map[EntityID]*entityTracking
}

type entityTracking struct {
	always Subscription // Added, active for the entity's whole lifetime once filtered; its Removed partner is extra[0]
	extra  []Subscription
}

func newContext(w *World, sig Signature) *Context {
	return &Context{
		id:        sig.hash(),
		world:     w,
		signature: sig,
		active:    make(map[EntityID]*Entity),
		deactivated: make(map[EntityID]*Entity),
		watchers:  make(map[ComponentID][]*ComponentWatcher),
		tracking:  make(map[EntityID]*entityTracking),
	}
}

func (c *Context) ID() uint64 { return c.id }

// Matches reports the pure filter predicate, ignoring active/destroyed
// state (used by tests and by filterEntity).
func (c *Context) Matches(e *Entity) bool { return doesMatch(c.signature, e) }

// ActiveEntities returns a cached immutable snapshot of the currently
// active matching set. The snapshot is rebuilt lazily after invalidation.
func (c *Context) ActiveEntities() []*Entity {
	if !c.snapshotDone {
		snap := make([]*Entity, 0, len(c.active))
		for _, e := range c.active {
			snap = append(snap, e)
		}
		sort.Slice(snap, func(i, j int) bool { return snap[i].ID() < snap[j].ID() })
		c.snapshot = snap
		c.snapshotDone = true
	}
	return c.snapshot
}

func (c *Context) invalidateSnapshot() { c.snapshotDone = false }

// Watch attaches a ComponentWatcher for target to this context. Entities
// already matching the context are replayed as Added notifications, so a
// reactive system that registers late sees the same uniform stream a
// system present from the start would have seen.
func (c *Context) Watch(target ComponentID) *ComponentWatcher {
	w := newComponentWatcher(c.world.nextWatcherID(), c, target, c.world)
	c.watchers[target] = append(c.watchers[target], w)
	c.allTarget = append(c.allTarget, w)
	c.world.registerWatcher(w)

	for _, e := range c.active {
		if e.Has(target) {
			w.queue(NotifyAdded, e)
		}
	}
	for _, e := range c.deactivated {
		if e.Has(target) {
			w.queue(NotifyAdded, e)
		}
	}
	return w
}

// filterEntity introduces e to the context: it always subscribes to the
// entity's Added/Removed events to detect future matching, and — if e
// currently matches — additionally attaches.
func (c *Context) filterEntity(e *Entity) {
	if _, already := c.tracking[e.ID()]; already {
		return
	}
	sub := e.Subscribe(EventComponentAdded, func(ev Event) { c.onMatchRelevant(e, ev) })
	c.tracking[e.ID()] = &entityTracking{always: sub}
	// A second subscription for Removed, tracked in extra so detach never
	// touches the always-on Added/Removed pair.
	remSub := e.Subscribe(EventComponentRemoved, func(ev Event) { c.onMatchRelevant(e, ev) })
	c.tracking[e.ID()].extra = append(c.tracking[e.ID()].extra, remSub)

	if c.Matches(e) {
		c.attach(e)
	}
}

// onMatchRelevant handles both Added and Removed events for an entity
// already introduced to this context, deciding whether it needs to
// attach/detach and forwarding component-scoped notifications.
func (c *Context) onMatchRelevant(e *Entity, ev Event) {
	wasMatching := c.isTracked(e)

	if ev.Kind == EventComponentRemoved && wasMatching {
		c.notifyWatchers(NotifyRemoved, e, ev.Component)
	}

	nowMatching := c.Matches(e)
	switch {
	case !wasMatching && nowMatching:
		c.attach(e)
	case wasMatching && !nowMatching:
		if ev.Kind == EventComponentAdded {
			// A none-of id just appeared, forcing a mismatch: the watcher
			// for that id (if any) still deserves a last look.
			c.notifyWatchers(NotifyRemoved, e, ev.Component)
		}
		c.detach(e)
	case wasMatching && nowMatching && ev.Kind == EventComponentAdded:
		c.notifyWatchers(NotifyAdded, e, ev.Component)
	}
}

func (c *Context) isTracked(e *Entity) bool {
	_, activeOK := c.active[e.ID()]
	_, deactOK := c.deactivated[e.ID()]
	return activeOK || deactOK
}

// attach subscribes the entity's remaining event kinds, inserts it into the
// active/deactivated set, and synthesizes one Added notification per
// component id currently on the entity so reactive systems see a uniform
// stream regardless of whether the match pre-existed.
func (c *Context) attach(e *Entity) {
	if e.Active() {
		c.active[e.ID()] = e
	} else {
		c.deactivated[e.ID()] = e
	}
	c.invalidateSnapshot()

	t := c.tracking[e.ID()]
	t.extra = append(t.extra,
		e.Subscribe(EventComponentModified, func(ev Event) { c.notifyWatchers(NotifyModified, e, ev.Component) }),
		e.Subscribe(EventActivated, func(ev Event) { c.onActivated(e) }),
		e.Subscribe(EventDeactivated, func(ev Event) { c.onDeactivated(e) }),
	)

	ids := make([]ComponentID, 0, 8)
	for id := range c.watchers {
		if e.Has(id) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		c.notifyWatchers(NotifyAdded, e, id)
	}
}

// detach removes e from whichever set it's in and unsubscribes the
// attach-only subscriptions, leaving the always-on Added/Removed pair so
// the entity can rejoin later if it matches again.
func (c *Context) detach(e *Entity) {
	delete(c.active, e.ID())
	delete(c.deactivated, e.ID())
	c.invalidateSnapshot()

	t := c.tracking[e.ID()]
	if t == nil {
		return
	}
	for _, sub := range t.extra[1:] {
		e.Unsubscribe(sub)
	}
	t.extra = t.extra[:1] // keep the Removed subscription from filterEntity
}

func (c *Context) onActivated(e *Entity) {
	if _, ok := c.deactivated[e.ID()]; ok {
		delete(c.deactivated, e.ID())
		c.active[e.ID()] = e
		c.invalidateSnapshot()
	}
	c.notifyLifecycle(NotifyEnabled, e)
}

func (c *Context) onDeactivated(e *Entity) {
	if _, ok := c.active[e.ID()]; ok {
		delete(c.active, e.ID())
		c.deactivated[e.ID()] = e
		c.invalidateSnapshot()
	}
	c.notifyLifecycle(NotifyDisabled, e)
}

// notifyWatchers delivers a component-scoped notification to every watcher
// on this context targeting id.
func (c *Context) notifyWatchers(kind NotificationKind, e *Entity, id ComponentID) {
	for _, w := range c.watchers[id] {
		w.queue(kind, e)
	}
}

// notifyLifecycle delivers Enabled/Disabled to every watcher on this
// context, regardless of target id: activation state is a property of the
// entity, not of any one component.
func (c *Context) notifyLifecycle(kind NotificationKind, e *Entity) {
	for _, w := range c.allTarget {
		w.queue(kind, e)
	}
}
