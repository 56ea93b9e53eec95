package ecs

import (
	"sort"
	"time"
)

// TimingSink receives one sample per system per frame: how long it took and
// how many entities it touched. The default is a no-op; a real
// implementation (see internal/diagnostics) can persist samples elsewhere.
type TimingSink interface {
	Record(systemID string, elapsedMs float64, entityCount int)
}

type noopSink struct{}

func (noopSink) Record(string, float64, int) {}

// FramePipeline is the minimal surface a scheduler must expose for World's
// convenience methods to drive it. Defined here, implemented by
// internal/core/system.Scheduler, so ecs never imports the scheduler
// package.
type FramePipeline interface {
	EarlyStart()
	Start()
	FixedUpdate(dt time.Duration)
	Update(dt time.Duration)
	LateUpdate(dt time.Duration)
	Render(dt time.Duration)
	EndFrame()
	Exit()
	ActivateSystem(id string)
	DeactivateSystem(id string)
}

type messageWaiter struct {
	target EntityID
	typeID ComponentID
	fn     func(any)
}

// World owns the entity table, component registry, context table, watcher
// table, message delivery, and the deferred-destruction queue. It drives
// the frame pipeline through whatever FramePipeline is attached.
type World struct {
	registry *Registry
	sink     TimingSink

	generations []uint32
	freeList    []uint32
	nextIndex   uint32
	entities    map[EntityID]*Entity

	contexts map[uint64]*Context
	watchers map[uint64]*ComponentWatcher
	nextWID  uint64

	pendingWatchers map[uint64]bool

	messageWaiters map[ComponentID][]messageWaiter
	messageHolders map[EntityID]*Entity
	sentMessages   []SentMessage

	uniqueHolders map[ComponentID]EntityID

	deferredDestroy []EntityID

	paused     bool
	frameCount uint64
	elapsed    time.Duration

	pipeline FramePipeline
}

func NewWorld(registry *Registry) *World {
	return &World{
		registry:        registry,
		sink:            noopSink{},
		entities:        make(map[EntityID]*Entity),
		contexts:        make(map[uint64]*Context),
		watchers:        make(map[uint64]*ComponentWatcher),
		pendingWatchers: make(map[uint64]bool),
		messageWaiters:  make(map[ComponentID][]messageWaiter),
		messageHolders:  make(map[EntityID]*Entity),
		uniqueHolders:   make(map[ComponentID]EntityID),
	}
}

// claimUnique enforces the Unique marker interface: id may be held by at
// most one entity at a time. Diagnostic-only — it never influences
// matching or storage, only whether Add or Replace succeeds.
func (w *World) claimUnique(id ComponentID, e *Entity) {
	if holder, ok := w.uniqueHolders[id]; ok && holder != e.ID() {
		raise(ErrNonUniqueComponent, componentSubject(id))
	}
	w.uniqueHolders[id] = e.ID()
}

func (w *World) releaseUnique(id ComponentID, e *Entity) {
	if holder, ok := w.uniqueHolders[id]; ok && holder == e.ID() {
		delete(w.uniqueHolders, id)
	}
}

func (w *World) Registry() *Registry { return w.registry }

// EntityCount returns the number of entities the world currently holds,
// including destroyed-but-not-yet-reclaimed entities. Used by the
// scheduler's per-system timing samples.
func (w *World) EntityCount() int { return len(w.entities) }

// SetTimingSink installs the diagnostics sink used by Scheduler when it
// times each system. Passing nil restores the no-op default.
func (w *World) SetTimingSink(sink TimingSink) {
	if sink == nil {
		sink = noopSink{}
	}
	w.sink = sink
}

func (w *World) TimingSink() TimingSink { return w.sink }

// AttachPipeline wires the scheduler that World.EarlyStart/Start/Update/...
// forward to.
func (w *World) AttachPipeline(p FramePipeline) { w.pipeline = p }

func (w *World) EarlyStart() {
	if w.pipeline != nil {
		w.pipeline.EarlyStart()
	}
}

func (w *World) Start() {
	if w.pipeline != nil {
		w.pipeline.Start()
	}
}

func (w *World) FixedUpdate(dt time.Duration) {
	if w.pipeline != nil {
		w.pipeline.FixedUpdate(dt)
	}
}

func (w *World) Update(dt time.Duration) {
	w.frameCount++
	w.elapsed += dt
	if w.pipeline != nil {
		w.pipeline.Update(dt)
	}
}

func (w *World) LateUpdate(dt time.Duration) {
	if w.pipeline != nil {
		w.pipeline.LateUpdate(dt)
	}
}

func (w *World) Render(dt time.Duration) {
	if w.pipeline != nil {
		w.pipeline.Render(dt)
	}
}

// EndFrame runs the reactive drain and end-of-frame cleanup. It is the
// caller's responsibility to invoke this after Render returns, so render
// observes the frame's pre-drain, pre-reclaim state and reactive-triggered
// mutations only become visible starting next frame.
func (w *World) EndFrame() {
	if w.pipeline != nil {
		w.pipeline.EndFrame()
	}
}

func (w *World) Exit() {
	if w.pipeline != nil {
		w.pipeline.Exit()
	}
}

// ActivateSystem re-enables a system disabled by DeactivateSystem. A no-op
// if id is unknown or already active.
func (w *World) ActivateSystem(id string) {
	if w.pipeline != nil {
		w.pipeline.ActivateSystem(id)
	}
}

// DeactivateSystem stops the named system from running in any phase
// (fixed-update, update, late-update, render, reactive drain) regardless of
// its PauseBehavior, until a matching ActivateSystem call. A no-op if id is
// unknown.
func (w *World) DeactivateSystem(id string) {
	if w.pipeline != nil {
		w.pipeline.DeactivateSystem(id)
	}
}

func (w *World) Pause()       { w.paused = true }
func (w *World) Resume()      { w.paused = false }
func (w *World) Paused() bool { return w.paused }

func (w *World) FrameCount() uint64      { return w.frameCount }
func (w *World) Elapsed() time.Duration  { return w.elapsed }

// AddEntity creates a new, inactive entity, adds the supplied components to
// it (in order), and introduces it to every existing context. Components
// may be omitted; call Activate() separately if the caller needs the
// entity visible in active-only contexts immediately.
func (w *World) AddEntity(components ...any) *Entity {
	id := w.allocate()
	e := newEntity(id, w)
	w.entities[id] = e
	for _, c := range components {
		e.Add(c)
	}
	for _, ctx := range w.contexts {
		ctx.filterEntity(e)
	}
	return e
}

func (w *World) allocate() EntityID {
	if n := len(w.freeList); n > 0 {
		idx := w.freeList[n-1]
		w.freeList = w.freeList[:n-1]
		return newEntityID(idx, w.generations[idx])
	}
	idx := w.nextIndex
	w.nextIndex++
	w.generations = append(w.generations, 0)
	return newEntityID(idx, 0)
}

// GetEntity returns the entity for id, if the world still holds it —
// including entities destroyed earlier this frame but not yet reclaimed.
func (w *World) GetEntity(id EntityID) (*Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// RemoveEntity destroys the entity for id, if present.
func (w *World) RemoveEntity(id EntityID) {
	if e, ok := w.entities[id]; ok {
		e.Destroy()
	}
}

// Context returns (creating if necessary) the Context for sig.
func (w *World) Context(sig Signature) *Context {
	id := sig.hash()
	if ctx, ok := w.contexts[id]; ok {
		return ctx
	}
	ctx := newContext(w, sig)
	w.contexts[id] = ctx
	for _, e := range w.entities {
		ctx.filterEntity(e)
	}
	return ctx
}

func (w *World) nextWatcherID() uint64 {
	w.nextWID++
	return w.nextWID
}

func (w *World) registerWatcher(watcher *ComponentWatcher) {
	w.watchers[watcher.ID()] = watcher
}

func (w *World) markWatcherPending(id uint64) {
	w.pendingWatchers[id] = true
}

// DrainPendingWatcherIDs returns, in ascending id order, every watcher id
// that has queued work, and clears the pending marker set. Ascending id
// order is arbitrary with respect to spec ordering guarantees (those are
// enforced by the scheduler walking systems in registration order and
// looking each declared watcher up in the returned set); this is only a
// fast-path existence index.
func (w *World) DrainPendingWatcherIDs() []uint64 {
	ids := make([]uint64, 0, len(w.pendingWatchers))
	for id := range w.pendingWatchers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	w.pendingWatchers = make(map[uint64]bool)
	return ids
}

func (w *World) Watcher(id uint64) (*ComponentWatcher, bool) {
	wc, ok := w.watchers[id]
	return wc, ok
}

// RegisterMessageWait arranges for fn to be called (once) the next time
// entity target receives a message of type typeID.
func (w *World) RegisterMessageWait(target EntityID, typeID ComponentID, fn func(any)) {
	w.messageWaiters[typeID] = append(w.messageWaiters[typeID], messageWaiter{target: target, typeID: typeID, fn: fn})
}

// deliverMessage resolves any waiters registered against (e.ID(), typeID),
// firing each at most once and dropping it from the waiter list. Waiters
// that want to cancel without ever seeing a match track their own
// generation counter and ignore stale callbacks (see statemachine.Routine).
func (w *World) deliverMessage(e *Entity, typeID ComponentID, msg any) {
	waiters := w.messageWaiters[typeID]
	if len(waiters) == 0 {
		return
	}
	remaining := waiters[:0]
	for _, waiter := range waiters {
		if waiter.target == e.ID() {
			waiter.fn(msg)
			continue
		}
		remaining = append(remaining, waiter)
	}
	w.messageWaiters[typeID] = remaining
}

func (w *World) trackMessageHolder(e *Entity) {
	w.messageHolders[e.ID()] = e
}

// SentMessage is one SendMessage call recorded for the reactive drain: the
// entity it was sent to, the message's component id, and the payload.
type SentMessage struct {
	Entity  *Entity
	TypeID  ComponentID
	Message any
}

func (w *World) recordMessage(e *Entity, typeID ComponentID, msg any) {
	w.sentMessages = append(w.sentMessages, SentMessage{Entity: e, TypeID: typeID, Message: msg})
}

// DrainMessages returns every message sent this frame, in send order, and
// clears the log. Consumed by the scheduler's reactive drain to dispatch to
// systems declaring message descriptors; independent of
// RegisterMessageWait's synchronous per-entity delivery.
func (w *World) DrainMessages() []SentMessage {
	out := w.sentMessages
	w.sentMessages = nil
	return out
}

// finalizeDestroy is called by Entity.Destroy. Reclamation of the entity's
// id slot is always deferred to end-of-frame: this is a conservative
// superset of "immediate reclaim when no watcher needs to see the removal"
// that is always safe, since destroyed entities remain addressable and
// their queued Removed notifications keep valid references either way.
func (w *World) finalizeDestroy(e *Entity) {
	w.deferredDestroy = append(w.deferredDestroy, e.ID())
}

// EndOfFrame clears every entity's pending messages and reclaims the
// entity slots destroyed during the frame. Called after the reactive drain
// completes.
func (w *World) EndOfFrame() {
	for _, e := range w.messageHolders {
		e.clearMessages()
	}
	w.messageHolders = make(map[EntityID]*Entity)

	for _, id := range w.deferredDestroy {
		delete(w.entities, id)
		idx := id.index()
		if int(idx) < len(w.generations) {
			w.generations[idx]++
			w.freeList = append(w.freeList, idx)
		}
	}
	w.deferredDestroy = w.deferredDestroy[:0]
	w.sentMessages = nil
}
