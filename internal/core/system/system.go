// Package system implements the scheduler/pipeline that orders systems
// within a frame and drains reactive watcher notifications.
package system

import (
	"time"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

// Capability is a bitmask of the pipeline phases a system participates in.
// A system declares the union of phases it implements rather than the
// scheduler doing dynamic-dispatch type assertions against a monolithic
// interface: a tagged capability set plus a handler vtable.
type Capability int

const (
	CapEarlyStart Capability = 1 << iota
	CapStart
	CapUpdate
	CapFixedUpdate
	CapLateUpdate
	CapReactive
	CapRender
)

func (c Capability) has(bit Capability) bool { return c&bit != 0 }

// PauseBehavior controls whether an update/fixed-update/late-update system
// runs while the world is paused. Reactive, start, early-start and render
// systems are always unaffected by pause and never consult this field.
type PauseBehavior int

const (
	// PauseSkip is the default: the system does not run while paused.
	PauseSkip PauseBehavior = iota
	// PauseInclude runs the system both while paused and while running:
	// it covers a system that should never pause and one that should
	// keep running while paused, since both boil down to "always run"
	// (see DESIGN.md).
	PauseInclude
	// PauseOnly runs the system only while the world is paused.
	PauseOnly
)

// System is implemented by every scheduler participant. ID is used for
// Requires ordering checks, diagnostics timing, and duplicate-registration
// detection; it must be stable and unique within one world.
type System interface {
	ID() string
	Capabilities() Capability
}

// EarlyStarter runs exactly once, before the first real frame.
type EarlyStarter interface {
	EarlyStart(w *ecs.World)
}

// Starter runs exactly once, after entities exist but before the first
// per-frame update.
type Starter interface {
	Start(w *ecs.World)
}

// Updater runs once per frame.
type Updater interface {
	Update(w *ecs.World, dt time.Duration)
}

// FixedUpdater runs one or more times per frame at a fixed step.
type FixedUpdater interface {
	FixedUpdate(w *ecs.World, dt time.Duration)
}

// LateUpdater runs once per frame, after all Update systems.
type LateUpdater interface {
	LateUpdate(w *ecs.World, dt time.Duration)
}

// Renderer runs once per frame and is never affected by pause.
type Renderer interface {
	Render(w *ecs.World, dt time.Duration)
}

// PauseAware lets a system opt out of the default pause behavior.
// Systems that don't implement it get PauseSkip.
type PauseAware interface {
	PauseBehavior() PauseBehavior
}

// Requirer declares systems that must appear strictly earlier in
// registration order. Cyclic or unsatisfied requirements are a
// configuration error raised at Scheduler construction.
type Requirer interface {
	Requires() []string
}

// Reactive systems consume watcher notifications instead of polling.
// Watchers returns the watchers this system subscribes to, in the order
// they should be drained; OnNotify is called once per entity in a popped
// notification batch, in kind order added→modified→removed→enabled→disabled
// and insertion order within a kind.
type Reactive interface {
	Watchers() []*ecs.ComponentWatcher
	OnNotify(w *ecs.World, kind ecs.NotificationKind, e *ecs.Entity)
}

// MessageConsumer lets a reactive system additionally declare interest in
// message types, independent of any component it watches: MessageDescriptors
// returns the message-component ids it consumes, and OnMessage fires once
// per SendMessage call matching one of them, in the order the messages were
// sent, during the same EndFrame drain that delivers component-watcher
// notifications (after them).
type MessageConsumer interface {
	MessageDescriptors() []ecs.ComponentID
	OnMessage(w *ecs.World, e *ecs.Entity, typeID ecs.ComponentID, message any)
}

func pauseBehaviorOf(s System) PauseBehavior {
	if pa, ok := s.(PauseAware); ok {
		return pa.PauseBehavior()
	}
	return PauseSkip
}
