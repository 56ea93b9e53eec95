package system

import (
	"strings"
	"time"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

// Scheduler orders registered systems and drives them through the frame
// pipeline (early-start, start, fixed-update, update, late-update, render,
// reactive drain). It implements ecs.FramePipeline so a World can be
// attached to it without ecs importing this package.
type Scheduler struct {
	world    *ecs.World
	systems  []System
	byID     map[string]int
	disabled map[string]bool
}

// NewScheduler validates systems' Requires constraints against their
// registration order and returns a Scheduler ready to attach to a world.
// A required system that does not appear strictly earlier in the list, or
// whose Requires graph forms a cycle, is a configuration error.
func NewScheduler(world *ecs.World, systems ...System) (*Scheduler, error) {
	byID := make(map[string]int, len(systems))
	for i, s := range systems {
		if _, dup := byID[s.ID()]; dup {
			return nil, ecs.NewError(ecs.ErrDuplicateSystem, s.ID(), nil)
		}
		byID[s.ID()] = i
	}

	requires := make(map[string][]string, len(systems))
	for _, s := range systems {
		if req, ok := s.(Requirer); ok {
			requires[s.ID()] = req.Requires()
		}
	}
	if cycle := findCycle(systems, requires); cycle != "" {
		return nil, ecs.NewError(ecs.ErrCyclicOrdering, cycle, nil)
	}

	for i, s := range systems {
		for _, need := range requires[s.ID()] {
			pos, exists := byID[need]
			if !exists || pos >= i {
				return nil, ecs.NewError(ecs.ErrUnsatisfiedRequires, s.ID()+" -> "+need, nil)
			}
		}
	}

	sched := &Scheduler{world: world, systems: systems, byID: byID, disabled: make(map[string]bool)}
	world.AttachPipeline(sched)
	return sched, nil
}

// ActivateSystem re-enables a system previously stopped by DeactivateSystem.
// A no-op if id is unknown or already active.
func (s *Scheduler) ActivateSystem(id string) { delete(s.disabled, id) }

// DeactivateSystem stops the named system from running in any phase,
// overriding whatever PauseBehavior it declares, until a matching
// ActivateSystem call. A no-op if id is unregistered.
func (s *Scheduler) DeactivateSystem(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	s.disabled[id] = true
}

// findCycle walks the Requires() graph independently of registration order
// and reports the first cycle found as "a -> b -> a", or "" if acyclic.
func findCycle(systems []System, requires map[string][]string) string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(systems))
	var path []string
	var visit func(id string) string
	visit = func(id string) string {
		color[id] = gray
		path = append(path, id)
		for _, need := range requires[id] {
			switch color[need] {
			case gray:
				start := 0
				for i, p := range path {
					if p == need {
						start = i
						break
					}
				}
				return strings.Join(append(append([]string{}, path[start:]...), need), " -> ")
			case white:
				if cyc := visit(need); cyc != "" {
					return cyc
				}
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return ""
	}
	for _, s := range systems {
		if color[s.ID()] == white {
			if cyc := visit(s.ID()); cyc != "" {
				return cyc
			}
		}
	}
	return ""
}

func (s *Scheduler) runTimed(sys System, fn func()) {
	start := time.Now()
	count := s.world.EntityCount()
	fn()
	s.world.TimingSink().Record(sys.ID(), float64(time.Since(start).Microseconds())/1000, count)
}

// EarlyStart runs every EarlyStarter exactly once, in registration order.
func (s *Scheduler) EarlyStart() {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapEarlyStart) {
			es := sys.(EarlyStarter)
			s.runTimed(sys, func() { es.EarlyStart(s.world) })
		}
	}
}

// Start runs every Starter exactly once, in registration order.
func (s *Scheduler) Start() {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapStart) {
			st := sys.(Starter)
			s.runTimed(sys, func() { st.Start(s.world) })
		}
	}
}

func (s *Scheduler) shouldRun(sys System) bool {
	if s.disabled[sys.ID()] {
		return false
	}
	switch pauseBehaviorOf(sys) {
	case PauseOnly:
		return s.world.Paused()
	case PauseInclude:
		return true
	default:
		return !s.world.Paused()
	}
}

func (s *Scheduler) FixedUpdate(dt time.Duration) {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapFixedUpdate) && s.shouldRun(sys) {
			fu := sys.(FixedUpdater)
			s.runTimed(sys, func() { fu.FixedUpdate(s.world, dt) })
		}
	}
}

func (s *Scheduler) Update(dt time.Duration) {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapUpdate) && s.shouldRun(sys) {
			u := sys.(Updater)
			s.runTimed(sys, func() { u.Update(s.world, dt) })
		}
	}
}

func (s *Scheduler) LateUpdate(dt time.Duration) {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapLateUpdate) && s.shouldRun(sys) {
			lu := sys.(LateUpdater)
			s.runTimed(sys, func() { lu.LateUpdate(s.world, dt) })
		}
	}
}

// Render always runs regardless of pause, but still honors DeactivateSystem.
func (s *Scheduler) Render(dt time.Duration) {
	for _, sys := range s.systems {
		if sys.Capabilities().has(CapRender) && !s.disabled[sys.ID()] {
			r := sys.(Renderer)
			s.runTimed(sys, func() { r.Render(s.world, dt) })
		}
	}
}

// EndFrame runs the reactive drain and end-of-frame cleanup, strictly after
// Render: fixed/update/late-update systems and render itself all see the
// frame's state before any reactive-triggered mutation or entity-slot
// reclamation happens.
func (s *Scheduler) EndFrame() {
	s.drainReactive()
	s.world.EndOfFrame()
}

func (s *Scheduler) Exit() {}

// drainReactive walks reactive systems in registration order, and for each
// one its declared watchers in declaration order, delivering every popped
// notification's entities in kind and insertion order. Reactive systems are
// never affected by pause, but a system stopped by DeactivateSystem is
// skipped like any other phase.
//
// Which watchers are worth visiting at all comes from the world's pending
// index rather than blindly popping every declared watcher: a watcher with
// no queued work this frame is skipped without touching its lock, since
// World.DrainPendingWatcherIDs is the single source of truth for "does this
// watcher have anything to drain."
func (s *Scheduler) drainReactive() {
	pending := make(map[uint64]bool)
	for _, id := range s.world.DrainPendingWatcherIDs() {
		pending[id] = true
	}

	for _, sys := range s.systems {
		if !sys.Capabilities().has(CapReactive) || s.disabled[sys.ID()] {
			continue
		}
		rx := sys.(Reactive)
		for _, watcher := range rx.Watchers() {
			if !pending[watcher.ID()] {
				continue
			}
			for _, batch := range watcher.PopNotifications() {
				for _, e := range batch.Entities {
					rx.OnNotify(s.world, batch.Kind, e)
				}
			}
		}
	}

	s.drainMessages()
}

// drainMessages delivers every message sent this frame to reactive systems
// that declared interest in it via MessageConsumer, in registration order,
// each system seeing the messages it consumes in send order.
func (s *Scheduler) drainMessages() {
	messages := s.world.DrainMessages()
	if len(messages) == 0 {
		return
	}
	for _, sys := range s.systems {
		if !sys.Capabilities().has(CapReactive) || s.disabled[sys.ID()] {
			continue
		}
		mc, ok := sys.(MessageConsumer)
		if !ok {
			continue
		}
		wanted := make(map[ecs.ComponentID]bool, len(mc.MessageDescriptors()))
		for _, id := range mc.MessageDescriptors() {
			wanted[id] = true
		}
		for _, m := range messages {
			if wanted[m.TypeID] {
				mc.OnMessage(s.world, m.Entity, m.TypeID, m.Message)
			}
		}
	}
}
