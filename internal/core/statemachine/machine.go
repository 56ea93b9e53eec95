package statemachine

import "github.com/l1jgo/ecsrun/internal/core/ecs"

// Machine drives one entity's routine against the world clock and message
// bus. It is the runtime side of a state-machine carrier component (see
// Component in this package).
type Machine struct {
	world  *ecs.World
	entity *ecs.Entity
	cache  *Cache

	routine Routine
	parents []Routine

	current      Wait
	frameCounter int64
	msRemaining  int64
	gen          uint64
	stopped      bool

	name     string
	nameSubs []func(string)
}

// NewMachine constructs a Machine for entity, sharing cache (typically the
// one owned by the Runtime that manages every machine in a world).
func NewMachine(world *ecs.World, entity *ecs.Entity, cache *Cache) *Machine {
	return &Machine{world: world, entity: entity, cache: cache}
}

func (m *Machine) Cache() *Cache { return m.cache }

// Initialize starts routine running: it is resumed once to obtain its
// first Wait. Called exactly once per Machine.
func (m *Machine) Initialize(routine Routine) {
	m.routine = routine
	m.applyWait(routine.Resume(), 0)
}

// Name is the routine's externally-visible state name, derived from the
// kind of its current Wait. Subscribers registered via Subscribe are
// notified whenever it changes.
func (m *Machine) Name() string { return m.name }

func (m *Machine) Stopped() bool { return m.stopped }

// Subscribe registers fn to be called whenever Name() changes.
func (m *Machine) Subscribe(fn func(name string)) {
	m.nameSubs = append(m.nameSubs, fn)
}

// Tick resumes the routine if its current wait has resolved: frame-counted
// waits decrement once per Tick call, ms-counted waits accumulate elapsed
// time and resume (carrying the remainder) once the threshold is reached.
// Message and nested-routine waits resolve out of band (via the world's
// message bus, or the inner routine's own Stop) and Tick is a no-op for
// them.
func (m *Machine) Tick(elapsedMs int64) {
	if m.stopped {
		return
	}
	switch m.current.Kind {
	case WaitNextFrame, WaitFrames:
		if m.frameCounter <= 0 {
			m.gen++
			m.applyWait(m.routine.Resume(), 0)
		} else {
			m.frameCounter--
		}
	case WaitMs:
		m.msRemaining -= elapsedMs
		if m.msRemaining <= 0 {
			carry := -m.msRemaining
			m.gen++
			m.applyWait(m.routine.Resume(), carry)
		}
	}
}

// OnDestroyed releases the machine: it stops ticking and invalidates any
// message wait still registered against the world's bus.
func (m *Machine) OnDestroyed() {
	m.stopped = true
	m.gen++
	m.parents = nil
}

func (m *Machine) applyWait(w Wait, carryMs int64) {
	switch w.Kind {
	case WaitStop:
		if len(m.parents) > 0 {
			m.routine = m.parents[len(m.parents)-1]
			m.parents = m.parents[:len(m.parents)-1]
			m.applyWait(m.routine.Resume(), 0)
			return
		}
		m.stopped = true
		m.current = w
		m.setName("stop")
		return
	case WaitNextFrame:
		m.current = w
		m.frameCounter = 0
	case WaitFrames:
		m.current = w
		m.frameCounter = w.N
	case WaitMs:
		m.current = w
		m.msRemaining = w.N - carryMs
	case WaitMessage:
		m.current = w
		target := m.entity.ID()
		if w.HasTarget {
			target = w.MessageTarget
		}
		myGen := m.gen
		m.world.RegisterMessageWait(target, w.MessageType, func(any) {
			if myGen != m.gen || m.stopped {
				return
			}
			m.gen++
			m.applyWait(m.routine.Resume(), 0)
		})
	case WaitRoutine:
		m.parents = append(m.parents, m.routine)
		m.routine = w.Inner
		m.current = w
		m.applyWait(m.routine.Resume(), 0)
		return
	}
	m.setName(nameFor(m.current))
}

func nameFor(w Wait) string {
	switch w.Kind {
	case WaitStop:
		return "stop"
	case WaitNextFrame, WaitFrames:
		return "waiting-frames"
	case WaitMs:
		return "waiting-ms"
	case WaitMessage:
		return "waiting-message"
	case WaitRoutine:
		return "waiting-routine"
	default:
		return "unknown"
	}
}

func (m *Machine) setName(name string) {
	if name == m.name {
		return
	}
	m.name = name
	for _, fn := range m.nameSubs {
		fn(name)
	}
}
