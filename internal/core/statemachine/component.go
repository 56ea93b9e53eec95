package statemachine

import "github.com/l1jgo/ecsrun/internal/core/ecs"

// Component wraps a Machine so it can be attached to an entity via
// Entity.Add. Its carrier interface makes the registry alias every
// implementation onto ecs.StateMachineComponentID rather than minting a
// fresh id per concrete type.
type Component struct {
	Machine *Machine
}

func (Component) StateMachineCarrier() {}

// New builds and attaches a running Component: entity gets a Machine bound
// to world and cache, initialized with routine, then added as its
// state-machine component.
func New(world *ecs.World, entity *ecs.Entity, cache *Cache, routine Routine) *Component {
	m := NewMachine(world, entity, cache)
	m.Initialize(routine)
	c := &Component{Machine: m}
	entity.Add(*c)
	entity.OnComponentRemoved(func(ev ecs.Event) {
		if ev.Component == ecs.StateMachineComponentID {
			m.OnDestroyed()
		}
	})
	return c
}
