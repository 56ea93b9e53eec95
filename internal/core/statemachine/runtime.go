package statemachine

import "github.com/l1jgo/ecsrun/internal/core/ecs"

// Runtime owns the Cache for one world and advances every entity's
// state-machine component once per Tick call. It is not a scheduler
// System: the host calls Tick once per frame (cmd/ecsrund does so between
// Update and LateUpdate); it does not schedule frames itself.
type Runtime struct {
	world *ecs.World
	cache *Cache
	ctx   *ecs.Context
}

// NewRuntime builds a Runtime bound to world, watching every entity that
// carries a state-machine component.
func NewRuntime(world *ecs.World) *Runtime {
	sig := ecs.Signature{Clauses: []ecs.Clause{ecs.AllOf(ecs.StateMachineComponentID)}}
	return &Runtime{
		world: world,
		cache: NewCache(),
		ctx:   world.Context(sig),
	}
}

func (r *Runtime) Cache() *Cache { return r.cache }

// Spawn attaches a running routine to entity and returns its Component.
func (r *Runtime) Spawn(entity *ecs.Entity, routine Routine) *Component {
	return New(r.world, entity, r.cache, routine)
}

// Tick advances every tracked entity's Machine by elapsedMs.
func (r *Runtime) Tick(elapsedMs int64) {
	ecs.Each[Component](r.ctx, ecs.StateMachineComponentID, func(_ *ecs.Entity, c Component) {
		c.Machine.Tick(elapsedMs)
	})
}
