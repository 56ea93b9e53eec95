// Package appsystems provides a small set of concrete systems exercising
// every scheduler capability, wired together by cmd/ecsrund as a runnable
// example of the runtime.
package appsystems

import (
	"time"

	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
)

// Movement advances every entity carrying both Transform and Velocity by
// velocity*dt each update.
type Movement struct {
	ctx *ecs.Context
}

func NewMovement(world *ecs.World) *Movement {
	sig := ecs.Signature{Clauses: []ecs.Clause{
		ecs.AllOf(ecs.TransformComponentID, velocityID(world)),
	}}
	return &Movement{ctx: world.Context(sig)}
}

func velocityID(world *ecs.World) ecs.ComponentID {
	return world.Registry().IDOf(components.Velocity{})
}

func (*Movement) ID() string                       { return "movement" }
func (*Movement) Capabilities() system.Capability   { return system.CapUpdate }

func (m *Movement) Update(w *ecs.World, dt time.Duration) {
	seconds := dt.Seconds()
	velID := velocityID(w)
	ecs.Each[components.Transform](m.ctx, ecs.TransformComponentID, func(e *ecs.Entity, t components.Transform) {
		v, ok := ecs.Get[components.Velocity](e, velID)
		if !ok {
			return
		}
		t.X += v.DX * seconds
		t.Y += v.DY * seconds
		t.Z += v.DZ * seconds
		e.Replace([]any{t})
	})
}

var _ system.Updater = (*Movement)(nil)
