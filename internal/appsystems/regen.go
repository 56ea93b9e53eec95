package appsystems

import (
	"time"

	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
)

// Regen heals every entity carrying Vitals below MaxHP by one point per
// update, mirroring the teacher's passive HP regeneration tick. Vitals is
// mutated in place through its pointer and reported via NotifyModified
// rather than a full Replace, since only one field changes.
type Regen struct {
	ctx      *ecs.Context
	vitalsID ecs.ComponentID
}

func NewRegen(world *ecs.World) *Regen {
	id := world.Registry().IDOf((*components.Vitals)(nil))
	sig := ecs.Signature{Clauses: []ecs.Clause{ecs.AllOf(id)}}
	return &Regen{ctx: world.Context(sig), vitalsID: id}
}

func (*Regen) ID() string                     { return "regen" }
func (*Regen) Capabilities() system.Capability { return system.CapUpdate }

func (r *Regen) Update(w *ecs.World, dt time.Duration) {
	for _, e := range r.ctx.ActiveEntities() {
		v, ok := ecs.Get[*components.Vitals](e, r.vitalsID)
		if !ok || v.HP >= v.MaxHP {
			continue
		}
		v.HP++
		e.NotifyModified(r.vitalsID)
	}
}

var _ system.Updater = (*Regen)(nil)
