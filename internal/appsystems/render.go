package appsystems

import (
	"fmt"
	"time"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
	"github.com/l1jgo/ecsrun/internal/core/system"
)

// Snapshot prints a one-line entity count summary on every 150th frame
// (frame counts divisible by 150, including frame 0). It is a
// Renderer, so it is never affected by pause.
type Snapshot struct {
	ctx *ecs.Context
}

func NewSnapshot(world *ecs.World) *Snapshot {
	sig := ecs.Signature{Clauses: []ecs.Clause{ecs.AllOf(ecs.TransformComponentID)}}
	return &Snapshot{ctx: world.Context(sig)}
}

func (*Snapshot) ID() string                     { return "snapshot" }
func (*Snapshot) Capabilities() system.Capability { return system.CapRender }

func (s *Snapshot) Render(w *ecs.World, dt time.Duration) {
	if w.FrameCount()%150 != 0 {
		return
	}
	fmt.Printf("  frame %d: %d entities with a transform\n", w.FrameCount(), len(s.ctx.ActiveEntities()))
}

var _ system.Renderer = (*Snapshot)(nil)
