package appsystems

import (
	"testing"
	"time"

	"github.com/l1jgo/ecsrun/internal/components"
	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func newWorld() *ecs.World { return ecs.NewWorld(ecs.NewRegistry()) }

func TestMovementAdvancesTransformByVelocityTimesDt(t *testing.T) {
	w := newWorld()
	m := NewMovement(w)

	e := w.AddEntity(components.Transform{X: 0, Y: 0, Z: 0}, components.Velocity{DX: 2, DY: 4, DZ: 0})
	e.Activate()

	m.Update(w, 500*time.Millisecond)

	tr, ok := ecs.Get[components.Transform](e, ecs.TransformComponentID)
	if !ok {
		t.Fatal("expected the entity to still carry a Transform")
	}
	if tr.X != 1 || tr.Y != 2 {
		t.Fatalf("expected X=1 Y=2 after half a second at (2,4)/s, got %+v", tr)
	}
}

func TestMovementSkipsEntitiesWithoutVelocity(t *testing.T) {
	w := newWorld()
	m := NewMovement(w)

	e := w.AddEntity(components.Transform{X: 5})
	e.Activate()

	// entity does not match Movement's signature (no Velocity), so it's
	// never visited; Update must not panic.
	m.Update(w, time.Second)

	tr, _ := ecs.Get[components.Transform](e, ecs.TransformComponentID)
	if tr.X != 5 {
		t.Fatalf("expected transform untouched, got %+v", tr)
	}
}
