package statemachine

import (
	"testing"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func TestNewAttachesRunningComponent(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	ran := false

	routine := RoutineFunc(func() Wait {
		ran = true
		return Stop()
	})
	c := New(w, e, cache, routine)

	if !ran {
		t.Fatal("expected New to run the routine's first step immediately")
	}
	got, ok := ecs.Get[Component](e, ecs.StateMachineComponentID)
	if !ok || got.Machine != c.Machine {
		t.Fatal("expected the entity to carry the Component wrapping the same Machine")
	}
}

func TestRemovingComponentStopsItsMachine(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	resumeCount := 0

	routine := Sequence(
		func() Wait { resumeCount++; return cache.Frames(1) },
		func() Wait { resumeCount++; return Stop() },
	)
	c := New(w, e, cache, routine)

	e.Remove(ecs.StateMachineComponentID)

	if !c.Machine.Stopped() {
		t.Fatal("expected removing the component to invoke OnDestroyed and stop the machine")
	}
	c.Machine.Tick(16)
	c.Machine.Tick(16)
	if resumeCount != 1 {
		t.Fatalf("expected no further resumes after the component was removed, got %d", resumeCount)
	}
}
