package statemachine

import (
	"testing"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func newTestWorld() (*ecs.World, *ecs.Entity) {
	w := ecs.NewWorld(ecs.NewRegistry())
	e := w.AddEntity()
	return w, e
}

func TestMachineWaitFramesResumesAfterCountdown(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	var steps []string

	routine := Sequence(
		func() Wait { steps = append(steps, "a"); return cache.Frames(2) },
		func() Wait { steps = append(steps, "b"); return Stop() },
	)
	m := NewMachine(w, e, cache)
	m.Initialize(routine)

	if len(steps) != 1 {
		t.Fatalf("expected the first step to run on Initialize, got %v", steps)
	}

	m.Tick(16) // counter 2 -> 1
	if len(steps) != 1 {
		t.Fatalf("routine should not resume before its frame count elapses, got %v", steps)
	}
	m.Tick(16) // counter 1 -> 0
	if len(steps) != 1 {
		t.Fatalf("routine should not resume until a tick observes counter <= 0, got %v", steps)
	}
	m.Tick(16) // counter already 0: resumes
	if len(steps) != 2 || steps[1] != "b" {
		t.Fatalf("expected the routine to resume into step b, got %v", steps)
	}
	if !m.Stopped() {
		t.Fatal("expected the machine to stop after the final step yields Stop")
	}
}

func TestMachineWaitMsCarriesRemainder(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	resumed := false

	routine := Sequence(
		func() Wait { return cache.Ms(100) },
		func() Wait { resumed = true; return Stop() },
	)
	m := NewMachine(w, e, cache)
	m.Initialize(routine)

	m.Tick(60) // 100 -> 40 remaining
	if resumed {
		t.Fatal("should not resume before the ms threshold is reached")
	}
	m.Tick(70) // 40 -> -30: resumes, carry = 30
	if !resumed {
		t.Fatal("expected the routine to resume once elapsed ms exceeds the wait")
	}
}

func TestMachineWaitMessageRespondsToSendMessage(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	pingID := w.Registry().IDOf(struct{ Ping int }{})
	resumed := false

	routine := Sequence(
		func() Wait { return cache.Message(pingID) },
		func() Wait { resumed = true; return Stop() },
	)
	m := NewMachine(w, e, cache)
	m.Initialize(routine)

	if resumed {
		t.Fatal("should not resume before the message arrives")
	}
	e.SendMessage(struct{ Ping int }{Ping: 1})
	if !resumed {
		t.Fatal("expected WaitMessage to resume the routine once the message is sent")
	}
}

func TestMachineOnDestroyedStopsTicking(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	resumeCount := 0

	routine := Loop(func() []Step {
		return []Step{
			func() Wait { resumeCount++; return cache.Frames(1) },
		}
	})
	m := NewMachine(w, e, cache)
	m.Initialize(routine) // runs the loop body once, arms Frames(1)
	m.Tick(16)            // counter 1 -> 0
	m.Tick(16)            // counter <= 0: resumes, loop body runs again

	countAfterFirstTick := resumeCount
	m.OnDestroyed()
	if !m.Stopped() {
		t.Fatal("expected Stopped() true after OnDestroyed")
	}
	m.Tick(16)
	m.Tick(16)
	if resumeCount != countAfterFirstTick {
		t.Fatal("a destroyed machine must never resume its routine again")
	}
}

func TestMachineOnDestroyedInvalidatesPendingMessageWait(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	pingID := w.Registry().IDOf(struct{ Ping int }{})
	resumed := false

	routine := Sequence(
		func() Wait { return cache.Message(pingID) },
		func() Wait { resumed = true; return Stop() },
	)
	m := NewMachine(w, e, cache)
	m.Initialize(routine)
	m.OnDestroyed()

	e.SendMessage(struct{ Ping int }{Ping: 1})
	if resumed {
		t.Fatal("a stale message-wait callback must not resume a destroyed machine")
	}
}

func TestMachineNestedRoutineResumesOuterOnInnerStop(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	var order []string

	inner := Sequence(
		func() Wait { order = append(order, "inner-1"); return cache.Frames(1) },
		func() Wait { order = append(order, "inner-2"); return Stop() },
	)
	outer := Sequence(
		func() Wait { order = append(order, "outer-1"); return InRoutine(inner) },
		func() Wait { order = append(order, "outer-2"); return Stop() },
	)

	m := NewMachine(w, e, cache)
	m.Initialize(outer)
	if len(order) < 2 || order[0] != "outer-1" || order[1] != "inner-1" {
		t.Fatalf("expected outer to yield immediately into the nested routine, got %v", order)
	}

	m.Tick(16) // counter 1 -> 0
	m.Tick(16) // counter <= 0: inner resumes, runs inner-2 and stops, outer resumes into outer-2
	want := []string{"outer-1", "inner-1", "inner-2", "outer-2"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if !m.Stopped() {
		t.Fatal("expected the outer routine to stop after its final step")
	}
}

func TestMachineNameChangesNotifySubscribers(t *testing.T) {
	w, e := newTestWorld()
	cache := NewCache()
	var names []string

	routine := Sequence(
		func() Wait { return cache.Frames(1) },
		func() Wait { return cache.Ms(10) },
	)
	m := NewMachine(w, e, cache)
	m.Subscribe(func(name string) { names = append(names, name) })
	m.Initialize(routine)
	m.Tick(1) // counter 1 -> 0
	m.Tick(1) // counter <= 0: resumes into the Ms wait

	if len(names) < 2 || names[0] != "waiting-frames" || names[1] != "waiting-ms" {
		t.Fatalf("expected name transitions waiting-frames -> waiting-ms, got %v", names)
	}
}
