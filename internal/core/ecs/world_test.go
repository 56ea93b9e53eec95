package ecs

import "testing"

func TestEntityIDGenerationIncrementsOnReuse(t *testing.T) {
	w := newTestWorld()
	e1 := w.AddEntity()
	id1 := e1.ID()
	e1.Destroy()
	w.EndOfFrame() // reclaims the slot

	e2 := w.AddEntity()
	if e2.ID() == id1 {
		t.Fatal("expected a fresh entity id after reclamation, generation should differ")
	}
	if e2.ID().index() != id1.index() {
		t.Fatalf("expected the freed slot index to be reused, got %d vs %d", e2.ID().index(), id1.index())
	}
	if e2.ID().generation() != id1.generation()+1 {
		t.Fatalf("expected generation to increment by one, got %d vs %d", e2.ID().generation(), id1.generation())
	}
}

func TestDestroyedEntityRemainsAddressableUntilEndOfFrame(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity()
	id := e.ID()
	e.Destroy()

	got, ok := w.GetEntity(id)
	if !ok || got != e {
		t.Fatal("a destroyed entity must remain reachable via GetEntity until EndOfFrame")
	}

	w.EndOfFrame()
	if _, ok := w.GetEntity(id); ok {
		t.Fatal("expected the entity to be gone from the world after EndOfFrame reclaims it")
	}
}

func TestMessageDeliveredSynchronouslyToRegisteredWaiter(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity()
	pingID := w.Registry().IDOf(struct{ Ping int }{})

	var got any
	w.RegisterMessageWait(e.ID(), pingID, func(msg any) { got = msg })

	e.SendMessage(struct{ Ping int }{Ping: 7})
	if got == nil {
		t.Fatal("expected the registered waiter to fire synchronously on SendMessage")
	}
	if got.(struct{ Ping int }).Ping != 7 {
		t.Fatalf("unexpected message payload: %+v", got)
	}
}

func TestMessageWaiterFiresAtMostOnce(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity()
	pingID := w.Registry().IDOf(struct{ Ping int }{})

	calls := 0
	w.RegisterMessageWait(e.ID(), pingID, func(any) { calls++ })

	e.SendMessage(struct{ Ping int }{Ping: 1})
	e.SendMessage(struct{ Ping int }{Ping: 2})
	if calls != 1 {
		t.Fatalf("expected the waiter to fire exactly once, got %d", calls)
	}
}

func TestMessagesClearedAtEndOfFrame(t *testing.T) {
	w := newTestWorld()
	e := w.AddEntity()
	pingID := w.Registry().IDOf(struct{ Ping int }{})

	e.SendMessage(struct{ Ping int }{Ping: 1})
	if len(e.Messages(pingID)) != 1 {
		t.Fatal("expected the message to be visible within the frame it was sent")
	}
	w.EndOfFrame()
	if len(e.Messages(pingID)) != 0 {
		t.Fatal("expected messages to be cleared after EndOfFrame")
	}
}

func TestPauseResumeToggle(t *testing.T) {
	w := newTestWorld()
	if w.Paused() {
		t.Fatal("a new world should not start paused")
	}
	w.Pause()
	if !w.Paused() {
		t.Fatal("expected Paused() true after Pause()")
	}
	w.Resume()
	if w.Paused() {
		t.Fatal("expected Paused() false after Resume()")
	}
}
