package statemachine

import (
	"testing"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func TestCacheFramesInterns(t *testing.T) {
	c := NewCache()
	a := c.Frames(5)
	b := c.Frames(5)
	if a != b {
		t.Fatal("expected repeated Frames(5) calls to return the same interned value")
	}
	if c.Frames(6) == a {
		t.Fatal("different frame counts must not collide")
	}
}

func TestCacheMsInterns(t *testing.T) {
	c := NewCache()
	a := c.Ms(250)
	b := c.Ms(250)
	if a != b {
		t.Fatal("expected repeated Ms(250) calls to return the same interned value")
	}
}

func TestCacheSecondsConvertsToMsAndInterns(t *testing.T) {
	c := NewCache()
	a := c.Seconds(1.5)
	b := c.Ms(1500)
	if a != b {
		t.Fatalf("expected Seconds(1.5) to intern onto the same slot as Ms(1500), got %+v vs %+v", a, b)
	}
}

func TestCacheMessageInternsByType(t *testing.T) {
	c := NewCache()
	pingID := ecs.ComponentID(101)
	pongID := ecs.ComponentID(102)

	a := c.Message(pingID)
	b := c.Message(pingID)
	if a != b {
		t.Fatal("expected repeated Message calls with the same type id to return the same value")
	}
	if c.Message(pongID) == a {
		t.Fatal("different message types must not collide")
	}
}

func TestCachesAreIndependentPerInstance(t *testing.T) {
	c1 := NewCache()
	c2 := NewCache()
	a := c1.Frames(1)
	if len(c2.frames) != 0 {
		t.Fatal("interning into one cache must not populate another")
	}
	b := c2.Frames(1)
	if a != b {
		t.Fatal("two independent caches should still intern equal values for equal arguments")
	}
}
