package statemachine

import (
	"sync"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

// Cache interns the common wait shapes (by ms, by frame count, by message
// type defaulting to the owning entity) so that repeated calls with the
// same argument return the same stored Wait value. It is owned by a
// single Runtime, not a process-wide global, so two worlds never share
// interned values.
type Cache struct {
	mu       sync.Mutex
	frames   map[int64]Wait
	ms       map[int64]Wait
	messages map[ecs.ComponentID]Wait
}

func NewCache() *Cache {
	return &Cache{
		frames:   make(map[int64]Wait),
		ms:       make(map[int64]Wait),
		messages: make(map[ecs.ComponentID]Wait),
	}
}

func (c *Cache) Frames(n int64) Wait {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.frames[n]; ok {
		return w
	}
	w := Wait{Kind: WaitFrames, N: n}
	c.frames[n] = w
	return w
}

func (c *Cache) Ms(n int64) Wait {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.ms[n]; ok {
		return w
	}
	w := Wait{Kind: WaitMs, N: n}
	c.ms[n] = w
	return w
}

// Seconds converts to ms at construction time, then interns exactly like Ms.
func (c *Cache) Seconds(x float64) Wait {
	return c.Ms(int64(x * 1000))
}

// Message waits for typeID sent to the routine's owning entity (the
// default target). Use MessageFrom directly for an explicit target — that
// shape is never interned.
func (c *Cache) Message(typeID ecs.ComponentID) Wait {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.messages[typeID]; ok {
		return w
	}
	w := Wait{Kind: WaitMessage, MessageType: typeID}
	c.messages[typeID] = w
	return w
}
