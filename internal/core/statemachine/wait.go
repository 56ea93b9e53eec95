// Package statemachine drives per-entity coroutine-style routines: a
// routine yields Wait directives (stop, next-frame, N frames, N ms, a
// message, or a nested routine) and the runtime resumes it against the
// world's frame clock and message bus.
package statemachine

import (
	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

// WaitKind tags why a Routine yielded.
type WaitKind int

const (
	WaitStop WaitKind = iota
	WaitNextFrame
	WaitFrames
	WaitMs
	WaitMessage
	WaitRoutine
)

// Wait is a tagged value identifying why a routine yielded. Frames/Ms hold
// their count in N; Message holds the message type and (optional) target
// entity; Routine holds the nested Routine to drive until it yields Stop.
type Wait struct {
	Kind          WaitKind
	N             int64
	MessageType   ecs.ComponentID
	MessageTarget ecs.EntityID
	HasTarget     bool
	Inner         Routine
}

func Stop() Wait      { return Wait{Kind: WaitStop} }
func NextFrame() Wait { return Wait{Kind: WaitNextFrame} }

// MessageFrom waits for a message of typeID sent specifically to target.
// Unlike Frames/Ms/Message, this is never interned: the target varies per
// call.
func MessageFrom(typeID ecs.ComponentID, target ecs.EntityID) Wait {
	return Wait{Kind: WaitMessage, MessageType: typeID, MessageTarget: target, HasTarget: true}
}

// InRoutine waits for inner to yield Stop before resuming the outer
// routine. The outer routine never resumes while inner has not yielded
// Stop.
func InRoutine(inner Routine) Wait {
	return Wait{Kind: WaitRoutine, Inner: inner}
}
