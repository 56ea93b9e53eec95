// Package interaction implements interactor/interacted effect dispatch: an
// entity carrying an interactive component runs its Effect whenever
// something interacts with it, either directly in Go (NativeEffect) or
// through a scripted Lua function (ScriptedEffect).
package interaction

import "github.com/l1jgo/ecsrun/internal/core/ecs"

// Args is the payload an Effect receives: the world, the interactor
// entity, and the interacted entity (nil for a self-directed interaction
// that names no target).
type Args struct {
	World      *ecs.World
	Interactor *ecs.Entity
	Interacted *ecs.Entity
}

// Effect is anything an interactive component can run in response to an
// interaction.
type Effect interface {
	Run(Args)
}

// NativeEffect adapts a plain Go closure to Effect.
type NativeEffect func(Args)

func (f NativeEffect) Run(a Args) { f(a) }

// Component wraps an Effect so it can be attached to an entity via
// Entity.Add. Its carrier interface makes the registry alias every
// implementation onto ecs.InteractiveComponentID.
type Component struct {
	Effect Effect
}

func (Component) InteractiveCarrier() {}

// Interact runs the registered Effect of interacted, if it carries one, with
// interactor and interacted set on the Args. interacted is optional: a nil
// interacted names a self-directed interaction, and the effect is instead
// resolved off interactor, with Args.Interacted left nil. It is a no-op if
// the entity the effect is resolved off has no interactive component.
func Interact(world *ecs.World, interactor, interacted *ecs.Entity) {
	target := interacted
	if target == nil {
		target = interactor
	}
	v, ok := target.Get(ecs.InteractiveComponentID)
	if !ok {
		return
	}
	comp, ok := v.(Component)
	if !ok {
		return
	}
	comp.Effect.Run(Args{World: world, Interactor: interactor, Interacted: interacted})
}
