package ecs

// ComponentID is the dense integer identity a Registry assigns to every
// distinct component/message type. The first three ids are reserved for
// the framework's carrier interfaces (state-machine, interactive,
// transform); everything else is assigned in discovery order.
type ComponentID int

const (
	StateMachineComponentID ComponentID = iota
	InteractiveComponentID
	TransformComponentID

	reservedComponentCount = iota
)

// StateMachineCarrier is implemented by any component wrapping a driven
// coroutine routine. All such components collapse onto StateMachineComponentID.
type StateMachineCarrier interface {
	StateMachineCarrier()
}

// InteractiveCarrier is implemented by components that own an interaction
// Effect. All such components collapse onto InteractiveComponentID.
type InteractiveCarrier interface {
	InteractiveCarrier()
}

// TransformCarrier marks the framework's built-in transform/parent-relative
// component. It always collapses onto TransformComponentID and is
// implicitly parent-relative.
type TransformCarrier interface {
	TransformCarrier()
}

// ParentRelative is an opt-in marker: any user component type implementing
// it is folded into the registry's "parent-relative" id set alongside the
// built-in transform component.
type ParentRelative interface {
	ParentRelative()
}

// KeepOnReplace marks a component type that Entity.Replace must preserve
// even when the caller's bulk replacement does not mention it.
type KeepOnReplace interface {
	KeepOnReplace()
}

// Modifiable is implemented by components that notify the owning entity of
// internal (in-place) mutation, so that BeforeModifying/Modified events fire
// without a full Replace call.
type Modifiable interface {
	Modifiable()
}

// Message marks a component type as transient: cleared unconditionally at
// end of frame, never subject to keep-on-replace.
type Message interface {
	Message()
}

// Unique marks a component type that at most one entity in a world may
// carry at a time. Enforcement is diagnostic-only: it never affects
// matching or storage, it only panics on Add or Replace if another entity
// already holds one (see World.claimUnique).
type Unique interface {
	Unique()
}
