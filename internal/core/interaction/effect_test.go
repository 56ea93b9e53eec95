package interaction

import (
	"testing"

	"github.com/l1jgo/ecsrun/internal/core/ecs"
)

func newWorld() *ecs.World { return ecs.NewWorld(ecs.NewRegistry()) }

func TestInteractRunsRegisteredNativeEffect(t *testing.T) {
	w := newWorld()
	interactor := w.AddEntity()
	interacted := w.AddEntity()

	var gotArgs Args
	ran := false
	interacted.Add(Component{Effect: NativeEffect(func(a Args) {
		ran = true
		gotArgs = a
	})})

	Interact(w, interactor, interacted)

	if !ran {
		t.Fatal("expected Interact to run the interacted entity's Effect")
	}
	if gotArgs.Interactor != interactor || gotArgs.Interacted != interacted || gotArgs.World != w {
		t.Fatalf("expected Args to carry world, interactor and interacted, got %+v", gotArgs)
	}
}

func TestInteractIsNoOpWithoutInteractiveComponent(t *testing.T) {
	w := newWorld()
	interactor := w.AddEntity()
	interacted := w.AddEntity() // no Component attached

	// should not panic
	Interact(w, interactor, interacted)
}

type notAComponent struct{}

func (notAComponent) InteractiveCarrier() {}

func TestInteractIsNoOpWhenStoredValueIsWrongType(t *testing.T) {
	w := newWorld()
	interactor := w.AddEntity()
	interacted := w.AddEntity()

	// notAComponent implements InteractiveCarrier, so the registry aliases it
	// onto InteractiveComponentID: a value is present there, but it is not a
	// Component.
	interacted.Add(notAComponent{})

	// should not panic: the failed Component assertion makes Interact a no-op.
	Interact(w, interactor, interacted)
}

func TestInteractResolvesSelfDirectedEffectOffInteractorWhenInteractedIsNil(t *testing.T) {
	w := newWorld()
	interactor := w.AddEntity()

	var gotArgs Args
	ran := false
	interactor.Add(Component{Effect: NativeEffect(func(a Args) {
		ran = true
		gotArgs = a
	})})

	Interact(w, interactor, nil)

	if !ran {
		t.Fatal("expected Interact to resolve the effect off interactor for a nil interacted")
	}
	if gotArgs.Interactor != interactor || gotArgs.Interacted != nil || gotArgs.World != w {
		t.Fatalf("expected Args.Interacted to stay nil for a self-directed interaction, got %+v", gotArgs)
	}
}

func TestInteractIsNoOpForSelfDirectedInteractorWithoutInteractiveComponent(t *testing.T) {
	w := newWorld()
	interactor := w.AddEntity() // no Component attached

	// should not panic
	Interact(w, interactor, nil)
}
