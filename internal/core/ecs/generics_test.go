package ecs

import "testing"

func TestGetTypedAccessor(t *testing.T) {
	w := newTestWorld()
	id := w.Registry().IDOf(posComp{})
	e := w.AddEntity(posComp{X: 3, Y: 4})

	v, ok := Get[posComp](e, id)
	if !ok || v.X != 3 || v.Y != 4 {
		t.Fatalf("expected typed Get to return the component, got %+v ok=%v", v, ok)
	}

	// wrong type assertion fails cleanly
	if _, ok := Get[bComp](e, id); ok {
		t.Fatal("Get should return false when the stored value doesn't match the requested type")
	}
}

func TestEachSkipsNonMatchingTypeAssertions(t *testing.T) {
	w := newTestWorld()
	id := w.Registry().IDOf(posComp{})
	ctx := w.Context(Signature{Clauses: []Clause{AllOf(id)}})

	e1 := w.AddEntity(posComp{X: 1})
	e1.Activate()
	e2 := w.AddEntity(posComp{X: 2})
	e2.Activate()

	var seen []int
	Each[posComp](ctx, id, func(_ *Entity, c posComp) { seen = append(seen, c.X) })
	if len(seen) != 2 {
		t.Fatalf("expected both matching entities visited, got %v", seen)
	}

	// the stored posComp values fail a bComp assertion, so every entity is skipped
	Each[bComp](ctx, id, func(*Entity, bComp) {
		t.Fatal("Each must skip entities whose component fails the type assertion")
	})
}
