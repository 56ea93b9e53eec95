package ecs

// Get is typed sugar over Entity.Get: it type-asserts the stored value to
// T, giving callers a generic, no-reflection accessor over this runtime's
// per-entity map storage.
func Get[T any](e *Entity, id ComponentID) (T, bool) {
	v, ok := e.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		var zero T
		return zero, false
	}
	return typed, true
}

// Each iterates the active entities of a context, type-asserting the
// component at id for each, skipping any entity where the assertion fails.
func Each[T any](ctx *Context, id ComponentID, fn func(*Entity, T)) {
	for _, e := range ctx.ActiveEntities() {
		if v, ok := Get[T](e, id); ok {
			fn(e, v)
		}
	}
}
