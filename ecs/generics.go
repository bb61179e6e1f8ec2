package ecs

func Get[T any](eng *Engine, e Entity, h Handle[T]) (*T, bool) {
	st, ok := eng.stores[h.Kind()]
	if !ok {
		return nil, false
	}
	typed, ok := st.(*store[T])
	if !ok {
		return nil, false
	}
	return typed.lookup(e.index())
}

func Has[T any](eng *Engine, e Entity, h Handle[T]) bool {
	_, ok := Get(eng, e, h)
	return ok
}

// Add is AddComponents for a single typed value.
func Add[T any](eng *Engine, e Entity, h Handle[T], value *T) {
	eng.AddComponents(e, value)
}

func Remove[T any](eng *Engine, e Entity, h Handle[T]) bool {
	if !Has(eng, e, h) {
		return false
	}
	eng.RemoveComponents(e, h.Kind())
	return true
}
