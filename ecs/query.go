package ecs

// ForEach visits every live entity holding a T, in entity order.
func ForEach[T any](eng *Engine, h Handle[T], fn func(e Entity, v *T)) {
	st, ok := eng.stores[h.Kind()]
	if !ok {
		return
	}
	typed, ok := st.(*store[T])
	if !ok {
		return
	}
	for i := 0; i < typed.len(); i++ {
		if v, ok := typed.lookup(i); ok && eng.pool.alive[i] {
			fn(Entity(i), v)
		}
	}
}

// ForEach2 visits every live entity holding both an A and a B.
func ForEach2[A, B any](eng *Engine, ha Handle[A], hb Handle[B], fn func(e Entity, a *A, b *B)) {
	ForEach(eng, ha, func(e Entity, a *A) {
		if b, ok := Get(eng, e, hb); ok {
			fn(e, a, b)
		}
	})
}
