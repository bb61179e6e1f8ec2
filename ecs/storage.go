package ecs

// storage is a dense per-kind component container indexed by entity. A
// cleared slot is the "no value" state.
type storage interface {
	set(i int, v any) bool
	get(i int) (any, bool)
	clear(i int) bool
	grow(n int)
	len() int
}

type store[T any] struct {
	values  []*T
	present []bool
}

func newStore[T any](capacity int) *store[T] {
	return &store[T]{
		values:  make([]*T, capacity),
		present: make([]bool, capacity),
	}
}

func (s *store[T]) set(i int, v any) bool {
	p, ok := v.(*T)
	if !ok || p == nil || i >= len(s.values) {
		return false
	}
	s.values[i] = p
	s.present[i] = true
	return true
}

func (s *store[T]) get(i int) (any, bool) {
	p, ok := s.lookup(i)
	if !ok {
		return nil, false
	}
	return p, true
}

func (s *store[T]) lookup(i int) (*T, bool) {
	if i < 0 || i >= len(s.values) || !s.present[i] {
		return nil, false
	}
	return s.values[i], true
}

func (s *store[T]) clear(i int) bool {
	if i < 0 || i >= len(s.values) || !s.present[i] {
		return false
	}
	s.values[i] = nil
	s.present[i] = false
	return true
}

func (s *store[T]) grow(n int) {
	s.values = append(s.values, make([]*T, n)...)
	s.present = append(s.present, make([]bool, n)...)
}

func (s *store[T]) len() int {
	return len(s.values)
}
