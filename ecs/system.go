package ecs

// Tick carries the timing of one Engine.Update.
type Tick struct {
	DT        float64
	Timestamp float64
	Frame     uint64
}

// System runs per entity over every entity that has all of its required
// components. Bound components arrive as *T values in Requires order.
type System interface {
	Requires() []Kind
	AddEntity(e Entity, components []any)
	RemoveEntity(e Entity)
	UpdateEntity(tick Tick, e Entity, components []any)
}

// PreUpdater runs before the per-entity pass. Returning false skips the
// system for this tick.
type PreUpdater interface {
	PreUpdate(tick Tick) bool
}

// PostUpdater runs after the per-entity pass.
type PostUpdater interface {
	PostUpdate(tick Tick)
}

// Rebinder is told when a matched entity's bound components were replaced.
type Rebinder interface {
	RebindEntity(e Entity, components []any)
}

// BaseSystem supplies Requires and no-op membership notifications.
type BaseSystem struct {
	kinds []Kind
}

func NewBaseSystem(kinds ...Kind) BaseSystem {
	return BaseSystem{kinds: kinds}
}

func (b BaseSystem) Requires() []Kind {
	return b.kinds
}

func (BaseSystem) AddEntity(Entity, []any) {}

func (BaseSystem) RemoveEntity(Entity) {}

func (BaseSystem) UpdateEntity(Tick, Entity, []any) {}

// membership is the engine side record of which entities a system holds.
type membership struct {
	system  System
	kinds   []Kind
	members []Entity
	bound   [][]any
	matched []bool
	scratch []Entity
}

func newMembership(s System, capacity int) *membership {
	return &membership{
		system:  s,
		kinds:   append([]Kind(nil), s.Requires()...),
		bound:   make([][]any, capacity),
		matched: make([]bool, capacity),
	}
}

func (m *membership) grow(n int) {
	m.bound = append(m.bound, make([][]any, n)...)
	m.matched = append(m.matched, make([]bool, n)...)
}

func (m *membership) has(e Entity) bool {
	return m.matched[e]
}

func (m *membership) add(e Entity, bound []any) {
	m.matched[e] = true
	m.bound[e] = bound
	m.members = append(m.members, e)
}

func (m *membership) remove(e Entity) {
	m.matched[e] = false
	m.bound[e] = nil
	for i, member := range m.members {
		if member == e {
			m.members = append(m.members[:i], m.members[i+1:]...)
			return
		}
	}
}

func (m *membership) update(tick Tick) {
	if pre, ok := m.system.(PreUpdater); ok && !pre.PreUpdate(tick) {
		return
	}
	m.scratch = append(m.scratch[:0], m.members...)
	for _, e := range m.scratch {
		if !m.matched[e] {
			continue
		}
		m.system.UpdateEntity(tick, e, m.bound[e])
	}
	if post, ok := m.system.(PostUpdater); ok {
		post.PostUpdate(tick)
	}
}

func sameBinding(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
