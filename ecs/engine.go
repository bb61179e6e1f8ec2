package ecs

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	ErrCapacityExhausted = errors.New("ecs: entity capacity exhausted")
	ErrEntityNotAlive    = errors.New("ecs: entity not alive")
)

const (
	DefaultCapacity  = 1024
	DefaultPhaseName = "core"
)

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCapacity sets the initial entity capacity.
func WithCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.capacity = n
		}
	}
}

// Engine owns entities, component storage, systems and phases.
type Engine struct {
	logger   *zap.Logger
	capacity int

	pool    entityPool
	stores  map[Kind]storage
	systems []*membership
	phases  []*Phase
	core    *Phase
	events  EventQueue
	frame   uint64
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		capacity: DefaultCapacity,
		stores:   make(map[Kind]storage),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pool = newEntityPool(e.capacity)
	e.core = e.NewPhase(DefaultPhaseName)
	return e
}

func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

func (e *Engine) Capacity() int {
	return e.pool.capacity()
}

// EntityCount is the number of live entities.
func (e *Engine) EntityCount() int {
	return e.pool.count
}

func (e *Engine) Frame() uint64 {
	return e.frame
}

// Events returns the engine event queue.
func (e *Engine) Events() *EventQueue {
	return &e.events
}

// CreateEntity reserves an id. It panics with ErrCapacityExhausted when the
// pool is empty; grow it with AddCapacity beforehand.
func (e *Engine) CreateEntity() Entity {
	ent, ok := e.pool.acquire()
	if !ok {
		panic(fmt.Errorf("%w: capacity %d", ErrCapacityExhausted, e.pool.capacity()))
	}
	return ent
}

// AddCapacity grows the pool, every store and every system by n slots.
func (e *Engine) AddCapacity(n int) {
	if n <= 0 {
		return
	}
	e.pool.grow(n)
	for _, st := range e.stores {
		st.grow(n)
	}
	for _, m := range e.systems {
		m.grow(n)
	}
	e.logger.Debug("engine capacity grown", zap.Int("added", n), zap.Int("capacity", e.pool.capacity()))
}

// Reserve grows the pool so at least n more entities can be created. Growth
// is at least the current capacity, so repeated single reservations double.
func (e *Engine) Reserve(n int) {
	free := e.pool.capacity() - e.pool.count
	if n <= free {
		return
	}
	e.AddCapacity(max(n-free, e.pool.capacity()))
}

func (e *Engine) IsAlive(ent Entity) bool {
	return e.pool.isAlive(ent)
}

// DestroyEntity clears every component of ent, notifies the systems that
// held it and releases the id. Destroying a free id does nothing.
func (e *Engine) DestroyEntity(ent Entity) {
	if !e.pool.isAlive(ent) {
		return
	}
	for _, st := range e.stores {
		st.clear(ent.index())
	}
	e.evaluate(ent)
	e.pool.release(ent)
}

// AddComponents stores each *T value whose kind has storage and drops the
// rest, then re-matches ent against every system.
func (e *Engine) AddComponents(ent Entity, components ...any) {
	e.mustBeAlive(ent)
	for _, c := range components {
		k, ok := kindOfValue(c)
		if !ok {
			e.logger.Debug("dropped component of unknown kind",
				zap.Uint32("entity", uint32(ent)),
				zap.String("type", fmt.Sprintf("%T", c)))
			continue
		}
		st, ok := e.stores[k]
		if !ok {
			e.logger.Debug("dropped component without storage",
				zap.Uint32("entity", uint32(ent)),
				zap.Stringer("kind", k))
			continue
		}
		st.set(ent.index(), c)
	}
	e.evaluate(ent)
}

// RemoveComponents empties the given kinds on ent and re-matches it.
func (e *Engine) RemoveComponents(ent Entity, kinds ...Kind) {
	e.mustBeAlive(ent)
	for _, k := range kinds {
		if st, ok := e.stores[k]; ok {
			st.clear(ent.index())
		}
	}
	e.evaluate(ent)
}

// GetComponent returns the *T stored for kind on ent.
func (e *Engine) GetComponent(ent Entity, k Kind) (any, bool) {
	st, ok := e.stores[k]
	if !ok {
		return nil, false
	}
	return st.get(ent.index())
}

// HasStorage reports whether some system has declared interest in k.
func (e *Engine) HasStorage(k Kind) bool {
	_, ok := e.stores[k]
	return ok
}

// AddSystem registers s in the core phase.
func (e *Engine) AddSystem(s System) {
	e.core.AddSystem(s)
}

// NewPhase appends a phase that runs after every existing one.
func (e *Engine) NewPhase(name string) *Phase {
	p := &Phase{name: name, engine: e, Enabled: true}
	e.phases = append(e.phases, p)
	return p
}

func (e *Engine) Phase(name string) (*Phase, bool) {
	for _, p := range e.phases {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (e *Engine) Phases() []*Phase {
	return e.phases
}

// Update runs every enabled phase once. dt is in seconds and timestamp in
// milliseconds.
func (e *Engine) Update(dt, timestamp float64) {
	e.events.flush()
	e.frame++
	tick := Tick{DT: dt, Timestamp: timestamp, Frame: e.frame}
	for _, p := range e.phases {
		p.update(tick)
	}
}

func (e *Engine) register(s System) *membership {
	m := newMembership(s, e.pool.capacity())
	for _, k := range m.kinds {
		if !k.Valid() {
			panic(fmt.Errorf("ecs: system %T requires an invalid kind", s))
		}
		if _, ok := e.stores[k]; ok {
			continue
		}
		e.stores[k] = k.info().newStore(e.pool.capacity())
	}
	e.systems = append(e.systems, m)
	e.logger.Debug("system registered", zap.String("system", fmt.Sprintf("%T", s)), zap.Int("requires", len(m.kinds)))

	for i, alive := range e.pool.alive {
		if alive {
			e.match(m, Entity(i))
		}
	}
	return m
}

func (e *Engine) evaluate(ent Entity) {
	for _, m := range e.systems {
		e.match(m, ent)
	}
}

func (e *Engine) match(m *membership, ent Entity) {
	bound, ok := e.bind(m.kinds, ent)
	switch {
	case ok && !m.has(ent):
		m.add(ent, bound)
		m.system.AddEntity(ent, bound)
	case !ok && m.has(ent):
		m.remove(ent)
		m.system.RemoveEntity(ent)
	case ok && !sameBinding(bound, m.bound[ent]):
		m.bound[ent] = bound
		if r, ok := m.system.(Rebinder); ok {
			r.RebindEntity(ent, bound)
		}
	}
}

func (e *Engine) bind(kinds []Kind, ent Entity) ([]any, bool) {
	bound := make([]any, len(kinds))
	for i, k := range kinds {
		v, ok := e.stores[k].get(ent.index())
		if !ok {
			return nil, false
		}
		bound[i] = v
	}
	return bound, true
}

func (e *Engine) mustBeAlive(ent Entity) {
	if !e.pool.isAlive(ent) {
		panic(fmt.Errorf("%w: %d", ErrEntityNotAlive, ent))
	}
}
