package ecs

import "strconv"

// Entity indexes every component store. Ids are only reused after
// DestroyEntity releases them.
type Entity uint32

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) index() int {
	return int(e)
}

// entityPool hands out the lowest never-used id first and recycles released
// ids most recent first.
type entityPool struct {
	free  []Entity
	alive []bool
	count int
}

func newEntityPool(capacity int) entityPool {
	p := entityPool{}
	p.grow(capacity)
	return p
}

func (p *entityPool) capacity() int {
	return len(p.alive)
}

func (p *entityPool) grow(n int) {
	if n <= 0 {
		return
	}
	start := len(p.alive)
	p.alive = append(p.alive, make([]bool, n)...)
	fresh := make([]Entity, 0, n+len(p.free))
	for id := start + n - 1; id >= start; id-- {
		fresh = append(fresh, Entity(id))
	}
	// Fresh ids sit under the recycled ones so released ids are handed out
	// before new capacity.
	p.free = append(fresh, p.free...)
}

func (p *entityPool) acquire() (Entity, bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	e := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.alive[e] = true
	p.count++
	return e, true
}

func (p *entityPool) release(e Entity) bool {
	if !p.isAlive(e) {
		return false
	}
	p.alive[e] = false
	p.free = append(p.free, e)
	p.count--
	return true
}

func (p *entityPool) isAlive(e Entity) bool {
	return e.index() < len(p.alive) && p.alive[e]
}
