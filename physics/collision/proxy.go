package collision

import (
	"sync/atomic"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/physics"
)

// ContactCallback is invoked on every accepted collision with the proxy that
// owns the callback first. The contact is only valid during the call.
type ContactCallback func(self, other *Proxy, contact *physics.Contact)

var nextProxyID atomic.Uint64

// Proxy is a collision participant tracked by a broadphase. A dynamic proxy
// always carries a Body and takes its position from it; a static proxy never
// has one.
type Proxy struct {
	ID     uint64
	Entity ecs.Entity

	// AABB.Position is only authoritative for static proxies.
	AABB   physics.AABB
	Offset cp.Vector
	// ResponseBias scales the solid response normal per axis when this proxy
	// is the static side. (1, 1) is a plain solid, (0, 1) suppresses
	// horizontal push-out.
	ResponseBias cp.Vector

	Body *physics.Body

	Static bool
	Sensor bool
	Active bool
	// LimitToStaticCheck skips dynamic-vs-dynamic pairs for this proxy.
	LimitToStaticCheck bool

	Filter *Filter

	callbacks []ContactCallback
}

func newProxy(entity ecs.Entity, extents cp.Vector, filter *Filter) *Proxy {
	return &Proxy{
		ID:           nextProxyID.Add(1),
		Entity:       entity,
		AABB:         physics.AABB{Extents: extents},
		ResponseBias: cp.Vector{X: 1, Y: 1},
		Active:       true,
		Filter:       filter,
	}
}

// NewStaticProxy creates a proxy fixed at position.
func NewStaticProxy(entity ecs.Entity, position, extents cp.Vector, filter *Filter) *Proxy {
	p := newProxy(entity, extents, filter)
	p.AABB.Position = position
	p.Static = true
	return p
}

// NewDynamicProxy creates a proxy that follows body.
func NewDynamicProxy(entity ecs.Entity, body *physics.Body, extents cp.Vector, filter *Filter) *Proxy {
	p := newProxy(entity, extents, filter)
	p.SetBody(body)
	return p
}

// SetBody attaches a body; proxies with bodies are always dynamic.
func (p *Proxy) SetBody(body *physics.Body) {
	if body == nil {
		panic("collision: dynamic proxy requires a body")
	}
	p.Body = body
	p.Static = false
	p.AABB.Position = body.Position.Add(p.Offset)
}

// SetStatic detaches any body and pins the proxy at position.
func (p *Proxy) SetStatic(position cp.Vector) {
	p.Body = nil
	p.Static = true
	p.AABB.Position = position
}

// Position is the current center of the proxy.
func (p *Proxy) Position() cp.Vector {
	if p.Body != nil {
		return p.Body.Position.Add(p.Offset)
	}
	return p.AABB.Position
}

// Bounds returns the proxy box at its current position.
func (p *Proxy) Bounds() physics.AABB {
	return physics.AABB{Position: p.Position(), Extents: p.AABB.Extents}
}

// SweptBB covers the proxy over its body's planned displacement.
func (p *Proxy) SweptBB() cp.BB {
	if p.Body == nil {
		return p.Bounds().BB()
	}
	return physics.SweptBB(p.Bounds(), p.Body.Delta)
}

// IsBullet reports whether the proxy needs swept collision.
func (p *Proxy) IsBullet() bool {
	return p.Body != nil && p.Body.IsBullet
}

func (p *Proxy) AddCallback(cb ContactCallback) {
	if cb == nil {
		return
	}
	p.callbacks = append(p.callbacks, cb)
}

func (p *Proxy) ClearCallbacks() {
	p.callbacks = nil
}

// SetCallbacks replaces every callback. A Collide already running keeps the
// list it started with.
func (p *Proxy) SetCallbacks(cbs []ContactCallback) {
	p.callbacks = p.callbacks[:0:0]
	for _, cb := range cbs {
		p.AddCallback(cb)
	}
}

func (p *Proxy) CallbackCount() int {
	return len(p.callbacks)
}

// Collide notifies this proxy's callbacks of a contact with other.
func (p *Proxy) Collide(other *Proxy, contact *physics.Contact) {
	for _, cb := range p.callbacks {
		cb(p, other, contact)
	}
}

// PairHash is an order-independent key for a proxy pair.
func PairHash(a, b uint64) uint64 {
	if a < b {
		return a<<32 | b
	}
	return b<<32 | a
}
