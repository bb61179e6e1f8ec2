package component

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

// PhysicsCollision configures the collision proxy of an entity. Proxy is
// owned by the physics systems and is nil until the entity is registered.
type PhysicsCollision struct {
	Sensor bool
	Filter *collision.Filter
	// ResponseBias scales the push-out normal of a static collider per axis.
	// The zero value means (1, 1).
	ResponseBias       cp.Vector
	Offset             cp.Vector
	LimitToStaticCheck bool

	Proxy *collision.Proxy

	callbacks    []contactCallback
	nextCallback CallbackID
}

// CallbackID identifies a callback added with AddCallback.
type CallbackID uint64

type contactCallback struct {
	id CallbackID
	fn collision.ContactCallback
}

// Bias returns ResponseBias with the zero value resolved.
func (c *PhysicsCollision) Bias() cp.Vector {
	if c.ResponseBias == (cp.Vector{}) {
		return cp.Vector{X: 1, Y: 1}
	}
	return c.ResponseBias
}

// AddCallback registers cb now if the proxy exists, otherwise when it is
// created. The returned id removes it again.
func (c *PhysicsCollision) AddCallback(cb collision.ContactCallback) CallbackID {
	if cb == nil {
		return 0
	}
	c.nextCallback++
	c.callbacks = append(c.callbacks, contactCallback{id: c.nextCallback, fn: cb})
	if c.Proxy != nil {
		c.Proxy.AddCallback(cb)
	}
	return c.nextCallback
}

// RemoveCallback drops the callback added under id from the component and
// its proxy. Unknown ids are ignored.
func (c *PhysicsCollision) RemoveCallback(id CallbackID) {
	i := slices.IndexFunc(c.callbacks, func(cb contactCallback) bool { return cb.id == id })
	if i < 0 {
		return
	}
	c.callbacks = slices.Delete(c.callbacks, i, i+1)
	if c.Proxy != nil {
		c.Proxy.SetCallbacks(c.Callbacks())
	}
}

// Callbacks returns the registered callbacks in insertion order.
func (c *PhysicsCollision) Callbacks() []collision.ContactCallback {
	out := make([]collision.ContactCallback, len(c.callbacks))
	for i, cb := range c.callbacks {
		out[i] = cb.fn
	}
	return out
}

var PhysicsCollisionComponent = NewComponent[PhysicsCollision]()

// PhysicsBody wraps the motion state of a dynamic entity.
type PhysicsBody struct {
	Body *physics.Body
	// MassFromVolume derives the body mass from its material and extents
	// when the entity is registered.
	MassFromVolume bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// EnvironmentForce turns a sensor into a force volume, such as wind or
// water, that pushes every body overlapping it.
type EnvironmentForce struct {
	Force cp.Vector
	// Massless applies Force as an acceleration.
	Massless bool
	// Damping multiplies the velocity of bodies inside the volume each tick.
	// Zero leaves velocity untouched.
	Damping float64
}

var EnvironmentForceComponent = NewComponent[EnvironmentForce]()

// CollisionCount tallies accepted contacts. With a positive Limit the entity
// is destroyed once Total reaches it.
type CollisionCount struct {
	Count int
	Total int
	Limit int
}

var CollisionCountComponent = NewComponent[CollisionCount]()

// Spring ties the entity's body to Target's body.
type Spring struct {
	Target    ecs.Entity
	Length    float64
	Stiffness float64
}

var SpringComponent = NewComponent[Spring]()
