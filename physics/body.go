package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// BulletPolicy selects what a bullet body does when its sweep hits something.
type BulletPolicy int

const (
	BulletStop BulletPolicy = iota
	BulletRicochet
	BulletDestroy
)

// UnlimitedBounces disables the bounce budget.
const UnlimitedBounces = -1

const (
	defaultMaxScalarVelocity = 1000.0
	defaultDamping           = 1.0
)

// Body is the motion state of a dynamic collider. Forces are integrated by
// Update, collision responses accumulate into a per-step correction, and
// UpdatePosition applies both.
type Body struct {
	Position         cp.Vector
	PreviousPosition cp.Vector
	// Delta is the displacement planned for this step (velocity * dt).
	Delta            cp.Vector
	Velocity         cp.Vector
	OriginalVelocity cp.Vector
	LastNormal       cp.Vector

	Material Material
	Mass     float64
	InvMass  float64
	Damping  float64

	// GlobalForceFactor scales global forces such as gravity.
	GlobalForceFactor float64
	MaxScalarVelocity float64

	IsBullet     bool
	BulletPolicy BulletPolicy
	// Bounces is the remaining bounce budget, UnlimitedBounces for none.
	Bounces int
	// Spent is set once a BulletDestroy body has hit something.
	Spent bool

	OnGround     bool
	OnGroundPrev bool
	// ContactCount is the number of accepted contacts this step.
	ContactCount int
	Skip         bool

	forces             cp.Vector
	masslessForces     cp.Vector
	collisionForce     cp.Vector
	positionCorrection cp.Vector
	dt                 float64
}

func NewBody(material Material) *Body {
	b := &Body{
		Material:          material,
		Damping:           defaultDamping,
		GlobalForceFactor: 1,
		MaxScalarVelocity: defaultMaxScalarVelocity,
	}
	b.SetMass(1)
	return b
}

// SetMass sets mass and inverse mass. Zero or negative mass makes the body
// ignore mass-scaled forces.
func (b *Body) SetMass(mass float64) {
	b.Mass = mass
	if mass > 0 {
		b.InvMass = 1 / mass
	} else {
		b.InvMass = 0
	}
}

// SetMassFromVolume derives mass from the material density and the box area.
func (b *Body) SetMassFromVolume(extents cp.Vector) {
	b.SetMass(b.Material.Density * extents.X * extents.Y * 4 / 100)
}

func (b *Body) SetBounces(n int) {
	b.Bounces = n
}

// SetStaticPosition teleports the body and clears its motion.
func (b *Body) SetStaticPosition(p cp.Vector) {
	b.Position = p
	b.PreviousPosition = p
	b.Delta = cp.Vector{}
	b.Velocity = cp.Vector{}
}

func (b *Body) Stop() {
	b.Velocity = cp.Vector{}
	b.Delta = cp.Vector{}
}

// AddForce accumulates a mass-scaled force for the next Update.
func (b *Body) AddForce(f cp.Vector) {
	b.forces = b.forces.Add(f)
}

// AddMasslessForce accumulates an acceleration that ignores mass.
func (b *Body) AddMasslessForce(f cp.Vector) {
	b.masslessForces = b.masslessForces.Add(f)
}

// Update integrates accumulated forces and computes this step's Delta.
func (b *Body) Update(dt float64, globalForce cp.Vector, globalDamping float64) {
	b.dt = dt
	b.OnGroundPrev = b.OnGround
	b.OnGround = false
	b.ContactCount = 0
	b.PreviousPosition = b.Position
	b.collisionForce = cp.Vector{}
	b.positionCorrection = cp.Vector{}

	if b.Skip {
		b.Delta = cp.Vector{}
		b.forces = cp.Vector{}
		b.masslessForces = cp.Vector{}
		return
	}

	accel := b.forces.Mult(b.InvMass).
		Add(b.masslessForces).
		Add(globalForce.Mult(b.GlobalForceFactor))
	b.Velocity = b.Velocity.Add(accel.Mult(dt)).Mult(b.Damping * globalDamping)

	if b.MaxScalarVelocity > 0 {
		if l2 := b.Velocity.LengthSq(); l2 > b.MaxScalarVelocity*b.MaxScalarVelocity {
			b.Velocity = b.Velocity.Mult(b.MaxScalarVelocity / math.Sqrt(l2))
		}
	}

	b.OriginalVelocity = b.Velocity
	b.Delta = b.Velocity.Mult(dt)
	b.forces = cp.Vector{}
	b.masslessForces = cp.Vector{}
}

// UpdatePosition applies collision corrections and advances the position.
func (b *Body) UpdatePosition() {
	if b.Skip {
		return
	}
	b.Velocity = b.Velocity.Add(b.collisionForce)
	b.Position = b.Position.Add(b.Velocity.Add(b.positionCorrection).Mult(b.dt))
	b.collisionForce = cp.Vector{}
	b.positionCorrection = cp.Vector{}
}

// RespondStaticCollision consumes a solid contact from AABBvsStaticSolidAABB.
// It returns false when the body is separating along the contact normal, in
// which case nothing is modified.
func (b *Body) RespondStaticCollision(c *Contact) bool {
	if b.dt <= 0 {
		return false
	}
	separation := math.Max(c.Distance, 0)
	penetration := math.Min(c.Distance, 0)

	nv := b.Velocity.Dot(c.Normal) + separation/b.dt
	if nv >= 0 {
		return false
	}

	b.ContactCount++
	b.positionCorrection = b.positionCorrection.Sub(c.Normal.Mult(penetration / b.dt))

	if b.Bounces != 0 {
		b.collisionForce = b.collisionForce.Sub(c.Normal.Mult(nv * (1 + b.Material.Elasticity)))
		if b.Bounces > 0 {
			b.Bounces--
		}
	} else {
		b.collisionForce = b.collisionForce.Sub(c.Normal.Mult(nv))
	}

	tangent := cp.Vector{X: -c.Normal.Y, Y: c.Normal.X}
	tv := b.OriginalVelocity.Dot(tangent) * b.Material.Friction
	b.collisionForce = b.collisionForce.Sub(tangent.Mult(tv))

	if c.Normal.Y < 0 {
		b.OnGround = true
	}
	b.LastNormal = c.Normal
	return true
}

// RespondBulletCollision moves the body to the sweep position and applies the
// bullet policy. It always accepts.
func (b *Body) RespondBulletCollision(c *Contact) bool {
	b.ContactCount++
	b.Position = c.SweepPosition
	b.LastNormal = c.Normal

	switch b.BulletPolicy {
	case BulletRicochet:
		if b.Bounces == 0 {
			b.Stop()
			break
		}
		vn := b.Velocity.Dot(c.Normal)
		b.Velocity = b.Velocity.Sub(c.Normal.Mult(2 * vn)).Mult(b.Material.Elasticity)
		b.Delta = cp.Vector{}
		if b.Bounces > 0 {
			b.Bounces--
		}
	case BulletDestroy:
		b.Spent = true
		b.Stop()
	default:
		b.Stop()
	}
	return true
}

// RespondDynamicCollision separates two overlapping dynamic bodies. The
// contact comes from StaticAABBvsStaticAABB(A, B); A passes sign -1 and B
// passes sign 1 so each takes half the penetration.
func (b *Body) RespondDynamicCollision(c *Contact, sign float64) {
	if b.dt <= 0 {
		return
	}
	push := c.Normal.Mult(sign)
	if vn := b.Velocity.Dot(push); vn < 0 {
		b.collisionForce = b.collisionForce.Sub(push.Mult(vn))
	}
	b.positionCorrection = b.positionCorrection.Add(c.Delta.Mult(sign * 0.5 / b.dt))
	b.ContactCount++
	b.LastNormal = push
}

// Spring pulls two bodies together once they are further apart than length.
func Spring(a, b *Body, length, k float64) {
	d := a.Position.Sub(b.Position)
	dist := d.Length()
	if dist < length || dist == 0 {
		return
	}
	f := d.Mult((dist - length) / dist * k)
	a.AddForce(f.Neg())
	b.AddForce(f)
}
