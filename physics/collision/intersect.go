package collision

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/common"
	"github.com/milk9111/glaze2d/physics"
)

// Epsilon pulls a sweep hit back from the obstacle boundary.
const Epsilon = 1e-8

// StaticAABBvsStaticAABB tests two boxes for overlap. The normal points from A
// towards B along the axis of least penetration; ties resolve on Y.
func StaticAABBvsStaticAABB(posA, extA, posB, extB cp.Vector, c *physics.Contact) bool {
	c.Reset()

	dx := posB.X - posA.X
	px := extB.X + extA.X - math.Abs(dx)
	if px <= 0 {
		return false
	}
	dy := posB.Y - posA.Y
	py := extB.Y + extA.Y - math.Abs(dy)
	if py <= 0 {
		return false
	}

	if px < py {
		sx := common.Sign(dx)
		c.Distance = px * sx
		c.Delta = cp.Vector{X: px * sx}
		c.Normal = cp.Vector{X: sx}
		c.Position = cp.Vector{X: posA.X + extA.X*sx, Y: posB.Y}
	} else {
		sy := common.Sign(dy)
		c.Distance = py * sy
		c.Delta = cp.Vector{Y: py * sy}
		c.Normal = cp.Vector{Y: sy}
		c.Position = cp.Vector{X: posB.X, Y: posA.Y + extA.Y*sy}
	}
	return true
}

// slab returns the per-axis entry and exit times of a segment through a
// padded box. An axis with zero delta has an infinite scale, which yields
// infinite times and leaves the other axis in charge.
func slab(pos, ext, start, scale, sign cp.Vector, padX, padY float64) (nearX, nearY, farX, farY float64) {
	nearX = (pos.X - sign.X*(ext.X+padX) - start.X) * scale.X
	nearY = (pos.Y - sign.Y*(ext.Y+padY) - start.Y) * scale.Y
	farX = (pos.X + sign.X*(ext.X+padX) - start.X) * scale.X
	farY = (pos.Y + sign.Y*(ext.Y+padY) - start.Y) * scale.Y
	return
}

// IsStaticSegmentvsStaticAABB is the predicate form of the slab test for a
// segment whose reciprocal and sign are already known.
func IsStaticSegmentvsStaticAABB(pos, ext, start, scale, sign cp.Vector, padX, padY float64) bool {
	nearX, nearY, farX, farY := slab(pos, ext, start, scale, sign, padX, padY)
	if nearX > farY || nearY > farX {
		return false
	}
	near := math.Max(nearX, nearY)
	far := math.Min(farX, farY)
	return !(near >= 1 || far <= 0)
}

// IsSegmentVsAABB tests a prepared segment against a box.
func IsSegmentVsAABB(s *Segment, pos, ext cp.Vector, padX, padY float64) bool {
	return IsStaticSegmentvsStaticAABB(pos, ext, s.Start, s.Scale, s.Sign, padX, padY)
}

// StaticSegmentvsStaticAABB casts segPos+segDelta against a box grown by the
// padding. On a hit, Time is the entry time in [0, 1], Delta the travelled
// displacement and Position the entry point.
func StaticSegmentvsStaticAABB(pos, ext, segPos, segDelta cp.Vector, padX, padY float64, c *physics.Contact) bool {
	c.Reset()

	scale := cp.Vector{X: 1 / segDelta.X, Y: 1 / segDelta.Y}
	sign := cp.Vector{X: common.Sign(scale.X), Y: common.Sign(scale.Y)}

	nearX, nearY, farX, farY := slab(pos, ext, segPos, scale, sign, padX, padY)
	if nearX > farY || nearY > farX {
		return false
	}
	near := math.Max(nearX, nearY)
	far := math.Min(farX, farY)
	if near >= 1 || far <= 0 {
		return false
	}

	c.Time = common.Clamp(near, 0, 1)
	if nearX > nearY {
		c.Normal = cp.Vector{X: -sign.X}
	} else {
		c.Normal = cp.Vector{Y: -sign.Y}
	}
	c.Delta = segDelta.Mult(c.Time)
	c.Position = segPos.Add(c.Delta)
	return true
}

// StaticAABBvsSweptAABB sweeps box B along deltaB against the still box A.
// SweepPosition is where B stops: just short of A on a hit, the full
// displacement on a miss.
func StaticAABBvsSweptAABB(posA, extA, posB, extB, deltaB cp.Vector, c *physics.Contact) bool {
	if deltaB.X == 0 && deltaB.Y == 0 {
		hit := StaticAABBvsStaticAABB(posA, extA, posB, extB, c)
		c.SweepPosition = posB
		if hit {
			c.Time = 0
			return true
		}
		c.Time = 1
		return false
	}

	if !StaticSegmentvsStaticAABB(posA, extA, posB, deltaB, extB.X, extB.Y, c) {
		c.Time = 1
		c.SweepPosition = posB.Add(deltaB)
		return false
	}

	c.Time = common.Clamp(c.Time-Epsilon, 0, 1)
	c.SweepPosition = posB.Add(deltaB.Mult(c.Time))
	t := deltaB.Length()
	c.Position.X += deltaB.X / t * extB.X
	c.Position.Y += deltaB.Y / t * extB.Y
	return true
}

// AABBvsStaticSolidAABB resolves dynamic box A against solid box B. The
// normal points out of B and is scaled per axis by bias. Distance is the
// signed gap along it; negative means penetration. It always reports a
// contact and leaves acceptance to the body.
func AABBvsStaticSolidAABB(posA, extA, posB, extB, bias cp.Vector, c *physics.Contact) bool {
	c.Reset()

	dx := posB.X - posA.X
	px := extB.X + extA.X - math.Abs(dx)
	dy := posB.Y - posA.Y
	py := extB.Y + extA.Y - math.Abs(dy)

	if px < py {
		c.Normal = cp.Vector{X: -common.Sign(dx)}
	} else {
		c.Normal = cp.Vector{Y: -common.Sign(dy)}
	}
	c.Normal = cp.Vector{X: c.Normal.X * bias.X, Y: c.Normal.Y * bias.Y}

	solidDistance(posA, extA, posB, extB, c)
	return true
}

// AABBvsStaticSolidAABBFixedNormal is AABBvsStaticSolidAABB with a caller
// chosen normal, used for one-way surfaces.
func AABBvsStaticSolidAABBFixedNormal(posA, extA, posB, extB, normal cp.Vector, c *physics.Contact) bool {
	c.Reset()
	c.Normal = normal
	solidDistance(posA, extA, posB, extB, c)
	return true
}

func solidDistance(posA, extA, posB, extB cp.Vector, c *physics.Contact) {
	plane := cp.Vector{
		X: c.Normal.X*(extA.X+extB.X) + posB.X,
		Y: c.Normal.Y*(extA.Y+extB.Y) + posB.Y,
	}
	c.Distance = posA.Sub(plane).Dot(c.Normal)
}
