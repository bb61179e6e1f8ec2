package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AABB is a center/half-extents box.
type AABB struct {
	Position cp.Vector
	Extents  cp.Vector
}

func NewAABB(x, y, hw, hh float64) AABB {
	return AABB{Position: cp.Vector{X: x, Y: y}, Extents: cp.Vector{X: hw, Y: hh}}
}

func (a AABB) Min() cp.Vector {
	return a.Position.Sub(a.Extents)
}

func (a AABB) Max() cp.Vector {
	return a.Position.Add(a.Extents)
}

// BB converts to Chipmunk bounds (L/B/R/T with B < T).
func (a AABB) BB() cp.BB {
	return cp.BB{
		L: a.Position.X - a.Extents.X,
		B: a.Position.Y - a.Extents.Y,
		R: a.Position.X + a.Extents.X,
		T: a.Position.Y + a.Extents.Y,
	}
}

// Overlaps reports strict overlap on both axes.
func (a AABB) Overlaps(b AABB) bool {
	return math.Abs(b.Position.X-a.Position.X) < a.Extents.X+b.Extents.X &&
		math.Abs(b.Position.Y-a.Position.Y) < a.Extents.Y+b.Extents.Y
}

func (a AABB) Expand(amount float64) AABB {
	return AABB{Position: a.Position, Extents: cp.Vector{X: a.Extents.X + amount, Y: a.Extents.Y + amount}}
}

// SweptBB covers the box at its position and after moving by delta.
func SweptBB(a AABB, delta cp.Vector) cp.BB {
	bb := a.BB()
	end := AABB{Position: a.Position.Add(delta), Extents: a.Extents}.BB()
	return cp.BB{
		L: math.Min(bb.L, end.L),
		B: math.Min(bb.B, end.B),
		R: math.Max(bb.R, end.R),
		T: math.Max(bb.T, end.T),
	}
}

// BBIntersects reports whether two bounds touch or overlap.
func BBIntersects(a, b cp.BB) bool {
	return a.L <= b.R && b.L <= a.R && a.B <= b.T && b.B <= a.T
}
