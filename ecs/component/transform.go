package component

import "github.com/jakecoffman/cp"

// Position is the world-space center of an entity.
type Position struct {
	X float64
	Y float64
	// Direction is +1 facing right and -1 facing left.
	Direction float64
}

func (p *Position) Vec() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

func (p *Position) Set(v cp.Vector) {
	p.X = v.X
	p.Y = v.Y
}

var PositionComponent = NewComponent[Position]()

// Extents are the half sizes of an entity's box.
type Extents struct {
	HalfWidth  float64
	HalfHeight float64
}

func (e *Extents) Vec() cp.Vector {
	return cp.Vector{X: e.HalfWidth, Y: e.HalfHeight}
}

var ExtentsComponent = NewComponent[Extents]()
