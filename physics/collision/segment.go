package collision

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/common"
)

// Segment caches the reciprocal and sign of a line segment's direction so it
// can be tested against many boxes.
type Segment struct {
	Start cp.Vector
	End   cp.Vector
	Delta cp.Vector
	Scale cp.Vector
	Sign  cp.Vector
}

func NewSegment(start, end cp.Vector) *Segment {
	s := &Segment{}
	s.Set(start, end)
	return s
}

func (s *Segment) Set(start, end cp.Vector) {
	s.Start = start
	s.End = end
	s.Delta = end.Sub(start)
	s.Scale = cp.Vector{X: 1 / s.Delta.X, Y: 1 / s.Delta.Y}
	s.Sign = cp.Vector{X: common.Sign(s.Scale.X), Y: common.Sign(s.Scale.Y)}
}
