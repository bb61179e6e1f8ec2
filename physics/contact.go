package physics

import "github.com/jakecoffman/cp"

// Contact is the result record written by the narrow phase. Its contents are
// only valid until the next test writes into the same record.
type Contact struct {
	// Distance is the penetration (overlap tests), the signed push distance
	// (solid response) or unused (sweeps).
	Distance float64
	Delta    cp.Vector
	Position cp.Vector
	Normal   cp.Vector
	// Time is the sweep fraction in [0, 1].
	Time          float64
	SweepPosition cp.Vector
}

// Reset zeroes every field.
func (c *Contact) Reset() {
	*c = Contact{}
}
