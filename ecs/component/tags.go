package component

// Active marks entities that take part in simulation.
type Active struct{}

var ActiveComponent = NewComponent[Active]()

// Fixed marks static level geometry.
type Fixed struct{}

var FixedComponent = NewComponent[Fixed]()

// Moveable marks entities driven by a physics body.
type Moveable struct{}

var MoveableComponent = NewComponent[Moveable]()
