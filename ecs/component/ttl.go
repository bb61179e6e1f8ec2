package component

// Age counts how long an entity has existed. With a positive TTL (in
// milliseconds) the entity is destroyed once Age exceeds it.
type Age struct {
	TTL float64
	Age float64
}

var AgeComponent = NewComponent[Age]()

// Destroy schedules removal after Delay more ticks.
type Destroy struct {
	Delay int
}

var DestroyComponent = NewComponent[Destroy]()

// Health drains through Damage and refills at Recovery points per second.
// At zero the entity is destroyed.
type Health struct {
	Max      float64
	Current  float64
	Recovery float64
	// Damage accumulates hits until the next health update.
	Damage float64
}

func (h *Health) Hit(amount float64) {
	h.Damage += amount
}

var HealthComponent = NewComponent[Health]()
