package component

import "github.com/jakecoffman/cp"

// ContactScript runs a script whenever the entity's proxy reports a contact.
// Throttle is the minimum time between runs in milliseconds.
type ContactScript struct {
	Name     string
	Source   []byte
	Throttle float64
	Params   map[string]any
}

var ContactScriptComponent = NewComponent[ContactScript]()

// Spawner periodically builds a prefab at the entity's position.
type Spawner struct {
	Prefab   string
	Interval float64
	Velocity cp.Vector
	Offset   cp.Vector
	// Limit caps the number of spawns; zero means unlimited.
	Limit   int
	Spawned int
	elapsed float64
}

// Advance adds dt milliseconds and reports whether a spawn is due.
func (s *Spawner) Advance(dt float64) bool {
	if s.Limit > 0 && s.Spawned >= s.Limit {
		return false
	}
	s.elapsed += dt
	if s.elapsed < s.Interval {
		return false
	}
	s.elapsed -= s.Interval
	return true
}

var SpawnerComponent = NewComponent[Spawner]()
