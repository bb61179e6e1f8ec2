package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
)

const (
	// EventContactBegin is pushed the first tick two proxies collide.
	EventContactBegin = "contact_begin"
	// EventDestroyed is pushed when DestroySystem removes an entity.
	EventDestroyed = "destroyed"
	// EventSpawned is pushed for every entity a Spawner builds.
	EventSpawned = "spawned"
)

// ContactEvent is the payload of EventContactBegin.
type ContactEvent struct {
	Other    ecs.Entity
	Normal   cp.Vector
	Position cp.Vector
}
