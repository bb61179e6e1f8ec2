package component

import "github.com/milk9111/glaze2d/ecs"

// NewComponent registers T with the engine kind registry.
func NewComponent[T any]() ecs.Handle[T] {
	return ecs.NewComponent[T]()
}
