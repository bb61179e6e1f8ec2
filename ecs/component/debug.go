package component

import "image/color"

// DebugColor is the fill used by the debug renderer.
type DebugColor struct {
	Color color.Color
}

var DebugColorComponent = NewComponent[DebugColor]()

// Prefab records which prefab built an entity so it can be rebuilt when the
// prefab changes on disk.
type Prefab struct {
	Name string
}

var PrefabComponent = NewComponent[Prefab]()
