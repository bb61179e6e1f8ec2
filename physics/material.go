package physics

type Material struct {
	Density    float64
	Elasticity float64
	Friction   float64
}

var (
	MaterialNormal     = Material{Density: 1, Elasticity: 0.3, Friction: 0.1}
	MaterialLightMetal = Material{Density: 0.5, Elasticity: 0.3, Friction: 0.1}
	MaterialRock       = Material{Density: 2, Elasticity: 0.2, Friction: 0.5}
	MaterialRubber     = Material{Density: 1, Elasticity: 0.9, Friction: 0.8}
)

// MaterialByName resolves prefab material names. Unknown names fall back to
// MaterialNormal.
func MaterialByName(name string) (Material, bool) {
	switch name {
	case "", "normal":
		return MaterialNormal, true
	case "light_metal":
		return MaterialLightMetal, true
	case "rock":
		return MaterialRock, true
	case "rubber":
		return MaterialRubber, true
	}
	return MaterialNormal, false
}
