package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
	"github.com/milk9111/glaze2d/prefabs"
)

type buildContext struct {
	PrefabPath string
	Position   *cp.Vector
	Velocity   *cp.Vector

	components []any
}

func (ctx *buildContext) add(c any) {
	ctx.components = append(ctx.components, c)
}

type componentBuildFn func(raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"position":          addPosition,
	"extents":           addExtents,
	"collision":         addCollision,
	"body":              addBody,
	"fixed":             addFixed,
	"moveable":          addMoveable,
	"age":               addAge,
	"health":            addHealth,
	"destroy":           addDestroy,
	"collision_count":   addCollisionCount,
	"environment_force": addEnvironmentForce,
	"contact_script":    addContactScript,
	"spawner":           addSpawner,
	"debug_color":       addDebugColor,
	"active":            addActive,
}

var componentBuildOrder = []string{
	"position",
	"extents",
	"collision",
	"body",
	"fixed",
	"moveable",
	"age",
	"health",
	"destroy",
	"collision_count",
	"environment_force",
	"contact_script",
	"spawner",
	"debug_color",
	"active",
}

// BuildEntity builds the prefab at its own position with its own velocity.
func BuildEntity(eng *ecs.Engine, prefabPath string) (ecs.Entity, error) {
	return build(eng, &buildContext{PrefabPath: prefabPath})
}

// BuildEntityAt builds the prefab at pos moving with vel.
func BuildEntityAt(eng *ecs.Engine, prefabPath string, pos, vel cp.Vector) (ecs.Entity, error) {
	return build(eng, &buildContext{PrefabPath: prefabPath, Position: &pos, Velocity: &vel})
}

// Spawner adapts BuildEntityAt to the spawner system.
func Spawner(eng *ecs.Engine) func(name string, pos, vel cp.Vector) (ecs.Entity, error) {
	return func(name string, pos, vel cp.Vector) (ecs.Entity, error) {
		return BuildEntityAt(eng, name, pos, vel)
	}
}

func build(eng *ecs.Engine, ctx *buildContext) (ecs.Entity, error) {
	if eng == nil {
		return 0, fmt.Errorf("build entity: engine is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(ctx.PrefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", ctx.PrefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", ctx.PrefabPath)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["position"]; !ok {
		remaining["position"] = nil
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	if len(remaining) > 0 {
		unknown := make([]string, 0, len(remaining))
		for name := range remaining {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", ctx.PrefabPath, strings.Join(unknown, ", "))
	}

	for _, name := range names {
		if err := componentRegistry[name](spec.Components[name], ctx); err != nil {
			return 0, fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
	}

	prefabName := spec.Name
	if prefabName == "" {
		prefabName = strings.TrimSuffix(ctx.PrefabPath, ".yaml")
	}
	ctx.add(&component.Prefab{Name: prefabName})

	eng.Reserve(1)
	e := eng.CreateEntity()
	eng.AddComponents(e, ctx.components...)
	return e, nil
}

type positionSpec = prefabs.PositionComponentSpec

func addPosition(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[positionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode position spec: %w", err)
	}
	if spec.Direction == 0 {
		spec.Direction = 1
	}
	pos := &component.Position{X: spec.X, Y: spec.Y, Direction: spec.Direction}
	if ctx.Position != nil {
		pos.Set(*ctx.Position)
	}
	ctx.add(pos)
	return nil
}

type extentsSpec = prefabs.ExtentsComponentSpec

func addExtents(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[extentsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode extents spec: %w", err)
	}
	if spec.HalfWidth <= 0 || spec.HalfHeight <= 0 {
		return fmt.Errorf("extents must be positive, got %vx%v", spec.HalfWidth, spec.HalfHeight)
	}
	ctx.add(&component.Extents{HalfWidth: spec.HalfWidth, HalfHeight: spec.HalfHeight})
	return nil
}

type collisionSpec = prefabs.CollisionComponentSpec

func addCollision(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision spec: %w", err)
	}
	pc := &component.PhysicsCollision{
		Sensor:             spec.Sensor,
		ResponseBias:       cp.Vector{X: spec.ResponseBiasX, Y: spec.ResponseBiasY},
		Offset:             cp.Vector{X: spec.OffsetX, Y: spec.OffsetY},
		LimitToStaticCheck: spec.LimitToStaticCheck,
	}
	if spec.Filter != nil {
		pc.Filter = &collision.Filter{
			Category: spec.Filter.Category,
			Mask:     spec.Filter.Mask,
			Group:    spec.Filter.Group,
		}
	}
	ctx.add(pc)
	return nil
}

type bodySpec = prefabs.BodyComponentSpec

func addBody(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[bodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}
	material, ok := physics.MaterialByName(spec.Material)
	if !ok {
		return fmt.Errorf("unknown material %q", spec.Material)
	}
	policy, err := parseBulletPolicy(spec.BulletPolicy)
	if err != nil {
		return err
	}

	body := physics.NewBody(material)
	if spec.Mass > 0 {
		body.SetMass(spec.Mass)
	}
	if spec.Damping > 0 {
		body.Damping = spec.Damping
	}
	if spec.GlobalForceFactor != nil {
		body.GlobalForceFactor = *spec.GlobalForceFactor
	}
	if spec.MaxVelocity > 0 {
		body.MaxScalarVelocity = spec.MaxVelocity
	}
	if spec.Bounces != nil {
		body.SetBounces(*spec.Bounces)
	}
	body.IsBullet = spec.Bullet
	body.BulletPolicy = policy
	body.Velocity = cp.Vector{X: spec.VelocityX, Y: spec.VelocityY}
	if ctx.Velocity != nil {
		body.Velocity = *ctx.Velocity
	}

	ctx.add(&component.PhysicsBody{Body: body, MassFromVolume: spec.MassFromVolume})
	return nil
}

func parseBulletPolicy(s string) (physics.BulletPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stop":
		return physics.BulletStop, nil
	case "ricochet":
		return physics.BulletRicochet, nil
	case "destroy":
		return physics.BulletDestroy, nil
	}
	return physics.BulletStop, fmt.Errorf("unknown bullet policy %q", s)
}

func addFixed(_ any, ctx *buildContext) error {
	ctx.add(&component.Fixed{})
	return nil
}

func addMoveable(_ any, ctx *buildContext) error {
	ctx.add(&component.Moveable{})
	return nil
}

func addActive(_ any, ctx *buildContext) error {
	ctx.add(&component.Active{})
	return nil
}

type ageSpec = prefabs.AgeComponentSpec

func addAge(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[ageSpec](raw)
	if err != nil {
		return fmt.Errorf("decode age spec: %w", err)
	}
	ctx.add(&component.Age{TTL: spec.TTL})
	return nil
}

type healthSpec = prefabs.HealthComponentSpec

func addHealth(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[healthSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		spec.Max = 1
	}
	if spec.Current <= 0 {
		spec.Current = spec.Max
	}
	ctx.add(&component.Health{Max: spec.Max, Current: spec.Current, Recovery: spec.Recovery})
	return nil
}

type destroySpec = prefabs.DestroyComponentSpec

func addDestroy(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[destroySpec](raw)
	if err != nil {
		return fmt.Errorf("decode destroy spec: %w", err)
	}
	ctx.add(&component.Destroy{Delay: spec.Delay})
	return nil
}

type collisionCountSpec = prefabs.CollisionCountComponentSpec

func addCollisionCount(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[collisionCountSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collision count spec: %w", err)
	}
	ctx.add(&component.CollisionCount{Limit: spec.Limit})
	return nil
}

type environmentForceSpec = prefabs.EnvironmentForceComponentSpec

func addEnvironmentForce(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[environmentForceSpec](raw)
	if err != nil {
		return fmt.Errorf("decode environment force spec: %w", err)
	}
	ctx.add(&component.EnvironmentForce{
		Force:    cp.Vector{X: spec.ForceX, Y: spec.ForceY},
		Massless: spec.Massless,
		Damping:  spec.Damping,
	})
	return nil
}

type contactScriptSpec = prefabs.ContactScriptComponentSpec

func addContactScript(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[contactScriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode contact script spec: %w", err)
	}
	if strings.TrimSpace(spec.Script) == "" {
		return fmt.Errorf("contact script requires a script")
	}
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return fmt.Errorf("load script %q: %w", spec.Script, err)
	}
	ctx.add(&component.ContactScript{
		Name:     spec.Script,
		Source:   src,
		Throttle: spec.Throttle,
		Params:   spec.Params,
	})
	return nil
}

type spawnerSpec = prefabs.SpawnerComponentSpec

func addSpawner(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spawnerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode spawner spec: %w", err)
	}
	if spec.Prefab == "" {
		return fmt.Errorf("spawner requires a prefab")
	}
	if spec.Interval <= 0 {
		return fmt.Errorf("spawner interval must be positive, got %v", spec.Interval)
	}
	ctx.add(&component.Spawner{
		Prefab:   spec.Prefab,
		Interval: spec.Interval,
		Velocity: cp.Vector{X: spec.VelocityX, Y: spec.VelocityY},
		Offset:   cp.Vector{X: spec.OffsetX, Y: spec.OffsetY},
		Limit:    spec.Limit,
	})
	return nil
}

type debugColorSpec = prefabs.DebugColorComponentSpec

func addDebugColor(raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[debugColorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode debug color spec: %w", err)
	}
	if spec.Color.Color == nil {
		return nil
	}
	ctx.add(&component.DebugColor{Color: spec.Color.Color})
	return nil
}

// SetEntityPosition moves an entity and any body it carries.
func SetEntityPosition(eng *ecs.Engine, e ecs.Entity, pos cp.Vector) {
	p, ok := ecs.Get(eng, e, component.PositionComponent)
	if !ok {
		eng.AddComponents(e, &component.Position{X: pos.X, Y: pos.Y, Direction: 1})
		return
	}
	p.Set(pos)
	if pb, ok := ecs.Get(eng, e, component.PhysicsBodyComponent); ok && pb.Body != nil {
		pb.Body.SetStaticPosition(pos)
	}
}
