package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/config"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/ecs/entity"
	"github.com/milk9111/glaze2d/ecs/system"
	"github.com/milk9111/glaze2d/levels"
	"github.com/milk9111/glaze2d/physics/broadphase"
	"github.com/milk9111/glaze2d/prefabs"
	"go.uber.org/zap"
)

// maxStepsPerAdvance bounds catch-up work after a long frame.
const maxStepsPerAdvance = 8

// Simulation owns an engine running the core pipeline over one level at a
// fixed step.
type Simulation struct {
	Engine *ecs.Engine
	Core   *system.Core
	Level  *entity.LevelInfo

	logger      *zap.Logger
	step        time.Duration
	accumulator time.Duration
	elapsed     time.Duration
}

// New builds the engine, physics world and level described by cfg. Each
// install runs after the core systems and before the level is built, so the
// systems it adds see the level's components.
func New(cfg *config.Config, logger *zap.Logger, installs ...func(*ecs.Engine)) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	prefabs.SetDir(cfg.Sandbox.PrefabDir)

	bp, err := broadphase.New(cfg.Physics.Broadphase)
	if err != nil {
		return nil, fmt.Errorf("sandbox: %w", err)
	}

	eng := ecs.NewEngine(ecs.WithCapacity(cfg.Engine.Capacity), ecs.WithLogger(logger))
	world := system.NewPhysicsWorld(bp, cp.Vector{X: cfg.Physics.GravityX, Y: cfg.Physics.GravityY}, cfg.Physics.Damping)
	core := system.InstallCore(eng, world, entity.Spawner(eng), logger)

	sim := &Simulation{
		Engine: eng,
		Core:   core,
		logger: logger,
		step:   cfg.Physics.FixedStep,
	}
	if sim.step <= 0 {
		sim.step = time.Second / 60
	}
	for _, install := range installs {
		install(eng)
	}

	if cfg.Sandbox.Level != "" {
		lvl, err := levels.LoadLevelFromFS(cfg.Sandbox.Level)
		if err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
		info, err := entity.LoadLevel(eng, lvl, logger)
		if err != nil {
			return nil, fmt.Errorf("sandbox: %w", err)
		}
		sim.Level = info
		logger.Info("level loaded",
			zap.String("level", info.Name),
			zap.Int("colliders", len(info.Colliders)),
			zap.Int("entities", len(info.Entities)),
		)
	}
	return sim, nil
}

// Step runs exactly one fixed update.
func (s *Simulation) Step() {
	s.elapsed += s.step
	s.Engine.Update(s.step.Seconds(), s.Timestamp())
}

// Advance adds real time and runs as many fixed updates as fit, returning
// how many ran. Time beyond maxStepsPerAdvance steps is dropped.
func (s *Simulation) Advance(dt time.Duration) int {
	s.accumulator += dt
	steps := 0
	for s.accumulator >= s.step && steps < maxStepsPerAdvance {
		s.accumulator -= s.step
		s.Step()
		steps++
	}
	if steps == maxStepsPerAdvance && s.accumulator >= s.step {
		s.logger.Debug("dropping simulation time", zap.Duration("behind", s.accumulator))
		s.accumulator = 0
	}
	return steps
}

// Timestamp is the simulated time in milliseconds.
func (s *Simulation) Timestamp() float64 {
	return float64(s.elapsed) / float64(time.Millisecond)
}

func (s *Simulation) FixedStep() time.Duration {
	return s.step
}

// Apply reacts to a prefab directory change and returns the number of
// entities it touched. Prefab edits rebuild every entity built from that
// prefab in place; script edits swap the source of matching contact scripts.
func (s *Simulation) Apply(change prefabs.Change) (int, error) {
	switch change.Kind {
	case prefabs.ChangeSpec:
		return s.rebuildPrefab(change.Name)
	case prefabs.ChangeScript:
		return s.reloadScript(change.Name)
	default:
		return 0, nil
	}
}

func (s *Simulation) rebuildPrefab(name string) (int, error) {
	targets := s.Core.Prefabs.Entities(name)

	// Replacements are all built before any target is destroyed so no new
	// entity reuses a target's id.
	s.Engine.Reserve(len(targets))
	replaced := make(map[ecs.Entity]ecs.Entity, len(targets))
	var buildErr error
	for _, e := range targets {
		var pos, vel cp.Vector
		dir := 1.0
		if p, ok := ecs.Get(s.Engine, e, component.PositionComponent); ok {
			pos = p.Vec()
			dir = p.Direction
		}
		if pb, ok := ecs.Get(s.Engine, e, component.PhysicsBodyComponent); ok && pb.Body != nil {
			vel = pb.Body.Velocity
		}

		next, err := entity.BuildEntityAt(s.Engine, name, pos, vel)
		if err != nil {
			buildErr = fmt.Errorf("rebuild %q: %w", name, err)
			break
		}
		if np, ok := ecs.Get(s.Engine, next, component.PositionComponent); ok {
			np.Direction = dir
		}
		replaced[e] = next
	}

	for _, e := range targets {
		next, ok := replaced[e]
		if !ok {
			continue
		}
		s.Engine.DestroyEntity(e)
		s.replaceLevelEntity(e, next)
	}
	if len(replaced) > 0 {
		s.logger.Info("prefab reloaded", zap.String("prefab", name), zap.Int("entities", len(replaced)))
	}
	return len(replaced), buildErr
}

func (s *Simulation) reloadScript(name string) (int, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return 0, fmt.Errorf("reload script %q: %w", name, err)
	}

	type update struct {
		e  ecs.Entity
		cs *component.ContactScript
	}
	var updates []update
	ecs.ForEach(s.Engine, component.ContactScriptComponent, func(e ecs.Entity, cs *component.ContactScript) {
		if sameScript(cs.Name, name) {
			next := *cs
			next.Source = src
			updates = append(updates, update{e: e, cs: &next})
		}
	})
	for _, u := range updates {
		s.Engine.AddComponents(u.e, u.cs)
	}
	if len(updates) > 0 {
		s.logger.Info("script reloaded", zap.String("script", name), zap.Int("entities", len(updates)))
	}
	return len(updates), nil
}

func (s *Simulation) replaceLevelEntity(old, next ecs.Entity) {
	if s.Level == nil {
		return
	}
	for i, e := range s.Level.Entities {
		if e == old {
			s.Level.Entities[i] = next
			return
		}
	}
}

func sameScript(a, b string) bool {
	norm := func(s string) string {
		return strings.TrimSuffix(filepath.Base(filepath.ToSlash(s)), ".tengo")
	}
	return norm(a) == norm(b)
}
