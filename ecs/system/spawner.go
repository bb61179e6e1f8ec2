package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"go.uber.org/zap"
)

// SpawnFunc builds the named prefab at pos moving with vel.
type SpawnFunc func(name string, pos, vel cp.Vector) (ecs.Entity, error)

// SpawnerSystem builds prefabs from every active Spawner on its interval.
type SpawnerSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
	spawn  SpawnFunc
	logger *zap.Logger
}

func NewSpawnerSystem(engine *ecs.Engine, spawn SpawnFunc, logger *zap.Logger) *SpawnerSystem {
	return &SpawnerSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.SpawnerComponent.Kind(),
			component.PositionComponent.Kind(),
			component.ActiveComponent.Kind(),
		),
		engine: engine,
		spawn:  spawn,
		logger: orNop(logger),
	}
}

func (s *SpawnerSystem) UpdateEntity(tick ecs.Tick, e ecs.Entity, components []any) {
	sp := components[0].(*component.Spawner)
	pos := components[1].(*component.Position)
	if s.spawn == nil || !sp.Advance(tick.DT*1000) {
		return
	}

	// Offset and velocity mirror with the spawner's facing.
	dir := pos.Direction
	if dir == 0 {
		dir = 1
	}
	at := pos.Vec().Add(cp.Vector{X: sp.Offset.X * dir, Y: sp.Offset.Y})
	vel := cp.Vector{X: sp.Velocity.X * dir, Y: sp.Velocity.Y}

	child, err := s.spawn(sp.Prefab, at, vel)
	if err != nil {
		s.logger.Warn("spawn failed",
			zap.Uint32("entity", uint32(e)),
			zap.String("prefab", sp.Prefab),
			zap.Error(err),
		)
		return
	}
	sp.Spawned++
	s.engine.Events().Push(ecs.Event{Type: EventSpawned, Entity: child, Data: e})
}
