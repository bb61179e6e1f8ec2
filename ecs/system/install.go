package system

import (
	"github.com/milk9111/glaze2d/ecs"
	"go.uber.org/zap"
)

// Core is the standard simulation pipeline registered by InstallCore.
type Core struct {
	World     *PhysicsWorld
	Static    *PhysicsStaticSystem
	Moveable  *PhysicsMoveableSystem
	Collision *PhysicsCollisionSystem
	Spawner   *SpawnerSystem
	Scripts   *ContactScriptSystem
	Prefabs   *PrefabIndexSystem
}

// InstallCore adds the simulation systems to the engine's core phase in
// update order. spawn may be nil when no entity carries a Spawner.
func InstallCore(engine *ecs.Engine, world *PhysicsWorld, spawn SpawnFunc, logger *zap.Logger) *Core {
	logger = orNop(logger)
	core := &Core{
		World:     world,
		Static:    NewPhysicsStaticSystem(world, logger),
		Moveable:  NewPhysicsMoveableSystem(world, logger),
		Collision: NewPhysicsCollisionSystem(world, engine.Events()),
		Spawner:   NewSpawnerSystem(engine, spawn, logger),
		Scripts:   NewContactScriptSystem(engine, logger),
		Prefabs:   NewPrefabIndexSystem(),
	}

	engine.AddSystem(core.Static)
	engine.AddSystem(core.Moveable)
	engine.AddSystem(NewEnvironmentForceSystem(engine))
	engine.AddSystem(NewCollisionCountSystem(engine))
	engine.AddSystem(NewSpringSystem(engine))
	engine.AddSystem(NewPhysicsUpdateSystem(world))
	engine.AddSystem(core.Collision)
	engine.AddSystem(NewPhysicsPositionSystem(engine))
	engine.AddSystem(core.Scripts)
	engine.AddSystem(core.Spawner)
	engine.AddSystem(NewAgeSystem(engine))
	engine.AddSystem(NewHealthSystem(engine))
	engine.AddSystem(NewDestroySystem(engine, logger))
	engine.AddSystem(core.Prefabs)
	return core
}
