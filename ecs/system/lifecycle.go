package system

import (
	"math"

	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"go.uber.org/zap"
)

func scheduleDestroy(engine *ecs.Engine, e ecs.Entity, delay int) {
	if ecs.Has(engine, e, component.DestroyComponent) {
		return
	}
	engine.AddComponents(e, &component.Destroy{Delay: delay})
}

// AgeSystem advances Age in milliseconds and expires entities past their TTL.
type AgeSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
}

func NewAgeSystem(engine *ecs.Engine) *AgeSystem {
	return &AgeSystem{
		BaseSystem: ecs.NewBaseSystem(component.AgeComponent.Kind()),
		engine:     engine,
	}
}

func (s *AgeSystem) UpdateEntity(tick ecs.Tick, e ecs.Entity, components []any) {
	age := components[0].(*component.Age)
	age.Age += tick.DT * 1000
	if age.TTL > 0 && age.Age > age.TTL {
		scheduleDestroy(s.engine, e, 1)
	}
}

// HealthSystem applies pending damage and recovery, destroying entities
// whose health runs out.
type HealthSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
}

func NewHealthSystem(engine *ecs.Engine) *HealthSystem {
	return &HealthSystem{
		BaseSystem: ecs.NewBaseSystem(component.HealthComponent.Kind()),
		engine:     engine,
	}
}

func (s *HealthSystem) UpdateEntity(tick ecs.Tick, e ecs.Entity, components []any) {
	h := components[0].(*component.Health)
	h.Current = math.Min(h.Max, h.Current-h.Damage+h.Recovery*tick.DT)
	h.Damage = 0
	if h.Current <= 0 {
		h.Current = 0
		scheduleDestroy(s.engine, e, 1)
	}
}

// DestroySystem removes entities once their Destroy delay has run down.
type DestroySystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
	logger *zap.Logger
}

func NewDestroySystem(engine *ecs.Engine, logger *zap.Logger) *DestroySystem {
	return &DestroySystem{
		BaseSystem: ecs.NewBaseSystem(component.DestroyComponent.Kind()),
		engine:     engine,
		logger:     orNop(logger),
	}
}

func (s *DestroySystem) UpdateEntity(_ ecs.Tick, e ecs.Entity, components []any) {
	d := components[0].(*component.Destroy)
	if d.Delay > 0 {
		d.Delay--
		return
	}
	s.engine.DestroyEntity(e)
	s.engine.Events().Push(ecs.Event{Type: EventDestroyed, Entity: e})
	s.logger.Debug("entity destroyed", zap.Uint32("entity", uint32(e)))
}
