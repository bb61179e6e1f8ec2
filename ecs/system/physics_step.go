package system

import (
	"github.com/milk9111/glaze2d/common"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics/collision"
)

// PhysicsUpdateSystem integrates forces into every active body.
type PhysicsUpdateSystem struct {
	ecs.BaseSystem
	world *PhysicsWorld
}

func NewPhysicsUpdateSystem(world *PhysicsWorld) *PhysicsUpdateSystem {
	return &PhysicsUpdateSystem{
		BaseSystem: ecs.NewBaseSystem(component.PhysicsBodyComponent.Kind(), component.ActiveComponent.Kind()),
		world:      world,
	}
}

func (s *PhysicsUpdateSystem) UpdateEntity(tick ecs.Tick, _ ecs.Entity, components []any) {
	pb := components[0].(*component.PhysicsBody)
	if pb.Body == nil {
		return
	}
	pb.Body.Update(tick.DT, s.world.Gravity, s.world.Damping)
}

// PhysicsCollisionSystem runs the narrow phase over every broadphase pair
// once per tick. It does no per-entity work.
type PhysicsCollisionSystem struct {
	ecs.BaseSystem
	world  *PhysicsWorld
	events *ecs.EventQueue

	previous map[uint64]struct{}
	current  map[uint64]struct{}
	// Pairs and Contacts describe the last tick.
	Pairs    int
	Contacts int
}

func NewPhysicsCollisionSystem(world *PhysicsWorld, events *ecs.EventQueue) *PhysicsCollisionSystem {
	return &PhysicsCollisionSystem{
		BaseSystem: ecs.NewBaseSystem(component.PhysicsCollisionComponent.Kind()),
		world:      world,
		events:     events,
		previous:   make(map[uint64]struct{}),
		current:    make(map[uint64]struct{}),
	}
}

func (s *PhysicsCollisionSystem) PreUpdate(ecs.Tick) bool {
	s.world.Collider.ResetCount()
	clear(s.current)
	s.Contacts = 0

	s.world.Broadphase.Pairs(func(a, b *collision.Proxy) {
		if !s.world.Collider.Collide(a, b) {
			return
		}
		s.Contacts++
		key := collision.PairHash(a.ID, b.ID)
		s.current[key] = struct{}{}
		if _, ok := s.previous[key]; ok {
			return
		}
		c := s.world.Collider.Contact()
		s.events.Push(ecs.Event{
			Type:   EventContactBegin,
			Entity: a.Entity,
			Data:   ContactEvent{Other: b.Entity, Normal: c.Normal, Position: c.Position},
		})
	})

	s.Pairs = s.world.Collider.Count
	s.previous, s.current = s.current, s.previous
	return false
}

// PhysicsPositionSystem applies collision corrections, moves bodies and
// copies the result back to Position.
type PhysicsPositionSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
}

func NewPhysicsPositionSystem(engine *ecs.Engine) *PhysicsPositionSystem {
	return &PhysicsPositionSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.PositionComponent.Kind(),
			component.PhysicsBodyComponent.Kind(),
			component.ActiveComponent.Kind(),
		),
		engine: engine,
	}
}

func (s *PhysicsPositionSystem) UpdateEntity(_ ecs.Tick, e ecs.Entity, components []any) {
	pos := components[0].(*component.Position)
	pb := components[1].(*component.PhysicsBody)
	body := pb.Body
	if body == nil {
		return
	}
	body.UpdatePosition()
	pos.Set(body.Position)
	if body.Velocity.X != 0 {
		pos.Direction = common.Sign(body.Velocity.X)
	}
	if body.Spent && !ecs.Has(s.engine, e, component.DestroyComponent) {
		s.engine.AddComponents(e, &component.Destroy{})
	}
}
