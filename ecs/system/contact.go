package system

import (
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

// contactHooks keeps one live contact callback per entity on its
// PhysicsCollision. Attaching to a replacement component or detaching
// removes the earlier callback.
type contactHooks struct {
	attached map[ecs.Entity]contactHook
}

type contactHook struct {
	pc *component.PhysicsCollision
	id component.CallbackID
}

func newContactHooks() contactHooks {
	return contactHooks{attached: make(map[ecs.Entity]contactHook)}
}

func (h *contactHooks) attach(e ecs.Entity, pc *component.PhysicsCollision, cb collision.ContactCallback) {
	prev, ok := h.attached[e]
	if ok && prev.pc == pc {
		return
	}
	if ok {
		prev.pc.RemoveCallback(prev.id)
	}
	var id component.CallbackID
	id = pc.AddCallback(func(self, other *collision.Proxy, c *physics.Contact) {
		// A Collide in progress may still hold a removed callback.
		if cur, ok := h.attached[e]; !ok || cur.pc != pc || cur.id != id {
			return
		}
		cb(self, other, c)
	})
	h.attached[e] = contactHook{pc: pc, id: id}
}

func (h *contactHooks) detach(e ecs.Entity) {
	if prev, ok := h.attached[e]; ok {
		prev.pc.RemoveCallback(prev.id)
		delete(h.attached, e)
	}
}

// CollisionCountSystem tallies accepted contacts per entity and destroys
// entities that reach their limit.
type CollisionCountSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
	hooks  contactHooks
}

func NewCollisionCountSystem(engine *ecs.Engine) *CollisionCountSystem {
	return &CollisionCountSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.CollisionCountComponent.Kind(),
			component.PhysicsCollisionComponent.Kind(),
		),
		engine: engine,
		hooks:  newContactHooks(),
	}
}

func (s *CollisionCountSystem) AddEntity(e ecs.Entity, components []any) {
	pc := components[1].(*component.PhysicsCollision)
	s.hooks.attach(e, pc, func(_, _ *collision.Proxy, _ *physics.Contact) {
		if cc, ok := ecs.Get(s.engine, e, component.CollisionCountComponent); ok {
			cc.Count++
			cc.Total++
		}
	})
}

func (s *CollisionCountSystem) RebindEntity(e ecs.Entity, components []any) {
	s.AddEntity(e, components)
}

func (s *CollisionCountSystem) RemoveEntity(e ecs.Entity) {
	s.hooks.detach(e)
}

func (s *CollisionCountSystem) UpdateEntity(_ ecs.Tick, e ecs.Entity, components []any) {
	cc := components[0].(*component.CollisionCount)
	if cc.Limit > 0 && cc.Total >= cc.Limit {
		scheduleDestroy(s.engine, e, 0)
	}
	cc.Count = 0
}

// EnvironmentForceSystem turns colliders with an EnvironmentForce into force
// volumes acting on every body they touch.
type EnvironmentForceSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
	hooks  contactHooks
}

func NewEnvironmentForceSystem(engine *ecs.Engine) *EnvironmentForceSystem {
	return &EnvironmentForceSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.EnvironmentForceComponent.Kind(),
			component.PhysicsCollisionComponent.Kind(),
		),
		engine: engine,
		hooks:  newContactHooks(),
	}
}

func (s *EnvironmentForceSystem) RebindEntity(e ecs.Entity, components []any) {
	s.AddEntity(e, components)
}

func (s *EnvironmentForceSystem) RemoveEntity(e ecs.Entity) {
	s.hooks.detach(e)
}

func (s *EnvironmentForceSystem) AddEntity(e ecs.Entity, components []any) {
	pc := components[1].(*component.PhysicsCollision)
	s.hooks.attach(e, pc, func(_, other *collision.Proxy, _ *physics.Contact) {
		if other.Body == nil {
			return
		}
		ef, ok := ecs.Get(s.engine, e, component.EnvironmentForceComponent)
		if !ok {
			return
		}
		if ef.Massless {
			other.Body.AddMasslessForce(ef.Force)
		} else {
			other.Body.AddForce(ef.Force)
		}
		if ef.Damping > 0 {
			other.Body.Velocity = other.Body.Velocity.Mult(ef.Damping)
		}
	})
}

// SpringSystem pulls each body towards its spring target.
type SpringSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
}

func NewSpringSystem(engine *ecs.Engine) *SpringSystem {
	return &SpringSystem{
		BaseSystem: ecs.NewBaseSystem(component.SpringComponent.Kind(), component.PhysicsBodyComponent.Kind()),
		engine:     engine,
	}
}

func (s *SpringSystem) UpdateEntity(_ ecs.Tick, _ ecs.Entity, components []any) {
	sp := components[0].(*component.Spring)
	pb := components[1].(*component.PhysicsBody)
	target, ok := ecs.Get(s.engine, sp.Target, component.PhysicsBodyComponent)
	if !ok || pb.Body == nil || target.Body == nil {
		return
	}
	physics.Spring(pb.Body, target.Body, sp.Length, sp.Stiffness)
}
