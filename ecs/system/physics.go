package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/broadphase"
	"github.com/milk9111/glaze2d/physics/collision"
	"go.uber.org/zap"
)

// PhysicsWorld is the state shared by the physics systems.
type PhysicsWorld struct {
	Broadphase broadphase.Broadphase
	Collider   *collision.Collider
	Gravity    cp.Vector
	Damping    float64
}

func NewPhysicsWorld(bp broadphase.Broadphase, gravity cp.Vector, damping float64) *PhysicsWorld {
	if damping <= 0 {
		damping = 1
	}
	return &PhysicsWorld{
		Broadphase: bp,
		Collider:   collision.NewCollider(),
		Gravity:    gravity,
		Damping:    damping,
	}
}

// QueryArea reports every active proxy whose box touches bb.
func (pw *PhysicsWorld) QueryArea(bb cp.BB, fn func(p *collision.Proxy), checkDynamic, checkStatic bool) {
	pw.Broadphase.QueryArea(bb, func(p *collision.Proxy) {
		if p.Active {
			fn(p)
		}
	}, checkDynamic, checkStatic)
}

// QueryRadius reports proxies within the square of half size radius around
// center.
func (pw *PhysicsWorld) QueryRadius(center cp.Vector, radius float64, fn func(p *collision.Proxy), checkDynamic, checkStatic bool) {
	bb := physics.AABB{Position: center, Extents: cp.Vector{X: radius, Y: radius}}.BB()
	pw.QueryArea(bb, fn, checkDynamic, checkStatic)
}

// CastRay returns the closest hit between from and to.
func (pw *PhysicsWorld) CastRay(from, to cp.Vector, filter *collision.Filter, checkDynamic, checkStatic bool) *collision.Ray {
	ray := collision.NewRay(from, to)
	ray.Filter = filter
	pw.Broadphase.CastRay(ray, checkDynamic, checkStatic)
	return ray
}

func configureProxy(p *collision.Proxy, pc *component.PhysicsCollision) {
	p.Sensor = pc.Sensor
	p.ResponseBias = pc.Bias()
	p.LimitToStaticCheck = pc.LimitToStaticCheck
	p.SetCallbacks(pc.Callbacks())
	pc.Proxy = p
}

// PhysicsStaticSystem keeps a static proxy in the broadphase for every fixed
// collider and follows it when its Position changes.
type PhysicsStaticSystem struct {
	ecs.BaseSystem
	world   *PhysicsWorld
	logger  *zap.Logger
	proxies map[ecs.Entity]*collision.Proxy
}

func NewPhysicsStaticSystem(world *PhysicsWorld, logger *zap.Logger) *PhysicsStaticSystem {
	return &PhysicsStaticSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.PhysicsCollisionComponent.Kind(),
			component.ExtentsComponent.Kind(),
			component.PositionComponent.Kind(),
			component.FixedComponent.Kind(),
			component.ActiveComponent.Kind(),
		),
		world:   world,
		logger:  orNop(logger),
		proxies: make(map[ecs.Entity]*collision.Proxy),
	}
}

func (s *PhysicsStaticSystem) AddEntity(e ecs.Entity, components []any) {
	pc := components[0].(*component.PhysicsCollision)
	ext := components[1].(*component.Extents)
	pos := components[2].(*component.Position)

	p := collision.NewStaticProxy(e, pos.Vec().Add(pc.Offset), ext.Vec(), pc.Filter)
	configureProxy(p, pc)
	s.world.Broadphase.Add(p)
	s.proxies[e] = p
	s.logger.Debug("static proxy registered", zap.Uint32("entity", uint32(e)), zap.Uint64("proxy", p.ID))
}

func (s *PhysicsStaticSystem) RemoveEntity(e ecs.Entity) {
	p, ok := s.proxies[e]
	if !ok {
		return
	}
	s.world.Broadphase.Remove(p)
	delete(s.proxies, e)
}

func (s *PhysicsStaticSystem) RebindEntity(e ecs.Entity, components []any) {
	s.RemoveEntity(e)
	s.AddEntity(e, components)
}

func (s *PhysicsStaticSystem) UpdateEntity(_ ecs.Tick, e ecs.Entity, components []any) {
	pc := components[0].(*component.PhysicsCollision)
	pos := components[2].(*component.Position)
	p := s.proxies[e]
	if p == nil {
		return
	}
	if want := pos.Vec().Add(pc.Offset); want != p.AABB.Position {
		p.SetStatic(want)
		s.world.Broadphase.Update(p)
	}
}

// PhysicsMoveableSystem keeps a dynamic proxy in the broadphase for every
// body driven entity.
type PhysicsMoveableSystem struct {
	ecs.BaseSystem
	world   *PhysicsWorld
	logger  *zap.Logger
	proxies map[ecs.Entity]*collision.Proxy
}

func NewPhysicsMoveableSystem(world *PhysicsWorld, logger *zap.Logger) *PhysicsMoveableSystem {
	return &PhysicsMoveableSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.PhysicsCollisionComponent.Kind(),
			component.PhysicsBodyComponent.Kind(),
			component.ExtentsComponent.Kind(),
			component.PositionComponent.Kind(),
			component.MoveableComponent.Kind(),
			component.ActiveComponent.Kind(),
		),
		world:   world,
		logger:  orNop(logger),
		proxies: make(map[ecs.Entity]*collision.Proxy),
	}
}

func (s *PhysicsMoveableSystem) AddEntity(e ecs.Entity, components []any) {
	pc := components[0].(*component.PhysicsCollision)
	pb := components[1].(*component.PhysicsBody)
	ext := components[2].(*component.Extents)
	pos := components[3].(*component.Position)

	if pb.Body == nil {
		pb.Body = physics.NewBody(physics.MaterialNormal)
	}
	body := pb.Body
	body.Position = pos.Vec()
	body.PreviousPosition = body.Position
	if pb.MassFromVolume {
		body.SetMassFromVolume(ext.Vec())
	}

	p := collision.NewDynamicProxy(e, body, ext.Vec(), pc.Filter)
	p.Offset = pc.Offset
	configureProxy(p, pc)
	s.world.Broadphase.Add(p)
	s.proxies[e] = p
	s.logger.Debug("dynamic proxy registered",
		zap.Uint32("entity", uint32(e)),
		zap.Uint64("proxy", p.ID),
		zap.Bool("bullet", body.IsBullet))
}

func (s *PhysicsMoveableSystem) RemoveEntity(e ecs.Entity) {
	p, ok := s.proxies[e]
	if !ok {
		return
	}
	s.world.Broadphase.Remove(p)
	delete(s.proxies, e)
}

func (s *PhysicsMoveableSystem) RebindEntity(e ecs.Entity, components []any) {
	s.RemoveEntity(e)
	s.AddEntity(e, components)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
