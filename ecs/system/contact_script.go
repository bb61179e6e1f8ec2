package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
	"go.uber.org/zap"
)

const contactDispatchScript = `
if __phase == "contact" {
	on_contact(__engine, __state, __contact)
}
`

// pendingContact is a contact reported during the collision pass, run by the
// script on the next ContactScriptSystem update.
type pendingContact struct {
	other    ecs.Entity
	normal   cp.Vector
	position cp.Vector
	distance float64
}

type contactScriptRuntime struct {
	name      string
	source    string
	compiled  *tengo.Compiled
	stateData *tengo.Map
	pending   []pendingContact
	// lastRun is the timestamp of the last run, negative before the first.
	lastRun float64
}

// ContactScriptSystem runs an entity's ContactScript for the contacts its
// proxy reported. A script defines
//
//	on_contact := func(engine, state, contact) { ... }
//
// where state persists between runs and contact carries other, normal,
// position and distance. Runs are throttled per entity.
type ContactScriptSystem struct {
	ecs.BaseSystem
	engine   *ecs.Engine
	logger   *zap.Logger
	hooks    contactHooks
	runtimes map[ecs.Entity]*contactScriptRuntime
}

func NewContactScriptSystem(engine *ecs.Engine, logger *zap.Logger) *ContactScriptSystem {
	return &ContactScriptSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.ContactScriptComponent.Kind(),
			component.PhysicsCollisionComponent.Kind(),
		),
		engine:   engine,
		logger:   orNop(logger),
		hooks:    newContactHooks(),
		runtimes: make(map[ecs.Entity]*contactScriptRuntime),
	}
}

func (s *ContactScriptSystem) AddEntity(e ecs.Entity, components []any) {
	cs := components[0].(*component.ContactScript)
	pc := components[1].(*component.PhysicsCollision)

	if _, err := s.runtime(e, cs); err != nil {
		s.logger.Warn("contact script compile failed",
			zap.Uint32("entity", uint32(e)),
			zap.String("script", cs.Name),
			zap.Error(err),
		)
		delete(s.runtimes, e)
		return
	}
	s.hooks.attach(e, pc, func(_, other *collision.Proxy, c *physics.Contact) {
		rt, ok := s.runtimes[e]
		if !ok {
			return
		}
		rt.pending = append(rt.pending, pendingContact{
			other:    other.Entity,
			normal:   c.Normal,
			position: c.Position,
			distance: c.Distance,
		})
	})
}

func (s *ContactScriptSystem) RebindEntity(e ecs.Entity, components []any) {
	s.AddEntity(e, components)
}

func (s *ContactScriptSystem) RemoveEntity(e ecs.Entity) {
	s.hooks.detach(e)
	delete(s.runtimes, e)
}

func (s *ContactScriptSystem) UpdateEntity(tick ecs.Tick, e ecs.Entity, components []any) {
	cs := components[0].(*component.ContactScript)
	rt, ok := s.runtimes[e]
	if !ok || len(rt.pending) == 0 {
		return
	}
	pending := rt.pending
	rt.pending = rt.pending[:0]

	for _, c := range pending {
		if rt.lastRun >= 0 && tick.Timestamp-rt.lastRun < cs.Throttle {
			return
		}
		rt.lastRun = tick.Timestamp
		if err := rt.run(s.buildEngine(e, cs), contactObject(c)); err != nil {
			s.logger.Warn("contact script failed",
				zap.Uint32("entity", uint32(e)),
				zap.String("script", cs.Name),
				zap.Error(err),
			)
			return
		}
		if !s.engine.IsAlive(e) {
			return
		}
	}
}

func (s *ContactScriptSystem) runtime(e ecs.Entity, cs *component.ContactScript) (*contactScriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.name == cs.Name && rt.source == string(cs.Source) {
		return rt, nil
	}
	if strings.TrimSpace(string(cs.Source)) == "" {
		return nil, fmt.Errorf("contact script %q: empty source", cs.Name)
	}

	src := string(cs.Source) + "\n" + contactDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__contact", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("contact script %q: %w", cs.Name, err)
	}

	state := &tengo.Map{Value: map[string]tengo.Object{}}
	for k, v := range cs.Params {
		obj, err := tengo.FromInterface(v)
		if err != nil {
			return nil, fmt.Errorf("contact script %q: param %q: %w", cs.Name, k, err)
		}
		state.Value[k] = obj
	}

	rt := &contactScriptRuntime{
		name:      cs.Name,
		source:    string(cs.Source),
		compiled:  compiled,
		stateData: state,
		lastRun:   -1,
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *contactScriptRuntime) run(engine *tengo.ImmutableMap, contact *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__phase", "contact"); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	if err := rt.compiled.Set("__contact", contact); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func contactObject(c pendingContact) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"other":    &tengo.Int{Value: int64(c.other)},
		"normal":   vectorObject(c.normal),
		"position": vectorObject(c.position),
		"distance": &tengo.Float{Value: c.distance},
	}}
}

func vectorObject(v cp.Vector) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func (s *ContactScriptSystem) buildEngine(self ecs.Entity, cs *component.ContactScript) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	// target resolves an optional entity argument, defaulting to self.
	target := func(args []tengo.Object, i int) (ecs.Entity, bool) {
		if len(args) <= i {
			return self, true
		}
		id, ok := tengo.ToInt64(args[i])
		if !ok || id < 0 {
			return 0, false
		}
		e := ecs.Entity(id)
		return e, s.engine.IsAlive(e)
	}

	values["self"] = &tengo.UserFunction{Name: "self", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(self)}, nil
	}}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name, _ := tengo.ToString(args[0])
		name = strings.TrimSpace(name)
		if name == "" {
			return tengo.FalseValue, nil
		}
		var data any
		if len(args) > 1 {
			data = eventData(args[1])
		}
		s.engine.Events().Push(ecs.Event{Type: name, Entity: self, Data: data})
		return tengo.TrueValue, nil
	}}

	values["damage"] = &tengo.UserFunction{Name: "damage", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		e, ok := target(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		amount, ok := tengo.ToFloat64(args[1])
		if !ok {
			return tengo.FalseValue, nil
		}
		h, ok := ecs.Get(s.engine, e, component.HealthComponent)
		if !ok {
			return tengo.FalseValue, nil
		}
		h.Hit(amount)
		return tengo.TrueValue, nil
	}}

	values["push"] = &tengo.UserFunction{Name: "push", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		e, ok := target(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		fx, okX := tengo.ToFloat64(args[1])
		fy, okY := tengo.ToFloat64(args[2])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		pb, ok := ecs.Get(s.engine, e, component.PhysicsBodyComponent)
		if !ok || pb.Body == nil {
			return tengo.FalseValue, nil
		}
		pb.Body.AddForce(cp.Vector{X: fx, Y: fy})
		return tengo.TrueValue, nil
	}}

	values["destroy"] = &tengo.UserFunction{Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := target(args, 0)
		if !ok {
			return tengo.FalseValue, nil
		}
		scheduleDestroy(s.engine, e, 0)
		return tengo.TrueValue, nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		e, ok := target(args, 0)
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		pos, ok := ecs.Get(s.engine, e, component.PositionComponent)
		if !ok {
			return vectorObject(cp.Vector{}), nil
		}
		return vectorObject(pos.Vec()), nil
	}}

	values["param"] = &tengo.UserFunction{Name: "param", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.UndefinedValue, nil
		}
		key, _ := tengo.ToString(args[0])
		v, ok := cs.Params[key]
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return tengo.FromInterface(v)
	}}

	return &tengo.ImmutableMap{Value: values}
}

// eventData converts an emit payload. Ints stay Go ints and maps convert
// field by field; everything else takes tengo's conversion.
func eventData(obj tengo.Object) any {
	switch v := obj.(type) {
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Map:
		return eventFields(v.Value)
	case *tengo.ImmutableMap:
		return eventFields(v.Value)
	default:
		return tengo.ToInterface(obj)
	}
}

func eventFields(fields map[string]tengo.Object) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = eventData(v)
	}
	return out
}
