package ecs

// Phase is a named, ordered batch of systems. Phases run in the order they
// were created; systems in the order they were added.
type Phase struct {
	name    string
	engine  *Engine
	systems []*membership
	Enabled bool
}

func (p *Phase) Name() string {
	return p.name
}

// AddSystem registers s, creating storage for every kind it requires and
// matching it against every live entity.
func (p *Phase) AddSystem(s System) {
	if s == nil {
		return
	}
	m := p.engine.register(s)
	p.systems = append(p.systems, m)
}

// Systems returns the phase's systems in update order.
func (p *Phase) Systems() []System {
	systems := make([]System, 0, len(p.systems))
	for _, m := range p.systems {
		systems = append(systems, m.system)
	}
	return systems
}

func (p *Phase) update(tick Tick) {
	if !p.Enabled {
		return
	}
	for _, m := range p.systems {
		m.update(tick)
	}
}
