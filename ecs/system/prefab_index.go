package system

import (
	"sort"

	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
)

// PrefabIndexSystem tracks which live entities were built from each prefab.
// It does no per-tick work.
type PrefabIndexSystem struct {
	ecs.BaseSystem
	byName map[string]map[ecs.Entity]struct{}
	names  map[ecs.Entity]string
}

func NewPrefabIndexSystem() *PrefabIndexSystem {
	return &PrefabIndexSystem{
		BaseSystem: ecs.NewBaseSystem(component.PrefabComponent.Kind()),
		byName:     make(map[string]map[ecs.Entity]struct{}),
		names:      make(map[ecs.Entity]string),
	}
}

func (s *PrefabIndexSystem) AddEntity(e ecs.Entity, components []any) {
	p := components[0].(*component.Prefab)
	s.RemoveEntity(e)
	set, ok := s.byName[p.Name]
	if !ok {
		set = make(map[ecs.Entity]struct{})
		s.byName[p.Name] = set
	}
	set[e] = struct{}{}
	s.names[e] = p.Name
}

func (s *PrefabIndexSystem) RebindEntity(e ecs.Entity, components []any) {
	s.AddEntity(e, components)
}

func (s *PrefabIndexSystem) RemoveEntity(e ecs.Entity) {
	name, ok := s.names[e]
	if !ok {
		return
	}
	delete(s.names, e)
	if set := s.byName[name]; set != nil {
		delete(set, e)
		if len(set) == 0 {
			delete(s.byName, name)
		}
	}
}

// Entities returns the live entities built from name in ascending id order.
func (s *PrefabIndexSystem) Entities(name string) []ecs.Entity {
	set := s.byName[name]
	out := make([]ecs.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Count returns how many live entities were built from name.
func (s *PrefabIndexSystem) Count(name string) int {
	return len(s.byName[name])
}
