package render

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"golang.org/x/image/colornames"
)

// storeOnly gives kinds storage without matching work.
type storeOnly struct {
	ecs.BaseSystem
}

func newTestEngine() (*ecs.Engine, *DebugRenderSystem) {
	eng := ecs.NewEngine()
	eng.AddSystem(storeOnly{ecs.NewBaseSystem(
		component.PhysicsCollisionComponent.Kind(),
		component.ActiveComponent.Kind(),
	)})
	eng.AddSystem(storeOnly{ecs.NewBaseSystem(component.MoveableComponent.Kind())})
	eng.AddSystem(storeOnly{ecs.NewBaseSystem(component.FixedComponent.Kind())})
	rs := NewDebugRenderSystem(eng)
	rs.Install()
	return eng, rs
}

func TestColorFor(t *testing.T) {
	custom := color.RGBA{R: 1, G: 2, B: 3, A: 255}

	tests := []struct {
		name       string
		components []any
		want       color.Color
	}{
		{"custom", []any{&component.DebugColor{Color: custom}, &component.Active{}}, custom},
		{"inactive", []any{&component.Moveable{}}, colornames.Dimgray},
		{"sensor", []any{&component.PhysicsCollision{Sensor: true}, &component.Fixed{}, &component.Active{}}, colornames.Deepskyblue},
		{"moveable", []any{&component.PhysicsCollision{}, &component.Moveable{}, &component.Active{}}, colornames.Crimson},
		{"fixed", []any{&component.PhysicsCollision{}, &component.Fixed{}, &component.Active{}}, colornames.Slategray},
		{"plain", []any{&component.Active{}}, colornames.Lightgrey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, _ := newTestEngine()
			e := eng.CreateEntity()
			eng.AddComponents(e, tt.components...)
			if got := ColorFor(eng, e); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDebugRenderCollectsBoxes(t *testing.T) {
	eng, rs := newTestEngine()

	box := eng.CreateEntity()
	eng.AddComponents(box,
		&component.Position{X: 10, Y: 20},
		&component.Extents{HalfWidth: 4, HalfHeight: 2},
		&component.PhysicsCollision{Offset: cp.Vector{X: 1}},
	)
	sensor := eng.CreateEntity()
	eng.AddComponents(sensor,
		&component.Position{},
		&component.Extents{HalfWidth: 1, HalfHeight: 1},
		&component.PhysicsCollision{Sensor: true},
	)
	noExtents := eng.CreateEntity()
	eng.AddComponents(noExtents, &component.Position{})

	eng.Update(1.0/60, 0)
	boxes := rs.Boxes()
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	for _, b := range boxes {
		switch b.Entity {
		case box:
			if b.Center != (cp.Vector{X: 11, Y: 20}) || b.Extents != (cp.Vector{X: 4, Y: 2}) || !b.Filled {
				t.Fatalf("unexpected box %+v", b)
			}
		case sensor:
			if b.Filled {
				t.Fatalf("expected sensor drawn as an outline")
			}
		default:
			t.Fatalf("unexpected entity %d collected", b.Entity)
		}
	}

	eng.DestroyEntity(sensor)
	eng.Update(1.0/60, 0)
	if len(rs.Boxes()) != 1 {
		t.Fatalf("expected boxes rebuilt every update, got %d", len(rs.Boxes()))
	}
}
