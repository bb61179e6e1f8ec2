package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"golang.org/x/image/colornames"
)

// PhaseName is the engine phase the debug renderer collects in.
const PhaseName = "render"

// Box is one collected entity outline in world space.
type Box struct {
	Entity  ecs.Entity
	Center  cp.Vector
	Extents cp.Vector
	Color   color.Color
	Filled  bool
}

// DebugRenderSystem collects every positioned box during its phase and draws
// them when the game draws.
type DebugRenderSystem struct {
	ecs.BaseSystem
	engine *ecs.Engine
	boxes  []Box

	Camera    cp.Vector
	Zoom      float64
	ShowStats bool
}

func NewDebugRenderSystem(engine *ecs.Engine) *DebugRenderSystem {
	return &DebugRenderSystem{
		BaseSystem: ecs.NewBaseSystem(
			component.PositionComponent.Kind(),
			component.ExtentsComponent.Kind(),
		),
		engine:    engine,
		Zoom:      1,
		ShowStats: true,
	}
}

// colorStore keeps DebugColor values stored for ColorFor. It matches nothing
// else and does no work.
type colorStore struct {
	ecs.BaseSystem
}

// Install registers s in its own phase after every existing phase. Entities
// built before Install lose their DebugColor.
func (s *DebugRenderSystem) Install() *ecs.Phase {
	phase, ok := s.engine.Phase(PhaseName)
	if !ok {
		phase = s.engine.NewPhase(PhaseName)
	}
	phase.AddSystem(colorStore{ecs.NewBaseSystem(component.DebugColorComponent.Kind())})
	phase.AddSystem(s)
	return phase
}

func (s *DebugRenderSystem) PreUpdate(ecs.Tick) bool {
	s.boxes = s.boxes[:0]
	return true
}

func (s *DebugRenderSystem) UpdateEntity(_ ecs.Tick, e ecs.Entity, components []any) {
	pos := components[0].(*component.Position)
	ext := components[1].(*component.Extents)

	center := pos.Vec()
	if pc, ok := ecs.Get(s.engine, e, component.PhysicsCollisionComponent); ok {
		center = center.Add(pc.Offset)
	}
	s.boxes = append(s.boxes, Box{
		Entity:  e,
		Center:  center,
		Extents: ext.Vec(),
		Color:   ColorFor(s.engine, e),
		Filled:  !isSensor(s.engine, e),
	})
}

// Boxes returns the outlines collected by the last update.
func (s *DebugRenderSystem) Boxes() []Box {
	return s.boxes
}

// ColorFor picks the entity's DebugColor, falling back to a color keyed by
// how the entity takes part in physics.
func ColorFor(engine *ecs.Engine, e ecs.Entity) color.Color {
	if dc, ok := ecs.Get(engine, e, component.DebugColorComponent); ok && dc.Color != nil {
		return dc.Color
	}
	switch {
	case !ecs.Has(engine, e, component.ActiveComponent):
		return colornames.Dimgray
	case isSensor(engine, e):
		return colornames.Deepskyblue
	case ecs.Has(engine, e, component.MoveableComponent):
		return colornames.Crimson
	case ecs.Has(engine, e, component.FixedComponent):
		return colornames.Slategray
	default:
		return colornames.Lightgrey
	}
}

func isSensor(engine *ecs.Engine, e ecs.Entity) bool {
	pc, ok := ecs.Get(engine, e, component.PhysicsCollisionComponent)
	return ok && pc.Sensor
}

func (s *DebugRenderSystem) Draw(screen *ebiten.Image) {
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	for _, b := range s.boxes {
		x := float32((b.Center.X - b.Extents.X - s.Camera.X) * zoom)
		y := float32((b.Center.Y - b.Extents.Y - s.Camera.Y) * zoom)
		w := float32(b.Extents.X * 2 * zoom)
		h := float32(b.Extents.Y * 2 * zoom)
		if b.Filled {
			vector.DrawFilledRect(screen, x, y, w, h, fade(b.Color, 0x60), false)
		}
		vector.StrokeRect(screen, x, y, w, h, 1, b.Color, false)
	}

	if s.ShowStats {
		msg := fmt.Sprintf("entities: %d  boxes: %d  frame: %d  fps: %.0f",
			s.engine.EntityCount(), len(s.boxes), s.engine.Frame(), ebiten.ActualFPS())
		ebitenutil.DebugPrintAt(screen, msg, 4, 4)
	}
}

func fade(c color.Color, alpha uint8) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = alpha
	return n
}
