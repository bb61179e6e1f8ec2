package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/physics/broadphase"
)

const switchScript = `
on_contact := func(engine, state, contact) {
	state.presses = state.presses + 1
	engine.damage(contact.other, state.damage)
	engine.emit("pressed", {presses: state.presses, other: contact.other})
}
`

func addSwitch(eng *ecs.Engine, src string, throttle float64) ecs.Entity {
	e := eng.CreateEntity()
	eng.AddComponents(e,
		&component.Position{},
		&component.Extents{HalfWidth: 20, HalfHeight: 20},
		&component.PhysicsCollision{Sensor: true},
		&component.ContactScript{
			Name:     "switch",
			Source:   []byte(src),
			Throttle: throttle,
			Params:   map[string]any{"presses": 0, "damage": 3},
		},
		&component.Fixed{},
		&component.Active{},
	)
	return e
}

func TestContactScriptThrottle(t *testing.T) {
	eng, _ := newTestCore(t, broadphase.KindTree, cp.Vector{}, nil)
	sw := addSwitch(eng, switchScript, 1000)
	box := addBox(eng, 0, 0, &component.Health{Max: 10, Current: 10})

	var presses []map[string]any
	collect := func(events []ecs.Event) {
		for _, evt := range events {
			if evt.Type == "pressed" && evt.Entity == sw {
				presses = append(presses, evt.Data.(map[string]any))
			}
		}
	}

	// 30 ticks is half a second, inside one throttle window.
	step(eng, 30, collect)
	if len(presses) != 1 {
		t.Fatalf("expected one throttled press, got %d", len(presses))
	}
	if presses[0]["presses"] != 1 || presses[0]["other"] != int(box) {
		t.Fatalf("unexpected press payload %+v", presses[0])
	}
	h, _ := ecs.Get(eng, box, component.HealthComponent)
	if h.Current != 7 {
		t.Fatalf("expected script damage applied once, got health %v", h.Current)
	}

	step(eng, 40, collect)
	if len(presses) != 2 || presses[1]["presses"] != 2 {
		t.Fatalf("expected a second press once the throttle elapsed, got %+v", presses)
	}
}

func TestContactScriptUnthrottled(t *testing.T) {
	eng, _ := newTestCore(t, broadphase.KindBruteforce, cp.Vector{}, nil)
	addSwitch(eng, switchScript, 0)
	addBox(eng, 0, 0)

	count := 0
	step(eng, 5, func(events []ecs.Event) {
		for _, evt := range events {
			if evt.Type == "pressed" {
				count++
			}
		}
	})
	if count != 5 {
		t.Fatalf("expected a press every tick, got %d", count)
	}
}

func TestContactScriptDestroy(t *testing.T) {
	eng, _ := newTestCore(t, broadphase.KindTree, cp.Vector{}, nil)
	addSwitch(eng, `
on_contact := func(engine, state, contact) {
	engine.destroy(contact.other)
}
`, 0)
	box := addBox(eng, 0, 0)

	step(eng, 1, nil)
	if eng.IsAlive(box) {
		t.Fatalf("expected the script to destroy the other entity")
	}
}

func TestContactScriptCompileError(t *testing.T) {
	eng, core := newTestCore(t, broadphase.KindTree, cp.Vector{}, nil)
	sw := addSwitch(eng, `on_contact := func(`, 0)
	addBox(eng, 0, 0)

	step(eng, 2, nil)
	if _, ok := core.Scripts.runtimes[sw]; ok {
		t.Fatalf("expected no runtime for a script that does not compile")
	}
	if !eng.IsAlive(sw) {
		t.Fatalf("a broken script must not take the entity down")
	}
}
