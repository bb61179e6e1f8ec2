package entity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/ecs"
	"github.com/milk9111/glaze2d/ecs/component"
	"github.com/milk9111/glaze2d/ecs/system"
	"github.com/milk9111/glaze2d/levels"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/broadphase"
	"github.com/milk9111/glaze2d/prefabs"
)

func newEngine(t *testing.T) (*ecs.Engine, *system.Core) {
	t.Helper()
	bp, err := broadphase.New(broadphase.KindTree)
	if err != nil {
		t.Fatalf("broadphase: %v", err)
	}
	eng := ecs.NewEngine()
	core := system.InstallCore(eng, system.NewPhysicsWorld(bp, cp.Vector{Y: 600}, 1), Spawner(eng), nil)
	return eng, core
}

func TestBuildEveryPrefab(t *testing.T) {
	eng, _ := newEngine(t)
	for _, name := range prefabs.Names() {
		t.Run(name, func(t *testing.T) {
			e, err := BuildEntity(eng, name)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			p, ok := ecs.Get(eng, e, component.PrefabComponent)
			if !ok || p.Name != name {
				t.Fatalf("expected prefab tag %q, got %+v", name, p)
			}
			if !ecs.Has(eng, e, component.ExtentsComponent) || !ecs.Has(eng, e, component.PositionComponent) {
				t.Fatalf("expected position and extents")
			}
		})
	}
}

func TestBuildEntityAt(t *testing.T) {
	eng, core := newEngine(t)
	e, err := BuildEntityAt(eng, "bullet", cp.Vector{X: 10, Y: 20}, cp.Vector{X: 5})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	pos, _ := ecs.Get(eng, e, component.PositionComponent)
	if pos.X != 10 || pos.Y != 20 {
		t.Fatalf("expected position override, got %+v", pos)
	}
	pb, _ := ecs.Get(eng, e, component.PhysicsBodyComponent)
	if pb.Body.Velocity != (cp.Vector{X: 5}) || !pb.Body.IsBullet || pb.Body.BulletPolicy != physics.BulletDestroy {
		t.Fatalf("unexpected body %+v", pb.Body)
	}
	if pb.Body.Position != (cp.Vector{X: 10, Y: 20}) {
		t.Fatalf("expected body placed at the entity position, got %v", pb.Body.Position)
	}
	pc, _ := ecs.Get(eng, e, component.PhysicsCollisionComponent)
	if pc.Proxy == nil || pc.Filter == nil || pc.Filter.Group != -1 {
		t.Fatalf("expected registered proxy with the turret group filter, got %+v", pc)
	}
	if core.World.Broadphase.Len() != 1 {
		t.Fatalf("expected one proxy, got %d", core.World.Broadphase.Len())
	}
}

func TestBuildGrowsFullEngine(t *testing.T) {
	bp, err := broadphase.New(broadphase.KindTree)
	if err != nil {
		t.Fatalf("broadphase: %v", err)
	}
	eng := ecs.NewEngine(ecs.WithCapacity(1))
	system.InstallCore(eng, system.NewPhysicsWorld(bp, cp.Vector{}, 1), Spawner(eng), nil)
	eng.CreateEntity()

	spawn := Spawner(eng)
	for i := 0; i < 5; i++ {
		if _, err := spawn("rock", cp.Vector{X: float64(i) * 20}, cp.Vector{}); err != nil {
			t.Fatalf("spawn %d: %v", i, err)
		}
	}
	if eng.EntityCount() != 6 || eng.Capacity() < 6 {
		t.Fatalf("expected 6 entities within capacity, got %d of %d", eng.EntityCount(), eng.Capacity())
	}
}

func TestBuildEntityErrors(t *testing.T) {
	dir := t.TempDir()
	prefabs.SetDir(dir)
	defer prefabs.SetDir("prefabs")

	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	write("ghost.yaml", "name: ghost\ncomponents:\n  extents: {half_width: 1, half_height: 1}\n  haunting: {}\n")
	write("flat.yaml", "name: flat\ncomponents:\n  extents: {half_width: 0, half_height: 1}\n")
	write("empty.yaml", "name: empty\n")
	write("soft.yaml", "name: soft\ncomponents:\n  extents: {half_width: 1, half_height: 1}\n  body: {material: jelly}\n")

	eng, _ := newEngine(t)
	for _, name := range []string{"missing", "ghost", "flat", "empty", "soft"} {
		t.Run(name, func(t *testing.T) {
			if _, err := BuildEntity(eng, name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if eng.EntityCount() != 0 {
		t.Fatalf("failed builds must not leave entities behind, got %d", eng.EntityCount())
	}
}

func TestLoadLevel(t *testing.T) {
	eng, core := newEngine(t)
	lvl, err := levels.LoadLevelFromFS("sandbox")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	info, err := LoadLevel(eng, lvl, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if len(info.Colliders) != len(lvl.SolidRects()) {
		t.Fatalf("expected %d colliders, got %d", len(lvl.SolidRects()), len(info.Colliders))
	}
	if len(info.Entities) != len(lvl.Entities) {
		t.Fatalf("expected %d entities, got %d", len(lvl.Entities), len(info.Entities))
	}
	if want := len(info.Colliders) + len(info.Entities); core.World.Broadphase.Len() != want {
		t.Fatalf("expected %d proxies, got %d", want, core.World.Broadphase.Len())
	}
	if info.Bounds.R != float64(lvl.Width)*lvl.TileSize {
		t.Fatalf("unexpected bounds %+v", info.Bounds)
	}
}

func TestLevelSimulation(t *testing.T) {
	eng, _ := newEngine(t)
	lvl, err := levels.LoadLevelFromFS("sandbox")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	info, err := LoadLevel(eng, lvl, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	spawned := 0
	for i := 1; i <= 120; i++ {
		eng.Update(1.0/60, float64(i)*1000/60)
		for _, evt := range eng.Events().Peek() {
			if evt.Type == system.EventSpawned {
				spawned++
			}
		}
	}
	if spawned == 0 {
		t.Fatalf("expected the turret to fire")
	}

	// Every dynamic prefab must stay inside the level.
	for _, e := range info.Entities {
		if !eng.IsAlive(e) || !ecs.Has(eng, e, component.MoveableComponent) {
			continue
		}
		pos, _ := ecs.Get(eng, e, component.PositionComponent)
		if pos.X < info.Bounds.L || pos.X > info.Bounds.R || pos.Y < info.Bounds.B || pos.Y > info.Bounds.T {
			t.Fatalf("entity %d escaped the level at %+v", e, pos)
		}
	}
}
