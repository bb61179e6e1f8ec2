package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	names := Names()
	if len(names) == 0 {
		t.Fatalf("expected embedded prefabs")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if spec.Name != name {
				t.Fatalf("expected name %q, got %q", name, spec.Name)
			}
			if _, ok := spec.Components["extents"]; !ok {
				t.Fatalf("expected extents component")
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	spec, err := LoadEntityBuildSpec("bullet.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	collision, err := DecodeComponentSpec[CollisionComponentSpec](spec.Components["collision"])
	if err != nil {
		t.Fatalf("decode collision: %v", err)
	}
	if collision.Filter == nil || collision.Filter.Group != -1 || collision.Filter.Mask != 0xFFFFFFFF {
		t.Fatalf("unexpected filter %+v", collision.Filter)
	}
	body, err := DecodeComponentSpec[BodyComponentSpec](spec.Components["body"])
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Bullet || body.BulletPolicy != "destroy" || body.GlobalForceFactor == nil || *body.GlobalForceFactor != 0 {
		t.Fatalf("unexpected body %+v", body)
	}
	dc, err := DecodeComponentSpec[DebugColorComponentSpec](spec.Components["debug_color"])
	if err != nil {
		t.Fatalf("decode color: %v", err)
	}
	if dc.Color.Color != (color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}) {
		t.Fatalf("unexpected color %v", dc.Color.Color)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{"#102030", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"#123", nil, true},
		{"#zz0000", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseHexColor(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil || got != tc.want {
				t.Fatalf("expected %v, got %v (%v)", tc.want, got, err)
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	SetDir("")
	defer SetDir("prefabs")

	for _, name := range []string{"door_switch", "door_switch.tengo", "scripts/door_switch.tengo", "prefabs/scripts/door_switch.tengo"} {
		if _, err := LoadScript(name); err != nil {
			t.Fatalf("load %q: %v", name, err)
		}
	}
	if _, err := LoadScript("missing"); err == nil {
		t.Fatalf("expected error for a missing script")
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	SetDir(dir)
	defer SetDir("prefabs")

	if err := os.WriteFile(filepath.Join(dir, "rock.yaml"), []byte("name: pebble\ncomponents:\n  extents: {half_width: 1, half_height: 1}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spec, err := LoadEntityBuildSpec("rock")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if spec.Name != "pebble" {
		t.Fatalf("expected disk copy to win, got %q", spec.Name)
	}
	if _, ok := ModTime("rock"); !ok {
		t.Fatalf("expected mod time for disk copy")
	}

	spec, err = LoadEntityBuildSpec("chicken")
	if err != nil || spec.Name != "chicken" {
		t.Fatalf("expected embedded fallback, got %q (%v)", spec.Name, err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want Change
		ok   bool
	}{
		{"spec", fsnotify.Event{Name: "prefabs/rock.yaml", Op: fsnotify.Write}, Change{Path: "prefabs/rock.yaml", Name: "rock", Kind: ChangeSpec}, true},
		{"script", fsnotify.Event{Name: "prefabs/scripts/door_switch.tengo", Op: fsnotify.Create}, Change{Path: "prefabs/scripts/door_switch.tengo", Name: "door_switch.tengo", Kind: ChangeScript}, true},
		{"chmod", fsnotify.Event{Name: "prefabs/rock.yaml", Op: fsnotify.Chmod}, Change{}, false},
		{"other", fsnotify.Event{Name: "prefabs/notes.txt", Op: fsnotify.Write}, Change{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := classify(tc.ev)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected %+v/%v, got %+v/%v", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "bird.yaml"), []byte("name: bird\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case change := <-w.Events:
		if change.Name != "bird" || change.Kind != ChangeSpec {
			t.Fatalf("unexpected change %+v", change)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}
