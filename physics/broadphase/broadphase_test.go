package broadphase

import (
	"slices"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

type fixture struct {
	bp    Broadphase
	names map[*collision.Proxy]string
}

func newFixture(bp Broadphase) *fixture {
	return &fixture{bp: bp, names: make(map[*collision.Proxy]string)}
}

func (f *fixture) dynamic(name string, x, y, hw, hh float64, velocity cp.Vector) *collision.Proxy {
	b := physics.NewBody(physics.MaterialNormal)
	b.Position = cp.Vector{X: x, Y: y}
	b.Velocity = velocity
	b.Update(1, cp.Vector{}, 1)
	p := collision.NewDynamicProxy(0, b, cp.Vector{X: hw, Y: hh}, nil)
	f.names[p] = name
	f.bp.Add(p)
	return p
}

func (f *fixture) static(name string, x, y, hw, hh float64) *collision.Proxy {
	p := collision.NewStaticProxy(0, cp.Vector{X: x, Y: y}, cp.Vector{X: hw, Y: hh}, nil)
	f.names[p] = name
	f.bp.Add(p)
	return p
}

func (f *fixture) pairs(t *testing.T) []string {
	t.Helper()
	var out []string
	f.bp.Pairs(func(a, b *collision.Proxy) {
		if a.Static {
			t.Fatalf("static proxy %s passed first", f.names[a])
		}
		if a.Static && b.Static {
			t.Fatalf("static pair %s/%s", f.names[a], f.names[b])
		}
		names := []string{f.names[a], f.names[b]}
		if !b.Static {
			slices.Sort(names)
		}
		out = append(out, strings.Join(names, "-"))
	})
	slices.Sort(out)
	return out
}

func (f *fixture) query(bb cp.BB, dynamic, static bool) []string {
	var out []string
	f.bp.QueryArea(bb, func(p *collision.Proxy) {
		out = append(out, f.names[p])
	}, dynamic, static)
	slices.Sort(out)
	return out
}

var implementations = []struct {
	name string
	new  func() Broadphase
}{
	{KindBruteforce, func() Broadphase { return NewBruteforce() }},
	{KindTree, func() Broadphase { return NewTree() }},
}

func TestPairs(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			f := newFixture(impl.new())
			f.dynamic("d1", 0, 0, 5, 5, cp.Vector{})
			f.dynamic("d2", 9, 0, 5, 5, cp.Vector{})
			d3 := f.dynamic("d3", 3, 0, 1, 1, cp.Vector{})
			d3.LimitToStaticCheck = true
			f.dynamic("lonely", 300, 300, 1, 1, cp.Vector{})
			f.static("s1", 8, 0, 5, 5)
			f.static("s2", 10, 0, 5, 5)
			f.static("far", 100, 0, 5, 5)

			got := f.pairs(t)
			want := []string{"d1-d2", "d1-s1", "d1-s2", "d2-s1", "d2-s2", "d3-s1"}
			if !slices.Equal(got, want) {
				t.Fatalf("expected pairs %v, got %v", want, got)
			}
			if f.bp.Len() != 7 {
				t.Fatalf("expected 7 proxies, got %d", f.bp.Len())
			}
		})
	}
}

func TestPairsFollowSweep(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			f := newFixture(impl.new())
			f.dynamic("bullet", 0, 0, 1, 1, cp.Vector{X: 100})
			f.dynamic("target", 60, 0, 1, 1, cp.Vector{})
			f.static("wall", 52, 0, 1, 1)
			f.static("behind", -20, 0, 1, 1)

			got := f.pairs(t)
			want := []string{"bullet-target", "bullet-wall"}
			if !slices.Equal(got, want) {
				t.Fatalf("expected pairs %v, got %v", want, got)
			}
		})
	}
}

func TestRemoveAndUpdate(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			f := newFixture(impl.new())
			d := f.dynamic("d", 0, 0, 5, 5, cp.Vector{})
			s := f.static("s", 8, 0, 5, 5)
			o := f.dynamic("o", 4, 0, 5, 5, cp.Vector{})

			f.bp.Remove(o)
			if got := f.pairs(t); !slices.Equal(got, []string{"d-s"}) {
				t.Fatalf("expected only d-s after removal, got %v", got)
			}

			s.SetStatic(cp.Vector{X: 50})
			f.bp.Update(s)
			if got := f.pairs(t); len(got) != 0 {
				t.Fatalf("expected no pairs after moving the static away, got %v", got)
			}

			f.bp.Remove(s)
			f.bp.Remove(d)
			if f.bp.Len() != 0 {
				t.Fatalf("expected empty broadphase, got %d", f.bp.Len())
			}
		})
	}
}

func TestQueryArea(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			f := newFixture(impl.new())
			f.dynamic("d", 0, 0, 1, 1, cp.Vector{})
			f.static("s", 4, 0, 1, 1)
			f.static("far", 40, 0, 1, 1)

			bb := cp.BB{L: -2, B: -2, R: 4, T: 2}
			if got := f.query(bb, true, true); !slices.Equal(got, []string{"d", "s"}) {
				t.Fatalf("expected d and s, got %v", got)
			}
			if got := f.query(bb, false, true); !slices.Equal(got, []string{"s"}) {
				t.Fatalf("expected statics only, got %v", got)
			}
			if got := f.query(bb, true, false); !slices.Equal(got, []string{"d"}) {
				t.Fatalf("expected dynamics only, got %v", got)
			}
		})
	}
}

func TestCastRay(t *testing.T) {
	for _, impl := range implementations {
		t.Run(impl.name, func(t *testing.T) {
			f := newFixture(impl.new())
			wall := f.static("wall", 5, 0, 1, 1)
			f.static("beyond", 8, 0, 1, 1)
			d := f.dynamic("d", 3, 0, 1, 1, cp.Vector{})

			ray := collision.NewRay(cp.Vector{}, cp.Vector{X: 10})
			f.bp.CastRay(ray, false, true)
			if !ray.Hit || ray.Proxy != wall || ray.Position.X != 4 {
				t.Fatalf("expected wall hit at x=4, got %+v", ray)
			}

			ray.Reset()
			f.bp.CastRay(ray, true, true)
			if ray.Proxy != d || ray.Position.X != 2 {
				t.Fatalf("expected dynamic hit at x=2, got %+v", ray)
			}

			ray.Reset()
			ray.Filter = &collision.Filter{Category: 2, Mask: 2}
			wall.Filter = collision.NewFilter()
			d.Filter = collision.NewFilter()
			f.bp.CastRay(ray, true, true)
			if ray.Proxy == wall || ray.Proxy == d {
				t.Fatalf("expected filtered proxies to be skipped, got %s", f.names[ray.Proxy])
			}
		})
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New("grid"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	bp, err := New("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := bp.(*Tree); !ok {
		t.Fatalf("expected tree as the default broadphase, got %T", bp)
	}
}
