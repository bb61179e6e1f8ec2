package broadphase

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

// Tree indexes static proxies in a chipmunk space BB-tree and pairs dynamic
// proxies with each other by sweep and prune on the x axis.
type Tree struct {
	space   *cp.Space
	shapes  map[*collision.Proxy]*cp.Shape
	statics map[*cp.Shape]*collision.Proxy

	dynamics proxyList
	sap      sweepAndPrune
	rays     *collision.Collider
}

func NewTree() *Tree {
	return &Tree{
		space:   cp.NewSpace(),
		shapes:  make(map[*collision.Proxy]*cp.Shape),
		statics: make(map[*cp.Shape]*collision.Proxy),
		rays:    collision.NewCollider(),
	}
}

func (t *Tree) Add(p *collision.Proxy) {
	if !p.Static {
		t.dynamics.add(p)
		return
	}
	if _, ok := t.shapes[p]; ok {
		return
	}
	shape := cp.NewBox2(t.space.StaticBody, p.Bounds().BB(), 0)
	t.space.AddShape(shape)
	t.shapes[p] = shape
	t.statics[shape] = p
}

func (t *Tree) Remove(p *collision.Proxy) {
	if shape, ok := t.shapes[p]; ok {
		t.space.RemoveShape(shape)
		delete(t.shapes, p)
		delete(t.statics, shape)
		return
	}
	t.dynamics.remove(p)
}

// Update reinserts p so its index entry matches its current bounds and kind.
func (t *Tree) Update(p *collision.Proxy) {
	t.Remove(p)
	t.Add(p)
}

func (t *Tree) Len() int {
	return len(t.dynamics) + len(t.shapes)
}

func (t *Tree) Pairs(fn func(a, b *collision.Proxy)) {
	for _, d := range t.dynamics {
		t.queryStatics(d.SweptBB(), func(s *collision.Proxy) {
			fn(d, s)
		})
	}
	t.sap.pairs(t.dynamics, fn)
}

func (t *Tree) queryStatics(bb cp.BB, fn func(p *collision.Proxy)) {
	t.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if p, ok := t.statics[shape]; ok {
			fn(p)
		}
	}, nil)
}

func (t *Tree) QueryArea(bb cp.BB, fn func(p *collision.Proxy), checkDynamic, checkStatic bool) {
	if checkDynamic {
		for _, p := range t.dynamics {
			if physics.BBIntersects(bb, p.Bounds().BB()) {
				fn(p)
			}
		}
	}
	if checkStatic {
		t.queryStatics(bb, fn)
	}
}

func (t *Tree) CastRay(ray *collision.Ray, checkDynamic, checkStatic bool) {
	if checkDynamic {
		for _, p := range t.dynamics {
			if canCastRay(ray, p) {
				t.rays.RayAABB(ray, p)
			}
		}
	}
	if checkStatic {
		t.queryStatics(rayBB(ray), func(p *collision.Proxy) {
			if canCastRay(ray, p) {
				t.rays.RayAABB(ray, p)
			}
		})
	}
}
