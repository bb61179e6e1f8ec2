package broadphase

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

// Bruteforce tests every dynamic proxy against every static proxy and every
// later dynamic proxy.
type Bruteforce struct {
	dynamics proxyList
	statics  proxyList
	rays     *collision.Collider
}

func NewBruteforce() *Bruteforce {
	return &Bruteforce{rays: collision.NewCollider()}
}

func (b *Bruteforce) Add(p *collision.Proxy) {
	if p.Static {
		b.statics.add(p)
	} else {
		b.dynamics.add(p)
	}
}

func (b *Bruteforce) Remove(p *collision.Proxy) {
	if !b.statics.remove(p) {
		b.dynamics.remove(p)
	}
}

func (b *Bruteforce) Update(p *collision.Proxy) {
	b.Remove(p)
	b.Add(p)
}

func (b *Bruteforce) Len() int {
	return len(b.dynamics) + len(b.statics)
}

func (b *Bruteforce) Pairs(fn func(a, c *collision.Proxy)) {
	for i, d := range b.dynamics {
		for _, s := range b.statics {
			if sweptOverlap(d, s) {
				fn(d, s)
			}
		}
		if d.LimitToStaticCheck {
			continue
		}
		for _, o := range b.dynamics[i+1:] {
			if o.LimitToStaticCheck {
				continue
			}
			if sweptOverlap(d, o) {
				fn(d, o)
			}
		}
	}
}

func (b *Bruteforce) QueryArea(bb cp.BB, fn func(p *collision.Proxy), checkDynamic, checkStatic bool) {
	if checkDynamic {
		for _, p := range b.dynamics {
			if physics.BBIntersects(bb, p.Bounds().BB()) {
				fn(p)
			}
		}
	}
	if checkStatic {
		for _, p := range b.statics {
			if physics.BBIntersects(bb, p.Bounds().BB()) {
				fn(p)
			}
		}
	}
}

func (b *Bruteforce) CastRay(ray *collision.Ray, checkDynamic, checkStatic bool) {
	if checkDynamic {
		for _, p := range b.dynamics {
			if canCastRay(ray, p) {
				b.rays.RayAABB(ray, p)
			}
		}
	}
	if checkStatic {
		for _, p := range b.statics {
			if canCastRay(ray, p) {
				b.rays.RayAABB(ray, p)
			}
		}
	}
}
