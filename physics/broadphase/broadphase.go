package broadphase

import (
	"fmt"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

// Broadphase tracks proxies and hands out candidate pairs for the narrow
// phase. Static proxies are never paired with each other.
type Broadphase interface {
	Add(p *collision.Proxy)
	Remove(p *collision.Proxy)
	// Update refreshes a proxy after its static position, size or kind changed.
	Update(p *collision.Proxy)
	// Pairs calls fn for every dynamic/static and dynamic/dynamic pair whose
	// swept bounds touch. A dynamic proxy is always passed first.
	Pairs(fn func(a, b *collision.Proxy))
	QueryArea(bb cp.BB, fn func(p *collision.Proxy), checkDynamic, checkStatic bool)
	CastRay(ray *collision.Ray, checkDynamic, checkStatic bool)
	Len() int
}

const (
	KindBruteforce = "bruteforce"
	KindTree       = "tree"
)

// New builds the broadphase registered under kind.
func New(kind string) (Broadphase, error) {
	switch kind {
	case KindBruteforce:
		return NewBruteforce(), nil
	case KindTree, "":
		return NewTree(), nil
	default:
		return nil, fmt.Errorf("broadphase: unknown kind %q", kind)
	}
}

// proxyList is an ordered set of proxies.
type proxyList []*collision.Proxy

func (l *proxyList) add(p *collision.Proxy) bool {
	if slices.Contains(*l, p) {
		return false
	}
	*l = append(*l, p)
	return true
}

func (l *proxyList) remove(p *collision.Proxy) bool {
	i := slices.Index(*l, p)
	if i < 0 {
		return false
	}
	*l = slices.Delete(*l, i, i+1)
	return true
}

func sweptOverlap(a, b *collision.Proxy) bool {
	return physics.BBIntersects(a.SweptBB(), b.SweptBB())
}

func canCastRay(ray *collision.Ray, p *collision.Proxy) bool {
	return p.Active && !p.Sensor && collision.Check(ray.Filter, p.Filter)
}

func rayBB(ray *collision.Ray) cp.BB {
	return physics.SweptBB(physics.AABB{Position: ray.Origin}, ray.Delta)
}
