package broadphase

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/glaze2d/physics"
	"github.com/milk9111/glaze2d/physics/collision"
)

type endpoint struct {
	value float64
	index int
	isMin bool
}

// sweepAndPrune finds overlapping x intervals of swept proxy bounds. Buffers
// are reused between ticks; the endpoint order from the previous tick is kept
// so the insertion sort stays close to linear while proxies move little.
type sweepAndPrune struct {
	bounds    []cp.BB
	endpoints []endpoint
	active    []int
}

func (s *sweepAndPrune) pairs(proxies []*collision.Proxy, fn func(a, b *collision.Proxy)) {
	s.bounds = s.bounds[:0]
	for _, p := range proxies {
		s.bounds = append(s.bounds, p.SweptBB())
	}

	if len(s.endpoints) != 2*len(proxies) {
		s.endpoints = s.endpoints[:0]
		for i := range proxies {
			s.endpoints = append(s.endpoints, endpoint{index: i, isMin: true}, endpoint{index: i})
		}
	}
	for i := range s.endpoints {
		ep := &s.endpoints[i]
		if ep.isMin {
			ep.value = s.bounds[ep.index].L
		} else {
			ep.value = s.bounds[ep.index].R
		}
	}
	insertionSort(s.endpoints)

	s.active = s.active[:0]
	for _, ep := range s.endpoints {
		if !ep.isMin {
			for i, idx := range s.active {
				if idx == ep.index {
					s.active[i] = s.active[len(s.active)-1]
					s.active = s.active[:len(s.active)-1]
					break
				}
			}
			continue
		}
		a := proxies[ep.index]
		if !a.LimitToStaticCheck {
			for _, other := range s.active {
				b := proxies[other]
				if b.LimitToStaticCheck || !physics.BBIntersects(s.bounds[ep.index], s.bounds[other]) {
					continue
				}
				if other < ep.index {
					fn(b, a)
				} else {
					fn(a, b)
				}
			}
		}
		s.active = append(s.active, ep.index)
	}
}

// insertionSort orders endpoints by value, placing starts before ends on ties
// so touching intervals are reported.
func insertionSort(eps []endpoint) {
	for i := 1; i < len(eps); i++ {
		key := eps[i]
		j := i - 1
		for j >= 0 && endpointLess(key, eps[j]) {
			eps[j+1] = eps[j]
			j--
		}
		eps[j+1] = key
	}
}

func endpointLess(a, b endpoint) bool {
	if a.value != b.value {
		return a.value < b.value
	}
	return a.isMin && !b.isMin
}
