package collision

import "github.com/jakecoffman/cp"

// Ray is a segment query that remembers the closest proxy it reached.
type Ray struct {
	Origin cp.Vector
	Target cp.Vector
	Delta  cp.Vector
	// Filter limits which proxies the ray can hit. Nil hits everything.
	Filter *Filter

	Hit      bool
	Position cp.Vector
	Normal   cp.Vector
	// Distance travelled from Origin to Position.
	Distance float64
	Proxy    *Proxy
}

func NewRay(origin, target cp.Vector) *Ray {
	r := &Ray{}
	r.Set(origin, target)
	return r
}

// Set aims the ray and clears any previous result.
func (r *Ray) Set(origin, target cp.Vector) {
	r.Origin = origin
	r.Target = target
	r.Delta = target.Sub(origin)
	r.Reset()
}

func (r *Ray) Reset() {
	r.Hit = false
	r.Position = cp.Vector{}
	r.Normal = cp.Vector{}
	r.Distance = 0
	r.Proxy = nil
}

// Report records a hit at origin+delta unless a closer one is already held.
func (r *Ray) Report(delta, normal cp.Vector, proxy *Proxy) {
	d := delta.Length()
	if r.Hit && d >= r.Distance {
		return
	}
	r.Hit = true
	r.Distance = d
	r.Position = r.Origin.Add(delta)
	r.Normal = normal
	r.Proxy = proxy
}
