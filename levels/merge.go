package levels

import "github.com/jakecoffman/cp"

// Rect is an axis aligned block of tiles.
type Rect struct {
	X, Y, W, H int
}

// Center and half extents of r in world units.
func (r Rect) Bounds(tileSize float64) (center, extents cp.Vector) {
	extents = cp.Vector{X: float64(r.W) * tileSize / 2, Y: float64(r.H) * tileSize / 2}
	center = cp.Vector{X: float64(r.X)*tileSize + extents.X, Y: float64(r.Y)*tileSize + extents.Y}
	return center, extents
}

// SolidRects greedily merges solid tiles into rectangles: each run is grown
// right as far as it goes, then down while every row below is solid.
func (l *Level) SolidRects() []Rect {
	if l.Width <= 0 || l.Height <= 0 {
		return nil
	}
	visited := make([]bool, l.Width*l.Height)
	index := func(x, y int) int { return y*l.Width + x }
	open := func(x, y int) bool { return !visited[index(x, y)] && l.Solid(x, y) }

	var rects []Rect
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if !open(x, y) {
				continue
			}

			w := 0
			for x2 := x; x2 < l.Width && open(x2, y); x2++ {
				w++
			}

			h := 1
			for y2 := y + 1; y2 < l.Height; y2++ {
				rowOK := true
				for x2 := x; x2 < x+w; x2++ {
					if !open(x2, y2) {
						rowOK = false
						break
					}
				}
				if !rowOK {
					break
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					visited[index(xx, yy)] = true
				}
			}
			rects = append(rects, Rect{X: x, Y: y, W: w, H: h})
		}
	}
	return rects
}
