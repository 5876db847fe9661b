package voronoi

import (
	"sort"

	"village/internal/poly"
)

// Region is the Voronoi cell of one site: the circumcenters of every
// triangle incident to it, sorted around the site.
type Region struct {
	Site      int
	Triangles []*Triangle

	seed poly.Vec
}

// Seed is the site coordinate.
func (r *Region) Seed() poly.Vec { return r.seed }

// Vertices returns the circumcenters in ring order.
func (r *Region) Vertices() []poly.Vec {
	out := make([]poly.Vec, len(r.Triangles))
	for i, t := range r.Triangles {
		out[i] = t.Center
	}
	return out
}

// Centroid is the mean of the circumcenters.
func (r *Region) Centroid() poly.Vec {
	var c poly.Vec
	if len(r.Triangles) == 0 {
		return r.seed
	}
	for _, t := range r.Triangles {
		c = c.Add(t.Center)
	}
	return c.Scale(1 / float64(len(r.Triangles)))
}

func (r *Region) sort() {
	sort.SliceStable(r.Triangles, func(i, j int) bool {
		return compareAround(r.seed, r.Triangles[i].Center, r.Triangles[j].Center) < 0
	})
}

// compareAround orders two points by angle around seed: the x < 0 half
// first, then by the sign of the cross product inside a half.
func compareAround(seed, c1, c2 poly.Vec) int {
	x1, y1 := c1.X-seed.X, c1.Y-seed.Y
	x2, y2 := c2.X-seed.X, c2.Y-seed.Y

	if x1 >= 0 && x2 < 0 {
		return 1
	}
	if x2 >= 0 && x1 < 0 {
		return -1
	}
	// Straight below the seed opens the x >= 0 half, straight above closes it.
	if x1 == 0 && x2 == 0 {
		switch {
		case y1 < y2:
			return -1
		case y1 > y2:
			return 1
		}
		return 0
	}

	switch c := x2*y1 - x1*y2; {
	case c > 0:
		return 1
	case c < 0:
		return -1
	}
	return 0
}
