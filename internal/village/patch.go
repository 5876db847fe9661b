package village

import (
	"village/internal/poly"
	"village/internal/voronoi"
)

// Patch is one ward of the layout.
type Patch struct {
	Shape      *poly.Polygon
	WithinCity bool
}

// patchFromRegion turns a Voronoi region into a ring of pool handles.
// Circumcenters get one handle per triangle, so adjacent patches share
// their common vertices by identity.
func patchFromRegion(pool *poly.Pool, r *voronoi.Region, handles map[*voronoi.Triangle]poly.Point) *Patch {
	shape := poly.New(pool)
	for _, t := range r.Triangles {
		h, ok := handles[t]
		if !ok {
			h = pool.Add(t.Center)
			handles[t] = h
		}
		shape.Append(h)
	}
	return &Patch{Shape: shape}
}
