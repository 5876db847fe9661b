package voronoi

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"village/internal/poly"
)

// frameSize is the number of synthetic corner points inserted ahead of the
// input. Internal indices below frameSize are frame points.
const frameSize = 4

// ErrBrokenCavity reports an insertion whose cavity boundary does not close
// into a single loop, which only happens on degenerate input.
var ErrBrokenCavity = errors.New("voronoi: cavity boundary is not a closed loop")

// ErrUncovered reports a new point that lies in no circumcircle, or one
// that would form a zero-area triangle.
var ErrUncovered = errors.New("voronoi: point is not covered by the triangulation")

// Triangle is a Delaunay triangle over internal point indices, wound
// consistently, with its circumcircle cached.
type Triangle struct {
	A, B, C int
	Center  poly.Vec
	Radius  float64
}

func newTriangle(pts []poly.Vec, a, b, c int) *Triangle {
	pa, pb, pc := pts[a], pts[b], pts[c]
	s := (pb.X-pa.X)*(pb.Y+pa.Y) + (pc.X-pb.X)*(pc.Y+pb.Y) + (pa.X-pc.X)*(pa.Y+pc.Y)
	if s <= 0 {
		b, c = c, b
		pb, pc = pc, pb
	}

	d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
	sa := pa.X*pa.X + pa.Y*pa.Y
	sb := pb.X*pb.X + pb.Y*pb.Y
	sc := pc.X*pc.X + pc.Y*pc.Y
	center := poly.Vec{
		X: (sa*(pb.Y-pc.Y) + sb*(pc.Y-pa.Y) + sc*(pa.Y-pb.Y)) / d,
		Y: (sa*(pc.X-pb.X) + sb*(pa.X-pc.X) + sc*(pb.X-pa.X)) / d,
	}
	return &Triangle{A: a, B: b, C: c, Center: center, Radius: center.Dist(pa)}
}

// hasEdge reports whether a->b is one of the directed edges.
func (t *Triangle) hasEdge(a, b int) bool {
	return (t.A == a && t.B == b) || (t.B == a && t.C == b) || (t.C == a && t.A == b)
}

func (t *Triangle) touches(i int) bool { return t.A == i || t.B == i || t.C == i }

// isReal reports a triangle with no frame corner.
func (t *Triangle) isReal() bool {
	return t.A >= frameSize && t.B >= frameSize && t.C >= frameSize
}

// Diagram is an incremental Delaunay triangulation and its dual regions.
type Diagram struct {
	points    []poly.Vec
	order     []int
	triangles []*Triangle

	sites   map[poly.Vec]bool
	regions map[int]*Region
	dirty   bool
}

// Build triangulates points inside a frame a quarter of the input extent
// larger on each side. A flat extent borrows the other axis' margin, or 1
// when both are flat. Input indices are preserved as region sites.
func Build(points []poly.Vec) (*Diagram, error) {
	minX, minY := 1e10, 1e10
	maxX, maxY := -1e9, -1e9
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	dx := (maxX - minX) * 0.25
	dy := (maxY - minY) * 0.25
	if dx <= 0 {
		dx = max(dy, 1)
	}
	if dy <= 0 {
		dy = max(dx, 1)
	}

	d := newDiagram(minX-dx, minY-dy, maxX+dx, maxY+dy, len(points))
	for i, p := range points {
		d.points = append(d.points, p)
		if err := d.insert(frameSize + i); err != nil {
			return nil, fmt.Errorf("insert point %d: %w", i, err)
		}
	}
	return d, nil
}

func newDiagram(minX, minY, maxX, maxY float64, capacity int) *Diagram {
	d := &Diagram{
		points:  make([]poly.Vec, 0, frameSize+capacity),
		order:   make([]int, 0, capacity),
		sites:   make(map[poly.Vec]bool, capacity),
		regions: make(map[int]*Region),
	}
	d.points = append(d.points,
		poly.Vec{X: minX, Y: minY},
		poly.Vec{X: minX, Y: maxY},
		poly.Vec{X: maxX, Y: minY},
		poly.Vec{X: maxX, Y: maxY},
	)
	d.triangles = append(d.triangles,
		newTriangle(d.points, 0, 1, 2),
		newTriangle(d.points, 1, 2, 3),
	)
	d.dirty = true
	return d
}

// insert adds the point already stored at idx. A duplicate of an inserted
// site is skipped.
func (d *Diagram) insert(idx int) error {
	p := d.points[idx]
	if d.sites[p] {
		return nil
	}

	var cavity []*Triangle
	for _, t := range d.triangles {
		if p.Dist(t.Center) < t.Radius {
			cavity = append(cavity, t)
		}
	}
	if len(cavity) == 0 {
		return ErrUncovered
	}

	// Shared cavity edges appear once in each direction; the rest bound it.
	var from, to []int
	for _, t1 := range cavity {
		e1, e2, e3 := true, true, true
		for _, t2 := range cavity {
			if t2 == t1 {
				continue
			}
			if e1 && t2.hasEdge(t1.B, t1.A) {
				e1 = false
			}
			if e2 && t2.hasEdge(t1.C, t1.B) {
				e2 = false
			}
			if e3 && t2.hasEdge(t1.A, t1.C) {
				e3 = false
			}
			if !(e1 || e2 || e3) {
				break
			}
		}
		if e1 {
			from, to = append(from, t1.A), append(to, t1.B)
		}
		if e2 {
			from, to = append(from, t1.B), append(to, t1.C)
		}
		if e3 {
			from, to = append(from, t1.C), append(to, t1.A)
		}
	}

	fan := make([]*Triangle, 0, len(from))
	k := 0
	for {
		t := newTriangle(d.points, idx, from[k], to[k])
		if math.IsNaN(t.Radius) || math.IsInf(t.Radius, 0) {
			return ErrUncovered
		}
		fan = append(fan, t)
		k = indexOf(from, to[k])
		if k == -1 || len(fan) > len(from) {
			return ErrBrokenCavity
		}
		if k == 0 {
			break
		}
	}
	if len(fan) != len(from) {
		// The walk closed a loop that left boundary edges behind.
		return ErrBrokenCavity
	}

	gone := make(map[*Triangle]bool, len(cavity))
	for _, t := range cavity {
		gone[t] = true
	}
	kept := d.triangles[:0]
	for _, t := range d.triangles {
		if !gone[t] {
			kept = append(kept, t)
		}
	}
	d.triangles = append(kept, fan...)
	d.order = append(d.order, idx)
	d.sites[p] = true
	d.dirty = true
	return nil
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// Partitioning returns the regions of every inserted input point, in the
// current point order, dropping regions that touch the frame.
func (d *Diagram) Partitioning() []*Region {
	out := make([]*Region, 0, len(d.order))
	for _, idx := range d.order {
		r := d.region(idx)
		valid := len(r.Triangles) > 0
		for _, t := range r.Triangles {
			if !t.isReal() {
				valid = false
				break
			}
		}
		if valid {
			out = append(out, r)
		}
	}
	return out
}

// Region returns the region of input site i, or nil if it was never
// inserted.
func (d *Diagram) Region(site int) *Region {
	idx := site + frameSize
	if idx < frameSize || idx >= len(d.points) {
		return nil
	}
	if indexOf(d.order, idx) == -1 {
		return nil
	}
	return d.region(idx)
}

func (d *Diagram) region(idx int) *Region {
	if d.dirty {
		d.rebuildRegions()
	}
	return d.regions[idx]
}

func (d *Diagram) rebuildRegions() {
	d.regions = make(map[int]*Region, len(d.points))
	for idx := range d.points {
		d.regions[idx] = d.buildRegion(idx)
	}
	d.dirty = false
}

func (d *Diagram) buildRegion(idx int) *Region {
	r := &Region{Site: idx - frameSize, seed: d.points[idx]}
	for _, t := range d.triangles {
		if t.touches(idx) {
			r.Triangles = append(r.Triangles, t)
		}
	}
	r.sort()
	return r
}

// SortPoints reorders iteration over the input points. Triangles keep
// referring to the same points.
func (d *Diagram) SortPoints(less func(a, b poly.Vec) bool) {
	sort.SliceStable(d.order, func(i, j int) bool {
		return less(d.points[d.order[i]], d.points[d.order[j]])
	})
}

// Len is the number of inserted input points.
func (d *Diagram) Len() int { return len(d.order) }

// Point returns the i-th inserted point in the current order.
func (d *Diagram) Point(i int) poly.Vec { return d.points[d.order[i]] }

// Site returns the input index of the i-th point in the current order.
func (d *Diagram) Site(i int) int { return d.order[i] - frameSize }

// Points returns the input points in their original order.
func (d *Diagram) Points() []poly.Vec {
	out := make([]poly.Vec, len(d.points)-frameSize)
	copy(out, d.points[frameSize:])
	return out
}

// Frame returns the four synthetic corners.
func (d *Diagram) Frame() []poly.Vec {
	out := make([]poly.Vec, frameSize)
	copy(out, d.points[:frameSize])
	return out
}

// Triangles exposes the current triangulation. Callers must not mutate it.
func (d *Diagram) Triangles() []*Triangle { return d.triangles }

// Relax performs one Lloyd step: every site in subset whose region is real
// moves to its region centroid, then the whole diagram is rebuilt.
func Relax(d *Diagram, subset []int) (*Diagram, error) {
	pts := d.Points()
	want := make(map[int]bool, len(subset))
	for _, s := range subset {
		want[s] = true
	}
	for _, r := range d.Partitioning() {
		if want[r.Site] {
			pts[r.Site] = r.Centroid()
		}
	}
	return Build(pts)
}
