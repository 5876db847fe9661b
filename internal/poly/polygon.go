package poly

import "math"

// Polygon is an ordered ring of point handles bound to a Pool. It never
// copies coordinates: every geometric query reads through the pool.
type Polygon struct {
	pool  *Pool
	verts []Point
}

// New builds a ring over verts. The slice is copied.
func New(pool *Pool, verts ...Point) *Polygon {
	vs := make([]Point, len(verts))
	copy(vs, verts)
	return &Polygon{pool: pool, verts: vs}
}

func (p *Polygon) Pool() *Pool { return p.pool }

func (p *Polygon) Len() int { return len(p.verts) }

func (p *Polygon) At(i int) Point { return p.verts[i] }

// Pos returns the coordinate of the i-th vertex.
func (p *Polygon) Pos(i int) Vec { return p.pool.At(p.verts[i]) }

// Vertices returns a copy of the handle ring.
func (p *Polygon) Vertices() []Point {
	out := make([]Point, len(p.verts))
	copy(out, p.verts)
	return out
}

// Vecs returns the current coordinates of the ring.
func (p *Polygon) Vecs() []Vec {
	out := make([]Vec, len(p.verts))
	for i, pt := range p.verts {
		out[i] = p.pool.At(pt)
	}
	return out
}

func (p *Polygon) Copy() *Polygon { return New(p.pool, p.verts...) }

func (p *Polygon) Append(pt Point) { p.verts = append(p.verts, pt) }

func (p *Polygon) Set(i int, pt Point) { p.verts[i] = pt }

func (p *Polygon) IndexOf(pt Point) int {
	for i, v := range p.verts {
		if v == pt {
			return i
		}
	}
	return -1
}

func (p *Polygon) Contains(pt Point) bool { return p.IndexOf(pt) != -1 }

// Remove drops the first occurrence of pt and reports whether it was found.
func (p *Polygon) Remove(pt Point) bool {
	i := p.IndexOf(pt)
	if i == -1 {
		return false
	}
	p.RemoveAt(i)
	return true
}

func (p *Polygon) RemoveAt(i int) {
	p.verts = append(p.verts[:i], p.verts[i+1:]...)
}

// Replace swaps every occurrence of old for pt and returns how many were
// rewritten.
func (p *Polygon) Replace(old, pt Point) int {
	n := 0
	for i, v := range p.verts {
		if v == old {
			p.verts[i] = pt
			n++
		}
	}
	return n
}

func (p *Polygon) Next(pt Point) Point {
	return p.verts[(p.IndexOf(pt)+1)%len(p.verts)]
}

func (p *Polygon) Prev(pt Point) Point {
	n := len(p.verts)
	return p.verts[(p.IndexOf(pt)+n-1)%n]
}

// ForEdge calls fn for each consecutive pair, wrapping around.
func (p *Polygon) ForEdge(fn func(a, b Point)) {
	n := len(p.verts)
	for i := 0; i < n; i++ {
		fn(p.verts[i], p.verts[(i+1)%n])
	}
}

// FindEdge returns the index of a when the directed edge a->b is part of
// the ring, -1 otherwise.
func (p *Polygon) FindEdge(a, b Point) int {
	i := p.IndexOf(a)
	if i != -1 && p.verts[(i+1)%len(p.verts)] == b {
		return i
	}
	return -1
}

// Split cuts the ring at two vertex positions. The first piece runs from
// the lower index to the higher one, the second from the higher index
// around the end of the ring back to the lower one. Both keep the cut
// vertices.
func (p *Polygon) Split(i1, i2 int) (*Polygon, *Polygon) {
	if i1 > i2 {
		i1, i2 = i2, i1
	}
	first := New(p.pool, p.verts[i1:i2+1]...)

	rest := make([]Point, 0, len(p.verts)-i2+i1+1)
	rest = append(rest, p.verts[i2:]...)
	rest = append(rest, p.verts[:i1+1]...)
	return first, &Polygon{pool: p.pool, verts: rest}
}

// SplitAt is Split addressed by handles.
func (p *Polygon) SplitAt(a, b Point) (*Polygon, *Polygon) {
	return p.Split(p.IndexOf(a), p.IndexOf(b))
}

// Distance is the distance from v to the nearest vertex, not to the
// boundary. The wall retention filter is tuned against this.
func (p *Polygon) Distance(v Vec) float64 {
	d := math.Inf(1)
	for _, pt := range p.verts {
		if dd := p.pool.At(pt).Dist(v); dd < d {
			d = dd
		}
	}
	return d
}

// Nearest returns the vertex closest to v. It panics on an empty ring.
func (p *Polygon) Nearest(v Vec) Point {
	best := p.verts[0]
	d := p.pool.At(best).Dist(v)
	for _, pt := range p.verts[1:] {
		if dd := p.pool.At(pt).Dist(v); dd < d {
			d = dd
			best = pt
		}
	}
	return best
}

// Centroid is the arithmetic mean of the vertices.
func (p *Polygon) Centroid() Vec {
	var c Vec
	if len(p.verts) == 0 {
		return c
	}
	for _, pt := range p.verts {
		c = c.Add(p.pool.At(pt))
	}
	return c.Scale(1 / float64(len(p.verts)))
}

// Area is the unsigned shoelace area.
func (p *Polygon) Area() float64 {
	n := len(p.verts)
	s := 0.0
	for i := 0; i < n; i++ {
		a := p.pool.At(p.verts[i])
		b := p.pool.At(p.verts[(i+1)%n])
		s += a.Cross(b)
	}
	return math.Abs(s) * 0.5
}

// SmoothVertex returns (prev + f*pt + next) / (2+f).
func (p *Polygon) SmoothVertex(pt Point, f float64) Vec {
	prev := p.pool.At(p.Prev(pt))
	next := p.pool.At(p.Next(pt))
	return prev.Add(p.pool.At(pt).Scale(f)).Add(next).Scale(1 / (2 + f))
}

// SmoothVertexEq returns a Laplacian-smoothed copy of every vertex. The
// ring itself is not modified.
func (p *Polygon) SmoothVertexEq(f float64) []Vec {
	n := len(p.verts)
	out := make([]Vec, n)
	for i := 0; i < n; i++ {
		prev := p.pool.At(p.verts[(i+n-1)%n])
		next := p.pool.At(p.verts[(i+1)%n])
		cur := p.pool.At(p.verts[i])
		out[i] = prev.Add(cur.Scale(f)).Add(next).Scale(1 / (2 + f))
	}
	return out
}

// SharesEdge reports whether some edge of p appears in o in either
// direction.
func (p *Polygon) SharesEdge(o *Polygon) bool {
	for i, pt := range p.verts {
		next := p.verts[(i+1)%len(p.verts)]
		if o.FindEdge(pt, next) != -1 || o.FindEdge(next, pt) != -1 {
			return true
		}
	}
	return false
}

// Borders reports whether the rings share an edge or at least a vertex.
func (p *Polygon) Borders(o *Polygon) bool {
	for _, pt := range p.verts {
		if o.Contains(pt) {
			return true
		}
	}
	return false
}

// Dedup drops repeated handles (keeping the first occurrence) and
// vertices sitting on their predecessor's coordinate. It returns the
// number of vertices removed.
func (p *Polygon) Dedup() int {
	before := len(p.verts)
	seen := make(map[Point]bool, before)
	kept := p.verts[:0]
	for _, pt := range p.verts {
		if seen[pt] {
			continue
		}
		seen[pt] = true
		kept = append(kept, pt)
	}
	p.verts = kept

	for i := 0; i < len(p.verts) && len(p.verts) > 1; {
		prev := p.verts[(i+len(p.verts)-1)%len(p.verts)]
		if p.pool.At(prev) == p.pool.At(p.verts[i]) {
			p.RemoveAt(i)
			continue
		}
		i++
	}
	return before - len(p.verts)
}

// Degenerate reports a ring that can no longer bound an area.
func (p *Polygon) Degenerate() bool { return len(p.verts) < 3 }
