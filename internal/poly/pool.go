package poly

// Point is a stable handle into a Pool. Two polygons sharing an edge hold
// the same handles, so moving a point through the pool moves it everywhere.
type Point int

// Pool is the single growable point table shared by every polygon of a
// layout. Handles are never reused or invalidated.
type Pool struct {
	pts []Vec
}

func NewPool() *Pool {
	return &Pool{pts: make([]Vec, 0, 256)}
}

// Add stores v and returns its new handle.
func (p *Pool) Add(v Vec) Point {
	p.pts = append(p.pts, v)
	return Point(len(p.pts) - 1)
}

func (p *Pool) At(pt Point) Vec { return p.pts[pt] }

// Set rewrites one entry; every polygon referencing pt observes it.
func (p *Pool) Set(pt Point, v Vec) { p.pts[pt] = v }

func (p *Pool) Len() int { return len(p.pts) }
