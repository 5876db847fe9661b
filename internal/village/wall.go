package village

import (
	"log/slog"
	"slices"

	"village/internal/poly"
)

// CurtainWall is the outline of the walled patches and the gates cut
// into it.
type CurtainWall struct {
	shape   *poly.Polygon
	patches []*Patch
	gates   []poly.Point
}

// NewCurtainWall outlines patches and picks spaced gates, skipping any
// vertex in reserved.
func NewCurtainWall(rng *Rand, patches []*Patch, reserved []poly.Point, log *slog.Logger) (*CurtainWall, error) {
	if len(patches) == 0 {
		return nil, failure("no patches to wall")
	}
	w := &CurtainWall{patches: slices.Clone(patches)}

	if len(patches) == 1 {
		w.shape = patches[0].Shape
	} else {
		shape, err := findCircumference(patches)
		if err != nil {
			return nil, err
		}
		w.shape = shape
	}
	if w.shape.Len() < 3 {
		return nil, failure("wall outline has %d vertices", w.shape.Len())
	}

	if err := w.buildGates(rng, reserved, log); err != nil {
		return nil, err
	}
	return w, nil
}

// findCircumference collects every directed ring edge whose reverse is
// not used by another patch and walks them into one closed outline.
func findCircumference(patches []*Patch) (*poly.Polygon, error) {
	type edge struct{ a, b poly.Point }

	var edges []edge
	for _, p := range patches {
		p.Shape.ForEdge(func(a, b poly.Point) {
			for _, o := range patches {
				if o != p && o.Shape.FindEdge(b, a) != -1 {
					return
				}
			}
			edges = append(edges, edge{a, b})
		})
	}
	if len(edges) == 0 {
		return nil, failure("walled patches have no outer edge")
	}

	next := make(map[poly.Point]poly.Point, len(edges))
	for _, e := range edges {
		next[e.a] = e.b
	}

	out := poly.New(patches[0].Shape.Pool())
	start := edges[0].a
	cur := start
	for {
		out.Append(cur)
		if out.Len() > len(edges) {
			return nil, failure("wall outline does not close")
		}
		n, ok := next[cur]
		if !ok {
			return nil, failure("wall outline breaks at vertex %d", cur)
		}
		if n == start {
			break
		}
		cur = n
	}
	return out, nil
}

func (w *CurtainWall) buildGates(rng *Rand, reserved []poly.Point, log *slog.Logger) error {
	// An entrance needs more than one inner patch around it so a street
	// can reach the centre from it.
	var entrances []poly.Point
	for _, v := range w.shape.Vertices() {
		if slices.Contains(reserved, v) {
			continue
		}
		if len(w.patches) > 1 && w.owners(v) < 2 {
			continue
		}
		entrances = append(entrances, v)
	}
	if len(entrances) == 0 {
		return failure("bad walled area shape: no entrance")
	}
	log.Info("found viable entrances", "count", len(entrances))

	for {
		i := rng.Intn(len(entrances))
		w.gates = append(w.gates, entrances[i])
		entrances = dropAround(entrances, i)
		if len(entrances) < 3 {
			break
		}
	}
	if len(w.gates) == 0 {
		return failure("bad walled area shape: no gate")
	}

	log.Info("generated gates", "count", len(w.gates))
	return nil
}

func (w *CurtainWall) owners(v poly.Point) int {
	n := 0
	for _, p := range w.patches {
		if p.Shape.Contains(v) {
			n++
		}
	}
	return n
}

// dropAround removes s[i] and its circular neighbours.
func dropAround(s []poly.Point, i int) []poly.Point {
	n := len(s)
	drop := map[int]bool{i: true, (i + 1) % n: true, (i - 1 + n) % n: true}
	out := make([]poly.Point, 0, n)
	for j, v := range s {
		if !drop[j] {
			out = append(out, v)
		}
	}
	return out
}

func (w *CurtainWall) Shape() *poly.Polygon { return w.shape }

func (w *CurtainWall) Gates() []poly.Point { return w.gates }

func (w *CurtainWall) Patches() []*Patch { return w.patches }

// Radius is the largest distance from the world origin to an outline
// vertex.
func (w *CurtainWall) Radius() float64 {
	r := 0.0
	for _, v := range w.shape.Vecs() {
		r = max(r, v.Len())
	}
	return r
}
