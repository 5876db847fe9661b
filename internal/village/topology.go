package village

import (
	"log/slog"

	"github.com/peterstace/simplefeatures/rtree"

	"village/internal/graph"
	"village/internal/poly"
)

// Topology is the routable graph over every patch ring. Nodes are split
// into inner and outer sets by the patch that owns them; wall vertices
// belong to neither so paths may cross the wall only there.
type Topology struct {
	pool  *poly.Pool
	graph *graph.Graph
	log   *slog.Logger

	ptToNode map[poly.Point]graph.Node
	nodeToPt []poly.Point

	inner map[graph.Node]bool
	outer map[graph.Node]bool

	index rtree.RTree
}

// NewTopology links consecutive ring vertices of every patch with their
// Euclidean length. border may be nil when there is no wall.
func NewTopology(pool *poly.Pool, patches []*Patch, border *poly.Polygon, log *slog.Logger) *Topology {
	t := &Topology{
		pool:     pool,
		graph:    graph.New(),
		log:      log,
		ptToNode: make(map[poly.Point]graph.Node),
		inner:    make(map[graph.Node]bool),
		outer:    make(map[graph.Node]bool),
	}
	onBorder := func(pt poly.Point) bool { return border != nil && border.Contains(pt) }

	for _, p := range patches {
		side := t.outer
		if p.WithinCity {
			side = t.inner
		}
		p.Shape.ForEdge(func(v0, v1 poly.Point) {
			n0, n1 := t.node(v0), t.node(v1)
			if !onBorder(v0) {
				side[n0] = true
			}
			if !onBorder(v1) {
				side[n1] = true
			}
			t.graph.Link(n0, n1, pool.At(v0).Dist(pool.At(v1)), true)
		})
	}

	for i, pt := range t.nodeToPt {
		v := pool.At(pt)
		t.index.Insert(rtree.Box{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y}, i)
	}

	log.Debug("topology built", "nodes", len(t.nodeToPt), "inner", len(t.inner), "outer", len(t.outer))
	return t
}

func (t *Topology) node(pt poly.Point) graph.Node {
	if n, ok := t.ptToNode[pt]; ok {
		return n
	}
	n := t.graph.Add()
	t.ptToNode[pt] = n
	t.nodeToPt = append(t.nodeToPt, pt)
	return n
}

// BuildPath routes from one vertex to another avoiding exclude. A vertex
// with no node is a lookup miss: it is logged and yields nil, as does an
// unreachable goal.
func (t *Topology) BuildPath(from, to poly.Point, exclude map[graph.Node]bool) []poly.Point {
	start, ok1 := t.ptToNode[from]
	end, ok2 := t.ptToNode[to]
	if !ok1 || !ok2 {
		t.log.Warn("missing starting or ending node", "from", from, "to", to)
		return nil
	}

	nodes := t.graph.AStar(start, end, exclude)
	if nodes == nil {
		return nil
	}
	path := make([]poly.Point, len(nodes))
	for i, n := range nodes {
		path[len(nodes)-1-i] = t.nodeToPt[n]
	}
	return path
}

// Nearest returns the graph vertex closest to v.
func (t *Topology) Nearest(v poly.Vec) (poly.Point, bool) {
	found := -1
	box := rtree.Box{MinX: v.X, MinY: v.Y, MaxX: v.X, MaxY: v.Y}
	_ = t.index.PrioritySearch(box, func(recordID int) error {
		found = recordID
		return rtree.Stop
	})
	if found < 0 {
		return 0, false
	}
	return t.nodeToPt[found], true
}

// Node returns the graph node of a vertex.
func (t *Topology) Node(pt poly.Point) (graph.Node, bool) {
	n, ok := t.ptToNode[pt]
	return n, ok
}

// Point maps a node back to its vertex.
func (t *Topology) Point(n graph.Node) poly.Point { return t.nodeToPt[n] }

func (t *Topology) Graph() *graph.Graph { return t.graph }

// Inner is the set of nodes owned by walled patches, off the wall.
func (t *Topology) Inner() map[graph.Node]bool { return t.inner }

// Outer is the set of nodes owned by unwalled patches, off the wall.
func (t *Topology) Outer() map[graph.Node]bool { return t.outer }
