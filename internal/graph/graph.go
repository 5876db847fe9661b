package graph

import (
	"container/heap"
	"math"
)

// Node is an opaque handle into a Graph.
type Node int

// Graph is a weighted graph over Node handles. Edges are directed; Link
// can add both directions at once.
type Graph struct {
	links []map[Node]float64
	alive []bool
}

func New() *Graph {
	return &Graph{}
}

// Add creates a node with no links.
func (g *Graph) Add() Node {
	g.links = append(g.links, make(map[Node]float64))
	g.alive = append(g.alive, true)
	return Node(len(g.links) - 1)
}

// Len counts live nodes.
func (g *Graph) Len() int {
	n := 0
	for _, a := range g.alive {
		if a {
			n++
		}
	}
	return n
}

// Link adds a->b with the given non-negative cost, and b->a when symmetric.
func (g *Graph) Link(a, b Node, cost float64, symmetric bool) {
	if cost < 0 {
		cost = 0
	}
	g.links[a][b] = cost
	if symmetric {
		g.links[b][a] = cost
	}
}

func (g *Graph) Unlink(a, b Node, symmetric bool) {
	delete(g.links[a], b)
	if symmetric {
		delete(g.links[b], a)
	}
}

// Remove unlinks n from every neighbour and retires the handle.
func (g *Graph) Remove(n Node) {
	for m := range g.links[n] {
		g.Unlink(n, m, true)
	}
	g.alive[n] = false
}

// Neighbours returns the outgoing edges of n. Callers must not mutate it.
func (g *Graph) Neighbours(n Node) map[Node]float64 { return g.links[n] }

// Cost returns the cost of a->b and whether the edge exists.
func (g *Graph) Cost(a, b Node) (float64, bool) {
	c, ok := g.links[a][b]
	return c, ok
}

type searchNode struct {
	n Node
	g float64
}

type searchHeap []searchNode

func (h searchHeap) Len() int           { return len(h) }
func (h searchHeap) Less(i, j int) bool { return h[i].g < h[j].g }
func (h searchHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *searchHeap) Push(x any) { *h = append(*h, x.(searchNode)) }

func (h *searchHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// AStar finds the cheapest path from start to goal avoiding the nodes in
// exclude. The heuristic is zero, so this is Dijkstra ordered by tentative
// cost. The path is returned from goal back to start; nil means goal is
// unreachable.
func (g *Graph) AStar(start, goal Node, exclude map[Node]bool) []Node {
	closed := make(map[Node]bool, len(exclude)+len(g.links))
	for n, ex := range exclude {
		if ex {
			closed[n] = true
		}
	}
	cost := map[Node]float64{start: 0}
	cameFrom := make(map[Node]Node)

	open := &searchHeap{}
	heap.Init(open)
	heap.Push(open, searchNode{n: start, g: 0})

	for open.Len() > 0 {
		cur := heap.Pop(open).(searchNode)
		if cur.g != cost[cur.n] || closed[cur.n] && cur.n != start {
			continue
		}
		if cur.n == goal {
			return buildPath(cameFrom, goal)
		}
		closed[cur.n] = true

		for next, w := range g.links[cur.n] {
			if closed[next] {
				continue
			}
			tentative := cur.g + w
			if old, seen := cost[next]; seen && tentative >= old {
				continue
			}
			cost[next] = tentative
			cameFrom[next] = cur.n
			heap.Push(open, searchNode{n: next, g: tentative})
		}
	}
	return nil
}

func buildPath(cameFrom map[Node]Node, goal Node) []Node {
	path := []Node{goal}
	cur := goal
	for {
		prev, ok := cameFrom[cur]
		if !ok {
			return path
		}
		path = append(path, prev)
		cur = prev
	}
}

// ComputeCost sums edge costs along path. It returns NaN, never panics,
// when two consecutive nodes are not linked.
func (g *Graph) ComputeCost(path []Node) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		c, ok := g.links[path[i]][path[i+1]]
		if !ok {
			return math.NaN()
		}
		total += c
	}
	return total
}
