// Package placement decides where decorative entities stand in a
// generated village.
package placement

import (
	"village/internal/poly"
	"village/internal/village"
)

type Kind int

const (
	Fountain Kind = iota
	Church
	House
)

func (k Kind) String() string {
	switch k {
	case Fountain:
		return "fountain"
	case Church:
		return "church"
	case House:
		return "house"
	}
	return "unknown"
}

// Placement is one entity to spawn.
type Placement struct {
	Kind Kind
	Pos  poly.Vec
}

// World maps the layout plane onto the ground plane.
func (p Placement) World() [3]float32 { return World(p.Pos) }

func World(v poly.Vec) [3]float32 {
	return [3]float32{float32(v.X), 0, float32(v.Y)}
}

// Plan puts a fountain on the plaza, a church on the largest inner patch
// bordering it and a house on every other bordering patch. Without a plaza
// the fountain marks the village centre and nothing else is placed.
func Plan(v *village.Village) []Placement {
	centroid, ok := v.PlazaCentroid()
	if !ok {
		return []Placement{{Kind: Fountain, Pos: v.Center()}}
	}
	out := []Placement{{Kind: Fountain, Pos: centroid}}

	neighbours := v.PlazaNeighbours()
	church := -1
	for i, p := range neighbours {
		if church == -1 || p.Shape.Area() > neighbours[church].Shape.Area() {
			church = i
		}
	}
	for i, p := range neighbours {
		kind := House
		if i == church {
			kind = Church
		}
		out = append(out, Placement{Kind: kind, Pos: p.Shape.Centroid()})
	}
	return out
}
