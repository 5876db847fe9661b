// Package scene turns a generated village into coloured vertex batches a
// renderer can stream as lines and points.
package scene

import (
	"math"

	"village/internal/placement"
	"village/internal/poly"
	"village/internal/village"
)

// Layer is one toggleable group of geometry.
type Layer int

const (
	LayerPatches Layer = iota
	LayerWall
	LayerGates
	LayerStreets
	LayerRoads
	LayerArteries
	LayerPlacements
	NumLayers
)

var layerNames = [NumLayers]string{"patches", "wall", "gates", "streets", "roads", "arteries", "placements"}

func (l Layer) String() string {
	if l < 0 || l >= NumLayers {
		return "unknown"
	}
	return layerNames[l]
}

// Primitive says how a batch is drawn.
type Primitive int

const (
	Lines Primitive = iota
	Points
)

// Floats per vertex: x, y, size, r, g, b, a.
const Stride = 7

// Marker sizes in world units.
const (
	GateSize     = 4.0
	FountainSize = 5.0
	ChurchSize   = 6.0
	HouseSize    = 3.0
)

type Batch struct {
	Mode  Primitive
	Verts []float32
}

// Count is the number of vertices in the batch.
func (b Batch) Count() int { return len(b.Verts) / Stride }

type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Center() (float64, float64) {
	return (b.MinX + b.MaxX) * 0.5, (b.MinY + b.MaxY) * 0.5
}

func (b Bounds) Size() (float64, float64) {
	return b.MaxX - b.MinX, b.MaxY - b.MinY
}

func (b *Bounds) extend(v poly.Vec) {
	b.MinX = min(b.MinX, v.X)
	b.MinY = min(b.MinY, v.Y)
	b.MaxX = max(b.MaxX, v.X)
	b.MaxY = max(b.MaxY, v.Y)
}

type Scene struct {
	batches [NumLayers]Batch
	visible [NumLayers]bool
	bounds  Bounds
}

// New builds every layer of v. All layers start visible.
func New(v *village.Village) *Scene {
	s := &Scene{bounds: Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}}
	for i := range s.visible {
		s.visible[i] = true
		s.batches[i].Mode = Lines
	}
	s.batches[LayerGates].Mode = Points
	s.batches[LayerPlacements].Mode = Points

	pool := v.Pool()
	for _, p := range v.Patches() {
		c := Palette.Outskirts
		switch {
		case p == v.Plaza():
			c = Palette.Plaza
		case p.WithinCity:
			c = Palette.Ward
		}
		s.ring(LayerPatches, p.Shape, c)
		for _, pos := range p.Shape.Vecs() {
			s.bounds.extend(pos)
		}
	}
	if w := v.Wall(); w != nil {
		s.ring(LayerWall, w.Shape(), Palette.Wall)
	}
	for _, g := range v.Gates() {
		s.vertex(LayerGates, pool.At(g), GateSize, Palette.Gate)
	}
	for _, path := range v.Streets() {
		s.polyline(LayerStreets, pool, path, Palette.Street)
	}
	for _, path := range v.Roads() {
		s.polyline(LayerRoads, pool, path, Palette.Road)
	}
	for _, path := range v.Arteries() {
		s.polyline(LayerArteries, pool, path, Palette.Artery)
	}
	for _, pl := range placement.Plan(v) {
		switch pl.Kind {
		case placement.Fountain:
			s.vertex(LayerPlacements, pl.Pos, FountainSize, Palette.Fountain)
		case placement.Church:
			s.vertex(LayerPlacements, pl.Pos, ChurchSize, Palette.Church)
		default:
			s.vertex(LayerPlacements, pl.Pos, HouseSize, Palette.House)
		}
	}

	if math.IsInf(s.bounds.MinX, 1) {
		s.bounds = Bounds{}
	}
	return s
}

func (s *Scene) vertex(l Layer, v poly.Vec, size float64, c RGB) {
	rgba := c.RGBA(1)
	s.batches[l].Verts = append(s.batches[l].Verts,
		float32(v.X), float32(v.Y), float32(size),
		rgba[0], rgba[1], rgba[2], rgba[3],
	)
}

func (s *Scene) ring(l Layer, p *poly.Polygon, c RGB) {
	pool := p.Pool()
	p.ForEdge(func(a, b poly.Point) {
		s.vertex(l, pool.At(a), 0, c)
		s.vertex(l, pool.At(b), 0, c)
	})
}

func (s *Scene) polyline(l Layer, pool *poly.Pool, path []poly.Point, c RGB) {
	for i := 1; i < len(path); i++ {
		s.vertex(l, pool.At(path[i-1]), 0, c)
		s.vertex(l, pool.At(path[i]), 0, c)
	}
}

func (s *Scene) Batch(l Layer) Batch { return s.batches[l] }

func (s *Scene) Visible(l Layer) bool { return s.visible[l] }

// Toggle flips a layer and returns its new visibility.
func (s *Scene) Toggle(l Layer) bool {
	s.visible[l] = !s.visible[l]
	return s.visible[l]
}

// Bounds covers every patch vertex.
func (s *Scene) Bounds() Bounds { return s.bounds }
