package village

import (
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"village/internal/poly"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// grid lays out w x h unit squares sharing their corners by handle. The
// returned lookup maps a lattice coordinate to its handle.
func grid(pool *poly.Pool, w, h int, scale float64) ([]*Patch, func(x, y int) poly.Point) {
	handles := make(map[[2]int]poly.Point)
	at := func(x, y int) poly.Point {
		k := [2]int{x, y}
		if pt, ok := handles[k]; ok {
			return pt
		}
		pt := pool.Add(poly.Vec{X: float64(x) * scale, Y: float64(y) * scale})
		handles[k] = pt
		return pt
	}
	var patches []*Patch
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			shape := poly.New(pool, at(x, y), at(x+1, y), at(x+1, y+1), at(x, y+1))
			patches = append(patches, &Patch{Shape: shape, WithinCity: true})
		}
	}
	return patches, at
}

// ring walks n (at most eight) steps around a square of half-size r.
func ring(pool *poly.Pool, n int, r float64) *Patch {
	steps := []poly.Vec{
		{X: r, Y: 0}, {X: r, Y: r}, {X: 0, Y: r}, {X: -r, Y: r},
		{X: -r, Y: 0}, {X: -r, Y: -r}, {X: 0, Y: -r}, {X: r, Y: -r},
	}
	shape := poly.New(pool)
	for _, v := range steps[:n] {
		shape.Append(pool.Add(v))
	}
	return &Patch{Shape: shape, WithinCity: true}
}

func TestCurtainWall_SinglePatchUsesOwnRing(t *testing.T) {
	pool := poly.NewPool()
	p := ring(pool, 6, 10)

	seen := make(map[poly.Point]bool)
	for seed := uint64(1); seed <= 60; seed++ {
		w, err := NewCurtainWall(NewRand(seed), []*Patch{p}, nil, quiet)
		require.NoError(t, err)

		assert.Same(t, p.Shape, w.Shape())
		assert.Len(t, w.Gates(), 2, "six candidates leave room for two spaced gates")
		for _, g := range w.Gates() {
			assert.True(t, p.Shape.Contains(g))
			seen[g] = true
		}
	}
	assert.Len(t, seen, 6, "every vertex of a lone patch is an entrance candidate")
}

func TestCurtainWall_Reserved(t *testing.T) {
	pool := poly.NewPool()
	patches, _ := grid(pool, 1, 1, 10)
	shape := patches[0].Shape
	reserved := []poly.Point{shape.At(0)}

	w, err := NewCurtainWall(NewRand(3), patches, reserved, quiet)
	require.NoError(t, err)
	require.Len(t, w.Gates(), 1)
	assert.NotEqual(t, shape.At(0), w.Gates()[0])

	_, err = NewCurtainWall(NewRand(3), patches, shape.Vertices(), quiet)
	assert.ErrorIs(t, err, ErrGenerationFailure)
}

func TestCurtainWall_Circumference(t *testing.T) {
	pool := poly.NewPool()
	patches, at := grid(pool, 3, 3, 10)

	w, err := NewCurtainWall(NewRand(1), patches, nil, quiet)
	require.NoError(t, err)

	shape := w.Shape()
	require.Equal(t, 12, shape.Len())
	assert.False(t, shape.Contains(at(1, 1)))
	assert.False(t, shape.Contains(at(2, 2)))
	shape.ForEdge(func(a, b poly.Point) {
		owners := 0
		for _, p := range patches {
			if p.Shape.FindEdge(a, b) != -1 {
				owners++
			}
		}
		assert.Equal(t, 1, owners, "edge %d->%d", a, b)
	})
	assert.InDelta(t, math.Hypot(30, 30), w.Radius(), 1e-9)
}

func TestCurtainWall_GatesAreSpaced(t *testing.T) {
	pool := poly.NewPool()
	patches, at := grid(pool, 3, 3, 10)
	corners := []poly.Point{at(0, 0), at(3, 0), at(3, 3), at(0, 3)}

	for seed := uint64(1); seed <= 40; seed++ {
		w, err := NewCurtainWall(NewRand(seed), patches, nil, quiet)
		require.NoError(t, err)
		require.NotEmpty(t, w.Gates())

		shape := w.Shape()
		gates := make(map[poly.Point]bool)
		for _, g := range w.Gates() {
			assert.NotContains(t, corners, g, "a corner touches a single patch")
			gates[g] = true
		}
		for _, g := range w.Gates() {
			assert.False(t, gates[shape.Next(g)], "seed %d: gates %d and %d are adjacent", seed, g, shape.Next(g))
			assert.False(t, gates[shape.Prev(g)], "seed %d: gates %d and %d are adjacent", seed, g, shape.Prev(g))
		}
	}
}

func TestCurtainWall_Failures(t *testing.T) {
	pool := poly.NewPool()
	patches, at := grid(pool, 3, 3, 10)
	mids := []poly.Point{
		at(1, 0), at(2, 0), at(3, 1), at(3, 2),
		at(2, 3), at(1, 3), at(0, 2), at(0, 1),
	}

	_, err := NewCurtainWall(NewRand(1), patches, mids, quiet)
	assert.ErrorIs(t, err, ErrGenerationFailure)

	_, err = NewCurtainWall(NewRand(1), nil, nil, quiet)
	assert.ErrorIs(t, err, ErrGenerationFailure)

	lone := &Patch{Shape: poly.New(pool, pool.Add(poly.Vec{X: 1})), WithinCity: true}
	_, err = NewCurtainWall(NewRand(1), []*Patch{lone}, nil, quiet)
	assert.ErrorIs(t, err, ErrGenerationFailure)
}

func TestCurtainWall_BrokenOutline(t *testing.T) {
	pool := poly.NewPool()
	a, _ := grid(pool, 1, 1, 10)
	// Two squares touching at a single corner leave that corner with two
	// outgoing outline edges.
	b := poly.New(pool,
		a[0].Shape.At(2),
		pool.Add(poly.Vec{X: 20, Y: 10}),
		pool.Add(poly.Vec{X: 20, Y: 20}),
		pool.Add(poly.Vec{X: 10, Y: 20}),
	)
	patches := []*Patch{a[0], {Shape: b, WithinCity: true}}

	w, err := NewCurtainWall(NewRand(1), patches, nil, quiet)
	if err != nil {
		assert.ErrorIs(t, err, ErrGenerationFailure)
		return
	}
	assert.GreaterOrEqual(t, w.Shape().Len(), 3)
}

func TestDropAround(t *testing.T) {
	s := []poly.Point{10, 11, 12, 13, 14}

	assert.Equal(t, []poly.Point{12, 13}, dropAround(s, 0))
	assert.Equal(t, []poly.Point{11, 12}, dropAround(s, 4))
	assert.Equal(t, []poly.Point{10, 14}, dropAround(s, 2))
	assert.Empty(t, dropAround([]poly.Point{1, 2}, 1))
}
