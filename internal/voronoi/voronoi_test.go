package voronoi

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"village/internal/poly"
)

func randomPoints(seed int64, n int) []poly.Vec {
	rnd := rand.New(rand.NewSource(seed))
	pts := make([]poly.Vec, n)
	for i := range pts {
		pts[i] = poly.Vec{X: rnd.Float64()*200 - 100, Y: rnd.Float64()*200 - 100}
	}
	return pts
}

func signedArea(vs []poly.Vec) float64 {
	s := 0.0
	for i := range vs {
		s += vs[i].Cross(vs[(i+1)%len(vs)])
	}
	return s * 0.5
}

func TestBuild_InsertsEveryPoint(t *testing.T) {
	pts := randomPoints(1, 80)
	d, err := Build(pts)
	require.NoError(t, err)

	assert.Equal(t, 80, d.Len())
	assert.Equal(t, pts, d.Points())
	for i := 0; i < d.Len(); i++ {
		assert.Equal(t, pts[d.Site(i)], d.Point(i))
	}
}

func TestBuild_IsDelaunay(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		d, err := Build(randomPoints(seed, 60))
		require.NoError(t, err)

		all := append(d.Frame(), d.Points()...)
		for _, tr := range d.Triangles() {
			for i, p := range all {
				if tr.touches(i) {
					continue
				}
				assert.GreaterOrEqual(t, p.Dist(tr.Center), tr.Radius-1e-7,
					"seed %d: point %d inside circumcircle of %v", seed, i, *tr)
			}
		}
	}
}

func TestPartitioning_NoFrameVertices(t *testing.T) {
	for _, seed := range []int64{4, 5, 6, 7} {
		d, err := Build(randomPoints(seed, 50))
		require.NoError(t, err)

		regions := d.Partitioning()
		require.NotEmpty(t, regions)
		assert.Less(t, len(regions), d.Len(), "hull sites touch the frame")
		for _, r := range regions {
			for _, tr := range r.Triangles {
				assert.True(t, tr.A >= frameSize && tr.B >= frameSize && tr.C >= frameSize)
			}
		}
	}
}

func TestPartitioning_RegionsAreSortedRings(t *testing.T) {
	d, err := Build(randomPoints(8, 70))
	require.NoError(t, err)

	for _, r := range d.Partitioning() {
		vs := r.Vertices()
		require.GreaterOrEqual(t, len(vs), 3)
		assert.Greater(t, signedArea(vs), 0.0, "region %d is not wound counter-clockwise", r.Site)
		for _, tr := range r.Triangles {
			assert.True(t, tr.touches(r.Site+frameSize))
		}
	}
}

func TestRegion_CacheFollowsInsertion(t *testing.T) {
	d, err := Build(randomPoints(9, 29))
	require.NoError(t, err)

	before := d.Region(0)
	require.NotNil(t, before)
	assert.Same(t, before, d.Region(0), "clean cache must be reused")

	d.points = append(d.points, poly.Vec{X: 1.5, Y: -2.5})
	require.NoError(t, d.insert(len(d.points)-1))

	assert.NotSame(t, before, d.Region(0), "insertion must invalidate regions")
	assert.Nil(t, d.Region(-1))
	assert.Nil(t, d.Region(1000))
}

func TestSortPoints(t *testing.T) {
	d, err := Build(randomPoints(10, 40))
	require.NoError(t, err)

	d.SortPoints(func(a, b poly.Vec) bool { return a.Len() < b.Len() })

	for i := 1; i < d.Len(); i++ {
		assert.LessOrEqual(t, d.Point(i-1).Len(), d.Point(i).Len())
	}
	regions := d.Partitioning()
	for i := 1; i < len(regions); i++ {
		assert.LessOrEqual(t, regions[i-1].Seed().Len(), regions[i].Seed().Len())
	}
}

func TestRelax_MovesOnlySubset(t *testing.T) {
	pts := randomPoints(11, 60)
	d, err := Build(pts)
	require.NoError(t, err)

	var inner []int
	for _, r := range d.Partitioning() {
		inner = append(inner, r.Site)
		if len(inner) == 5 {
			break
		}
	}
	require.Len(t, inner, 5)
	want := make(map[int]poly.Vec)
	for _, s := range inner {
		want[s] = d.Region(s).Centroid()
	}

	relaxed, err := Relax(d, inner)
	require.NoError(t, err)

	got := relaxed.Points()
	for i, p := range got {
		if c, ok := want[i]; ok {
			assert.InDelta(t, c.X, p.X, 1e-9)
			assert.InDelta(t, c.Y, p.Y, 1e-9)
			continue
		}
		assert.Equal(t, pts[i], p)
	}
}

func TestCompareAround(t *testing.T) {
	seed := poly.Vec{}
	ring := []poly.Vec{
		{X: -1, Y: 1}, {X: -1, Y: 0}, {X: -1, Y: -1},
		{X: 1, Y: -1}, {X: 1, Y: 0}, {X: 1, Y: 1},
	}
	for i := 0; i < len(ring)-1; i++ {
		assert.Equal(t, -1, compareAround(seed, ring[i], ring[i+1]), "%v before %v", ring[i], ring[i+1])
		assert.Equal(t, 1, compareAround(seed, ring[i+1], ring[i]))
	}
	assert.Equal(t, 0, compareAround(seed, poly.Vec{X: 1, Y: 1}, poly.Vec{X: 2, Y: 2}))
}

func TestBuild_FlatInput(t *testing.T) {
	single, err := Build([]poly.Vec{{X: 5, Y: 5}})
	require.NoError(t, err)
	assert.Equal(t, 1, single.Len())
	assert.NotContains(t, single.Frame()[1:], single.Frame()[0], "frame corners collapsed")

	for name, pts := range map[string][]poly.Vec{
		"single":     {{X: 5, Y: 5}},
		"vertical":   {{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 20}},
		"horizontal": {{X: 0, Y: 3}, {X: 10, Y: 3}, {X: 20, Y: 3}, {X: 30, Y: 3}},
	} {
		d, err := Build(pts)
		if err != nil {
			assert.True(t, errors.Is(err, ErrUncovered) || errors.Is(err, ErrBrokenCavity), "%s: %v", name, err)
			continue
		}
		assert.Equal(t, len(pts), d.Len(), "%s: points went missing", name)
		for _, tr := range d.Triangles() {
			assert.False(t, math.IsNaN(tr.Radius), "%s: degenerate triangle %v", name, *tr)
		}
	}
}

func TestBuild_DuplicatesAreSkipped(t *testing.T) {
	pts := randomPoints(4, 10)
	pts = append(pts, pts[3])

	d, err := Build(pts)
	require.NoError(t, err)
	assert.Equal(t, 10, d.Len())
	assert.Nil(t, d.Region(10))
}

func TestInsert_Uncovered(t *testing.T) {
	d, err := Build(randomPoints(5, 20))
	require.NoError(t, err)

	d.points = append(d.points, poly.Vec{X: 1e9, Y: 1e9})
	assert.ErrorIs(t, d.insert(len(d.points)-1), ErrUncovered)
}

func TestPartitioning_AxisAlignedCircumcentres(t *testing.T) {
	d, err := Build([]poly.Vec{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 5, Y: 5}})
	require.NoError(t, err)

	ring := d.Region(4).Vertices()
	require.Len(t, ring, 4)
	assert.InDelta(t, 50, math.Abs(signedArea(ring)), 1e-9, "ring %v crosses itself", ring)
}
