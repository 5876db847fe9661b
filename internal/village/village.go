package village

import (
	"fmt"
	"log/slog"
	"math"

	"village/internal/poly"
	"village/internal/voronoi"
)

// Phase is how far generation has progressed. Phases only move forward.
type Phase int

const (
	PhaseRaw Phase = iota
	PhasePatched
	PhaseJunctionsOptimized
	PhaseWalled
	PhaseStreeted
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseRaw:
		return "raw"
	case PhasePatched:
		return "patched"
	case PhaseJunctionsOptimized:
		return "junctions-optimized"
	case PhaseWalled:
		return "walled"
	case PhaseStreeted:
		return "streeted"
	case PhaseDone:
		return "done"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Config drives one generation.
type Config struct {
	Seed       uint64
	PatchCount int // zero means DefaultPatchCount
	Logger     *slog.Logger
}

// Village is a generated layout. It is read-only once Build returns.
type Village struct {
	seed       uint64
	patchCount int
	rng        *Rand
	log        *slog.Logger
	phase      Phase

	pool    *poly.Pool
	patches []*Patch
	inner   []*Patch
	plaza   *Patch
	center  poly.Point

	wall     *CurtainWall
	gates    []poly.Point
	topology *Topology

	streets  [][]poly.Point
	roads    [][]poly.Point
	arteries [][]poly.Point
}

// Build runs every phase. On error no village is returned; callers retry
// with another seed.
func Build(cfg Config) (*Village, error) {
	v, err := newVillage(cfg)
	if err != nil {
		return nil, err
	}
	return finish(v)
}

func newVillage(cfg Config) (*Village, error) {
	n := cfg.PatchCount
	if n == 0 {
		n = DefaultPatchCount
	}
	if n < 0 {
		return nil, failure("invalid patch count %d", cfg.PatchCount)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Village{
		seed:       cfg.Seed,
		patchCount: n,
		rng:        NewRand(cfg.Seed),
		log:        log.With("seed", cfg.Seed),
		pool:       poly.NewPool(),
	}, nil
}

func finish(v *Village) (*Village, error) {
	if err := assemble(v); err != nil {
		v.log.Error("generation failed", "phase", v.phase, "err", err)
		return nil, err
	}
	return v, nil
}

type step struct {
	from Phase
	run  func(*Village) error
}

var pipeline = []step{
	{PhaseRaw, (*Village).buildPatches},
	{PhasePatched, (*Village).optimizeJunctions},
	{PhaseJunctionsOptimized, (*Village).buildWalls},
	{PhaseWalled, (*Village).buildStreets},
	{PhaseStreeted, func(*Village) error { return nil }},
}

// assemble runs the remaining steps from the village's current phase.
func assemble(v *Village) error {
	for _, s := range pipeline {
		if v.phase > s.from {
			continue
		}
		if err := s.run(v); err != nil {
			return err
		}
		v.phase = s.from + 1
		v.log.Debug("phase complete", "phase", v.phase)
	}
	return nil
}

func (v *Village) expect(p Phase) error {
	if v.phase != p {
		return fmt.Errorf("%w: want %s, at %s", ErrPhase, p, v.phase)
	}
	return nil
}

// buildPatches seeds a spiral of points, relaxes the core and turns the
// Voronoi regions into patches ordered by distance from the origin.
func (v *Village) buildPatches() error {
	if err := v.expect(PhaseRaw); err != nil {
		return err
	}

	offset := v.rng.Float64() * math.Pi * 2
	points := make([]poly.Vec, v.patchCount*SeedsPerPatch)
	v.log.Info("generating starting points", "count", len(points))
	for i := range points {
		a := offset + math.Sqrt(float64(i))*SpiralTurn
		r := 0.0
		if i > 0 {
			r = SpiralInnerRadius + float64(i)*(SpiralStep+v.rng.Float64())
		}
		points[i] = poly.Vec{X: math.Cos(a) * r, Y: math.Sin(a) * r}
	}

	d, err := voronoi.Build(points)
	if err != nil {
		return failure("triangulate seeds: %w", err)
	}

	core := make([]int, 0, v.patchCount+1)
	for i := 0; i <= v.patchCount && i < len(points); i++ {
		core = append(core, i)
	}
	for i := 0; i < RelaxIterations; i++ {
		if d, err = voronoi.Relax(d, core); err != nil {
			return failure("relax core: %w", err)
		}
	}

	d.SortPoints(func(a, b poly.Vec) bool { return a.Len() < b.Len() })
	regions := d.Partitioning()
	if len(regions) < v.patchCount {
		return failure("only %d closed regions for %d patches", len(regions), v.patchCount)
	}

	handles := make(map[*voronoi.Triangle]poly.Point)
	for i, r := range regions {
		p := patchFromRegion(v.pool, r, handles)
		v.patches = append(v.patches, p)
		if i == 0 {
			v.center = p.Shape.Nearest(poly.Vec{})
			v.plaza = p
		}
		if i < v.patchCount {
			p.WithinCity = true
			v.inner = append(v.inner, p)
		}
	}
	v.log.Info("built patches", "patches", len(v.patches), "inner", len(v.inner))
	return nil
}

// optimizeJunctions merges short edges of inner patches into their
// midpoint. The surviving handle is moved so every patch sharing it
// follows; the removed handle is rewritten wherever it is referenced.
// Every patch is then deduplicated.
func (v *Village) optimizeJunctions() error {
	if err := v.expect(PhasePatched); err != nil {
		return err
	}

	merged := 0
	for _, w := range v.inner {
		shape := w.Shape
		for i := 0; i < shape.Len(); i++ {
			v0 := shape.At(i)
			v1 := shape.At((i + 1) % shape.Len())
			p0, p1 := v.pool.At(v0), v.pool.At(v1)
			if v0 == v1 || p0.Dist(p1) >= JunctionMergeDistance {
				continue
			}
			for _, p := range v.PatchesByVertex(v1) {
				if p != w {
					p.Shape.Replace(v1, v0)
				}
			}
			v.pool.Set(v0, p0.Add(p1).Scale(0.5))
			shape.Remove(v1)
			if v.center == v1 {
				v.center = v0
			}
			merged++
		}
	}

	// Co-circular seeds leave zero-length edges in untouched patches too.
	for _, p := range v.patches {
		p.Shape.Dedup()
	}
	v.patches = dropDegenerate(v.patches)
	v.inner = dropDegenerate(v.inner)
	if v.plaza != nil && v.plaza.Shape.Degenerate() {
		v.plaza = nil
	}

	v.log.Info("optimized junctions", "merged", merged, "patches", len(v.patches))
	return nil
}

func dropDegenerate(ps []*Patch) []*Patch {
	out := ps[:0]
	for _, p := range ps {
		if !p.Shape.Degenerate() {
			out = append(out, p)
		}
	}
	return out
}

// buildWalls encloses the inner patches and drops patches too far out to
// matter.
func (v *Village) buildWalls() error {
	if err := v.expect(PhaseJunctionsOptimized); err != nil {
		return err
	}

	wall, err := NewCurtainWall(v.rng, v.inner, nil, v.log)
	if err != nil {
		return err
	}
	radius := wall.Radius()
	if math.IsNaN(radius) || radius <= 0 {
		return failure("invalid wall radius %v", radius)
	}
	v.wall = wall

	center := v.pool.At(v.center)
	limit := radius * RetainRadiusFactor
	within := func(ps []*Patch) []*Patch {
		out := make([]*Patch, 0, len(ps))
		for _, p := range ps {
			if p.Shape.Distance(center) < limit {
				out = append(out, p)
			}
		}
		return out
	}
	v.patches = within(v.patches)
	v.inner = within(v.inner)
	v.gates = wall.Gates()

	v.log.Info("built walls", "radius", radius, "gates", len(v.gates), "patches", len(v.patches))
	return nil
}

// PatchesByVertex lists the patches whose ring holds pt.
func (v *Village) PatchesByVertex(pt poly.Point) []*Patch {
	var out []*Patch
	for _, p := range v.patches {
		if p.Shape.Contains(pt) {
			out = append(out, p)
		}
	}
	return out
}

func (v *Village) Seed() uint64 { return v.seed }
func (v *Village) Phase() Phase { return v.phase }
func (v *Village) Pool() *poly.Pool { return v.pool }
func (v *Village) Patches() []*Patch { return v.patches }
func (v *Village) Inner() []*Patch { return v.inner }

// Plaza is the innermost patch, or nil when junction merging collapsed it.
func (v *Village) Plaza() *Patch { return v.plaza }

// Center is the plaza vertex closest to the origin.
func (v *Village) Center() poly.Vec { return v.pool.At(v.center) }

func (v *Village) CenterPoint() poly.Point { return v.center }

func (v *Village) Wall() *CurtainWall { return v.wall }
func (v *Village) Gates() []poly.Point { return v.gates }
func (v *Village) Topology() *Topology { return v.topology }
func (v *Village) Streets() [][]poly.Point { return v.streets }
func (v *Village) Roads() [][]poly.Point { return v.roads }

// Arteries are the merged and smoothed street and road polylines.
func (v *Village) Arteries() [][]poly.Point { return v.arteries }

// PlazaCentroid is where the fountain goes.
func (v *Village) PlazaCentroid() (poly.Vec, bool) {
	if v.plaza == nil {
		return poly.Vec{}, false
	}
	return v.plaza.Shape.Centroid(), true
}

// PlazaNeighbours are the inner patches bordering the plaza.
func (v *Village) PlazaNeighbours() []*Patch {
	if v.plaza == nil {
		return nil
	}
	var out []*Patch
	for _, p := range v.inner {
		if p != v.plaza && p.Shape.Borders(v.plaza.Shape) {
			out = append(out, p)
		}
	}
	return out
}
