package village

import (
	"village/internal/poly"
)

// buildStreets routes a street from every gate to the plaza and a road
// from the countryside to every gate, then merges and smooths them.
func (v *Village) buildStreets() error {
	if err := v.expect(PhaseWalled); err != nil {
		return err
	}

	topo := NewTopology(v.pool, v.patches, v.wall.Shape(), v.log)
	v.topology = topo

	for _, gate := range v.gates {
		gatePos := v.pool.At(gate)

		end := v.center
		if v.plaza != nil {
			end = v.plaza.Shape.Nearest(gatePos)
		}
		street := topo.BuildPath(gate, end, topo.Outer())
		if street == nil {
			return failure("unable to build a street from gate %d", gate)
		}
		v.streets = append(v.streets, street)

		start, ok := topo.Nearest(gatePos.Norm(RoadApproachDistance))
		if !ok {
			continue
		}
		if road := topo.BuildPath(start, gate, topo.Inner()); road != nil {
			v.roads = append(v.roads, road)
		}
	}

	v.arteries = v.tidyUpRoads()
	v.smoothArteries()
	v.log.Info("built streets", "streets", len(v.streets), "roads", len(v.roads), "arteries", len(v.arteries))
	return nil
}

type segment struct{ start, end poly.Point }

// tidyUpRoads cuts every street and road into unique directed segments
// and chains them back into the longest polylines it can. Segments
// running along the plaza are left out.
func (v *Village) tidyUpRoads() [][]poly.Point {
	var segments []segment
	seen := make(map[segment]bool)
	cut := func(path []poly.Point) {
		for i := 1; i < len(path); i++ {
			s := segment{path[i-1], path[i]}
			if v.plaza != nil && v.plaza.Shape.Contains(s.start) && v.plaza.Shape.Contains(s.end) {
				continue
			}
			if !seen[s] {
				seen[s] = true
				segments = append(segments, s)
			}
		}
	}
	for _, s := range v.streets {
		cut(s)
	}
	for _, r := range v.roads {
		cut(r)
	}
	return chain(segments)
}

func chain(segments []segment) [][]poly.Point {
	var arteries [][]poly.Point
	for len(segments) > 0 {
		seg := segments[len(segments)-1]
		segments = segments[:len(segments)-1]

		attached := false
		for i, a := range arteries {
			if a[0] == seg.end {
				arteries[i] = append([]poly.Point{seg.start}, a...)
				attached = true
				break
			}
			if a[len(a)-1] == seg.start {
				arteries[i] = append(a, seg.end)
				attached = true
				break
			}
		}
		if !attached {
			arteries = append(arteries, []poly.Point{seg.start, seg.end})
		}
	}
	return arteries
}

// smoothArteries moves interior artery vertices in the pool, so patches
// sharing them bend along.
func (v *Village) smoothArteries() {
	for _, a := range v.arteries {
		if len(a) < 3 {
			continue
		}
		smoothed := poly.New(v.pool, a...).SmoothVertexEq(ArterySmoothFactor)
		for i := 1; i < len(a)-1; i++ {
			v.pool.Set(a[i], smoothed[i])
		}
	}
}
