// Package export renders a generated village as WKT for offline
// inspection.
package export

import (
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"village/internal/poly"
	"village/internal/village"
)

// Layer is one named group of village geometry. Validation is disabled
// throughout: the generator owns its topology and geometry is exported as
// is.
type Layer struct {
	Name     string
	Geometry geom.GeometryCollection
}

func (l Layer) WKT() string { return l.Geometry.AsText() }

// Layers splits v into patches, inner, wall, gates, streets, roads and
// arteries.
func Layers(v *village.Village) ([]Layer, error) {
	pool := v.Pool()

	patches, err := polygons(v.Patches())
	if err != nil {
		return nil, fmt.Errorf("patches: %w", err)
	}
	inner, err := polygons(v.Inner())
	if err != nil {
		return nil, fmt.Errorf("inner patches: %w", err)
	}

	var wall []geom.Geometry
	if w := v.Wall(); w != nil {
		g, err := Polygon(w.Shape())
		if err != nil {
			return nil, fmt.Errorf("wall: %w", err)
		}
		wall = append(wall, g.AsGeometry())
	}

	gates := make([]geom.Geometry, 0, len(v.Gates()))
	for _, g := range v.Gates() {
		pt, err := point(pool.At(g))
		if err != nil {
			return nil, fmt.Errorf("gates: %w", err)
		}
		gates = append(gates, pt.AsGeometry())
	}

	streets, err := lines(pool, v.Streets())
	if err != nil {
		return nil, fmt.Errorf("streets: %w", err)
	}
	roads, err := lines(pool, v.Roads())
	if err != nil {
		return nil, fmt.Errorf("roads: %w", err)
	}
	arteries, err := lines(pool, v.Arteries())
	if err != nil {
		return nil, fmt.Errorf("arteries: %w", err)
	}

	return []Layer{
		layer("patches", patches),
		layer("inner", inner),
		layer("wall", wall),
		layer("gates", gates),
		layer("streets", streets),
		layer("roads", roads),
		layer("arteries", arteries),
	}, nil
}

// WKT flattens every layer into one GEOMETRYCOLLECTION.
func WKT(v *village.Village) (string, error) {
	layers, err := Layers(v)
	if err != nil {
		return "", err
	}
	var all []geom.Geometry
	for _, l := range layers {
		for i := 0; i < l.Geometry.NumGeometries(); i++ {
			all = append(all, l.Geometry.GeometryN(i))
		}
	}
	return geom.NewGeometryCollection(all, geom.DisableAllValidations).AsText(), nil
}

func layer(name string, gs []geom.Geometry) Layer {
	return Layer{Name: name, Geometry: geom.NewGeometryCollection(gs, geom.DisableAllValidations)}
}

// Ring closes a polygon ring into a linestring.
func Ring(p *poly.Polygon) (geom.LineString, error) {
	vs := p.Vecs()
	if len(vs) > 0 {
		vs = append(vs, vs[0])
	}
	return lineString(vs)
}

func Polygon(p *poly.Polygon) (geom.Polygon, error) {
	ring, err := Ring(p)
	if err != nil {
		return geom.Polygon{}, err
	}
	return geom.NewPolygon([]geom.LineString{ring}, geom.DisableAllValidations)
}

func polygons(patches []*village.Patch) ([]geom.Geometry, error) {
	out := make([]geom.Geometry, 0, len(patches))
	for i, p := range patches {
		g, err := Polygon(p.Shape)
		if err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
		out = append(out, g.AsGeometry())
	}
	return out, nil
}

func lines(pool *poly.Pool, paths [][]poly.Point) ([]geom.Geometry, error) {
	out := make([]geom.Geometry, 0, len(paths))
	for _, path := range paths {
		if len(path) < 2 {
			continue
		}
		ls, err := lineString(poly.New(pool, path...).Vecs())
		if err != nil {
			return nil, err
		}
		out = append(out, ls.AsGeometry())
	}
	return out, nil
}

func lineString(vs []poly.Vec) (geom.LineString, error) {
	floats := make([]float64, 0, 2*len(vs))
	for _, v := range vs {
		floats = append(floats, v.X, v.Y)
	}
	return geom.NewLineString(geom.NewSequence(floats, geom.DimXY), geom.DisableAllValidations)
}

func point(v poly.Vec) (geom.Point, error) {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: v.X, Y: v.Y}, Type: geom.DimXY}, geom.DisableAllValidations)
}
