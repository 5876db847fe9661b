package poly

import "math"

// Vec is a plain 2D coordinate.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Scale(k float64) Vec { return Vec{X: v.X * k, Y: v.Y * k} }

// Len is the distance from the origin.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Norm returns v rescaled to the given length. The zero vector stays zero.
func (v Vec) Norm(length float64) Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return v.Scale(length / l)
}

// Cross is the z component of the 3D cross product.
func (v Vec) Cross(o Vec) float64 { return v.X*o.Y - v.Y*o.X }
