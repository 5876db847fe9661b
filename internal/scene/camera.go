package scene

import "math"

// Zoom limits and rates.
const (
	MinZoom   = 0.2
	MaxZoom   = 40.0
	ZoomRate  = 1.4   // e-folds per second while a zoom key is held
	PanSpeed  = 600.0 // screen pixels per second
	FitMargin = 0.9   // fraction of the framebuffer a fitted village fills
)

type Camera struct {
	X, Y float64 // world space, camera centre
	Zoom float64 // screen pixels per world unit
}

// Fit centres b and picks the zoom that shows all of it.
func (c *Camera) Fit(b Bounds, fbW, fbH int) {
	c.X, c.Y = b.Center()
	w, h := b.Size()
	c.Zoom = MaxZoom
	if w > 0 {
		c.Zoom = min(c.Zoom, float64(fbW)*FitMargin/w)
	}
	if h > 0 {
		c.Zoom = min(c.Zoom, float64(fbH)*FitMargin/h)
	}
	c.Clamp(b)
}

// ZoomBy applies dir e-folds of ZoomRate over dt seconds.
func (c *Camera) ZoomBy(dir, dt float64) {
	c.Zoom *= math.Exp(dir * ZoomRate * dt)
}

// Pan moves by a screen-space direction, so panning feels the same at
// every zoom.
func (c *Camera) Pan(dx, dy, dt float64) {
	c.X += dx * PanSpeed * dt / c.Zoom
	c.Y += dy * PanSpeed * dt / c.Zoom
}

// Clamp bounds the zoom and keeps the centre over b.
func (c *Camera) Clamp(b Bounds) {
	c.Zoom = max(MinZoom, min(MaxZoom, c.Zoom))
	c.X = max(b.MinX, min(b.MaxX, c.X))
	c.Y = max(b.MinY, min(b.MaxY, c.Y))
}

// ToScreen maps a world position to framebuffer pixels.
func (c Camera) ToScreen(x, y float64, fbW, fbH int) (float64, float64) {
	return (x-c.X)*c.Zoom + float64(fbW)*0.5, (y-c.Y)*c.Zoom + float64(fbH)*0.5
}
