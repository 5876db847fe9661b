//go:build !android

package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"village/internal/scene"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// layerKey maps the number row onto scene layers.
func layerKey(l scene.Layer) glfw.Key { return glfw.Key1 + glfw.Key(l) }

// UpdateCamera handles E/R zoom and arrow-key panning.
func UpdateCamera(cam *scene.Camera, window *glfw.Window, dt float64, b scene.Bounds) {
	held := func(k glfw.Key) float64 {
		if window.GetKey(k) == glfw.Press {
			return 1
		}
		return 0
	}
	cam.ZoomBy(held(glfw.KeyE)-held(glfw.KeyR), dt)
	cam.Pan(held(glfw.KeyRight)-held(glfw.KeyLeft), held(glfw.KeyDown)-held(glfw.KeyUp), dt)
	cam.Clamp(b)
}
