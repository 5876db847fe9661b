//go:build !android

// Package viewer opens a window onto a generated village.
//
// Keys 1-7 toggle layers, E/R zoom, arrows pan, F refits and Esc quits.
package viewer

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"village/internal/scene"
	"village/internal/village"
)

// Run blocks until the window is closed. It must be called from the main
// goroutine.
func Run(v *village.Village, log *slog.Logger) error {
	runtime.LockOSThread()

	window, err := initWindow(fmt.Sprintf("village %d", v.Seed()))
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	audio, err := NewAudio(log)
	if err != nil {
		log.Warn("audio init failed, continuing without sound", "err", err)
	} else {
		go func() {
			time.Sleep(100 * time.Millisecond) // let audio context initialize
			audio.Bell()
		}()
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	bg := scene.Palette.Ground.RGBA(1)
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	s := scene.New(v)
	bounds := s.Bounds()
	var cam scene.Camera
	fbW, fbH := window.GetFramebufferSize()
	cam.Fit(bounds, fbW, fbH)
	input := NewInput()

	log.Info("viewer open", "gates", len(v.Gates()), "arteries", len(v.Arteries()))

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := min(now-last, 0.1)
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH = window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		for l := scene.Layer(0); l < scene.NumLayers; l++ {
			if input.JustPressed(window, layerKey(l)) {
				visible := s.Toggle(l)
				log.Debug("layer toggled", "layer", l, "visible", visible)
				audio.Click()
			}
		}
		if input.JustPressed(window, glfw.KeyF) {
			cam.Fit(bounds, fbW, fbH)
		}
		UpdateCamera(&cam, window, dt, bounds)

		rend.BeginFrame(fbW, fbH)
		rend.Draw(s, cam, fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}
