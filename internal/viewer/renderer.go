//go:build !android

package viewer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"village/internal/scene"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// program holds one linked program and its camera uniforms.
type program struct {
	id          uint32
	uCamera     int32
	uZoom       int32
	uResolution int32
}

func newProgram(name, vert, frag string) (program, error) {
	id, err := linkProgram(name, vert, frag)
	if err != nil {
		return program{}, err
	}
	return program{
		id:          id,
		uCamera:     gl.GetUniformLocation(id, gl.Str("uCamera\x00")),
		uZoom:       gl.GetUniformLocation(id, gl.Str("uZoom\x00")),
		uResolution: gl.GetUniformLocation(id, gl.Str("uResolution\x00")),
	}, nil
}

func (p program) use(cam scene.Camera, fbW, fbH int) {
	gl.UseProgram(p.id)
	gl.Uniform2f(p.uCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(p.uZoom, float32(cam.Zoom))
	gl.Uniform2f(p.uResolution, float32(fbW), float32(fbH))
}

type Renderer struct {
	lines   program
	markers program
	vao     uint32
	vbo     uint32
}

func NewRenderer() (*Renderer, error) {
	lines, err := newProgram("line", mapVertSrc, lineFragSrc)
	if err != nil {
		return nil, err
	}
	markers, err := newProgram("marker", mapVertSrc, markerFragSrc)
	if err != nil {
		gl.DeleteProgram(lines.id)
		return nil, err
	}
	r := &Renderer{lines: lines, markers: markers}

	// Streaming buffer: x, y, size, r, g, b, a per vertex.
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(scene.Stride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	for _, id := range []uint32{r.lines.id, r.markers.id} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
}

// Draw streams every visible layer, lines first so markers sit on top.
func (r *Renderer) Draw(s *scene.Scene, cam scene.Camera, fbW, fbH int) {
	for _, mode := range []scene.Primitive{scene.Lines, scene.Points} {
		prog, glMode := r.lines, uint32(gl.LINES)
		if mode == scene.Points {
			prog, glMode = r.markers, gl.POINTS
		}
		prog.use(cam, fbW, fbH)
		for l := scene.Layer(0); l < scene.NumLayers; l++ {
			b := s.Batch(l)
			if !s.Visible(l) || b.Mode != mode || b.Count() == 0 {
				continue
			}
			gl.BufferData(gl.ARRAY_BUFFER, len(b.Verts)*4, gl.Ptr(&b.Verts[0]), gl.STREAM_DRAW)
			gl.DrawArrays(glMode, 0, int32(b.Count()))
		}
	}
}
