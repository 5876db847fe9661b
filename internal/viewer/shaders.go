//go:build !android

package viewer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Map vertex shader: world-space lines and round markers sharing one layout.
const mapVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in float aSize;
layout(location = 2) in vec4 aColor;

uniform vec2 uCamera;
uniform float uZoom;
uniform vec2 uResolution;

out vec4 vColor;

void main() {
    vec2 screenPos = (aPos - uCamera) * uZoom + uResolution * 0.5;
    vec2 ndc = (screenPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    gl_PointSize = max(1.0, floor(aSize * uZoom + 0.5));
    vColor = aColor;
}
` + "\x00"

const lineFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    FragColor = vColor;
}
` + "\x00"

// Marker fragment shader: a disc with a dark rim.
const markerFragSrc = `#version 410 core

in vec4 vColor;
out vec4 FragColor;

void main() {
    float d = length(gl_PointCoord - vec2(0.5)) * 2.0;
    if (d > 1.0) discard;
    vec3 col = d > 0.75 ? vColor.rgb * 0.3 : vColor.rgb;
    FragColor = vec4(col, vColor.a);
}
` + "\x00"

var stageNames = map[uint32]string{
	gl.VERTEX_SHADER:   "vertex",
	gl.FRAGMENT_SHADER: "fragment",
}

// infoLog reads a shader or program log of n bytes through get.
func infoLog(n int32, get func(n int32, buf *uint8)) string {
	buf := strings.Repeat("\x00", int(n+1))
	get(n, gl.Str(buf))
	return strings.TrimRight(buf, "\x00")
}

func compileShader(source string, stage uint32) (uint32, error) {
	shader := gl.CreateShader(stage)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var ok int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &ok)
	if ok != gl.FALSE {
		return shader, nil
	}
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, buf *uint8) { gl.GetShaderInfoLog(shader, n, nil, buf) })
	gl.DeleteShader(shader)
	return 0, compileError(stage, msg)
}

func compileError(stage uint32, log string) error {
	name, ok := stageNames[stage]
	if !ok {
		name = fmt.Sprintf("0x%x", stage)
	}
	return fmt.Errorf("compile %s shader: %s", name, strings.TrimSpace(log))
}

// linkProgram builds the named program from vertex and fragment sources.
func linkProgram(name, vertSrc, fragSrc string) (uint32, error) {
	var shaders [2]uint32
	for i, src := range [2]string{vertSrc, fragSrc} {
		stage := uint32(gl.VERTEX_SHADER)
		if i == 1 {
			stage = gl.FRAGMENT_SHADER
		}
		sh, err := compileShader(src, stage)
		if err != nil {
			if i == 1 {
				gl.DeleteShader(shaders[0])
			}
			return 0, fmt.Errorf("%s program: %w", name, err)
		}
		shaders[i] = sh
	}

	program := gl.CreateProgram()
	for _, sh := range shaders {
		gl.AttachShader(program, sh)
	}
	gl.LinkProgram(program)
	for _, sh := range shaders {
		gl.DetachShader(program, sh)
		gl.DeleteShader(sh)
	}

	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok != gl.FALSE {
		return program, nil
	}
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	msg := infoLog(n, func(n int32, buf *uint8) { gl.GetProgramInfoLog(program, n, nil, buf) })
	gl.DeleteProgram(program)
	return 0, fmt.Errorf("link %s program: %s", name, msg)
}
