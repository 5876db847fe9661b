//go:build !android

package viewer

import (
	"testing"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestInfoLog_TrimsTerminator(t *testing.T) {
	got := infoLog(9, func(n int32, buf *uint8) {
		assert.Equal(t, int32(9), n)
		copy(unsafe.Slice(buf, n), "bad token")
	})
	assert.Equal(t, "bad token", got)
}

func TestCompileError_NamesStage(t *testing.T) {
	assert.EqualError(t, compileError(gl.VERTEX_SHADER, "0:3 syntax error\n"), "compile vertex shader: 0:3 syntax error")
	assert.EqualError(t, compileError(gl.FRAGMENT_SHADER, "x"), "compile fragment shader: x")
	assert.EqualError(t, compileError(1, "x"), "compile 0x1 shader: x")
}
