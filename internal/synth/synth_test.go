package synth

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samples(t *testing.T, buf []byte) (left, right []float32) {
	t.Helper()
	require.Zero(t, len(buf)%FrameBytes)
	for o := 0; o < len(buf); o += FrameBytes {
		left = append(left, math.Float32frombits(binary.LittleEndian.Uint32(buf[o:])))
		right = append(right, math.Float32frombits(binary.LittleEndian.Uint32(buf[o+4:])))
	}
	return left, right
}

func TestBell(t *testing.T) {
	buf := Bell()
	assert.Len(t, buf, int(SampleRate*BellSeconds)*FrameBytes)

	left, right := samples(t, buf)
	assert.Equal(t, left, right)
	peak := float32(0)
	for _, s := range left {
		require.False(t, math.IsNaN(float64(s)))
		assert.LessOrEqual(t, math.Abs(float64(s)), 1.0)
		peak = max(peak, float32(math.Abs(float64(s))))
	}
	assert.Greater(t, peak, float32(0.1), "a toll must be audible")

	// The toll decays.
	tail := left[len(left)-SampleRate/10:]
	for _, s := range tail {
		assert.Less(t, math.Abs(float64(s)), float64(peak)/2)
	}
}

func TestClick(t *testing.T) {
	buf := Click()
	assert.Len(t, buf, SampleRate*65/1000*FrameBytes)

	left, _ := samples(t, buf)
	assert.Equal(t, float32(0), left[0], "envelope starts silent")
}

func TestSoftSat(t *testing.T) {
	assert.Equal(t, 0.0, softSat(0))
	assert.InDelta(t, 0.75, softSat(2), 1e-12)
	assert.InDelta(t, -0.75, softSat(-2), 1e-12)
	assert.Less(t, softSat(0.5), 0.5)
}

func TestADSR(t *testing.T) {
	assert.InDelta(t, 0.5, adsr(0.05, 0.1, 0.2, 0.5, 0.2), 1e-12)
	assert.InDelta(t, 0.5, adsr(0.5, 0.1, 0.2, 0.5, 0.2), 1e-12)
	assert.InDelta(t, 0.25, adsr(0.9, 0.1, 0.2, 0.5, 0.2), 1e-12)
}

func TestLCG(t *testing.T) {
	seed := uint64(1)
	for i := 0; i < 1000; i++ {
		v := lcg(&seed)
		assert.True(t, v >= -1 && v <= 1)
	}
}
