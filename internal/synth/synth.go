// Package synth renders the viewer's procedural sounds as interleaved
// stereo float32 little-endian PCM.
package synth

import "math"

const (
	SampleRate   = 44100
	ChannelCount = 2
	FrameBytes   = 8 // two float32 channels
)

// Bell tolls: strike partials of a church bell.
const (
	BellSeconds = 2.6
	BellPitch   = 220.0
)

var bellPartials = []struct{ ratio, gain, decay float64 }{
	{0.5, 0.35, 1.2}, // hum
	{1.0, 0.50, 2.0}, // prime
	{1.2, 0.30, 2.8}, // minor third
	{1.5, 0.22, 3.4},
	{2.0, 0.25, 4.5}, // nominal
	{2.74, 0.10, 6.0},
}

// Bell renders one toll.
func Bell() []byte {
	n := int(SampleRate * BellSeconds)
	buf := makeBuf(n)
	seed := uint64(0x5EED)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		s := 0.0
		for _, p := range bellPartials {
			s += p.gain * math.Exp(-p.decay*t) * math.Sin(2*math.Pi*BellPitch*p.ratio*t)
		}
		// Clapper strike.
		if t < 0.012 {
			s += lcg(&seed) * 0.25 * (1 - t/0.012)
		}
		putStereoF32(buf, i, softSat(s*0.6))
	}
	return buf
}

// Click is a short high tick for layer toggles.
func Click() []byte {
	n := SampleRate * 65 / 1000
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		s := fm(t, freq, 1.0, 0.6) * env * 0.38
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}

func makeBuf(n int) []byte { return make([]byte, n*FrameBytes) }

// putStereoF32 writes a [-1,1] sample to both channels of frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for c := 0; c < ChannelCount; c++ {
		o := i*FrameBytes + c*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat saturates gently instead of clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr is an envelope at normalized progress [0,1]; attack, decay and
// release are fractions of the whole.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances seed and returns noise in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}
