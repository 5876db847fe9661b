package viewer

import (
	"bytes"
	"log/slog"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"village/internal/synth"
)

const bitDepth = 0 // 32-bit float (oto.FormatFloat32LE)

// Audio plays the pre-rendered bell and click. A nil *Audio is silent.
type Audio struct {
	ctx   *oto.Context
	ready chan struct{}
	bell  []byte
	click []byte
	log   *slog.Logger
}

func NewAudio(log *slog.Logger) (*Audio, error) {
	ctx, ready, err := oto.NewContext(synth.SampleRate, synth.ChannelCount, bitDepth)
	if err != nil {
		return nil, err
	}
	return &Audio{ctx: ctx, ready: ready, bell: synth.Bell(), click: synth.Click(), log: log}, nil
}

func (a *Audio) Bell() {
	if a != nil {
		a.play(a.bell, 0.8)
	}
}

func (a *Audio) Click() {
	if a != nil {
		a.play(a.click, 0.5)
	}
}

func (a *Audio) play(samples []byte, volume float64) {
	select {
	case <-a.ready:
	default:
		a.log.Debug("audio not ready, dropping sound")
		return
	}
	go func() {
		player := a.ctx.NewPlayer(bytes.NewReader(samples))
		player.SetVolume(volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}
