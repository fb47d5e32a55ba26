package playback

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"noteplayer/logging"
	"noteplayer/synth"
)

// ebitenSink plays through ebiten's audio context, which expects 16-bit
// stereo little endian PCM.
type ebitenSink struct {
	ctx    *audio.Context
	volume float64
	poll   time.Duration
}

func openEbiten(opts Options) (Sink, error) {
	c := audio.CurrentContext()
	if c == nil {
		c = audio.NewContext(synth.SampleRate)
	} else if c.SampleRate() != synth.SampleRate {
		return nil, deviceError(BackendEbiten, fmt.Errorf("context already open at %d Hz", c.SampleRate()))
	}
	return &ebitenSink{ctx: c, volume: opts.Volume, poll: opts.DrainPoll}, nil
}

func (s *ebitenSink) Play(ctx context.Context, w synth.Waveform) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := s.ctx.NewPlayer(bytes.NewReader(w.Stereo16LE()))
	if err != nil {
		return deviceError(BackendEbiten, err)
	}
	defer func() {
		if err := p.Close(); err != nil {
			logging.Errorf("ebiten: close player: %v", err)
		}
	}()
	p.SetVolume(s.volume)
	return playOn(ctx, BackendEbiten, p, waveLength(w), s.poll)
}

// Close is a no-op: ebiten keeps a single audio context for the process.
func (s *ebitenSink) Close() error { return nil }
