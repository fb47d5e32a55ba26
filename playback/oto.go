package playback

import (
	"bytes"
	"context"
	"time"

	"github.com/ebitengine/oto/v3"

	"noteplayer/logging"
	"noteplayer/synth"
)

// otoSink drives oto directly in mono unsigned 8-bit, the closest device
// format to the synthesizer's output.
type otoSink struct {
	ctx    *oto.Context
	volume float64
	poll   time.Duration
}

func openOto(opts Options) (Sink, error) {
	c, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   synth.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatUnsignedInt8,
	})
	if err != nil {
		return nil, deviceError(BackendOto, err)
	}
	<-ready
	return &otoSink{ctx: c, volume: opts.Volume, poll: opts.DrainPoll}, nil
}

func (s *otoSink) Play(ctx context.Context, w synth.Waveform) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ctx.Err(); err != nil {
		return deviceError(BackendOto, err)
	}
	p := s.ctx.NewPlayer(bytes.NewReader(w.Unsigned8()))
	defer func() {
		if err := p.Close(); err != nil {
			logging.Errorf("oto: close player: %v", err)
		}
	}()
	p.SetVolume(s.volume)
	err := playOn(ctx, BackendOto, p, waveLength(w), s.poll)
	if perr := p.Err(); perr != nil && ctx.Err() == nil {
		return deviceError(BackendOto, perr)
	}
	return err
}

func (s *otoSink) Close() error {
	return s.ctx.Suspend()
}
