// Package playback streams waveforms to an audio device.
package playback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"noteplayer/synth"
)

const (
	BackendEbiten = "ebiten"
	BackendOto    = "oto"
	BackendSilent = "silent"
)

// drainGrace bounds how long a player may keep reporting IsPlaying after
// its waveform should have ended.
const drainGrace = 2 * time.Second

var (
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	errNeverStarted      = errors.New("player never started")
)

// Sink plays waveforms one at a time. Play blocks until the waveform has
// been emitted by the device.
type Sink interface {
	Play(ctx context.Context, w synth.Waveform) error
	Close() error
}

// Options configures Open.
type Options struct {
	Backend   string
	Volume    float64
	DrainPoll time.Duration
	// Realtime makes the silent backend take as long as real playback.
	Realtime bool
}

// Open acquires the device for the configured backend.
func Open(opts Options) (Sink, error) {
	if opts.DrainPoll <= 0 {
		opts.DrainPoll = 5 * time.Millisecond
	}
	switch opts.Backend {
	case BackendEbiten, "":
		return openEbiten(opts)
	case BackendOto:
		return openOto(opts)
	case BackendSilent:
		return newSilent(opts), nil
	}
	return nil, fmt.Errorf("unknown playback backend %q", opts.Backend)
}

func deviceError(backend string, err error) error {
	return fmt.Errorf("%s: %w: %w", backend, ErrDeviceUnavailable, err)
}

// player is satisfied by both ebiten and oto players.
type player interface {
	Play()
	IsPlaying() bool
	Close() error
}

// playOn starts p and drains it. A player that never reports playing a
// non-empty waveform means the device failed to open behind the player's
// back, which ebiten only surfaces from its game loop.
func playOn(ctx context.Context, backend string, p player, length, poll time.Duration) error {
	p.Play()
	started, err := drain(ctx, p, length, poll)
	if err != nil {
		return err
	}
	if length > 0 && !started {
		return deviceError(backend, errNeverStarted)
	}
	return nil
}

// drain waits until p stops playing, but never less than length so that
// the next event cannot overlap this one. It reports whether p was ever
// seen playing.
func drain(ctx context.Context, p player, length, poll time.Duration) (bool, error) {
	start := time.Now()
	lim := rate.NewLimiter(rate.Every(poll), 1)
	started := false
	for {
		playing := p.IsPlaying()
		started = started || playing
		elapsed := time.Since(start)
		if elapsed >= length && (!playing || elapsed >= length+drainGrace) {
			return started, nil
		}
		if err := lim.Wait(ctx); err != nil {
			return started, err
		}
	}
}

func waveLength(w synth.Waveform) time.Duration {
	return time.Duration(len(w)) * time.Second / synth.SampleRate
}
