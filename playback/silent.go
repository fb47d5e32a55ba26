package playback

import (
	"context"
	"time"

	"golang.org/x/crypto/blake2b"

	"noteplayer/logging"
	"noteplayer/synth"
)

// silentSink plays nothing. It logs a digest of every waveform so that two
// runs can be compared sample for sample, and optionally keeps real time.
type silentSink struct {
	realtime bool
}

func newSilent(opts Options) *silentSink {
	return &silentSink{realtime: opts.Realtime}
}

// Digest returns the BLAKE2b-256 sum of w's samples.
func Digest(w synth.Waveform) [blake2b.Size256]byte {
	return blake2b.Sum256(w.Unsigned8())
}

func (s *silentSink) Play(ctx context.Context, w synth.Waveform) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if logging.DebugEnabled() {
		sum := Digest(w)
		logging.Debugf("silent: %d samples (%.1f ms) blake2b=%x", len(w), w.DurationMs(), sum[:8])
	}
	if !s.realtime {
		return nil
	}
	t := time.NewTimer(waveLength(w))
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *silentSink) Close() error { return nil }
