package playback

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noteplayer/logging"
	"noteplayer/synth"
)

// fakePlayer reports playing for a fixed number of IsPlaying calls.
type fakePlayer struct {
	remaining int32
	polls     int32
}

func (p *fakePlayer) Play() {}

func (p *fakePlayer) IsPlaying() bool {
	atomic.AddInt32(&p.polls, 1)
	return atomic.AddInt32(&p.remaining, -1) >= 0
}

func (p *fakePlayer) Close() error { return nil }

func TestDrainWaitsForPlayer(t *testing.T) {
	p := &fakePlayer{remaining: 3}
	started, err := drain(context.Background(), p, 0, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, started)
	assert.EqualValues(t, 4, p.polls)
}

func TestDrainWaitsAtLeastLength(t *testing.T) {
	p := &fakePlayer{remaining: 1}
	start := time.Now()
	started, err := drain(context.Background(), p, 30*time.Millisecond, time.Millisecond)
	require.NoError(t, err)
	assert.True(t, started)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestDrainStopsOnCancel(t *testing.T) {
	p := &fakePlayer{remaining: 1 << 30}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := drain(ctx, p, 0, time.Millisecond)
	require.Error(t, err)
}

func TestPlayOnReportsPlayerThatNeverStarts(t *testing.T) {
	p := &fakePlayer{}
	start := time.Now()
	err := playOn(context.Background(), BackendEbiten, p, 20*time.Millisecond, time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.ErrorIs(t, err, errNeverStarted)
	assert.Equal(t, "ebiten: audio device unavailable: player never started", err.Error())
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestPlayOnStartedPlayer(t *testing.T) {
	p := &fakePlayer{remaining: 5}
	err := playOn(context.Background(), BackendEbiten, p, 10*time.Millisecond, time.Millisecond)
	require.NoError(t, err)
}

func TestPlayOnEmptyWaveform(t *testing.T) {
	err := playOn(context.Background(), BackendOto, &fakePlayer{}, 0, time.Millisecond)
	require.NoError(t, err)
}

func TestPlayOnCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := playOn(ctx, BackendEbiten, &fakePlayer{}, time.Second, time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, errors.Is(err, ErrDeviceUnavailable))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "alsa-direct"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrDeviceUnavailable))
}

func TestDeviceErrorUnwraps(t *testing.T) {
	cause := errors.New("no card")
	err := deviceError(BackendOto, cause)
	assert.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "oto: audio device unavailable: no card", err.Error())
}

func TestSilentSink(t *testing.T) {
	s, err := Open(Options{Backend: BackendSilent})
	require.NoError(t, err)
	defer s.Close()

	w, err := synth.Synthesize([]float64{440}, 100)
	require.NoError(t, err)
	start := time.Now()
	require.NoError(t, s.Play(context.Background(), w))
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestSilentSinkRealtime(t *testing.T) {
	s, err := Open(Options{Backend: BackendSilent, Realtime: true})
	require.NoError(t, err)

	w, err := synth.Synthesize([]float64{440}, 40)
	require.NoError(t, err)
	start := time.Now()
	require.NoError(t, s.Play(context.Background(), w))
	assert.GreaterOrEqual(t, time.Since(start), waveLength(w))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Play(ctx, w), context.Canceled)
}

func TestSilentSinkLogsDigestWhenDebugging(t *testing.T) {
	dir := t.TempDir()
	logging.Setup(dir, true)
	t.Cleanup(func() { logging.Setup("", false) })

	w, err := synth.Synthesize([]float64{440}, 100)
	require.NoError(t, err)
	require.NoError(t, newSilent(Options{}).Play(context.Background(), w))

	logs, err := filepath.Glob(filepath.Join(dir, "debug-*.log"))
	require.NoError(t, err)
	require.Len(t, logs, 1)
	data, err := os.ReadFile(logs[0])
	require.NoError(t, err)
	sum := Digest(w)
	assert.Contains(t, string(data), fmt.Sprintf("silent: 4410 samples (100.0 ms) blake2b=%x", sum[:8]))
}

func TestDigestIsStable(t *testing.T) {
	a, _ := synth.Synthesize([]float64{261.6, 329.6}, 20)
	b, _ := synth.Synthesize([]float64{261.6, 329.6}, 20)
	c, _ := synth.Synthesize([]float64{261.6, 329.7}, 20)
	assert.Equal(t, Digest(a), Digest(b))
	assert.NotEqual(t, Digest(a), Digest(c))
}

func TestWaveLength(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, waveLength(make(synth.Waveform, 4410)))
}
