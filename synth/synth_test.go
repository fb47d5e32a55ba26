package synth

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestOneSecondOfA4(t *testing.T) {
	w, err := Synthesize([]float64{440}, 1000)
	require.NoError(t, err)
	assert.Len(t, w, 44100)
	assert.Equal(t, int8(0), w[0])
}

func TestLengthRounds(t *testing.T) {
	cases := []struct {
		ms   float64
		want int
	}{
		{100, 4410},
		{500, 22050},
		{0.01, 0},
		{1.5, 66},   // 66.15
		{0.034, 1},  // 1.4994
		{0.0114, 1}, // 0.50274
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Samples(tc.ms), "%v ms", tc.ms)
		w, err := Synthesize([]float64{440}, tc.ms)
		require.NoError(t, err)
		assert.Len(t, w, tc.want, "%v ms", tc.ms)
	}
}

func TestQuarterRateSine(t *testing.T) {
	// Four samples per period lands exactly on 0, peak, 0, trough.
	w, err := Synthesize([]float64{SampleRate / 4}, 8000.0/SampleRate)
	require.NoError(t, err)
	assert.Equal(t, Waveform{0, 127, 0, -127, 0, 127, 0, -127}, w)
}

func TestChordIsMean(t *testing.T) {
	// Opposite phases at i=1: sin(pi/2) and sin(3pi/2) cancel.
	w, err := Synthesize([]float64{SampleRate / 4, 3 * SampleRate / 4}, 4000.0/SampleRate)
	require.NoError(t, err)
	assert.Equal(t, Waveform{0, 0, 0, 0}, w)

	same, err := Synthesize([]float64{440, 440}, 50)
	require.NoError(t, err)
	single, err := Synthesize([]float64{440}, 50)
	require.NoError(t, err)
	assert.Equal(t, single, same)
}

func TestChordLengthMatchesSingle(t *testing.T) {
	one, err := Synthesize([]float64{261.6}, 333)
	require.NoError(t, err)
	three, err := Synthesize([]float64{261.6, 329.6, 392}, 333)
	require.NoError(t, err)
	assert.Len(t, three, len(one))
}

func TestSynthesizeRejectsBadInput(t *testing.T) {
	_, err := Synthesize(nil, 100)
	assert.ErrorIs(t, err, ErrNoFrequencies)
	_, err = Synthesize([]float64{440, 0}, 100)
	assert.ErrorIs(t, err, ErrBadFrequency)
	_, err = Synthesize([]float64{-1}, 100)
	assert.ErrorIs(t, err, ErrBadFrequency)
	_, err = Synthesize([]float64{440}, 0)
	assert.ErrorIs(t, err, ErrBadDuration)
	_, err = Synthesize([]float64{440}, -10)
	assert.ErrorIs(t, err, ErrBadDuration)
	_, err = Synthesize([]float64{440}, 1e300)
	assert.ErrorIs(t, err, ErrBadDuration)
	_, err = Synthesize([]float64{440}, MaxDurationMs+1)
	assert.ErrorIs(t, err, ErrBadDuration)
}

func TestSynthesizeRejectsOverflowingPhase(t *testing.T) {
	// Finite, but 2*pi*i*f is +Inf after the first sample.
	_, err := Synthesize([]float64{math.MaxFloat64 / 2}, 10)
	assert.ErrorIs(t, err, ErrBadFrequency)

	// Roughly C1015: the phase only overflows for later samples.
	_, err = Synthesize([]float64{440, 5.7e306}, 100)
	assert.ErrorIs(t, err, ErrBadFrequency)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		freqs := rapid.SliceOfN(rapid.Float64Range(1, 20000), 1, 6).Draw(t, "freqs")
		ms := rapid.Float64Range(0.1, 50).Draw(t, "ms")
		a, err := Synthesize(freqs, ms)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Synthesize(freqs, ms)
		if err != nil {
			t.Fatal(err)
		}
		if string(a.Unsigned8()) != string(b.Unsigned8()) {
			t.Fatalf("output differs between runs")
		}
		if len(a) != Samples(ms) {
			t.Fatalf("len = %d, want %d", len(a), Samples(ms))
		}
		for i, v := range a {
			if v < -127 {
				t.Fatalf("sample %d = %d below -127", i, v)
			}
		}
	})
}

func TestDurationMs(t *testing.T) {
	w := make(Waveform, 4410)
	assert.InDelta(t, 100.0, w.DurationMs(), 1e-9)
}

func TestUnsigned8(t *testing.T) {
	w := Waveform{-127, -1, 0, 1, 127}
	assert.Equal(t, []byte{1, 127, 128, 129, 255}, w.Unsigned8())
}

func TestStereo16LE(t *testing.T) {
	w := Waveform{0, 127, -127}
	b := w.Stereo16LE()
	require.Len(t, b, 12)
	for i, v := range w {
		l := int16(binary.LittleEndian.Uint16(b[4*i:]))
		r := int16(binary.LittleEndian.Uint16(b[4*i+2:]))
		assert.Equal(t, int16(v)*256, l)
		assert.Equal(t, l, r)
	}
}
