// Package synth renders frequencies into signed 8-bit mono PCM.
package synth

import (
	"errors"
	"math"
)

// SampleRate is the rate every waveform is rendered at and every playback
// backend is opened with.
const SampleRate = 44100

// amplitude is the peak value of a full scale sine.
const amplitude = 127

// MaxDurationMs is the longest single waveform Synthesize renders, ten
// minutes.
const MaxDurationMs = 10 * 60 * 1000

var (
	ErrNoFrequencies = errors.New("synth: no frequencies")
	ErrBadFrequency  = errors.New("synth: frequency must be positive and finite")
	ErrBadDuration   = errors.New("synth: duration must be positive and at most ten minutes")
)

// Waveform is a sequence of signed 8-bit mono samples at SampleRate.
type Waveform []int8

// Samples returns the number of samples needed for durationMs, which must
// not exceed MaxDurationMs.
func Samples(durationMs float64) int {
	return int(math.Round(durationMs * SampleRate / 1000))
}

// Synthesize renders the arithmetic mean of full scale sine waves at freqs
// for durationMs. The result depends only on its arguments.
func Synthesize(freqs []float64, durationMs float64) (Waveform, error) {
	if len(freqs) == 0 {
		return nil, ErrNoFrequencies
	}
	if !(durationMs > 0) || durationMs > MaxDurationMs {
		return nil, ErrBadDuration
	}
	n := Samples(durationMs)
	for _, f := range freqs {
		if !(f > 0) || math.IsInf(f, 0) {
			return nil, ErrBadFrequency
		}
		// The phase grows with i, so the last sample has the largest.
		if math.IsInf(2*math.Pi*float64(n)*f, 0) {
			return nil, ErrBadFrequency
		}
	}

	w := make(Waveform, n)
	scale := amplitude / float64(len(freqs))
	for i := 0; i < n; i++ {
		var sum float64
		for _, f := range freqs {
			sum += math.Sin(2 * math.Pi * float64(i) * f / SampleRate)
		}
		w[i] = int8(math.Round(scale * sum))
	}
	return w, nil
}

// DurationMs returns the length of w in milliseconds.
func (w Waveform) DurationMs() float64 {
	return float64(len(w)) * 1000 / SampleRate
}

// Unsigned8 encodes w as offset binary 8-bit samples, the layout of an
// unsigned 8-bit mono device.
func (w Waveform) Unsigned8() []byte {
	out := make([]byte, len(w))
	for i, v := range w {
		out[i] = byte(int(v) + 128)
	}
	return out
}

// Stereo16LE encodes w as 16-bit little endian stereo frames with the same
// sample on both channels.
func (w Waveform) Stereo16LE() []byte {
	out := make([]byte, len(w)*4)
	for i, v := range w {
		s := int16(v) << 8
		out[4*i] = byte(s)
		out[4*i+1] = byte(s >> 8)
		out[4*i+2] = byte(s)
		out[4*i+3] = byte(s >> 8)
	}
	return out
}
