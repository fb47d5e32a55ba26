// Package notation turns a song string into an ordered list of playable
// events.
//
// A song is a whitespace separated list of events. Each event is one note
// or a comma joined chord, optionally followed by ':' and a duration in
// milliseconds:
//
//	C4 D4 E4 C4,E4,G4:600 a:250
package notation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"noteplayer/pitch"
	"noteplayer/synth"
)

// DefaultDurationMs is used when an event has no duration or an invalid one.
const DefaultDurationMs = 500.0

var ErrInvalidDuration = errors.New("invalid duration")

// InvalidDurationError reports a duration field that could not be used.
type InvalidDurationError struct {
	Token    string
	Duration string
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("Invalid duration, using default %gms", DefaultDurationMs)
}

func (e *InvalidDurationError) Unwrap() error { return ErrInvalidDuration }

// Event is a single note or chord to be sounded for DurationMs.
type Event struct {
	Token      string    // note or chord text without the duration
	Notes      []string  // sub-tokens as written
	Freqs      []float64 // resolved frequencies, one per note
	DurationMs float64
}

// IsChord reports whether the event sounds more than one note.
func (e Event) IsChord() bool {
	return len(e.Freqs) > 1
}

// Describe returns the status line printed when the event is played.
func (e Event) Describe() string {
	if e.IsChord() {
		return "Playing chord: " + e.Token
	}
	return fmt.Sprintf("Playing note: %s (%.2f Hz)", e.Notes[0], e.Freqs[0])
}

// Score is the result of parsing a song. Warnings holds one entry per
// skipped event or substituted duration, in input order.
type Score struct {
	Events   []Event
	Warnings []error
}

// Parse splits song into events. Malformed events never abort the parse:
// an unknown note skips its whole event and a bad duration falls back to
// DefaultDurationMs, each recorded in Score.Warnings.
func Parse(song string) Score {
	var sc Score
	for _, tok := range strings.Fields(song) {
		ev, warns, ok := parseEvent(tok)
		sc.Warnings = append(sc.Warnings, warns...)
		if ok {
			sc.Events = append(sc.Events, ev)
		}
	}
	return sc
}

func parseEvent(tok string) (Event, []error, bool) {
	var warns []error
	group, dur, hasDur := strings.Cut(tok, ":")
	ev := Event{Token: group, DurationMs: DefaultDurationMs}
	if hasDur {
		// Fields after a second ':' are ignored.
		dur, _, _ = strings.Cut(dur, ":")
		ms, err := parseDuration(dur)
		if err != nil {
			warns = append(warns, &InvalidDurationError{Token: tok, Duration: dur})
		} else {
			ev.DurationMs = ms
		}
	}

	ev.Notes = strings.Split(group, ",")
	ev.Freqs = make([]float64, 0, len(ev.Notes))
	for _, n := range ev.Notes {
		f, err := pitch.Frequency(n)
		if err != nil {
			return Event{}, append(warns, err), false
		}
		ev.Freqs = append(ev.Freqs, f)
	}
	return ev, warns, true
}

func parseDuration(s string) (float64, error) {
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(ms) || ms <= 0 || ms > synth.MaxDurationMs {
		return 0, fmt.Errorf("duration %q out of range", s)
	}
	return ms, nil
}
