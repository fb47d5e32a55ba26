package pitch

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultOctave is used when a token carries no octave number.
const DefaultOctave = 4

// Note is a pitch class at a given octave.
type Note struct {
	Class  Class
	Octave int
}

// Frequency returns the note's frequency in Hz.
func (n Note) Frequency() float64 {
	return baseFreqs[n.Class] * math.Pow(2, float64(n.Octave))
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Class, n.Octave)
}

// UnknownNoteError reports a token whose pitch class is not recognised.
type UnknownNoteError struct {
	Token string
}

func (e *UnknownNoteError) Error() string {
	return "Unknown note: " + e.Token
}

func (e *UnknownNoteError) Unwrap() error { return ErrUnknownPitchClass }

// Resolve parses a token like "C#5", "a" or "G10". The leading non-digit
// run names the pitch class and the remainder is the octave. An octave
// that does not parse as an integer is ignored and DefaultOctave is used.
func Resolve(token string) (Note, error) {
	name, octave := splitToken(Normalize(token))
	c := Class(name)
	if _, ok := baseFreqs[c]; !ok {
		return Note{}, &UnknownNoteError{Token: token}
	}
	n := Note{Class: c, Octave: DefaultOctave}
	if octave != "" {
		if o, err := strconv.Atoi(octave); err == nil {
			n.Octave = o
		}
	}
	return n, nil
}

// Frequency resolves token and returns its frequency in Hz.
func Frequency(token string) (float64, error) {
	n, err := Resolve(token)
	if err != nil {
		return 0, err
	}
	return n.Frequency(), nil
}

func splitToken(s string) (name, octave string) {
	i := strings.IndexFunc(s, unicode.IsDigit)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
