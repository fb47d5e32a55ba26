// Package pitch maps note names such as "C#5" to frequencies.
package pitch

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/width"
)

// Class is a pitch class name in canonical spelling, e.g. "C#".
type Class string

var ErrUnknownPitchClass = errors.New("unknown pitch class")

// classes lists the pitch classes in chromatic order.
var classes = []Class{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// baseFreqs holds the frequency of each class at octave 0.
var baseFreqs = map[Class]float64{
	"C":  16.35,
	"C#": 17.32,
	"D":  18.35,
	"D#": 19.45,
	"E":  20.60,
	"F":  21.83,
	"F#": 23.12,
	"G":  24.50,
	"G#": 25.96,
	"A":  27.50,
	"A#": 29.14,
	"B":  30.87,
}

var upper = cases.Upper(language.Und)

// Classes returns the twelve pitch classes from C to B.
func Classes() []Class {
	return append([]Class(nil), classes...)
}

// Base returns the octave-0 frequency of c in Hz.
func Base(c Class) (float64, error) {
	f, ok := baseFreqs[Class(Normalize(string(c)))]
	if !ok {
		return 0, ErrUnknownPitchClass
	}
	return f, nil
}

// Normalize folds s to the canonical spelling used by the table: ASCII,
// upper case, with '#' as the sharp sign.
func Normalize(s string) string {
	s = width.Fold.String(s)
	s = strings.ReplaceAll(s, "♯", "#")
	return upper.String(s)
}
