// Package pitch implements tonal pitch-class arithmetic on the line of
// fifths and on semitone pitch classes, plus Roman-numeral scale-degree
// conversions as used in harmonic annotation labels.
package pitch

import (
	"fmt"
	"strings"
)

// letterFifths maps note letters to their position on the line of fifths
// (C = 0, so F = -1, G = 1, D = 2, ...).
var letterFifths = map[byte]int{
	'F': -1, 'C': 0, 'G': 1, 'D': 2, 'A': 3, 'E': 4, 'B': 5,
}

// fifthsLetters is the line of fifths starting at F, used to spell names.
var fifthsLetters = [7]string{"F", "C", "G", "D", "A", "E", "B"}

// pcNames spells the twelve pitch classes with sharps, matching MIDI
// note-name conventions.
var pcNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// IsMinor reports whether a key name denotes a minor key. Annotation
// labels use lowercase note names for minor keys ("c#" = C sharp minor).
func IsMinor(key string) bool {
	return key != "" && key[0] >= 'a' && key[0] <= 'z'
}

// parseName splits a note name into its letter position on the line of
// fifths and its accidental offset (+7 per sharp, -7 per flat).
func parseName(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("empty note name")
	}
	letter := name[0]
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	base, ok := letterFifths[letter]
	if !ok {
		return 0, fmt.Errorf("invalid note name %q", name)
	}
	for _, r := range name[1:] {
		switch r {
		case '#':
			base += 7
		case 'b':
			base -= 7
		default:
			return 0, fmt.Errorf("invalid accidental %q in note name %q", r, name)
		}
	}
	return base, nil
}

// NameToFifths converts a note or key name ("Ab", "f#") to its position
// on the line of fifths relative to C.
func NameToFifths(name string) (int, error) {
	return parseName(name)
}

// NameToPC converts a note or key name to its semitone pitch class
// (C = 0, ..., B = 11).
func NameToPC(name string) (int, error) {
	fifths, err := parseName(name)
	if err != nil {
		return 0, err
	}
	return FifthsToPC(fifths), nil
}

// FifthsToPC converts a line-of-fifths position to a semitone pitch class.
func FifthsToPC(fifths int) int {
	return mod(fifths*7, 12)
}

// FifthsToName spells a line-of-fifths position as a note name, with as
// many sharps or flats as the position requires (6 -> "F#", -4 -> "Ab").
func FifthsToName(fifths int) string {
	shifted := fifths + 1
	acc := floorDiv(shifted, 7)
	name := fifthsLetters[mod(shifted, 7)]
	if acc > 0 {
		name += strings.Repeat("#", acc)
	} else if acc < 0 {
		name += strings.Repeat("b", -acc)
	}
	return name
}

// PCToName spells a semitone pitch class (or any integer, taken modulo 12)
// as a note name using sharps.
func PCToName(pc int) string {
	return pcNames[mod(pc, 12)]
}

// majorDegrees and minorDegrees map scale degrees 1-7 to line-of-fifths
// positions relative to the tonic, for the major and natural minor scales.
var (
	majorDegrees = [7]int{0, 2, 4, -1, 1, 3, 5}
	minorDegrees = [7]int{0, 2, -3, -1, 1, -4, -2}
)

var numeralDegrees = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5, "VI": 6, "VII": 7,
}

// RomanToFifths converts a Roman-numeral scale degree, optionally prefixed
// with accidentals ("bVII", "#iv"), to a line-of-fifths position relative
// to the tonic of the reference key. minor selects the natural-minor scale
// as the reference for unaltered degrees.
func RomanToFifths(numeral string, minor bool) (int, error) {
	if numeral == "" {
		return 0, fmt.Errorf("empty Roman numeral")
	}
	acc := 0
	i := 0
	for ; i < len(numeral); i++ {
		if numeral[i] == '#' {
			acc += 7
		} else if numeral[i] == 'b' && i+1 < len(numeral) && isNumeralChar(numeral[i+1]) {
			acc -= 7
		} else {
			break
		}
	}
	degree, ok := numeralDegrees[strings.ToUpper(numeral[i:])]
	if !ok {
		return 0, fmt.Errorf("invalid Roman numeral %q", numeral)
	}
	if minor {
		return minorDegrees[degree-1] + acc, nil
	}
	return majorDegrees[degree-1] + acc, nil
}

// IsMinorNumeral reports whether a Roman numeral denotes a minor chord
// (lowercase numeral part).
func IsMinorNumeral(numeral string) bool {
	trimmed := strings.TrimLeft(numeral, "#b")
	return trimmed != "" && trimmed[0] >= 'a' && trimmed[0] <= 'z'
}

func isNumeralChar(c byte) bool {
	switch c {
	case 'I', 'V', 'i', 'v', 'b', '#':
		return true
	}
	return false
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

func floorDiv(a, n int) int {
	q := a / n
	if (a%n != 0) && ((a < 0) != (n < 0)) {
		q--
	}
	return q
}
