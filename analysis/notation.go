package pisano

import (
	"fmt"

	Pt "github.com/maroda/pisano/types"
)

// NoteNames is the LilyPond pitch vocabulary, indexed by transposed
// residue value. Nine chromatic octaves from c,,, plus a final high c.
var NoteNames = []string{
	"c,,,", "cis,,,", "d,,,", "dis,,,", "e,,,", "f,,,", "fis,,,", "g,,,", "gis,,,", "a,,,", "ais,,,", "b,,,", // 0 - 11
	"c,,", "cis,,", "d,,", "dis,,", "e,,", "f,,", "fis,,", "g,,", "gis,,", "a,,", "ais,,", "b,,", // 12 - 23
	"c,", "cis,", "d,", "dis,", "e,", "f,", "fis,", "g,", "gis,", "a,", "ais,", "b,", // 24 - 35
	"c", "cis", "d", "dis", "e", "f", "fis", "g", "gis", "a", "ais", "b", // 36 - 47
	"c'", "cis'", "d'", "dis'", "e'", "f'", "fis'", "g'", "gis'", "a'", "ais'", "b'", // 48 - 59
	"c''", "cis''", "d''", "dis''", "e''", "f''", "fis''", "g''", "gis''", "a''", "ais''", "b''", // 60 - 71
	"c'''", "cis'''", "d'''", "dis'''", "e'''", "f'''", "fis'''", "g'''", "gis'''", "a'''", "ais'''", "b'''", // 72 - 83
	"c''''", "cis''''", "d''''", "dis''''", "e''''", "f''''", "fis''''", "g''''", "gis''''", "a''''", "ais''''", "b''''", // 84 - 95
	"c'''''", "cis'''''", "d'''''", "dis'''''", "e'''''", "f'''''", "fis'''''", "g'''''", "gis'''''", "a'''''", "ais'''''", "b'''''", // 96 - 107
	"c''''''", // 108
}

// transpositionSteps is an ordered range table: the first row whose
// upper modulus bound holds wins. Larger moduli produce taller residue
// spans, so the register shift shrinks as m grows.
var transpositionSteps = []struct {
	maxModulus int
	offset     int
}{
	{24, 48},
	{48, 36},
	{60, 24},
}

// transpositionFloor is the offset for every modulus above 60.
const transpositionFloor = 12

// Transposition returns the semitone offset added to each residue
// before pitch lookup, keeping the melody in a playable register.
func Transposition(m int) int {
	for _, s := range transpositionSteps {
		if m <= s.maxModulus {
			return s.offset
		}
	}
	return transpositionFloor
}

// clefSteps is an ordered range table over transposed pitch values,
// inclusive upper bounds. Anything above the last bound is treble^8.
var clefSteps = []struct {
	maxPitch int
	clef     Pt.Clef
}{
	{11, Pt.ClefBass15},
	{23, Pt.ClefBass8},
	{47, Pt.ClefBass},
	{73, Pt.ClefTreble},
}

// ClefFor selects one of five clef registers for a transposed pitch.
func ClefFor(pitch int) Pt.Clef {
	for _, s := range clefSteps {
		if pitch <= s.maxPitch {
			return s.clef
		}
	}
	return Pt.ClefTreble8
}

// NoteName looks up the LilyPond token for a transposed pitch.
func NoteName(pitch int) (string, error) {
	if pitch < 0 || pitch >= len(NoteNames) {
		return "", fmt.Errorf("pitch %d outside the %d-note vocabulary", pitch, len(NoteNames))
	}
	return NoteNames[pitch], nil
}

// MaxBeatsPerBar is the longest measure the score generator uses.
const MaxBeatsPerBar = 7

// TimeSignature finds the largest beat count <= max that evenly
// divides length. It decrements all the way to 1, which divides
// everything, so the result is always in [1, max] and never 0.
func TimeSignature(length, max int) int {
	if max < 1 {
		max = 1
	}
	for n := max; n > 1; n-- {
		if length%n == 0 {
			return n
		}
	}
	return 1
}
