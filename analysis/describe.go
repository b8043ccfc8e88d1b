package pisano

import (
	"fmt"

	Pt "github.com/maroda/pisano/types"
)

// Title is the display and export title for a modulus.
func Title(m int) string {
	return fmt.Sprintf("Pisano %d", m)
}

// SubtitleFor builds the one-line description of an analysis:
// length, modulus, section breakdown, and the mirror clause.
// The section ratio uses integer division; the divisibility of
// length by sections is a property of the periods themselves.
func SubtitleFor(a *Pt.Analysis) string {
	st := fmt.Sprintf("Fibonacci 1-%d mod %d", a.Length, a.Modulus)
	st += fmt.Sprintf(" (%d*%d", a.Sections, a.Length/a.Sections)
	if a.Mirrors > 0 {
		st += " notes with mirrored 2nd half)"
	} else {
		st += " notes)"
	}
	return st
}

// Subtitle analyzes m and formats its description line.
func Subtitle(m int) (string, error) {
	a, err := Analyze(m, DefaultCap)
	if err != nil {
		return "", err
	}
	return SubtitleFor(a), nil
}
