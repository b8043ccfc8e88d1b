package pisano

import (
	Pt "github.com/maroda/pisano/types"
)

// MinBarHeight keeps zero-residue bars visible in any renderer.
const MinBarHeight = 3

// Bars converts an analysis into renderer-neutral bar data.
// Heights scale residues into graphHeight. Shading alternates per
// section, zero residues get their own class, and bars past the
// mirror midpoint are flagged for tinting.
func Bars(a *Pt.Analysis, graphHeight int) []Pt.Bar {
	if a == nil || a.Length == 0 {
		return nil
	}

	maxVal := 1
	for _, v := range a.Sequence {
		if v > maxVal {
			maxVal = v
		}
	}

	mid := MirrorMidpoint(a)
	bars := make([]Pt.Bar, 0, a.Length)
	section := 0

	for i, v := range a.Sequence {
		if v == 0 {
			section++
		}

		b := Pt.Bar{Height: MinBarHeight}
		if v != 0 {
			b.Height = v * graphHeight / maxVal
			if b.Height < 1 {
				b.Height = 1
			}
		}

		switch {
		case v == 0:
			b.Class = Pt.ZeroBar
		case section%2 == 0:
			b.Class = Pt.SectionEven
		default:
			b.Class = Pt.SectionOdd
		}

		// zero bars stay untinted, they mark boundaries on both halves
		if mid >= 0 && i >= mid && v != 0 {
			b.Mirrored = true
		}

		bars = append(bars, b)
	}

	return bars
}
