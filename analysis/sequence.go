package pisano

import (
	"fmt"
	"log/slog"

	Pt "github.com/maroda/pisano/types"
)

// DefaultCap bounds the recurrence when no config is in play.
// Pisano periods close long before this for any practical modulus.
const DefaultCap = 100000

// Analyze runs the Fibonacci-mod-m recurrence once and extracts
// everything the rest of the app needs: the full period sequence,
// its length, the zero-residue section count, and the mirror count.
//
// The state pair starts at (1, 0) so the first residue produced is
// Fibonacci index 1. Each step the sliding triple (prev, cur, next)
// is checked against two signatures:
//
//	[1, m-1, 0] - a mirror boundary, counted
//	[m-1, 1, 0] - the period closing, scan stops
//
// The mirror check always happens before the terminal check, so for
// m=2 (where the two triples coincide) the boundary is still counted.
func Analyze(m, cap int) (*Pt.Analysis, error) {
	if m < 2 {
		return nil, fmt.Errorf("modulus %d: %w", m, ErrModulusTooSmall)
	}
	if cap < 1 {
		cap = DefaultCap
	}

	prev, cur := 1, 0
	seq := make([]int, 0, 64)
	sections, mirrors := 0, 0

	for step := 0; step < cap; step++ {
		next := (prev + cur) % m
		seq = append(seq, next)

		if next == 0 {
			sections++
		}
		if prev == 1 && cur == m-1 && next == 0 {
			mirrors++
		}
		if prev == m-1 && cur == 1 && next == 0 {
			return &Pt.Analysis{
				Modulus:  m,
				Sequence: seq,
				Length:   len(seq),
				Sections: sections,
				Mirrors:  mirrors,
			}, nil
		}

		prev, cur = cur, next
	}

	slog.Error("Pisano period did not close",
		slog.Int("modulus", m),
		slog.Int("cap", cap))
	return nil, fmt.Errorf("modulus %d after %d steps: %w", m, cap, ErrCapExceeded)
}

// Sequence returns the residues of one full period of m.
func Sequence(m, cap int) ([]int, error) {
	a, err := Analyze(m, cap)
	if err != nil {
		return nil, err
	}
	return a.Sequence, nil
}

// Length returns the Pisano period of m.
func Length(m int) (int, error) {
	a, err := Analyze(m, DefaultCap)
	if err != nil {
		return 0, err
	}
	return a.Length, nil
}

// Sections returns how many times residue 0 occurs in one period of m.
func Sections(m int) (int, error) {
	a, err := Analyze(m, DefaultCap)
	if err != nil {
		return 0, err
	}
	return a.Sections, nil
}

// Mirrors returns the mirror-boundary count for one period of m.
// Nonzero means the second half of the period mirrors the first.
func Mirrors(m int) (int, error) {
	a, err := Analyze(m, DefaultCap)
	if err != nil {
		return 0, err
	}
	return a.Mirrors, nil
}

// MirrorMidpoint is the index where the mirrored second half begins,
// or -1 when the period has no displayable mirror
// (no mirror boundary found, or an odd length).
func MirrorMidpoint(a *Pt.Analysis) int {
	if a == nil || a.Mirrors < 1 || a.Length%2 != 0 {
		return -1
	}
	return a.Length / 2
}
