package pisano

import (
	"testing"

	Pt "github.com/maroda/pisano/types"
)

func TestTransposition(t *testing.T) {
	cases := []struct {
		m    int
		want int
	}{
		{3, 48},
		{13, 48},
		{24, 48},
		{25, 36},
		{48, 36},
		{49, 24},
		{60, 24},
		{61, 12},
		{97, 12},
	}

	for _, c := range cases {
		if got := Transposition(c.m); got != c.want {
			t.Errorf("Transposition(%d) = %d, want %d", c.m, got, c.want)
		}
	}
}

func TestClefFor(t *testing.T) {
	cases := []struct {
		pitch int
		want  Pt.Clef
	}{
		{0, Pt.ClefBass15},
		{11, Pt.ClefBass15},
		{12, Pt.ClefBass8},
		{23, Pt.ClefBass8},
		{24, Pt.ClefBass},
		{47, Pt.ClefBass},
		{48, Pt.ClefTreble},
		{49, Pt.ClefTreble}, // residue 1 of mod 13, transposed by 48
		{73, Pt.ClefTreble},
		{74, Pt.ClefTreble8},
		{108, Pt.ClefTreble8},
	}

	for _, c := range cases {
		if got := ClefFor(c.pitch); got != c.want {
			t.Errorf("ClefFor(%d) = %q, want %q", c.pitch, got, c.want)
		}
	}
}

func TestNoteName(t *testing.T) {
	t.Run("Covers the full vocabulary", func(t *testing.T) {
		if len(NoteNames) != 109 {
			t.Fatalf("vocabulary size = %d, want 109", len(NoteNames))
		}

		cases := []struct {
			pitch int
			want  string
		}{
			{0, "c,,,"},
			{36, "c"},
			{48, "c'"},
			{49, "cis'"},
			{108, "c''''''"},
		}
		for _, c := range cases {
			got, err := NoteName(c.pitch)
			assertNoError(t, err)
			assertString(t, got, c.want)
		}
	})

	t.Run("Errors outside the vocabulary", func(t *testing.T) {
		for _, pitch := range []int{-1, 109, 200} {
			if _, err := NoteName(pitch); err == nil {
				t.Errorf("NoteName(%d) expected an error", pitch)
			}
		}
	})
}

func TestTimeSignature(t *testing.T) {
	t.Run("Finds the largest fitting divisor", func(t *testing.T) {
		cases := []struct {
			length int
			want   int
		}{
			{28, 7}, // mod 13
			{60, 6}, // mod 10
			{21, 7},
			{24, 6},
			{8, 4},
			{29, 1}, // prime above the beat limit
			{1, 1},
		}

		for _, c := range cases {
			if got := TimeSignature(c.length, MaxBeatsPerBar); got != c.want {
				t.Errorf("TimeSignature(%d, %d) = %d, want %d", c.length, MaxBeatsPerBar, got, c.want)
			}
		}
	})

	t.Run("Always divides and never returns 0", func(t *testing.T) {
		for length := 1; length <= 100; length++ {
			got := TimeSignature(length, MaxBeatsPerBar)
			if got < 1 || got > MaxBeatsPerBar {
				t.Errorf("TimeSignature(%d) = %d, outside [1, %d]", length, got, MaxBeatsPerBar)
			}
			if length%got != 0 {
				t.Errorf("TimeSignature(%d) = %d does not divide the length", length, got)
			}
		}
	})
}
