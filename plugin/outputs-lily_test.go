package plugin

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLilyOutputEngrave(t *testing.T) {
	a := analyzeForTest(t, 13)
	lo := NewLilyOutput(t.TempDir(), true)

	score, err := lo.Engrave(a)
	if err != nil {
		t.Fatalf("Engrave failed: %v", err)
	}

	t.Run("Header carries title and description", func(t *testing.T) {
		if !strings.Contains(score, `title = "Pisano Melody 13"`) {
			t.Error("missing score title")
		}
		if !strings.Contains(score, "Fibonacci 1-28 mod 13") {
			t.Error("missing description subtitle")
		}
	})

	t.Run("Derived time signature", func(t *testing.T) {
		if !strings.Contains(score, `\time 7/4`) {
			t.Error("missing \\time 7/4 for a length of 28")
		}
	})

	t.Run("Clef follows the transposed register", func(t *testing.T) {
		// every mod 13 pitch lands in 48..60, one treble clef suffices
		if !strings.Contains(score, `\clef "treble"`) {
			t.Error("missing treble clef")
		}
		if strings.Contains(score, `\clef "bass"`) {
			t.Error("unexpected bass clef for mod 13")
		}
	})

	t.Run("Sections and mirror are labeled", func(t *testing.T) {
		if !strings.Contains(score, `^"Section 1"`) {
			t.Error("missing first section label")
		}
		if !strings.Contains(score, `^"Section 3"`) {
			t.Error("missing third section label")
		}
		if !strings.Contains(score, `^"Begin of mirror"`) {
			t.Error("missing mirror label at the midpoint")
		}
	})

	t.Run("Repeat bars open and close the piece", func(t *testing.T) {
		if !strings.Contains(score, `\bar ".|:"`) || !strings.Contains(score, `\bar ":|."`) {
			t.Error("missing repeat bar lines")
		}
	})
}

func TestLilyOutputPlain(t *testing.T) {
	a := analyzeForTest(t, 13)
	lo := NewLilyOutput(t.TempDir(), false)

	score, err := lo.Engrave(a)
	if err != nil {
		t.Fatalf("Engrave failed: %v", err)
	}

	if strings.Contains(score, `^"Section`) {
		t.Error("plain score should carry no section labels")
	}
	if strings.Contains(score, "-1\n") {
		t.Error("plain score should carry no fingering marks")
	}
}

func TestLilyOutputWrite(t *testing.T) {
	dir := t.TempDir()
	lo := NewLilyOutput(dir, true)

	t.Run("Writes the score file", func(t *testing.T) {
		if err := lo.WriteAnalysis(analyzeForTest(t, 13)); err != nil {
			t.Fatalf("WriteAnalysis failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "Pisano Melody 13.ly")); err != nil {
			t.Errorf("score file missing: %v", err)
		}
	})

	t.Run("Refuses an oversized modulus", func(t *testing.T) {
		if err := lo.WriteAnalysis(analyzeForTest(t, 98)); err == nil {
			t.Error("expected an error above the score limit")
		}
	})
}
