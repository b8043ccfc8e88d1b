package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	Ps "github.com/maroda/pisano/analysis"
	Pt "github.com/maroda/pisano/types"
)

// ScoreModulusLimit keeps the engraved score readable.
// Above this the transposed pitches also leave the note vocabulary.
const ScoreModulusLimit = 98

// LilyOutput writes the period as a LilyPond score.
// With Annotate set, every note carries its position as a fingering
// mark, each zero crossing opens a labeled section, and the midpoint
// section of a mirrored period is marked.
type LilyOutput struct {
	Dir      string
	Annotate bool
}

func NewLilyOutput(dir string, annotate bool) *LilyOutput {
	return &LilyOutput{Dir: dir, Annotate: annotate}
}

func (lo *LilyOutput) WriteAnalysis(a *Pt.Analysis) error {
	if a.Modulus >= ScoreModulusLimit {
		return fmt.Errorf("modulus %d too large for a score (limit %d)", a.Modulus, ScoreModulusLimit)
	}

	if err := os.MkdirAll(lo.Dir, 0755); err != nil {
		slog.Error("LilyOutput could not create directory",
			slog.String("dir", lo.Dir),
			slog.Any("Error", err))
		return fmt.Errorf("score output directory: %w", err)
	}

	score, err := lo.Engrave(a)
	if err != nil {
		return err
	}

	fname := filepath.Join(lo.Dir, fmt.Sprintf("Pisano Melody %d.ly", a.Modulus))
	if err := os.WriteFile(fname, []byte(score), 0644); err != nil {
		slog.Error("LilyOutput write failed",
			slog.String("file", fname),
			slog.Any("Error", err))
		return fmt.Errorf("score output write: %w", err)
	}

	slog.Info("Saved score", slog.String("file", fname))
	return nil
}

// Engrave renders the full LilyPond document for an analysis.
func (lo *LilyOutput) Engrave(a *Pt.Analysis) (string, error) {
	var sb strings.Builder

	// page settings
	sb.WriteString("\\paper {\n")
	sb.WriteString("  top-margin = 15\n")
	sb.WriteString("  left-margin = 15\n")
	sb.WriteString("  right-margin = 15\n")
	sb.WriteString("  indent = 0\n")
	sb.WriteString("  }\n")
	sb.WriteString("\\version \"2.18.2-1\"\n")

	// header block, same description text as display and text dump
	sb.WriteString("\\header{\n")
	sb.WriteString(fmt.Sprintf("   title = %q\n", fmt.Sprintf("Pisano Melody %d", a.Modulus)))
	sb.WriteString(fmt.Sprintf("   subtitle = %q\n", Ps.SubtitleFor(a)))
	sb.WriteString("   poet = \"Coded in Go\"\n")
	sb.WriteString("   composer = \"craque\"\n")
	sb.WriteString("   opus = \"2025\"\n")
	sb.WriteString("   }\n")
	sb.WriteString("{\n")

	tsig := Ps.TimeSignature(a.Length, Ps.MaxBeatsPerBar)
	sb.WriteString(fmt.Sprintf("\\time %d/4\n", tsig))
	sb.WriteString("\\bar \".|:\"\n")

	offset := Ps.Transposition(a.Modulus)
	mid := Ps.MirrorMidpoint(a)
	var oldClef Pt.Clef
	section := 0

	for i, v := range a.Sequence {
		pos := i + 1
		pitch := v + offset

		name, err := Ps.NoteName(pitch)
		if err != nil {
			slog.Error("LilyOutput pitch out of range",
				slog.Int("modulus", a.Modulus),
				slog.Int("pitch", pitch))
			return "", fmt.Errorf("engrave: %w", err)
		}

		if c := Ps.ClefFor(pitch); c != oldClef {
			sb.WriteString(fmt.Sprintf("\\clef %q ", c))
			oldClef = c
		}

		sb.WriteString(name)
		if lo.Annotate {
			sb.WriteString(fmt.Sprintf("-%d", pos))
		}
		sb.WriteString("\n")

		// a new section starts on the first note and after every zero
		if lo.Annotate {
			if i == 0 || a.Sequence[i-1] == 0 {
				section++
				sb.WriteString(fmt.Sprintf("^\"Section %d\"\n", section))
				if mid >= 0 && pos-1 == mid {
					sb.WriteString("^\"Begin of mirror\"\n")
				}
			}
		}

		if pos%tsig == 0 && pos < a.Length {
			sb.WriteString("|\n")
		}
	}

	sb.WriteString("\\bar \":|.\"\n")
	sb.WriteString("}\n")

	return sb.String(), nil
}

func (lo *LilyOutput) Close() error { return nil }

func (lo *LilyOutput) Type() string { return "LilyPond" }
