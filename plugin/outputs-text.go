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

// TextOutput writes the plain-text dump of a period:
// title line, subtitle line, length line, one residue per line.
type TextOutput struct {
	Dir string
}

func NewTextOutput(dir string) *TextOutput {
	return &TextOutput{Dir: dir}
}

func (to *TextOutput) WriteAnalysis(a *Pt.Analysis) error {
	if err := os.MkdirAll(to.Dir, 0755); err != nil {
		slog.Error("TextOutput could not create directory",
			slog.String("dir", to.Dir),
			slog.Any("Error", err))
		return fmt.Errorf("text output directory: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(Ps.Title(a.Modulus) + "\n")
	sb.WriteString(Ps.SubtitleFor(a) + "\n")
	sb.WriteString(fmt.Sprintf("%d\n", a.Length))
	for _, v := range a.Sequence {
		sb.WriteString(fmt.Sprintf("%d\n", v))
	}

	fname := filepath.Join(to.Dir, fmt.Sprintf("Pisano %d.txt", a.Modulus))
	if err := os.WriteFile(fname, []byte(sb.String()), 0644); err != nil {
		slog.Error("TextOutput write failed",
			slog.String("file", fname),
			slog.Any("Error", err))
		return fmt.Errorf("text output write: %w", err)
	}

	slog.Info("Saved text file", slog.String("file", fname))
	return nil
}

func (to *TextOutput) Close() error { return nil }

func (to *TextOutput) Type() string { return "Text" }
