package plugin

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	Pt "github.com/maroda/pisano/types"
)

func TestMIDIFileOutputGenerate(t *testing.T) {
	mo := NewMIDIFileOutput(t.TempDir())
	a := analyzeForTest(t, 13)

	data, err := mo.Generate(a)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	t.Run("Produces a standard MIDI file", func(t *testing.T) {
		if !bytes.HasPrefix(data, []byte("MThd")) {
			t.Error("output does not start with an SMF header")
		}
	})

	t.Run("Rejects pitches beyond the MIDI range", func(t *testing.T) {
		huge := &Pt.Analysis{
			Modulus:  200,
			Sequence: []int{150},
			Length:   1,
			Sections: 1,
		}
		if _, err := mo.Generate(huge); err == nil {
			t.Error("expected an error for a pitch above 127")
		}
	})
}

func TestMIDIFileOutputWrite(t *testing.T) {
	dir := t.TempDir()
	mo := NewMIDIFileOutput(dir)

	if err := mo.WriteAnalysis(analyzeForTest(t, 13)); err != nil {
		t.Fatalf("WriteAnalysis failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "Pisano Melody 13.mid"))
	if err != nil {
		t.Fatalf("midi file missing: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("MThd")) {
		t.Error("written file does not start with an SMF header")
	}
}
