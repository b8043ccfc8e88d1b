package plugin

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	Ps "github.com/maroda/pisano/analysis"
	Pt "github.com/maroda/pisano/types"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 480
	midiTempo       = 120.0

	// the note vocabulary starts at C1, MIDI note 12
	midiPitchBase = 12
)

// MIDIFileOutput writes the period as a single-track standard MIDI
// file, one quarter note per residue at the transposed pitch.
// Zero residues (section boundaries) get an accented velocity.
type MIDIFileOutput struct {
	Dir string
}

func NewMIDIFileOutput(dir string) *MIDIFileOutput {
	return &MIDIFileOutput{Dir: dir}
}

func (mo *MIDIFileOutput) WriteAnalysis(a *Pt.Analysis) error {
	if err := os.MkdirAll(mo.Dir, 0755); err != nil {
		slog.Error("MIDIFileOutput could not create directory",
			slog.String("dir", mo.Dir),
			slog.Any("Error", err))
		return fmt.Errorf("midi output directory: %w", err)
	}

	data, err := mo.Generate(a)
	if err != nil {
		return err
	}

	fname := filepath.Join(mo.Dir, fmt.Sprintf("Pisano Melody %d.mid", a.Modulus))
	if err := os.WriteFile(fname, data, 0644); err != nil {
		slog.Error("MIDIFileOutput write failed",
			slog.String("file", fname),
			slog.Any("Error", err))
		return fmt.Errorf("midi output write: %w", err)
	}

	slog.Info("Saved MIDI file", slog.String("file", fname))
	return nil
}

// Generate renders the SMF bytes for an analysis.
func (mo *MIDIFileOutput) Generate(a *Pt.Analysis) ([]byte, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track

	// tempo meta event (FF 51 03)
	microsecondsPerBeat := uint32(60000000.0 / midiTempo)
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// time signature meta event from the derived signature, N/4
	tsig := Ps.TimeSignature(a.Length, Ps.MaxBeatsPerBar)
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, byte(tsig), 0x02, 0x18, 0x08}))

	offset := Ps.Transposition(a.Modulus)
	channel := uint8(0)

	for _, v := range a.Sequence {
		pitch := v + offset + midiPitchBase
		if pitch > 127 {
			slog.Error("MIDIFileOutput pitch out of range",
				slog.Int("modulus", a.Modulus),
				slog.Int("pitch", pitch))
			return nil, fmt.Errorf("pitch %d exceeds the MIDI range", pitch)
		}

		velocity := uint8(100)
		if v == 0 {
			velocity = 127
		}

		track.Add(0, midi.NoteOn(channel, uint8(pitch), velocity))
		track.Add(ticksPerQuarter, midi.NoteOff(channel, uint8(pitch)))
	}

	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}

	return buf.Bytes(), nil
}

func (mo *MIDIFileOutput) Close() error { return nil }

func (mo *MIDIFileOutput) Type() string { return "MIDI" }
