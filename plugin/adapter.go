package plugin

/*

	The Adapter sits aside /analysis/
	Contains core interfaces for Plugin

*/

import (
	Pt "github.com/maroda/pisano/types"
)

// ExportAdapter is a place for a finished analysis to go:
// a file format on disk, a database, an instrument.
// Adapters own their destination (directory creation, file naming)
// and must be safe to call once per modulus change.
type ExportAdapter interface {
	WriteAnalysis(a *Pt.Analysis) error // Write one complete period
	Close() error                       // Close the adapter and release resources
	Type() string                       // ID for output
}

// ExportConfig carries everything an adapter factory might need.
// Factories ignore fields that do not concern them.
type ExportConfig struct {
	TextDir      string // text dump destination
	ScoreDir     string // LilyPond destination
	ImageDir     string // PNG destination
	MidiDir      string // MIDI file destination
	ArchivePath  string // BadgerDB path
	ArchiveBatch int    // buffered analyses before a batch write
	Annotate     bool   // section/mirror labels in the score
}
