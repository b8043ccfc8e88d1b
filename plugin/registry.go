package plugin

import "fmt"

// Exporters is a global map of ExportAdapter factories.
var Exporters = map[string]func(cfg ExportConfig) (ExportAdapter, error){
	"text": func(cfg ExportConfig) (ExportAdapter, error) {
		return NewTextOutput(cfg.TextDir), nil
	},
	"score": func(cfg ExportConfig) (ExportAdapter, error) {
		return NewLilyOutput(cfg.ScoreDir, cfg.Annotate), nil
	},
	"image": func(cfg ExportConfig) (ExportAdapter, error) {
		return NewPNGOutput(cfg.ImageDir), nil
	},
	"midi": func(cfg ExportConfig) (ExportAdapter, error) {
		return NewMIDIFileOutput(cfg.MidiDir), nil
	},
	"archive": func(cfg ExportConfig) (ExportAdapter, error) {
		return NewBadgerOutput(cfg.ArchivePath, cfg.ArchiveBatch)
	},
}

func ExporterLookup(name string, cfg ExportConfig) (ExportAdapter, error) {
	factory, ok := Exporters[name]
	if !ok {
		return nil, fmt.Errorf("unknown exporter: %s", name)
	}
	return factory(cfg)
}
