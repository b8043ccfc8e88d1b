package pisano

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
)

// ConfigFile is the on-disk JSON configuration.
// Zero values are filled with defaults after decoding.
type ConfigFile struct {
	Modulus     int    `json:"modulus"`     // starting modulus, clamped to >= 3
	Cap         int    `json:"cap"`         // recurrence iteration cap
	Annotate    bool   `json:"annotate"`    // section/mirror labels in the score
	TextDir     string `json:"textDir"`     // text dump destination
	ScoreDir    string `json:"scoreDir"`    // LilyPond destination
	ImageDir    string `json:"imageDir"`    // PNG destination
	MidiDir     string `json:"midiDir"`     // MIDI file destination
	ArchivePath string `json:"archivePath"` // BadgerDB path, empty disables the archive
	ListenAddr  string `json:"listenAddr"`  // stats/data endpoint address
}

// MinModulus is the smallest modulus with visual or musical meaning.
const MinModulus = 3

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *ConfigFile {
	return &ConfigFile{
		Modulus:    13,
		Cap:        DefaultCap,
		Annotate:   true,
		TextDir:    "Textfiles",
		ScoreDir:   "Scores",
		ImageDir:   "Images",
		MidiDir:    "Midifiles",
		ListenAddr: ":8090",
	}
}

// Normalize fills unset fields with defaults and clamps the modulus.
func (c *ConfigFile) Normalize() {
	d := DefaultConfig()
	if c.Modulus < MinModulus {
		c.Modulus = d.Modulus
	}
	if c.Cap < 1 {
		c.Cap = d.Cap
	}
	if c.TextDir == "" {
		c.TextDir = d.TextDir
	}
	if c.ScoreDir == "" {
		c.ScoreDir = d.ScoreDir
	}
	if c.ImageDir == "" {
		c.ImageDir = d.ImageDir
	}
	if c.MidiDir == "" {
		c.MidiDir = d.MidiDir
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
}

// LoadConfigFileName pulls a given filename config off local disk
// Validation is performed on the file before opening
func LoadConfigFileName(filename string) (*ConfigFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	// validation
	err = validateLoad(file)
	if err != nil {
		slog.Error("Validation failed", slog.Any("Error", err))
		return nil, err
	}

	return LoadConfig(file)
}

func validateLoad(file *os.File) error {
	// validate file
	info, err := file.Stat()
	if err != nil {
		slog.Error("could not stat file")
		return err
	}

	// validate size
	if info.Size() == 0 {
		slog.Error("file is empty")
		return errors.New("file is empty")
	}

	return nil
}

func LoadConfig(file *os.File) (*ConfigFile, error) {
	// open file
	cf, err := os.Open(file.Name())
	if err != nil {
		slog.Error("could not open file")
		return nil, err
	}
	defer cf.Close()

	// decode json
	var config ConfigFile
	decoder := json.NewDecoder(cf)
	if err := decoder.Decode(&config); err != nil {
		slog.Error("could not decode file")
		return nil, err
	}

	config.Normalize()
	return &config, nil
}
