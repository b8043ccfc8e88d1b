package types

/*

	These are the "immutable" core types of Pisano,
	provided for cross-package use (e.g. Plugins) and testing.

	There are no functions defined here.
	Struct constructors are housed in their own packages.
	Methods taking these types should create local aliases,
	for example: type Analyses []Pt.Analysis

*/

// Analysis is one complete Pisano period of a modulus.
// Everything downstream (display, exports, notation) derives from it.
// Sections counts every zero residue in the period, including the
// terminal zero. Mirrors counts occurrences of the symmetric boundary
// triple [1, m-1, 0] before the period closed.
type Analysis struct {
	Modulus  int   // the modulus m
	Sequence []int // residues for one full period, Fibonacci index 1 onward
	Length   int   // len(Sequence), the Pisano period
	Sections int   // zero-residue count
	Mirrors  int   // mirror-boundary triple count
}

// BarClass marks how a renderer should shade a bar.
type BarClass int

const (
	SectionEven BarClass = iota // even-numbered section shading
	SectionOdd                  // odd-numbered section shading
	ZeroBar                     // section boundary, residue 0
)

// Bar is one column of the graph.
// Height is in renderer units, already scaled.
// Mirrored means the bar sits in the mirrored second half.
type Bar struct {
	Height   int
	Class    BarClass
	Mirrored bool
}

// Clef is a LilyPond clef identifier chosen by transposed pitch.
type Clef string

const (
	ClefBass15  Clef = "bass_15"
	ClefBass8   Clef = "bass_8"
	ClefBass    Clef = "bass"
	ClefTreble  Clef = "treble"
	ClefTreble8 Clef = "treble^8"
)
