package music

import "strings"

// PitchClass is a chromatic step from C, in the range 0–11.
type PitchClass int

// Spelling selects sharp or flat names for the black keys.
type Spelling int

const (
	Sharps Spelling = iota
	Flats
)

func (s Spelling) String() string {
	if s == Flats {
		return "flats"
	}
	return "sharps"
}

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

var naturals = map[byte]PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// Normalize folds p into 0–11.
func (p PitchClass) Normalize() PitchClass {
	return PitchClass(mod12(int(p)))
}

// Transpose shifts p by n semitones, wrapping at the octave.
func (p PitchClass) Transpose(n int) PitchClass {
	return PitchClass(mod12(int(p) + n))
}

// Name spells p using the given convention.
func (p PitchClass) Name(s Spelling) string {
	idx := mod12(int(p))
	if s == Flats {
		return flatNames[idx]
	}
	return sharpNames[idx]
}

func (p PitchClass) String() string {
	return p.Name(Sharps)
}

// ParseNote parses a note letter A–G followed by an optional '#' or 'b'.
// The whole string must be consumed.
func ParseNote(s string) (PitchClass, bool) {
	pc, n := scanNote(s)
	if n == 0 || n != len(s) {
		return 0, false
	}
	return pc, true
}

// scanNote reads a note name from the start of s and reports how many bytes
// it consumed; zero means s does not start with a note.
func scanNote(s string) (PitchClass, int) {
	if s == "" {
		return 0, 0
	}
	base, ok := naturals[s[0]]
	if !ok {
		return 0, 0
	}
	if len(s) > 1 {
		switch s[1] {
		case '#':
			return base.Transpose(1), 2
		case 'b':
			return base.Transpose(-1), 2
		}
	}
	return base, 1
}

// accidentalOf returns '#', 'b', or 0 for the accidental of a note name.
func accidentalOf(name string) byte {
	name = strings.TrimSpace(name)
	if len(name) > 1 && (name[1] == '#' || name[1] == 'b') {
		return name[1]
	}
	return 0
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}
