package music

import (
	"slices"
	"strings"
)

// Mode is the tonal quality of a key.
type Mode string

const (
	Major Mode = "major"
	Minor Mode = "minor"
)

// MinorSuffix marks a minor key name ("Am", "F#m").
const MinorSuffix = "m"

// Key is a parsed key name.
type Key struct {
	Name string
	Root PitchClass
	Mode Mode
}

var (
	majorKeys = []string{"C", "Db", "D", "Eb", "E", "F", "F#", "G", "Ab", "A", "Bb", "B"}
	minorKeys = []string{"Cm", "C#m", "Dm", "Ebm", "Em", "Fm", "F#m", "Gm", "G#m", "Am", "Bbm", "Bm"}
)

// flat-side naturals: F major and the relative minors of the flat major keys.
var (
	flatMajorNaturals = map[PitchClass]bool{5: true}
	flatMinorNaturals = map[PitchClass]bool{2: true, 7: true, 0: true, 5: true}
)

// ParseKey parses a key name: a note with an optional trailing "m" for minor.
// Sharp and flat spellings of the same pitch class parse to the same root.
func ParseKey(name string) (Key, bool) {
	trimmed := strings.TrimSpace(name)
	mode := Major
	note := trimmed
	if strings.HasSuffix(trimmed, MinorSuffix) {
		mode = Minor
		note = strings.TrimSuffix(trimmed, MinorSuffix)
	}
	root, ok := ParseNote(note)
	if !ok {
		return Key{}, false
	}
	return Key{Name: trimmed, Root: root, Mode: mode}, true
}

// ModeOf reports the mode implied by a key name. Anything not ending in the
// minor suffix, including the empty string, is major.
func ModeOf(name string) Mode {
	if strings.HasSuffix(strings.TrimSpace(name), MinorSuffix) {
		return Minor
	}
	return Major
}

// Semitones returns the upward distance from one key to another in 0–11.
// Unrecognized keys yield 0, which makes transposition the identity.
func Semitones(from, to string) int {
	f, ok := ParseKey(from)
	if !ok {
		return 0
	}
	t, ok := ParseKey(to)
	if !ok {
		return 0
	}
	return mod12(int(t.Root) - int(f.Root))
}

// KeysForMode returns the 12 selectable key names for a mode.
func KeysForMode(mode Mode) []string {
	src := majorKeys
	if mode == Minor {
		src = minorKeys
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// SpellingForKey returns the accidental convention for chords in a key.
// Keys written with a flat, F major, and D/G/C/F minor use flats; everything
// else, including unrecognized names, uses sharps.
func SpellingForKey(name string) Spelling {
	k, ok := ParseKey(name)
	if !ok {
		return Sharps
	}
	switch accidentalOf(k.Name) {
	case 'b':
		return Flats
	case '#':
		return Sharps
	}
	if k.Mode == Minor && flatMinorNaturals[k.Root] {
		return Flats
	}
	if k.Mode == Major && flatMajorNaturals[k.Root] {
		return Flats
	}
	return Sharps
}

// SelectableName returns the KeysForMode entry naming the same key as name,
// so "C#" becomes "Db" and "D#m" becomes "Ebm". Unrecognized names come
// back trimmed.
func SelectableName(name string) string {
	k, ok := ParseKey(name)
	if !ok {
		return strings.TrimSpace(name)
	}
	keys := majorKeys
	if k.Mode == Minor {
		keys = minorKeys
	}
	return keys[k.Root.Normalize()]
}

// IsSelectable reports whether key, under any spelling, is one of the keys
// of mode.
func IsSelectable(mode Mode, key string) bool {
	return slices.Contains(KeysForMode(mode), SelectableName(key))
}
