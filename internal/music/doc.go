// Package music holds the small amount of theory lectern needs: pitch
// classes, key names, and enharmonic spelling.
//
// # Pitch classes
//
// A PitchClass is an integer 0–11 counted from C. It carries no spelling of
// its own; the name is resolved when a chord is written out, from the
// Spelling of the key the chart is being shown in:
//
//	music.PitchClass(10).Name(music.Sharps) // "A#"
//	music.PitchClass(10).Name(music.Flats)  // "Bb"
//
// # Keys
//
// Key names are a note plus an optional trailing "m" for minor. ParseKey
// accepts both sharp and flat spellings, so "C#" and "Db" share a root and
// "C#m" maps to the same chromatic position as its parallel major "C#".
//
// Semitones never fails. If either name is unrecognized it returns 0 and the
// chart is shown untransposed.
//
// KeysForMode returns the 12 names a key picker offers. A chart in a minor
// key only ever offers minor names and a chart in a major key only major
// names.
package music
