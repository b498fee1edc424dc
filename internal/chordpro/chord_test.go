package chordpro

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/five82/lectern/internal/music"
)

func TestParseChord(t *testing.T) {
	tests := []struct {
		token   string
		known   bool
		root    music.PitchClass
		quality string
		hasBass bool
		bass    music.PitchClass
	}{
		{token: "C", known: true, root: 0},
		{token: " G7 ", known: true, root: 7, quality: "7"},
		{token: "F#m", known: true, root: 6, quality: "m"},
		{token: "Bbmaj7", known: true, root: 10, quality: "maj7"},
		{token: "Ebm", known: true, root: 3, quality: "m"},
		{token: "Dsus4", known: true, root: 2, quality: "sus4"},
		{token: "Bm7b5", known: true, root: 11, quality: "m7b5"},
		{token: "C/E", known: true, root: 0, hasBass: true, bass: 4},
		{token: "Am7/G", known: true, root: 9, quality: "m7", hasBass: true, bass: 7},
		{token: "D/F#", known: true, root: 2, hasBass: true, bass: 6},
		{token: "C6/9", known: true, root: 0, quality: "6/9"},
		{token: "G(add9)", known: true, root: 7, quality: "(add9)"},
		{token: "N.C.", known: false},
		{token: "/E", known: false},
		{token: "x", known: false},
		{token: "H7", known: false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			c := ParseChord(tt.token)
			assert.Equal(t, tt.token, c.Spelling)
			assert.Equal(t, tt.known, c.Known)
			if !tt.known {
				return
			}
			assert.Equal(t, tt.root, c.Root)
			assert.Equal(t, tt.quality, c.Quality)
			assert.Equal(t, tt.hasBass, c.HasBass)
			if tt.hasBass {
				assert.Equal(t, tt.bass, c.Bass)
			}
		})
	}
}

func TestChord_Name(t *testing.T) {
	c := ParseChord("A#m7/C#")
	assert.Equal(t, "A#m7/C#", c.Name(music.Sharps))
	assert.Equal(t, "Bbm7/Db", c.Name(music.Flats))

	unknown := ParseChord("N.C.")
	assert.Equal(t, "N.C.", unknown.Name(music.Flats))
}

func TestFormat_KeepsChordTokenVerbatim(t *testing.T) {
	song, err := Parse("[ C ]Amazing [F ]grace")
	assert.NoError(t, err)
	assert.Equal(t, " C ", song.Chords()[0].Spelling)
	assert.Contains(t, Format(song), "[ C ]Amazing [F ]grace")
}
