package transpose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lectern/internal/chordpro"
	"github.com/five82/lectern/internal/music"
)

const chart = `{title: Test}
{key: C}
[C]Amazing [F]grace how [G7]sweet the [Am/E]sound

{comment: bridge}
[Bb]that [C#dim]saved a [N.C.]wretch [Dsus4/F#]like me
`

func parse(t *testing.T, text string) *chordpro.Song {
	t.Helper()
	song, err := chordpro.Parse(text)
	require.NoError(t, err)
	return song
}

type pitch struct {
	root, bass music.PitchClass
	hasBass    bool
}

func pitches(song *chordpro.Song) []pitch {
	var out []pitch
	for _, c := range song.Chords() {
		if !c.Known {
			continue
		}
		out = append(out, pitch{root: c.Root, bass: c.Bass, hasBass: c.HasBass})
	}
	return out
}

func spellings(song *chordpro.Song) []string {
	var out []string
	for _, c := range song.Chords() {
		out = append(out, c.Spelling)
	}
	return out
}

func TestToKey_AmazingGraceToD(t *testing.T) {
	song := parse(t, "{key: C}\n[C]Amazing [F]grace")

	got := ToKey(song, "C", "D")
	segs := got.Lines[0].Segments
	require.Len(t, segs, 2)
	assert.Equal(t, "D", segs[0].Chord.Spelling)
	assert.Equal(t, "Amazing ", segs[0].Lyrics)
	assert.Equal(t, "G", segs[1].Chord.Spelling)
	assert.Equal(t, "grace", segs[1].Lyrics)
	assert.Contains(t, chordpro.Format(got), "[D]Amazing [G]grace")
	assert.Equal(t, "D", got.Key())

	// input untouched
	assert.Equal(t, "C", song.Key())
	assert.Equal(t, "C", song.Lines[0].Segments[0].Chord.Spelling)
}

func TestSong_PreservesLyricsAndLineCount(t *testing.T) {
	song := parse(t, chart)
	for s := 0; s < 12; s++ {
		got := Song(song, s, music.Sharps)
		require.Len(t, got.Lines, len(song.Lines), "semitones=%d", s)
		for i := range song.Lines {
			assert.Equal(t, song.Lines[i].Kind, got.Lines[i].Kind)
			assert.Equal(t, song.Lines[i].LyricText(), got.Lines[i].LyricText(), "semitones=%d line=%d", s, i)
			assert.Equal(t, len(song.Lines[i].Segments), len(got.Lines[i].Segments))
		}
	}
}

func TestSong_ZeroAndOctaveAreIdentity(t *testing.T) {
	song := parse(t, chart)
	assert.Same(t, song, Song(song, 0, music.Flats))
	assert.Same(t, song, Song(song, 12, music.Flats))
	assert.Same(t, song, Song(song, -24, music.Sharps))
}

func TestSong_RoundTripRestoresPitchClasses(t *testing.T) {
	song := parse(t, chart)
	want := pitches(song)
	for s := 1; s < 12; s++ {
		for _, sp := range []music.Spelling{music.Sharps, music.Flats} {
			back := Song(Song(song, s, sp), 12-s, sp)
			assert.Equal(t, want, pitches(back), "semitones=%d spelling=%s", s, sp)
		}
	}
}

func TestSong_QualityUnchangedAndUnknownCarried(t *testing.T) {
	song := parse(t, chart)
	got := Song(song, 3, music.Flats)

	orig := song.Chords()
	moved := got.Chords()
	require.Len(t, moved, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Quality, moved[i].Quality)
		assert.Equal(t, orig[i].Known, moved[i].Known)
	}
	assert.Contains(t, spellings(got), "N.C.")
}

func TestSong_SpellingFollowsTargetKey(t *testing.T) {
	song := parse(t, "{key: C}\n[C]a [F]b [G]c [A]d [D/F#]e")

	flat := ToKey(song, "C", "F")
	assert.Equal(t, []string{"F", "Bb", "C", "D", "G/B"}, spellings(flat))

	sharp := ToKey(song, "C", "E")
	assert.Equal(t, []string{"E", "A", "B", "C#", "F#/A#"}, spellings(sharp))

	flatByName := ToKey(song, "C", "Db")
	assert.Equal(t, []string{"Db", "Gb", "Ab", "Bb", "Eb/G"}, spellings(flatByName))
}

func TestSong_FreshSpellingIgnoresSourceAccidentals(t *testing.T) {
	song := parse(t, "{key: Bb}\n[Bb]x [Eb]y")
	got := ToKey(song, "Bb", "B")
	assert.Equal(t, []string{"B", "E"}, spellings(got))

	got = ToKey(song, "Bb", "C")
	assert.Equal(t, []string{"C", "F"}, spellings(got))

	got = ToKey(song, "Bb", "A")
	assert.Equal(t, []string{"A", "D"}, spellings(got))

	got = ToKey(song, "Bb", "F#")
	assert.Equal(t, []string{"F#", "B"}, spellings(got))
}

func TestToKey_MinorKeys(t *testing.T) {
	song := parse(t, "{key: Am}\n[Am]a [E7]b [C]c")
	got := ToKey(song, "Am", "Dm")
	assert.Equal(t, []string{"Dm", "A7", "F"}, spellings(got))

	got = ToKey(song, "Am", "Bm")
	assert.Equal(t, []string{"Bm", "F#7", "D"}, spellings(got))
}

func TestToKey_UnrecognizedKeyIsIdentity(t *testing.T) {
	song := parse(t, chart)
	assert.Same(t, song, ToKey(song, "C", "H"))
	assert.Same(t, song, ToKey(song, "", "D"))
	assert.Same(t, song, ToKey(song, "C#", "Db"))
}

func TestSong_NilSafe(t *testing.T) {
	assert.Nil(t, Song(nil, 3, music.Sharps))
}
