// Package transpose moves the chords of a song to another key.
package transpose

import (
	"github.com/five82/lectern/internal/chordpro"
	"github.com/five82/lectern/internal/music"
)

// Song shifts every chord root and bass by semitones and re-spells them with
// sp. The input is never modified. A shift that is a multiple of 12 returns
// the input unchanged. Chord qualities, lyrics, metadata and chords that
// could not be decomposed are carried over as they are.
func Song(song *chordpro.Song, semitones int, sp music.Spelling) *chordpro.Song {
	if song == nil {
		return nil
	}
	if ((semitones%12)+12)%12 == 0 {
		return song
	}

	out := song.Clone()
	for i := range out.Lines {
		for j := range out.Lines[i].Segments {
			chord := out.Lines[i].Segments[j].Chord
			if chord == nil || !chord.Known {
				continue
			}
			shifted := Chord(*chord, semitones, sp)
			out.Lines[i].Segments[j].Chord = &shifted
		}
	}
	return out
}

// Chord shifts a single chord. Unknown chords are returned unchanged.
func Chord(c chordpro.Chord, semitones int, sp music.Spelling) chordpro.Chord {
	if !c.Known {
		return c
	}
	c.Root = c.Root.Transpose(semitones)
	if c.HasBass {
		c.Bass = c.Bass.Transpose(semitones)
	}
	c.Spelling = c.Name(sp)
	return c
}

// ToKey transposes a song written in originalKey so it reads in selectedKey.
// Chords are spelled with the convention of selectedKey and the key directive
// of the result names selectedKey. When either key is unrecognized, or the
// keys share a pitch class, the song is returned as is.
func ToKey(song *chordpro.Song, originalKey, selectedKey string) *chordpro.Song {
	out := Song(song, music.Semitones(originalKey, selectedKey), music.SpellingForKey(selectedKey))
	if out != song {
		out.Metadata[chordpro.MetaKey] = selectedKey
	}
	return out
}
