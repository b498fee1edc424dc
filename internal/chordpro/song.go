package chordpro

import (
	"maps"
	"strings"

	"github.com/five82/lectern/internal/music"
)

// Well-known metadata keys.
const (
	MetaTitle    = "title"
	MetaSubtitle = "subtitle"
	MetaArtist   = "artist"
	MetaKey      = "key"

	DefaultTitle = "Untitled"
)

// LineKind distinguishes lyric lines from structural lines.
type LineKind int

const (
	LineLyrics LineKind = iota
	LineBlank
	LineComment
	LineSectionStart
	LineSectionEnd
)

// Song is a parsed chart. Treat it as immutable: transposition produces a
// new Song.
type Song struct {
	Metadata map[string]string
	Lines    []Line
}

// Line is one row of the source document.
type Line struct {
	Kind     LineKind
	Segments []Segment
	// Text holds the comment text for LineComment and the section name for
	// section markers ("chorus", "verse").
	Text string
	// Label is the optional section label ({start_of_chorus: Refrain}).
	Label string
}

// Segment is a run of lyrics with the chord anchored before it.
type Segment struct {
	Lyrics string
	Chord  *Chord
}

// Chord is a decomposed chord annotation.
type Chord struct {
	Root    music.PitchClass
	Quality string
	Bass    music.PitchClass
	HasBass bool
	// Known is false when the token could not be decomposed; such chords are
	// carried verbatim.
	Known bool
	// Spelling is the token as written in the source.
	Spelling string
}

// Title returns the song title.
func (s *Song) Title() string {
	if s == nil {
		return ""
	}
	return s.Metadata[MetaTitle]
}

// Artist returns the artist, or empty.
func (s *Song) Artist() string {
	if s == nil {
		return ""
	}
	return s.Metadata[MetaArtist]
}

// Key returns the declared key, or empty.
func (s *Song) Key() string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(s.Metadata[MetaKey])
}

// Chords returns every chord annotation in document order.
func (s *Song) Chords() []Chord {
	if s == nil {
		return nil
	}
	var out []Chord
	for _, line := range s.Lines {
		for _, seg := range line.Segments {
			if seg.Chord != nil {
				out = append(out, *seg.Chord)
			}
		}
	}
	return out
}

// HasChords reports whether the line carries at least one chord.
func (l Line) HasChords() bool {
	for _, seg := range l.Segments {
		if seg.Chord != nil {
			return true
		}
	}
	return false
}

// LyricText concatenates the lyrics of every segment.
func (l Line) LyricText() string {
	var b strings.Builder
	for _, seg := range l.Segments {
		b.WriteString(seg.Lyrics)
	}
	return b.String()
}

// Clone returns a deep copy of the song.
func (s *Song) Clone() *Song {
	if s == nil {
		return nil
	}
	out := &Song{
		Metadata: maps.Clone(s.Metadata),
		Lines:    make([]Line, len(s.Lines)),
	}
	if out.Metadata == nil {
		out.Metadata = make(map[string]string)
	}
	for i, line := range s.Lines {
		out.Lines[i] = line
		if line.Segments == nil {
			continue
		}
		segs := make([]Segment, len(line.Segments))
		for j, seg := range line.Segments {
			segs[j] = seg
			if seg.Chord != nil {
				c := *seg.Chord
				segs[j].Chord = &c
			}
		}
		out.Lines[i].Segments = segs
	}
	return out
}

// Name spells the chord with the given accidental convention. Unknown chords
// return their source spelling.
func (c Chord) Name(sp music.Spelling) string {
	if !c.Known {
		return c.Spelling
	}
	name := c.Root.Name(sp) + c.Quality
	if c.HasBass {
		name += "/" + c.Bass.Name(sp)
	}
	return name
}

// String returns the source spelling when present.
func (c Chord) String() string {
	if c.Spelling != "" {
		return c.Spelling
	}
	return c.Name(music.Sharps)
}
