package chordpro

import (
	"sort"
	"strings"
)

// metadataOrder lists the directives written first, in this order. Remaining
// keys follow alphabetically.
var metadataOrder = []string{MetaTitle, MetaSubtitle, MetaArtist, MetaKey}

// Format writes the song back out as ChordPro. Chords are written with their
// Spelling, so Format(Parse(x)) reproduces the chord tokens of x exactly.
func Format(song *Song) string {
	if song == nil {
		return ""
	}
	var b strings.Builder

	written := make(map[string]bool, len(song.Metadata))
	writeMeta := func(name string) {
		value, ok := song.Metadata[name]
		if !ok || written[name] {
			return
		}
		written[name] = true
		b.WriteString("{" + name + ": " + value + "}\n")
	}
	for _, name := range metadataOrder {
		writeMeta(name)
	}
	rest := make([]string, 0, len(song.Metadata))
	for name := range song.Metadata {
		if !written[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		writeMeta(name)
	}

	for _, line := range song.Lines {
		switch line.Kind {
		case LineBlank:
		case LineComment:
			b.WriteString("{comment: " + line.Text + "}")
		case LineSectionStart:
			b.WriteString("{start_of_" + line.Text)
			if line.Label != "" {
				b.WriteString(": " + line.Label)
			}
			b.WriteString("}")
		case LineSectionEnd:
			b.WriteString("{end_of_" + line.Text + "}")
		default:
			for _, seg := range line.Segments {
				if seg.Chord != nil {
					b.WriteString("[" + seg.Chord.String() + "]")
				}
				b.WriteString(seg.Lyrics)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
