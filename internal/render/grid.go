package render

import (
	"strings"

	"github.com/five82/lectern/internal/chordpro"
)

// RowKind classifies grid rows.
type RowKind int

const (
	RowLyrics RowKind = iota
	RowBlank
	RowComment
	RowSection
)

// Cell is one chord over the lyrics it precedes. Chord is empty for lyrics
// that have no chord above them.
type Cell struct {
	Chord  string
	Lyrics string
}

// Row is one display row of a chart.
type Row struct {
	Kind  RowKind
	Cells []Cell
	// Text is the comment or section label.
	Text string
}

// HasChords reports whether any cell of the row carries a chord.
func (r Row) HasChords() bool {
	for _, c := range r.Cells {
		if c.Chord != "" {
			return true
		}
	}
	return false
}

// Grid is a laid-out chart, independent of the output surface.
type Grid struct {
	Title    string
	Subtitle string
	Artist   string
	Key      string
	Rows     []Row
}

// Build lays out a song. It does not modify the song.
func Build(song *chordpro.Song) Grid {
	if song == nil {
		return Grid{}
	}
	grid := Grid{
		Title:    song.Title(),
		Subtitle: song.Metadata[chordpro.MetaSubtitle],
		Artist:   song.Artist(),
		Key:      song.Key(),
		Rows:     make([]Row, 0, len(song.Lines)),
	}
	for _, line := range song.Lines {
		switch line.Kind {
		case chordpro.LineBlank:
			grid.Rows = append(grid.Rows, Row{Kind: RowBlank})
		case chordpro.LineComment:
			grid.Rows = append(grid.Rows, Row{Kind: RowComment, Text: line.Text})
		case chordpro.LineSectionStart:
			grid.Rows = append(grid.Rows, Row{Kind: RowSection, Text: sectionLabel(line)})
		case chordpro.LineSectionEnd:
		default:
			grid.Rows = append(grid.Rows, lyricRow(line))
		}
	}
	return grid
}

func lyricRow(line chordpro.Line) Row {
	row := Row{Kind: RowLyrics, Cells: make([]Cell, 0, len(line.Segments))}
	for _, seg := range line.Segments {
		cell := Cell{Lyrics: seg.Lyrics}
		if seg.Chord != nil {
			cell.Chord = seg.Chord.String()
		}
		row.Cells = append(row.Cells, cell)
	}
	return row
}

func sectionLabel(line chordpro.Line) string {
	if label := strings.TrimSpace(line.Label); label != "" {
		return label
	}
	name := strings.ReplaceAll(line.Text, "_", " ")
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
