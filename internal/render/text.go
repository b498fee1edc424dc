package render

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Style colors the parts of a text chart. A nil *Style renders plain text.
type Style struct {
	Chord   lipgloss.Style
	Comment lipgloss.Style
	Section lipgloss.Style
}

const tabWidth = 4

// Text renders the grid rows as monospaced text: a chord line directly above
// each lyric line that has chords, a single lyric line otherwise. All source
// text is stripped of escape sequences and control characters first, so a
// chart cannot drive the terminal.
func Text(grid Grid, style *Style) string {
	lines := make([]string, 0, len(grid.Rows)*2)
	for _, row := range grid.Rows {
		switch row.Kind {
		case RowBlank:
			lines = append(lines, "")
		case RowComment:
			lines = append(lines, paint(style, func(s Style) lipgloss.Style { return s.Comment }, Sanitize(row.Text)))
		case RowSection:
			lines = append(lines, paint(style, func(s Style) lipgloss.Style { return s.Section }, Sanitize(row.Text)))
		default:
			lines = append(lines, lyricLines(row, style)...)
		}
	}
	return strings.Join(lines, "\n")
}

func lyricLines(row Row, style *Style) []string {
	if !row.HasChords() {
		var b strings.Builder
		for _, c := range row.Cells {
			b.WriteString(Sanitize(c.Lyrics))
		}
		return []string{strings.TrimRight(b.String(), " ")}
	}

	var chords, lyrics strings.Builder
	for i, c := range row.Cells {
		chord := Sanitize(c.Chord)
		words := Sanitize(c.Lyrics)
		chordW := runewidth.StringWidth(chord)
		lyricW := runewidth.StringWidth(words)

		width := lyricW
		if chord != "" && chordW+1 > width {
			width = chordW + 1
		}
		last := i == len(row.Cells)-1
		if last {
			width = max(lyricW, chordW)
		}

		chords.WriteString(paint(style, func(s Style) lipgloss.Style { return s.Chord }, chord))
		chords.WriteString(strings.Repeat(" ", width-chordW))
		lyrics.WriteString(words)
		lyrics.WriteString(strings.Repeat(" ", width-lyricW))
	}
	return []string{
		strings.TrimRight(chords.String(), " "),
		strings.TrimRight(lyrics.String(), " "),
	}
}

func paint(style *Style, pick func(Style) lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return pick(*style).Render(text)
}

// Sanitize removes ANSI escape sequences and control characters and expands
// tabs, leaving text that displays literally on a terminal.
func Sanitize(s string) string {
	s = ansi.Strip(strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth)))
	if !strings.ContainsFunc(s, unicode.IsControl) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
