package render

import (
	"html"
	"strings"
)

// HTML renders the grid as a table-per-line chord sheet for a host page.
// Every piece of chart text is escaped.
func HTML(grid Grid) string {
	var b strings.Builder
	if grid.Title != "" {
		b.WriteString(`<h1 class="title">` + html.EscapeString(grid.Title) + "</h1>")
	}
	if grid.Subtitle != "" {
		b.WriteString(`<h2 class="subtitle">` + html.EscapeString(grid.Subtitle) + "</h2>")
	}
	b.WriteString(`<div class="chord-sheet">`)
	for _, row := range grid.Rows {
		switch row.Kind {
		case RowBlank:
			b.WriteString(`<div class="empty-line"></div>`)
		case RowComment:
			b.WriteString(`<table class="row"><tr><td class="comment">` + html.EscapeString(row.Text) + "</td></tr></table>")
		case RowSection:
			b.WriteString(`<h3 class="label">` + html.EscapeString(row.Text) + "</h3>")
		default:
			writeHTMLRow(&b, row)
		}
	}
	b.WriteString("</div>")
	return b.String()
}

func writeHTMLRow(b *strings.Builder, row Row) {
	b.WriteString(`<table class="row">`)
	if row.HasChords() {
		b.WriteString("<tr>")
		for _, c := range row.Cells {
			b.WriteString(`<td class="chord">` + html.EscapeString(c.Chord) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("<tr>")
	for _, c := range row.Cells {
		b.WriteString(`<td class="lyrics">` + html.EscapeString(c.Lyrics) + "</td>")
	}
	b.WriteString("</tr></table>")
}
