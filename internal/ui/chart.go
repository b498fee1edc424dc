package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/render"
	"github.com/five82/lectern/internal/state"
)

// User-facing placeholder text.
const (
	msgLoading     = "Loading chord sheet..."
	msgNoChart     = "No chord sheet available"
	msgRetryHint   = "Press r to retry"
	msgNoLyrics    = "No lyrics available for this track"
	msgSelectTrack = "Select a track to view lyrics"
)

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())

	return b.String()
}

// renderContent renders the track list and the active pane side by side.
func (m Model) renderContent() string {
	l := m.computeLayout()

	var pane string
	if m.activePane() == prefs.ViewLyrics {
		pane = m.renderTitledBox(m.lyricsHeading(), m.lyricsViewport.View(), l.mainWidth, l.height, true)
	} else {
		pane = m.renderTitledBox(m.chordsHeading(), m.chordsContent(), l.mainWidth, l.height, true)
	}

	if l.listWidth == 0 {
		return pane
	}
	list := m.renderTitledBox("Tracks", m.trackList(l.listWidth-4), l.listWidth, l.height, false)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, pane)
}

// chordsHeading titles the chord pane: the song title on an EP or for a
// lone chart, "Chords" otherwise.
func (m Model) chordsHeading() string {
	if m.release == nil {
		if title := render.Sanitize(m.grid.Title); title != "" {
			return title
		}
		return "Chords"
	}
	if song := m.currentSong(); song != nil && m.release.IsEP() {
		return render.Sanitize(song.Title)
	}
	return "Chords"
}

// lyricsHeading titles the lyrics pane.
func (m Model) lyricsHeading() string {
	if song := m.currentSong(); song != nil && m.release.IsEP() {
		return render.Sanitize(song.Title)
	}
	return "Lyrics"
}

// chordsContent is the fixed meta block followed by the scrolled chart.
func (m Model) chordsContent() string {
	meta := m.chartMeta(m.theme.Styles())
	if len(meta) == 0 {
		return m.chartViewport.View()
	}
	return strings.Join(meta, "\n") + "\n" + m.chartViewport.View()
}

// chartMeta returns the lines shown above a loaded chart: subtitle, artist
// and the display key, then a spacer. It is empty until a chart is ready.
func (m Model) chartMeta(styles Styles) []string {
	if !m.chart.Ready() {
		return nil
	}

	var lines []string
	if sub := render.Sanitize(m.grid.Subtitle); sub != "" {
		lines = append(lines, styles.Text.Italic(true).Render(sub))
	}
	artist := m.grid.Artist
	if artist == "" && m.release != nil {
		artist = m.release.Artist
	}
	if artist = render.Sanitize(artist); artist != "" {
		lines = append(lines, styles.MutedText.Render(artist))
	}
	if key := m.chart.Keys.Selected; key != "" {
		line := styles.Text.Render("Key: " + key)
		if key != m.chart.Keys.Original {
			line += styles.FaintText.Render(fmt.Sprintf("  (from %s)", m.chart.Keys.Original))
		}
		lines = append(lines, line)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return lines
}

// chartBody is the scrollable part of the chord pane for the current
// retrieval status.
func (m Model) chartBody(styles Styles) string {
	switch m.chart.Retrieval.Status {
	case state.StatusLoading:
		return styles.MutedText.Render(msgLoading)
	case state.StatusError:
		body := styles.DangerText.Render(m.chart.Retrieval.ErrorKind.Message())
		if m.chart.CanRetry() {
			body += "\n\n" + styles.MutedText.Render(msgRetryHint)
		}
		return body
	case state.StatusReady:
		if len(m.grid.Rows) == 0 {
			return styles.MutedText.Render(msgNoChart)
		}
		return render.Text(m.grid, styles.ChartStyle())
	default:
		return styles.MutedText.Render(msgNoChart)
	}
}

// lyricsBody is the lyrics pane content wrapped to width.
func (m Model) lyricsBody(styles Styles, width int) string {
	song := m.currentSong()
	if song == nil {
		return styles.MutedText.Render(msgSelectTrack)
	}
	lyrics := strings.TrimSpace(sanitizeLines(song.Lyrics))
	if lyrics == "" {
		return styles.MutedText.Render(msgNoLyrics)
	}

	body := styles.Text.Render(ansi.Wordwrap(lyrics, width, ""))
	if c := strings.TrimSpace(sanitizeLines(song.Copyright)); c != "" {
		body += "\n\n" + styles.FaintText.Render(ansi.Wordwrap(c, width, ""))
	}
	return body
}

// trackList renders one row per release track, highlighting the current
// one. Tracks without a chart are marked.
func (m Model) trackList(width int) string {
	styles := m.theme.Styles()
	if m.release == nil || width <= 0 {
		return ""
	}

	lines := make([]string, 0, len(m.release.Songs))
	for i, song := range m.release.Songs {
		label := fmt.Sprintf("%d. %s", i+1, render.Sanitize(song.Title))
		if !song.HasChart() {
			label += " ♪"
		}
		label = padRight(truncate(label, width), width)
		if i == m.track {
			lines = append(lines, styles.Selected.Render(label))
			continue
		}
		lines = append(lines, styles.Text.Render(label))
	}
	return strings.Join(lines, "\n")
}

// renderFocus renders the chart alone, full screen, for reading at a
// distance.
func (m Model) renderFocus() string {
	styles := m.theme.Styles()
	b := newBar(m.theme.Surface)
	barStyles := styles.WithBackground(m.theme.Surface)

	title := m.chordsHeading()
	if key := m.chart.Keys.Selected; key != "" {
		title += "  ·  Key: " + key
	}
	top := b.fill(b.text(" "+truncate(title, max(m.width-2, 0)), barStyles.Text.Bold(true)), m.width)
	hint := b.join([]string{
		b.text("esc", barStyles.AccentText) + b.text(":", barStyles.FaintText) + b.text("Exit focus", barStyles.MutedText),
		b.text("j/k", barStyles.AccentText) + b.text(":", barStyles.FaintText) + b.text("Scroll", barStyles.MutedText),
	}, 2)
	bottom := b.fill(b.gap(1)+hint, m.width)

	body := m.focusViewport.View()
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		lines[i] = " " + clipLine(line, max(m.width-2, 0))
	}
	return top + "\n" + strings.Join(lines, "\n") + "\n" + bottom
}

// focusBody is the chart text for the focus overlay.
func (m Model) focusBody(styles Styles) string {
	if !m.chart.Ready() {
		return ""
	}
	return render.Text(m.grid, styles.ChartStyle())
}

// sanitizeLines is render.Sanitize applied line by line, keeping the line
// breaks.
func sanitizeLines(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = render.Sanitize(line)
	}
	return strings.Join(lines, "\n")
}

// clipLine cuts a possibly styled line to width cells.
func clipLine(line string, width int) string {
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
