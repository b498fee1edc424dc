package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/state"
)

// renderHeader renders the status bar: logo, what is playing, retrieval
// status and the display key.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)
	compact := m.width < LayoutCompactWidth

	parts := []string{b.text("lectern", styles.Logo)}

	if title := m.nowShowing(); title != "" {
		limit := 48
		if compact {
			limit = 24
		}
		parts = append(parts, b.text(truncate(title, limit), styles.Text.Bold(true)))
	}

	if m.release != nil && len(m.release.Songs) > 1 {
		parts = append(parts,
			b.text("Track", styles.MutedText)+b.gap(1)+
				b.text(fmt.Sprintf("%d/%d", m.track+1, len(m.release.Songs)), styles.Text))
	}

	parts = append(parts, m.statusChip(styles, b))

	if m.chart.Ready() && m.chart.Keys.Selected != "" {
		keyStyle := styles.Text
		if m.chart.Keys.Selected != m.chart.Keys.Original {
			keyStyle = styles.AccentText.Bold(true)
		}
		parts = append(parts,
			b.text("Key:", styles.MutedText)+b.gap(1)+b.text(m.chart.Keys.Selected, keyStyle))
	}

	return styles.Header.Width(m.width).MaxHeight(1).Render(b.join(parts, 2))
}

// nowShowing is the release title, or the chart's own title outside a
// catalog.
func (m Model) nowShowing() string {
	if m.release != nil {
		if song := m.currentSong(); song != nil && m.release.IsEP() {
			return m.release.Title + " / " + song.Title
		}
		return m.release.Title
	}
	return m.chart.Song.Title()
}

// statusChip summarizes retrieval state for the header.
func (m Model) statusChip(styles Styles, b bar) string {
	switch m.chart.Retrieval.Status {
	case state.StatusLoading:
		return b.text("● "+titleCase(m.chart.Retrieval.Status.String()), styles.WarningText)
	case state.StatusReady:
		return b.text("● "+titleCase(m.chart.Retrieval.Status.String()), styles.SuccessText)
	case state.StatusError:
		return b.text("● "+strings.ToUpper(m.chart.Retrieval.ErrorKind.String()), styles.DangerText)
	default:
		return b.text("○ No chart", styles.FaintText)
	}
}

// renderCommandBar renders the command hints bar. Hints only appear when
// their key would do something.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	b := newBar(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.release != nil && len(m.release.Songs) > 1 {
		commands = append(commands, cmd{"tab", "Track"})
	}
	if m.release != nil && m.currentSong().HasChart() {
		label := "Lyrics"
		if m.activePane() == prefs.ViewLyrics {
			label = "Chords"
		}
		commands = append(commands, cmd{"v", label})
	}
	if m.activePane() == prefs.ViewChords && m.chart.Ready() {
		commands = append(commands,
			cmd{"K", "Key"},
			cmd{"+/-", "Transpose"},
			cmd{"f", "Focus"},
		)
	}
	if m.chart.CanRetry() {
		commands = append(commands, cmd{"r", "Retry"})
	}
	commands = append(commands, cmd{"j/k", "Scroll"}, cmd{"?", "More"})

	colon := b.text(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, b.text(c.key, styles.AccentText)+colon+b.text(c.desc, styles.MutedText))
	}
	segments = append(segments, b.text("T", styles.AccentText)+colon+b.text(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).MaxHeight(1).Render(b.join(segments, 2))
}

// renderTitledBox draws a bordered box with the title set into the top
// border. Content lines are clipped to the box.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor := m.theme.Border
	if focused {
		borderColor = m.theme.BorderFocus
	}
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Accent))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 0))
	titleWidth := lipgloss.Width(title)
	rightPad := max(innerWidth-titleWidth-3, 0)

	top := borderStyle.Render("┌─") +
		titleStyle.Render(" "+title+" ") +
		borderStyle.Render(strings.Repeat("─", rightPad)+"┐")
	bottom := borderStyle.Render("└" + strings.Repeat("─", innerWidth) + "┘")

	lineStyle := lipgloss.NewStyle().Width(innerWidth).Padding(0, 1)
	lines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	rows := make([]string, 0, boxHeight+2)
	rows = append(rows, top)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(lines) {
			line = clipLine(lines[i], max(innerWidth-2, 0))
		}
		rows = append(rows, borderStyle.Render("│")+lineStyle.Render(line)+borderStyle.Render("│"))
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}
