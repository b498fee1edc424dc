package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// bar renders runs of text onto one solid background color. Each run
// carries the background itself, so the ANSI resets lipgloss emits between
// styled runs never leave unpainted cells in the header or command bar.
type bar struct {
	bg lipgloss.Color
}

func newBar(bgColor string) bar {
	return bar{bg: lipgloss.Color(bgColor)}
}

// text renders s with style on the bar background.
func (b bar) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	return style.Background(b.bg).Render(s)
}

// gap returns n painted spaces.
func (b bar) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Background(b.bg).Render(strings.Repeat(" ", n))
}

// join joins non-empty parts with painted gaps of n spaces.
func (b bar) join(parts []string, n int) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, b.gap(n))
}

// fill pads content to width with the bar background.
func (b bar) fill(content string, width int) string {
	return lipgloss.NewStyle().Background(b.bg).Width(width).Render(content)
}
