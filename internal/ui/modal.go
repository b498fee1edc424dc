package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// keyPicker lists the keys a chart can be shown in. Confirming a row emits
// keySelectedMsg.
type keyPicker struct {
	keys     []string
	original string
	cursor   int
}

func newKeyPicker(keys []string, original, selected string) *keyPicker {
	p := &keyPicker{keys: keys, original: original}
	for i, k := range keys {
		if k == selected {
			p.cursor = i
		}
	}
	return p
}

// Update implements Modal.
func (p *keyPicker) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || len(p.keys) == 0 {
		return p, nil, ok
	}

	switch {
	case key.Matches(km, keys.Escape), key.Matches(km, keys.Quit):
		return p, nil, true
	case key.Matches(km, keys.Confirm):
		chosen := p.keys[p.cursor]
		return p, func() tea.Msg { return keySelectedMsg{key: chosen} }, true
	case key.Matches(km, keys.Up):
		p.cursor = (p.cursor - 1 + len(p.keys)) % len(p.keys)
	case key.Matches(km, keys.Down):
		p.cursor = (p.cursor + 1) % len(p.keys)
	case key.Matches(km, keys.Top):
		p.cursor = 0
	case key.Matches(km, keys.Bottom):
		p.cursor = len(p.keys) - 1
	}
	return p, nil, false
}

// View implements Modal.
func (p *keyPicker) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Transpose to:"))
	b.WriteString("\n\n")

	for i, k := range p.keys {
		label := k
		if k == p.original {
			label += " (Original)"
		}
		label = padRight(label, 20)
		if i == p.cursor {
			b.WriteString(styles.Selected.Render("> " + label))
		} else {
			b.WriteString(styles.Text.Render("  " + label))
		}
		if i < len(p.keys)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("enter: apply  esc: cancel"))

	return placeModal(theme, width, height, b.String(), 32)
}
