package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Tracks
	NextTrack key.Binding
	PrevTrack key.Binding

	// Chart
	ToggleView key.Binding
	Focus      key.Binding
	PickKey    key.Binding
	KeyUp      key.Binding
	KeyDown    key.Binding
	KeyReset   key.Binding
	Retry      key.Binding

	// Navigation
	Up           key.Binding
	Down         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave focus mode"),
		),

		NextTrack: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab/n", "Next track"),
		),
		PrevTrack: key.NewBinding(
			key.WithKeys("shift+tab", "p"),
			key.WithHelp("shift+tab/p", "Previous track"),
		),

		ToggleView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Lyrics/chords"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f", "enter"),
			key.WithHelp("f", "Focus mode"),
		),
		PickKey: key.NewBinding(
			key.WithKeys("K"),
			key.WithHelp("K", "Transpose to..."),
		),
		KeyUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "Key up"),
		),
		KeyDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "Key down"),
		),
		KeyReset: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "Original key"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Retry"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdown", "Page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Half page down"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleView, k.PickKey, k.Focus, k.NextTrack, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTrack, k.PrevTrack, k.ToggleView},
		{k.Up, k.Down, k.Top, k.Bottom, k.HalfPageDown, k.HalfPageUp},
		{k.PickKey, k.KeyUp, k.KeyDown, k.KeyReset, k.Focus, k.Escape, k.Retry},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
