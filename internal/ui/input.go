package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/state"
)

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	// The focus overlay owns the keyboard until it is dismissed.
	if m.chart.Focus.Active {
		return m.handleFocusKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.layout()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.NextTrack):
		return m, m.stepTrack(1)

	case key.Matches(msg, m.keys.PrevTrack):
		return m, m.stepTrack(-1)

	case key.Matches(msg, m.keys.ToggleView):
		if m.release == nil || !m.currentSong().HasChart() {
			return m, nil
		}
		if m.view == prefs.ViewLyrics {
			m.view = prefs.ViewChords
		} else {
			m.view = prefs.ViewLyrics
		}
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if !m.chart.CanRetry() {
			return m, nil
		}
		return m, m.dispatch(state.RetryRequested{})
	}

	if k := msg.String(); len(k) == 1 && k >= "1" && k <= "9" {
		return m, m.selectTrack(int(k[0] - '1'))
	}

	if m.activePane() == prefs.ViewLyrics {
		m.scrollLyrics(msg)
		return m, nil
	}
	return m.handleChordsKey(msg)
}

// handleChordsKey processes keys for the chord pane: scrolling and key
// selection.
func (m Model) handleChordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(m.chartViewport.Height, 1)

	switch {
	case key.Matches(msg, m.keys.Focus):
		return m, m.dispatch(state.FocusEntered{})

	case key.Matches(msg, m.keys.PickKey):
		if m.chart.Ready() {
			m.modal = newKeyPicker(m.chart.SelectableKeys(), m.chart.Keys.Original, m.chart.Keys.Selected)
		}
		return m, nil

	case key.Matches(msg, m.keys.KeyUp):
		return m, m.stepKey(1)

	case key.Matches(msg, m.keys.KeyDown):
		return m, m.stepKey(-1)

	case key.Matches(msg, m.keys.KeyReset):
		return m, m.dispatch(state.KeySelected{Key: m.chart.Keys.Original})

	case key.Matches(msg, m.keys.Up):
		return m, m.dispatch(state.Scrolled{Delta: -1})
	case key.Matches(msg, m.keys.Down):
		return m, m.dispatch(state.Scrolled{Delta: 1})
	case key.Matches(msg, m.keys.PageUp):
		return m, m.dispatch(state.Scrolled{Delta: -page})
	case key.Matches(msg, m.keys.PageDown):
		return m, m.dispatch(state.Scrolled{Delta: page})
	case key.Matches(msg, m.keys.HalfPageUp):
		return m, m.dispatch(state.Scrolled{Delta: -max(page/2, 1)})
	case key.Matches(msg, m.keys.HalfPageDown):
		return m, m.dispatch(state.Scrolled{Delta: max(page/2, 1)})
	case key.Matches(msg, m.keys.Top):
		return m, m.dispatch(state.ScrolledTo{Offset: 0})
	case key.Matches(msg, m.keys.Bottom):
		return m, m.dispatch(state.ScrolledTo{Offset: m.chart.MaxScroll})
	}

	return m, nil
}

// handleFocusKey scrolls the focus overlay; every other key goes to the
// chart state, which leaves focus on "esc".
func (m Model) handleFocusKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if scrollViewport(&m.focusViewport, m.keys, msg) {
		return m, nil
	}
	return m, m.dispatch(state.KeyPressed{Key: msg.String()})
}

func (m *Model) scrollLyrics(msg tea.KeyMsg) {
	scrollViewport(&m.lyricsViewport, m.keys, msg)
}

// stepTrack moves through the release's tracks, wrapping at either end.
func (m *Model) stepTrack(delta int) tea.Cmd {
	if m.release == nil || len(m.release.Songs) < 2 {
		return nil
	}
	n := len(m.release.Songs)
	return m.selectTrack(((m.track+delta)%n + n) % n)
}

// stepKey moves the display key through the chart's selectable keys,
// wrapping at either end.
func (m *Model) stepKey(delta int) tea.Cmd {
	if !m.chart.Ready() {
		return nil
	}
	keys := m.chart.SelectableKeys()
	i := slices.Index(keys, m.chart.Keys.Selected)
	if i < 0 || len(keys) == 0 {
		return nil
	}
	n := len(keys)
	return m.dispatch(state.KeySelected{Key: keys[((i+delta)%n+n)%n]})
}

// scrollViewport applies a navigation key to vp. It reports whether the key
// was a navigation key.
func scrollViewport(vp *viewport.Model, keys keyMap, msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.Up):
		vp.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		vp.ScrollDown(1)
	case key.Matches(msg, keys.PageUp):
		vp.PageUp()
	case key.Matches(msg, keys.PageDown):
		vp.PageDown()
	case key.Matches(msg, keys.HalfPageUp):
		vp.HalfPageUp()
	case key.Matches(msg, keys.HalfPageDown):
		vp.HalfPageDown()
	case key.Matches(msg, keys.Top):
		vp.GotoTop()
	case key.Matches(msg, keys.Bottom):
		vp.GotoBottom()
	default:
		return false
	}
	return true
}
