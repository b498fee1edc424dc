// Package ui provides the terminal chart viewer for lectern.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the screen state (window size,
// theme, pane, modals) and delegates everything about the chart itself to a
// state.Store: every key that affects the chart becomes a state.Event, and
// the returned state.State is what gets drawn. Retrievals run as tea.Cmds
// against a chartsource.Fetcher and come back as messages carrying the
// request they answer, so a result for a chart the operator already left is
// dropped by the store.
//
// # Package Structure
//
//   - app.go: Model, Options, Run and the fetch command
//   - input.go: key handling
//   - chart.go: chord, lyrics and track list panes plus the focus overlay
//   - header.go: header and command bars, titled boxes
//   - modal.go: the Modal interface and the key picker
//   - help.go: help overlay
//   - theme.go: color themes and chart styles
//
// # Screens
//
// With a catalog release the screen shows a track list beside one pane,
// either the chord chart or the lyrics. Tracks without a chart only have
// lyrics. Without a release the viewer shows a single chart.
//
// Focus mode ("f") shows the chart alone on the full screen. It keeps its
// own scroll position; leaving it with esc returns the inline view to
// exactly where it was.
//
// # Key Bindings
//
//   - tab/shift+tab, 1-9: Change track
//   - v: Toggle lyrics and chords
//   - K: Pick a key; +/-: Step the key; 0: Original key
//   - f: Focus mode; esc: Leave focus mode
//   - r: Retry a failed download
//   - j/k, g/G, ctrl+d/u, pgup/pgdown: Scroll
//   - T: Cycle theme
//   - h/?: Help
//   - q or Ctrl+C: Exit
package ui
