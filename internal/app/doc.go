// Package app wires configuration, logging, the chart client and the UI
// into lectern's commands.
//
// # Commands
//
//   - Run: the terminal viewer over a catalog release or a single chart
//   - Print: render one chart to a writer as text, HTML or ChordPro
//   - Keys: list the keys a chart can be shown in
//   - Check: load every catalog chart and report the ones that fail
//
// Every command starts the same way:
//
//	config.Load ─> overrides from Options ─> Config.Validate
//	            ─> logging.New (sets the global zerolog logger)
//	            ─> chartsource.NewClient
//
// # Error Handling
//
// Configuration, catalog and logging problems are returned before anything
// is drawn. Once the viewer runs, chart retrieval failures are shown in the
// chart pane and logged; they never end the program.
package app
