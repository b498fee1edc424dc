// Package state holds the chart view's state machine: retrieval lifecycle,
// key selection and focus mode.
//
// # Overview
//
// All behavior lives in one pure function:
//
//	next := state.Transition(current, event)
//
// The UI feeds it events (source changes, fetch results, key choices,
// scrolling, the focus toggle) and renders whatever comes back. Nothing in
// this package performs I/O. Fetching is the caller's job; FetchRequest says
// when one is due and what to tag the result with.
//
// # Retrieval
//
//	SourceChanged(url)  → loading ──Retrieved──────→ ready
//	                              └─RetrievalFailed─→ error(kind)
//	SourceChanged(text) → ready, or error(ParseError)
//	RetryRequested      → loading again, only from error(NetworkError)
//
// Every retrieval is identified by a Request. A result whose Request is not
// the current one (the source changed or a retry started since) is dropped
// without touching state. Retrieved text is parsed inside Transition, so a
// malformed chart lands in error(ParseError) like any other failure.
//
// # Keys
//
// When a chart becomes ready its {key} directive seeds both the original
// and selected key, and the mode (major or minor) picks the list returned
// by SelectableKeys. KeySelected accepts only names from that list and
// recomputes the transposed song immediately. Unrecognized original keys
// leave the chart untransposed whatever is selected.
//
// # Focus mode
//
// FocusEntered is accepted only for a ready chart. It records the inline
// scroll offset once; while focus is active Scrolled and ScrolledTo are
// ignored, and the only key that does anything is "esc". Leaving focus,
// through "esc" or FocusExited, restores the recorded offset exactly, even
// if a Resized event clamped the inline offset in the meantime. Entering or
// leaving twice is the same as doing it once.
//
// # Store
//
// Store wraps Transition behind a mutex for callers that dispatch from
// several goroutines, and logs retrieval outcomes including discarded
// stale results.
package state
