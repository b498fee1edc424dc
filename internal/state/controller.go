package state

import (
	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/chordpro"
	"github.com/five82/lectern/internal/music"
	"github.com/five82/lectern/internal/transpose"
)

// Status is the retrieval lifecycle of the current chart.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// Retrieval tracks where the current chart is in its lifecycle.
type Retrieval struct {
	Status    Status
	ErrorKind chartsource.ErrorKind
	Err       error
	// RetryToken increments on each operator retry.
	RetryToken int
}

// Keys is the key selection for the loaded chart. Original and Selected
// use the spellings offered by SelectableKeys, so a chart declared in C#
// has Original "Db".
type Keys struct {
	Original string
	Selected string
	Mode     music.Mode
}

// Focus is the full-screen overlay state.
type Focus struct {
	Active      bool
	SavedOffset int
}

// Request identifies one retrieval attempt. A result is applied only when
// its Request matches the state's current one.
type Request struct {
	Source     chartsource.Source
	RetryToken int
	generation int
}

// State is everything the chart view renders from. Values are replaced
// wholesale by Transition, never mutated in place.
type State struct {
	Source    chartsource.Source
	Retrieval Retrieval
	// Song is the chart as parsed; Transposed is what is displayed.
	Song       *chordpro.Song
	Transposed *chordpro.Song
	Keys       Keys
	Focus      Focus
	// ScrollOffset is the inline view's first visible row, kept within
	// [0, MaxScroll].
	ScrollOffset int
	MaxScroll    int

	generation int
}

// Ready reports whether a chart is loaded and displayable.
func (s State) Ready() bool {
	return s.Retrieval.Status == StatusReady && s.Transposed != nil
}

// CanRetry reports whether the current failure offers a retry.
func (s State) CanRetry() bool {
	return s.Retrieval.Status == StatusError &&
		s.Retrieval.ErrorKind.Retryable() &&
		!s.Source.IsText()
}

// SelectableKeys lists the keys the operator may choose: the twelve keys of
// the chart's mode.
func (s State) SelectableKeys() []string {
	return music.KeysForMode(s.Keys.Mode)
}

// FetchRequest returns the retrieval the state is waiting on, if any.
func (s State) FetchRequest() (Request, bool) {
	if s.Retrieval.Status != StatusLoading || s.Source.IsText() || s.Source.IsZero() {
		return Request{}, false
	}
	return s.currentRequest(), true
}

// IsCurrent reports whether a result for req would be applied.
func (s State) IsCurrent(req Request) bool {
	return s.Retrieval.Status == StatusLoading && req == s.currentRequest()
}

func (s State) currentRequest() Request {
	return Request{Source: s.Source, RetryToken: s.Retrieval.RetryToken, generation: s.generation}
}

// Event is an input to Transition.
type Event interface{ event() }

// SourceChanged selects a new chart. It resets retrieval, focus and scroll.
type SourceChanged struct{ Source chartsource.Source }

// RetryRequested is the operator asking to retry a failed retrieval.
type RetryRequested struct{}

// Retrieved delivers fetched chart text.
type Retrieved struct {
	Request Request
	Text    string
}

// RetrievalFailed delivers a fetch failure.
type RetrievalFailed struct {
	Request Request
	Err     error
}

// KeySelected chooses the display key.
type KeySelected struct{ Key string }

// FocusEntered opens the focus overlay.
type FocusEntered struct{}

// FocusExited closes the focus overlay.
type FocusExited struct{}

// KeyPressed is a raw key while the chart has input, named as bubbletea
// names keys ("esc", "q").
type KeyPressed struct{ Key string }

// Scrolled moves the inline view by Delta rows.
type Scrolled struct{ Delta int }

// ScrolledTo moves the inline view to an absolute offset.
type ScrolledTo struct{ Offset int }

// Resized reports a new maximum scroll offset after layout changes.
type Resized struct{ MaxOffset int }

func (SourceChanged) event()   {}
func (RetryRequested) event()  {}
func (Retrieved) event()       {}
func (RetrievalFailed) event() {}
func (KeySelected) event()     {}
func (FocusEntered) event()    {}
func (FocusExited) event()     {}
func (KeyPressed) event()      {}
func (Scrolled) event()        {}
func (ScrolledTo) event()      {}
func (Resized) event()         {}

// Transition applies ev to s and returns the next state. It is pure: the
// only work it does besides bookkeeping is parsing literal or retrieved
// text and transposing on key changes.
func Transition(s State, ev Event) State {
	switch ev := ev.(type) {
	case SourceChanged:
		return changeSource(s, ev.Source)
	case RetryRequested:
		if !s.CanRetry() {
			return s
		}
		s.Retrieval = Retrieval{Status: StatusLoading, RetryToken: s.Retrieval.RetryToken + 1}
		s.generation++
		return s
	case Retrieved:
		if !s.IsCurrent(ev.Request) {
			return s
		}
		return load(s, ev.Text)
	case RetrievalFailed:
		if !s.IsCurrent(ev.Request) {
			return s
		}
		kind := chartsource.Classify(ev.Err)
		if kind == chartsource.NoError {
			kind = chartsource.Unknown
		}
		return fail(s, kind, ev.Err)
	case KeySelected:
		return selectKey(s, ev.Key)
	case FocusEntered:
		if !s.Ready() || s.Focus.Active {
			return s
		}
		s.Focus = Focus{Active: true, SavedOffset: s.ScrollOffset}
		return s
	case FocusExited:
		return exitFocus(s)
	case KeyPressed:
		if s.Focus.Active && ev.Key == "esc" {
			return exitFocus(s)
		}
		return s
	case Scrolled:
		if s.Focus.Active {
			return s
		}
		s.ScrollOffset = clamp(s.ScrollOffset+ev.Delta, s.MaxScroll)
		return s
	case ScrolledTo:
		if s.Focus.Active {
			return s
		}
		s.ScrollOffset = clamp(ev.Offset, s.MaxScroll)
		return s
	case Resized:
		s.MaxScroll = max(ev.MaxOffset, 0)
		s.ScrollOffset = clamp(s.ScrollOffset, s.MaxScroll)
		return s
	}
	return s
}

func changeSource(s State, src chartsource.Source) State {
	next := State{
		Source:     src,
		MaxScroll:  s.MaxScroll,
		generation: s.generation + 1,
	}
	switch {
	case src.IsZero():
		return next
	case src.IsText():
		return load(next, src.Text())
	default:
		next.Retrieval.Status = StatusLoading
		return next
	}
}

func load(s State, text string) State {
	song, err := chordpro.Parse(text)
	if err != nil {
		return fail(s, chartsource.ParseError, err)
	}
	raw := song.Key()
	original := music.SelectableName(raw)
	s.Retrieval.Status = StatusReady
	s.Retrieval.ErrorKind = chartsource.NoError
	s.Retrieval.Err = nil
	s.Song = song
	s.Transposed = song
	s.Keys = Keys{Original: original, Selected: original, Mode: music.ModeOf(raw)}
	s.Focus = Focus{}
	s.ScrollOffset = 0
	return s
}

func fail(s State, kind chartsource.ErrorKind, err error) State {
	s.Retrieval.Status = StatusError
	s.Retrieval.ErrorKind = kind
	s.Retrieval.Err = err
	s.Song = nil
	s.Transposed = nil
	s.Keys = Keys{}
	s.Focus = Focus{}
	s.ScrollOffset = 0
	return s
}

func selectKey(s State, key string) State {
	if !s.Ready() || !music.IsSelectable(s.Keys.Mode, key) {
		return s
	}
	key = music.SelectableName(key)
	s.Keys.Selected = key
	s.Transposed = transpose.ToKey(s.Song, s.Keys.Original, key)
	return s
}

func exitFocus(s State) State {
	if !s.Focus.Active {
		return s
	}
	s.ScrollOffset = s.Focus.SavedOffset
	s.Focus = Focus{}
	return s
}

func clamp(v, hi int) int {
	return min(max(v, 0), max(hi, 0))
}
