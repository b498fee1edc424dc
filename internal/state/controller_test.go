package state

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/chordpro"
)

const amazingGrace = `{title: Amazing Grace}
{artist: John Newton}
{key: C}
[C]Amazing [F]grace how [C]sweet the [G]sound`

const minorChart = `{title: House}
{key: Am}
[Am]There is a [C]house`

func run(s State, events ...Event) State {
	for _, ev := range events {
		s = Transition(s, ev)
	}
	return s
}

func loadedFromURL(t *testing.T, text string) State {
	t.Helper()
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("grace.cho")})
	req, ok := s.FetchRequest()
	require.True(t, ok)
	s = Transition(s, Retrieved{Request: req, Text: text})
	require.True(t, s.Ready())
	return s
}

func chordNames(song *chordpro.Song) []string {
	var out []string
	for _, c := range song.Chords() {
		out = append(out, c.Spelling)
	}
	return out
}

func TestSourceChanged_URLStartsLoading(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("grace.cho")})
	assert.Equal(t, StatusLoading, s.Retrieval.Status)

	req, ok := s.FetchRequest()
	require.True(t, ok)
	assert.Equal(t, chartsource.FromURL("grace.cho"), req.Source)
	assert.Equal(t, 0, req.RetryToken)
}

func TestSourceChanged_TextIsReadyImmediately(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromText(amazingGrace)})
	require.True(t, s.Ready())
	_, ok := s.FetchRequest()
	assert.False(t, ok)
	assert.Equal(t, "Amazing Grace", s.Song.Title())
}

func TestSourceChanged_MalformedTextIsParseError(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromText("[C unterminated")})
	assert.Equal(t, StatusError, s.Retrieval.Status)
	assert.Equal(t, chartsource.ParseError, s.Retrieval.ErrorKind)
	assert.False(t, s.CanRetry())
}

func TestSourceChanged_ZeroIsIdle(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = Transition(s, SourceChanged{})
	assert.Equal(t, StatusIdle, s.Retrieval.Status)
	assert.Nil(t, s.Song)
}

func TestReady_SeedsKeysFromMetadata(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	assert.Equal(t, Keys{Original: "C", Selected: "C", Mode: "major"}, s.Keys)
	assert.Same(t, s.Song, s.Transposed)

	minor := loadedFromURL(t, minorChart)
	assert.Equal(t, "Am", minor.Keys.Original)
	assert.Equal(t, "minor", string(minor.Keys.Mode))
}

func TestSelectableKeys_MinorChartOffersOnlyMinorKeys(t *testing.T) {
	s := loadedFromURL(t, minorChart)
	keys := s.SelectableKeys()
	assert.Len(t, keys, 12)
	assert.Subset(t, keys, []string{"Am", "Dm", "Em"})
	for _, major := range []string{"C", "D", "G"} {
		assert.NotContains(t, keys, major)
	}
}

func TestKeySelected_TransposesAmazingGraceToD(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = Transition(s, KeySelected{Key: "D"})

	assert.Equal(t, "D", s.Keys.Selected)
	assert.Equal(t, "C", s.Keys.Original)
	assert.Equal(t, []string{"D", "G", "D", "A"}, chordNames(s.Transposed))
	assert.Equal(t, []string{"C", "F", "C", "G"}, chordNames(s.Song))
	assert.Equal(t, s.Song.Lines[0].LyricText(), s.Transposed.Lines[0].LyricText())
}

func TestKeySelected_RejectsKeysOutsideMode(t *testing.T) {
	s := loadedFromURL(t, minorChart)
	before := s
	s = Transition(s, KeySelected{Key: "D"})
	assert.Equal(t, before, s)

	s = Transition(s, KeySelected{Key: "Dm"})
	assert.Equal(t, "Dm", s.Keys.Selected)
	assert.Equal(t, []string{"Dm", "F"}, chordNames(s.Transposed))
}

func TestKeySelected_BackToOriginalRestoresChart(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, KeySelected{Key: "Eb"}, KeySelected{Key: "C"})
	assert.Same(t, s.Song, s.Transposed)
}

func TestKeySelected_SharpDeclaredKeyReturnsToOriginal(t *testing.T) {
	s := loadedFromURL(t, "{key: C#}\n[C#]Amazing [F#]grace")
	assert.Equal(t, Keys{Original: "Db", Selected: "Db", Mode: "major"}, s.Keys)
	assert.Contains(t, s.SelectableKeys(), s.Keys.Original)

	s = Transition(s, KeySelected{Key: "D"})
	assert.Equal(t, "D", s.Keys.Selected)
	assert.Equal(t, []string{"D", "G"}, chordNames(s.Transposed))

	s = Transition(s, KeySelected{Key: s.Keys.Original})
	assert.Equal(t, "Db", s.Keys.Selected)
	assert.Same(t, s.Song, s.Transposed)
	assert.Equal(t, []string{"C#", "F#"}, chordNames(s.Transposed))
}

func TestKeySelected_AcceptsEnharmonicSpelling(t *testing.T) {
	s := loadedFromURL(t, "{key: Abm}\n[Abm]Low [Ebm]song")
	assert.Equal(t, "G#m", s.Keys.Original)
	assert.Equal(t, "minor", string(s.Keys.Mode))

	s = Transition(s, KeySelected{Key: "A#m"})
	assert.Equal(t, "Bbm", s.Keys.Selected)
	assert.Equal(t, []string{"Bbm", "Fm"}, chordNames(s.Transposed))

	s = Transition(s, KeySelected{Key: "Abm"})
	assert.Equal(t, "G#m", s.Keys.Selected)
	assert.Same(t, s.Song, s.Transposed)
}

func TestKeySelected_IgnoredWhileLoading(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("x.cho")})
	assert.Equal(t, s, Transition(s, KeySelected{Key: "D"}))
}

func TestRetrievalFailed_ClassifiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		kind     chartsource.ErrorKind
		canRetry bool
	}{
		{name: "not found", err: &chartsource.FetchError{Kind: chartsource.NotFound, Status: 404}, kind: chartsource.NotFound},
		{name: "server", err: &chartsource.FetchError{Kind: chartsource.Unknown, Status: 500}, kind: chartsource.Unknown},
		{name: "network", err: &chartsource.FetchError{Kind: chartsource.NetworkError, Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}, kind: chartsource.NetworkError, canRetry: true},
		{name: "bare", err: errors.New("boom"), kind: chartsource.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("x.cho")})
			req, _ := s.FetchRequest()
			s = Transition(s, RetrievalFailed{Request: req, Err: tt.err})
			assert.Equal(t, StatusError, s.Retrieval.Status)
			assert.Equal(t, tt.kind, s.Retrieval.ErrorKind)
			assert.Equal(t, tt.canRetry, s.CanRetry())
		})
	}
}

func TestRetrieved_MalformedTextIsParseError(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("x.cho")})
	req, _ := s.FetchRequest()
	s = Transition(s, Retrieved{Request: req, Text: "{title: broken"})
	assert.Equal(t, chartsource.ParseError, s.Retrieval.ErrorKind)
	var parseErr *chordpro.ParseError
	assert.ErrorAs(t, s.Retrieval.Err, &parseErr)
}

func TestRetry_NetworkErrorThenSuccess(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("grace.cho")})
	first, _ := s.FetchRequest()
	s = Transition(s, RetrievalFailed{Request: first, Err: &chartsource.FetchError{Kind: chartsource.NetworkError}})
	require.True(t, s.CanRetry())

	s = Transition(s, RetryRequested{})
	assert.Equal(t, StatusLoading, s.Retrieval.Status)
	assert.Equal(t, 1, s.Retrieval.RetryToken)
	second, ok := s.FetchRequest()
	require.True(t, ok)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, second.RetryToken)

	s = Transition(s, Retrieved{Request: second, Text: amazingGrace})
	assert.True(t, s.Ready())
}

func TestRetry_IgnoredForTerminalKinds(t *testing.T) {
	for _, kind := range []chartsource.ErrorKind{chartsource.NotFound, chartsource.ParseError, chartsource.Unknown} {
		s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("x.cho")})
		req, _ := s.FetchRequest()
		s = Transition(s, RetrievalFailed{Request: req, Err: &chartsource.FetchError{Kind: kind}})
		after := Transition(s, RetryRequested{})
		assert.Equal(t, s, after, "kind %s", kind)
	}

	ready := loadedFromURL(t, amazingGrace)
	assert.Equal(t, ready, Transition(ready, RetryRequested{}))
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("a.cho")})
	reqA, _ := s.FetchRequest()

	s = Transition(s, SourceChanged{Source: chartsource.FromURL("b.cho")})
	reqB, _ := s.FetchRequest()

	before := s
	s = Transition(s, Retrieved{Request: reqA, Text: amazingGrace})
	assert.Equal(t, before, s)
	s = Transition(s, RetrievalFailed{Request: reqA, Err: errors.New("late")})
	assert.Equal(t, before, s)

	s = Transition(s, Retrieved{Request: reqB, Text: minorChart})
	require.True(t, s.Ready())
	assert.Equal(t, "House", s.Song.Title())
}

func TestStaleResultsAreDiscarded_SameSourceReselected(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("a.cho")})
	old, _ := s.FetchRequest()
	s = run(s,
		SourceChanged{Source: chartsource.FromURL("b.cho")},
		SourceChanged{Source: chartsource.FromURL("a.cho")},
	)
	assert.False(t, s.IsCurrent(old))
	assert.Equal(t, StatusLoading, Transition(s, Retrieved{Request: old, Text: amazingGrace}).Retrieval.Status)
}

func TestStaleResultsAreDiscarded_PreRetryRequest(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("a.cho")})
	first, _ := s.FetchRequest()
	s = run(s,
		RetrievalFailed{Request: first, Err: &chartsource.FetchError{Kind: chartsource.NetworkError}},
		RetryRequested{},
	)
	before := s
	assert.Equal(t, before, Transition(s, Retrieved{Request: first, Text: amazingGrace}))
}

func TestDuplicateResultIgnoredOnceReady(t *testing.T) {
	s := Transition(State{}, SourceChanged{Source: chartsource.FromURL("a.cho")})
	req, _ := s.FetchRequest()
	s = run(s, Retrieved{Request: req, Text: amazingGrace}, KeySelected{Key: "D"})
	after := Transition(s, Retrieved{Request: req, Text: minorChart})
	assert.Equal(t, s, after)
}

func TestFocus_EnterOnlyWhenReady(t *testing.T) {
	loading := Transition(State{}, SourceChanged{Source: chartsource.FromURL("a.cho")})
	assert.False(t, Transition(loading, FocusEntered{}).Focus.Active)

	failed := Transition(State{}, SourceChanged{Source: chartsource.FromText("{broken")})
	assert.False(t, Transition(failed, FocusEntered{}).Focus.Active)

	ready := loadedFromURL(t, amazingGrace)
	assert.True(t, Transition(ready, FocusEntered{}).Focus.Active)
}

func TestFocus_RestoresExactOffset(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, Resized{MaxOffset: 40}, ScrolledTo{Offset: 17})
	require.Equal(t, 17, s.ScrollOffset)

	s = Transition(s, FocusEntered{})
	assert.Equal(t, 17, s.Focus.SavedOffset)

	// scroll events while focused do not move the inline view
	s = run(s, Scrolled{Delta: 5}, ScrolledTo{Offset: 0})
	assert.Equal(t, 17, s.ScrollOffset)

	s = Transition(s, KeyPressed{Key: "esc"})
	assert.False(t, s.Focus.Active)
	assert.Equal(t, 17, s.ScrollOffset)
}

func TestFocus_RestoresSavedOffsetAfterBackgroundClamp(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, Resized{MaxOffset: 20}, ScrolledTo{Offset: 12}, FocusEntered{})

	s = Transition(s, Resized{MaxOffset: 3})
	assert.Equal(t, 3, s.ScrollOffset)

	s = Transition(s, FocusExited{})
	assert.Equal(t, 12, s.ScrollOffset)
}

func TestFocus_IdempotentEnterAndExit(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, Resized{MaxOffset: 10}, ScrolledTo{Offset: 4}, FocusEntered{})
	s = run(s, Resized{MaxOffset: 2}, FocusEntered{})
	assert.Equal(t, 4, s.Focus.SavedOffset, "second enter must not overwrite saved offset")

	s = run(s, FocusExited{})
	once := s
	s = run(s, FocusExited{}, KeyPressed{Key: "esc"})
	assert.Equal(t, once, s)
}

func TestFocus_OnlyEscapeExits(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = Transition(s, FocusEntered{})
	for _, key := range []string{"q", "enter", "f", "up", "ctrl+c", " "} {
		next := Transition(s, KeyPressed{Key: key})
		assert.Equal(t, s, next, fmt.Sprintf("key %q", key))
	}
	assert.False(t, Transition(s, KeyPressed{Key: "esc"}).Focus.Active)
}

func TestFocus_KeySelectionAllowedWhileActive(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, FocusEntered{}, KeySelected{Key: "G"})
	assert.True(t, s.Focus.Active)
	assert.Equal(t, "G", s.Keys.Selected)
}

func TestFocus_ResetBySourceChange(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = run(s, FocusEntered{}, SourceChanged{Source: chartsource.FromText(minorChart)})
	assert.False(t, s.Focus.Active)
	assert.Equal(t, 0, s.ScrollOffset)
}

func TestScroll_ClampsToBounds(t *testing.T) {
	s := loadedFromURL(t, amazingGrace)
	s = Transition(s, Resized{MaxOffset: 5})
	assert.Equal(t, 5, Transition(s, Scrolled{Delta: 99}).ScrollOffset)
	assert.Equal(t, 0, Transition(s, Scrolled{Delta: -3}).ScrollOffset)
	assert.Equal(t, 2, Transition(s, ScrolledTo{Offset: 2}).ScrollOffset)
	assert.Equal(t, 0, Transition(s, Resized{MaxOffset: -4}).MaxScroll)
}
