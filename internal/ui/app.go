package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/lectern/internal/catalog"
	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/render"
	"github.com/five82/lectern/internal/state"
)

var errNoFetcher = errors.New("no chart fetcher configured")

// Options configures the UI.
type Options struct {
	Context context.Context
	Fetcher chartsource.Fetcher
	Store   *state.Store

	// Release enables the track list. When nil the viewer shows Source
	// alone.
	Release *catalog.Release
	TrackID string
	Source  chartsource.Source

	ThemeName string
	View      string
	PrefsPath string
	Logger    zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   chartsource.Fetcher
	store     *state.Store
	release   *catalog.Release
	single    chartsource.Source
	prefsPath string
	logger    zerolog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	view     string
	track    int
	showHelp bool
	modal    Modal

	// Chart state
	chart          state.State
	grid           render.Grid
	chartViewport  viewport.Model
	focusViewport  viewport.Model
	lyricsViewport viewport.Model
}

// New creates a new Bubble Tea model and selects the initial chart.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	store := opts.Store
	if store == nil {
		store = state.NewStore(opts.Logger)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	view := opts.View
	if view != prefs.ViewLyrics {
		view = prefs.ViewChords
	}

	m := Model{
		ctx:            ctx,
		fetcher:        opts.Fetcher,
		store:          store,
		release:        opts.Release,
		single:         opts.Source,
		prefsPath:      prefsPath,
		logger:         opts.Logger,
		theme:          GetTheme(opts.ThemeName),
		keys:           DefaultKeyMap(),
		view:           view,
		chart:          store.Snapshot(),
		chartViewport:  viewport.New(0, 0),
		focusViewport:  viewport.New(0, 0),
		lyricsViewport: viewport.New(0, 0),
	}

	source := m.single
	if m.release != nil {
		m.track = max(m.release.TrackIndex(opts.TrackID), 0)
		source = m.currentSong().Source()
	}
	m.dispatch(state.SourceChanged{Source: source})
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if req, ok := m.chart.FetchRequest(); ok {
		return m.fetchCmd(req)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case chartLoadedMsg:
		return m, m.dispatch(state.Retrieved{Request: msg.req, Text: msg.text})

	case chartFailedMsg:
		return m, m.dispatch(state.RetrievalFailed{Request: msg.req, Err: msg.err})

	case keySelectedMsg:
		return m, m.dispatch(state.KeySelected{Key: msg.key})
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}

	if m.chart.Focus.Active {
		return m.renderFocus()
	}

	return m.renderMain()
}

// dispatch applies ev to the chart store and brings the views in line with
// the resulting state. It returns a fetch command when ev started a new
// retrieval.
func (m *Model) dispatch(ev state.Event) tea.Cmd {
	prev := m.chart
	m.chart = m.store.Dispatch(ev)

	if m.chart.Transposed != prev.Transposed || retrievalChanged(prev.Retrieval, m.chart.Retrieval) {
		m.grid = render.Build(m.chart.Transposed)
		m.layout()
	}
	if m.chart.Focus.Active && !prev.Focus.Active {
		m.focusViewport.GotoTop()
	}
	m.chartViewport.SetYOffset(m.chart.ScrollOffset)

	req, ok := m.chart.FetchRequest()
	if prevReq, prevOK := prev.FetchRequest(); !ok || (prevOK && prevReq == req) {
		return nil
	}
	return m.fetchCmd(req)
}

func retrievalChanged(a, b state.Retrieval) bool {
	return a.Status != b.Status || a.ErrorKind != b.ErrorKind || a.RetryToken != b.RetryToken
}

// layout sizes the viewports for the current window and chart, refreshes
// their content, and reports the new scroll bound to the store.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	styles := m.theme.Styles()

	l := m.computeLayout()
	m.chartViewport.Width = l.bodyWidth
	m.chartViewport.Height = max(l.bodyHeight-len(m.chartMeta(styles)), 1)
	m.chartViewport.SetContent(m.chartBody(styles))

	m.lyricsViewport.Width = l.bodyWidth
	m.lyricsViewport.Height = max(l.bodyHeight, 1)
	m.lyricsViewport.SetContent(m.lyricsBody(styles, l.bodyWidth))

	m.focusViewport.Width = max(m.width-2, 1)
	m.focusViewport.Height = max(m.height-2, 1)
	m.focusViewport.SetContent(m.focusBody(styles))

	maxOffset := max(m.chartViewport.TotalLineCount()-m.chartViewport.Height, 0)
	if maxOffset != m.chart.MaxScroll {
		m.chart = m.store.Dispatch(state.Resized{MaxOffset: maxOffset})
	}
	m.chartViewport.SetYOffset(m.chart.ScrollOffset)
}

// currentSong returns the selected track, or nil outside a release.
func (m Model) currentSong() *catalog.Song {
	if m.release == nil || m.track < 0 || m.track >= len(m.release.Songs) {
		return nil
	}
	return &m.release.Songs[m.track]
}

// activePane returns the pane the main area shows. Tracks without a chart
// always show lyrics; a lone chart always shows chords.
func (m Model) activePane() string {
	if m.release == nil {
		return prefs.ViewChords
	}
	if !m.currentSong().HasChart() {
		return prefs.ViewLyrics
	}
	return m.view
}

// selectTrack switches to track i of the release.
func (m *Model) selectTrack(i int) tea.Cmd {
	if m.release == nil || i < 0 || i >= len(m.release.Songs) || i == m.track {
		return nil
	}
	m.track = i
	m.lyricsViewport.GotoTop()
	cmd := m.dispatch(state.SourceChanged{Source: m.currentSong().Source()})
	m.layout()
	return cmd
}

// savePrefs persists the theme and view, logging rather than surfacing
// failures.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, View: m.view}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn().Err(err).Str("path", m.prefsPath).Msg("save prefs failed")
	}
}

// Messages

type chartLoadedMsg struct {
	req  state.Request
	text string
}

type chartFailedMsg struct {
	req state.Request
	err error
}

type keySelectedMsg struct{ key string }

// Commands

func (m Model) fetchCmd(req state.Request) tea.Cmd {
	ctx, fetcher := m.ctx, m.fetcher
	return func() tea.Msg {
		if fetcher == nil {
			return chartFailedMsg{req: req, err: errNoFetcher}
		}
		text, err := fetcher.Fetch(ctx, req.Source.URL())
		if err != nil {
			return chartFailedMsg{req: req, err: err}
		}
		return chartLoadedMsg{req: req, text: text}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
