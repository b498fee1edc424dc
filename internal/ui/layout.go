package ui

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the track list is
	// hidden and header fields shorten.
	LayoutCompactWidth = 100

	// LayoutExtraWideWidth is the threshold for extra-wide layouts.
	LayoutExtraWideWidth = 160
)

// Track list sizing.
const (
	trackListMinWidth = 24
	trackListMaxWidth = 40
)

// paneLayout is the geometry of the main screen below the header and
// command bar.
type paneLayout struct {
	height     int
	listWidth  int // zero when the track list is hidden
	mainWidth  int
	bodyWidth  int // inside the main pane border and padding
	bodyHeight int
}

func (m Model) computeLayout() paneLayout {
	l := paneLayout{height: max(m.height-2, 3)}

	if m.release != nil && m.width >= LayoutCompactWidth {
		percent := 30
		if m.width >= LayoutExtraWideWidth {
			percent = 22
		}
		l.listWidth = min(max(m.width*percent/100, trackListMinWidth), trackListMaxWidth)
	}

	l.mainWidth = m.width - l.listWidth
	l.bodyWidth = max(l.mainWidth-4, 1)
	l.bodyHeight = max(l.height-2, 1)
	return l
}
