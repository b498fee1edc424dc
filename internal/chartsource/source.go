package chartsource

import "strings"

// Source is where a chart comes from: a URL to fetch or literal text the
// host already has. Source values are comparable; two equal sources name
// the same chart.
type Source struct {
	url     string
	text    string
	literal bool
}

// FromURL returns a source that fetches url. Relative URLs are resolved
// against the client's base URL.
func FromURL(url string) Source {
	return Source{url: strings.TrimSpace(url)}
}

// FromText returns a source backed by already-retrieved chart text.
func FromText(text string) Source {
	return Source{text: text, literal: true}
}

// IsZero reports whether s names no chart at all.
func (s Source) IsZero() bool {
	return !s.literal && s.url == ""
}

// IsText reports whether s carries literal text.
func (s Source) IsText() bool { return s.literal }

// URL returns the chart URL, empty for literal sources.
func (s Source) URL() string { return s.url }

// Text returns the literal chart text, empty for URL sources.
func (s Source) Text() string { return s.text }

func (s Source) String() string {
	switch {
	case s.literal:
		return "text"
	case s.url == "":
		return "none"
	default:
		return s.url
	}
}
