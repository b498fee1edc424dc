package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/chordpro"
	"github.com/five82/lectern/internal/music"
	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/render"
	"github.com/five82/lectern/internal/transpose"
	"github.com/five82/lectern/internal/ui"
)

// Output formats for Print.
const (
	FormatText     = "text"
	FormatHTML     = "html"
	FormatChordPro = "chordpro"
)

// PrintOptions configure Print.
type PrintOptions struct {
	Options

	Key    string // display key; empty keeps the chart's key
	Format string // text, html or chordpro; empty is text
	Color  bool   // style text output with the preferred theme
}

// Print renders one chart to w.
func Print(ctx context.Context, w io.Writer, opts PrintOptions) error {
	e, err := setup(opts.Options)
	if err != nil {
		return err
	}
	defer e.close()

	song, err := loadSong(ctx, e.client, opts.Options)
	if err != nil {
		return err
	}

	var style *render.Style
	if opts.Color {
		p := prefs.Load(opts.PrefsPath)
		style = ui.GetTheme(p.Theme).Styles().ChartStyle()
	}

	out, err := renderSong(song, opts.Key, opts.Format, style)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Keys writes the keys a chart can be shown in, marking the original.
func Keys(ctx context.Context, w io.Writer, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	song, err := loadSong(ctx, e.client, opts)
	if err != nil {
		return err
	}

	original := music.SelectableName(song.Key())
	var b strings.Builder
	for _, k := range music.KeysForMode(music.ModeOf(original)) {
		b.WriteString(k)
		if k == original {
			b.WriteString(" (Original)")
		}
		b.WriteString("\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// loadSong fetches or reads the chart named by opts and parses it.
func loadSong(ctx context.Context, fetcher chartsource.Fetcher, opts Options) (*chordpro.Song, error) {
	src, err := singleSource(opts)
	if err != nil {
		return nil, err
	}

	text := src.Text()
	if !src.IsText() {
		if text, err = fetcher.Fetch(ctx, src.URL()); err != nil {
			return nil, fmt.Errorf("fetch chart: %w", err)
		}
	}

	song, err := chordpro.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse chart: %w", err)
	}
	return song, nil
}

// renderSong transposes song to key and renders it in format.
func renderSong(song *chordpro.Song, key, format string, style *render.Style) (string, error) {
	original := song.Key()
	if key = strings.TrimSpace(key); key != "" && music.SelectableName(key) != music.SelectableName(original) {
		if original == "" {
			return "", fmt.Errorf("chart declares no key; cannot transpose to %q", key)
		}
		mode := music.ModeOf(original)
		if !music.IsSelectable(mode, key) {
			return "", fmt.Errorf("key %q is not one of the %s keys: %s",
				key, mode, strings.Join(music.KeysForMode(mode), " "))
		}
		song = transpose.ToKey(song, original, key)
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		return textWithHeader(render.Build(song), style), nil
	case FormatHTML:
		return render.HTML(render.Build(song)), nil
	case FormatChordPro:
		return chordpro.Format(song), nil
	default:
		return "", fmt.Errorf("unknown format %q: want %s, %s or %s", format, FormatText, FormatHTML, FormatChordPro)
	}
}

// textWithHeader prefixes the text chart with its title block.
func textWithHeader(grid render.Grid, style *render.Style) string {
	var head []string
	for _, v := range []string{grid.Title, grid.Subtitle, grid.Artist} {
		if v = render.Sanitize(v); v != "" {
			head = append(head, v)
		}
	}
	if grid.Key != "" {
		head = append(head, "Key: "+render.Sanitize(grid.Key))
	}

	body := render.Text(grid, style)
	if len(head) == 0 {
		return body + "\n"
	}
	return strings.Join(head, "\n") + "\n\n" + body + "\n"
}
