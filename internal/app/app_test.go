package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lectern/internal/catalog"
	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/chordpro"
)

const amazingGrace = `{title: Amazing Grace}
{artist: John Newton}
{key: C}
{start_of_verse}
[C]Amazing [F]grace how [C]sweet the [G7]sound
{end_of_verse}`

const catalogYAML = `releases:
  - id: hymns
    title: Hymns
    type: ep
    songs:
      - id: amazing
        title: Amazing Grace
        chordpro_file: amazing.cho
      - id: words
        title: Words Only
        lyrics: just words
  - id: other
    title: Other
    songs:
      - id: remote
        title: Remote
        chordpro_url: https://charts.test/remote.cho
`

// testEnv points HOME and every lectern path at a temp dir and returns
// Options for it.
func testEnv(t *testing.T) (Options, string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		LogFile:    filepath.Join(dir, "lectern.log"),
	}, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func parse(t *testing.T, text string) *chordpro.Song {
	t.Helper()
	song, err := chordpro.Parse(text)
	require.NoError(t, err)
	return song
}

func TestRenderSong_TextWithHeader(t *testing.T) {
	out, err := renderSong(parse(t, amazingGrace), "", "", nil)
	require.NoError(t, err)

	want := "Amazing Grace\nJohn Newton\nKey: C\n\nVerse\nC       F         C         G7\nAmazing grace how sweet the sound\n"
	assert.Equal(t, want, out)
}

func TestRenderSong_Transposes(t *testing.T) {
	out, err := renderSong(parse(t, amazingGrace), "D", FormatText, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Key: D\n")
	assert.Contains(t, out, "D       G         D         A7")
}

func TestRenderSong_RejectsKeyOutsideMode(t *testing.T) {
	_, err := renderSong(parse(t, amazingGrace), "Am", FormatText, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `key "Am" is not one of the major keys`)
}

func TestRenderSong_NoKeyCannotTranspose(t *testing.T) {
	_, err := renderSong(parse(t, "[C]Hello"), "D", FormatText, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares no key")
}

func TestRenderSong_Formats(t *testing.T) {
	song := parse(t, amazingGrace)

	html, err := renderSong(song, "", FormatHTML, nil)
	require.NoError(t, err)
	assert.Contains(t, html, `<h1 class="title">Amazing Grace</h1>`)

	cho, err := renderSong(song, "D", FormatChordPro, nil)
	require.NoError(t, err)
	assert.Contains(t, cho, "{key: D}")
	assert.Contains(t, cho, "[D]Amazing [G]grace")

	_, err = renderSong(song, "", "pdf", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}

func TestSingleSource(t *testing.T) {
	_, err := singleSource(Options{})
	assert.ErrorIs(t, err, ErrNoChart)

	_, err = singleSource(Options{URL: "https://x", File: "y"})
	assert.Error(t, err)

	src, err := singleSource(Options{URL: " https://charts.test/a.cho "})
	require.NoError(t, err)
	assert.Equal(t, "https://charts.test/a.cho", src.URL())

	path := filepath.Join(t.TempDir(), "a.cho")
	writeFile(t, path, amazingGrace)
	src, err = singleSource(Options{File: path})
	require.NoError(t, err)
	assert.True(t, src.IsText())
	assert.Equal(t, amazingGrace, src.Text())

	_, err = singleSource(Options{File: filepath.Join(t.TempDir(), "missing.cho")})
	assert.ErrorContains(t, err, "read chart file")
}

func TestPickRelease(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	writeFile(t, path, catalogYAML)
	writeFile(t, filepath.Join(dir, "amazing.cho"), amazingGrace)

	release, err := pickRelease(path, "")
	require.NoError(t, err)
	assert.Equal(t, "hymns", release.ID)

	release, err = pickRelease(path, "other")
	require.NoError(t, err)
	assert.Equal(t, "Other", release.Title)

	_, err = pickRelease(path, "nope")
	assert.ErrorContains(t, err, `release "nope" not found`)
}

func TestPrint_File(t *testing.T) {
	opts, dir := testEnv(t)
	chart := filepath.Join(dir, "amazing.cho")
	writeFile(t, chart, amazingGrace)
	opts.File = chart

	var out bytes.Buffer
	err := Print(context.Background(), &out, PrintOptions{Options: opts, Key: "Eb"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Key: Eb")
	assert.Contains(t, out.String(), "Eb      Ab        Eb        Bb7")
	assert.NotContains(t, out.String(), "\x1b[")

	logData, err := os.ReadFile(opts.LogFile)
	require.NoError(t, err)
	assert.NotContains(t, string(logData), `"level":"error"`)
}

func TestPrint_InvalidLogLevel(t *testing.T) {
	opts, _ := testEnv(t)
	opts.File = "unused"
	opts.LogLevel = "loud"

	err := Print(context.Background(), &bytes.Buffer{}, PrintOptions{Options: opts})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestKeys_MarksOriginal(t *testing.T) {
	opts, dir := testEnv(t)
	chart := filepath.Join(dir, "house.cho")
	writeFile(t, chart, "{title: House}\n{key: Am}\n[Am]There is a [C]house")
	opts.File = chart

	var out bytes.Buffer
	require.NoError(t, Keys(context.Background(), &out, opts))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Cm", lines[0])
	assert.Equal(t, "Am (Original)", lines[9])
}

func TestKeys_MarksSharpDeclaredOriginal(t *testing.T) {
	opts, dir := testEnv(t)
	chart := filepath.Join(dir, "sharp.cho")
	writeFile(t, chart, "{title: Sharp}\n{key: C#}\n[C#]Amazing [F#]grace")
	opts.File = chart

	var out bytes.Buffer
	require.NoError(t, Keys(context.Background(), &out, opts))
	assert.Contains(t, out.String(), "Db (Original)\n")
}

func TestRenderSong_EnharmonicKeys(t *testing.T) {
	song := parse(t, "{key: C#}\n[C#]Amazing [F#]grace")

	same, err := renderSong(song, "Db", FormatText, nil)
	require.NoError(t, err)
	assert.Contains(t, same, "Key: C#\n")
	assert.Contains(t, same, "C#      F#")

	up, err := renderSong(song, "D", FormatText, nil)
	require.NoError(t, err)
	assert.Contains(t, up, "Key: D\n")
	assert.Contains(t, up, "D       G")
}

type stubFetcher map[string]error

func (s stubFetcher) Fetch(_ context.Context, rawURL string) (string, error) {
	if err, ok := s[rawURL]; ok {
		return "", err
	}
	return amazingGrace, nil
}

func TestCheckCatalog(t *testing.T) {
	cat := &catalog.Catalog{Releases: []catalog.Release{
		{ID: "a", Songs: []catalog.Song{
			{ID: "inline", ChordPro: amazingGrace},
			{ID: "broken", ChordPro: "[C unterminated"},
			{ID: "lyrics-only", Lyrics: "la la"},
		}},
		{ID: "b", Songs: []catalog.Song{
			{ID: "remote", ChordProURL: "https://charts.test/ok.cho"},
			{ID: "offline", ChordProURL: "https://charts.test/down.cho"},
		}},
	}}
	fetcher := stubFetcher{
		"https://charts.test/down.cho": &chartsource.FetchError{Kind: chartsource.NetworkError, Err: errors.New("refused")},
	}

	results := CheckCatalog(context.Background(), fetcher, cat, 2, zerolog.Nop())
	require.Len(t, results, 4)

	got := make([]string, 0, len(results))
	for _, r := range results {
		got = append(got, r.Release+"/"+r.Track+"="+r.Kind.String())
	}
	assert.Equal(t, []string{
		"a/inline=none",
		"a/broken=parse",
		"b/remote=none",
		"b/offline=network",
	}, got)
	assert.True(t, results[0].OK())
	assert.False(t, results[1].OK())
}

func TestCheck_ReportsFailures(t *testing.T) {
	opts, dir := testEnv(t)
	catalogPath := filepath.Join(dir, "catalog.yaml")
	writeFile(t, catalogPath, `releases:
  - id: hymns
    title: Hymns
    songs:
      - id: good
        title: Good
        chordpro: "{key: C}\n[C]ok"
      - id: bad
        title: Bad
        chordpro: "[C broken"
`)
	writeFile(t, opts.ConfigPath, "catalog = \""+catalogPath+"\"\n")

	var out bytes.Buffer
	err := Check(context.Background(), &out, opts, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 charts failed")
	assert.Contains(t, out.String(), "hymns/good\tok")
	assert.Contains(t, out.String(), "hymns/bad\tparse:")
}
