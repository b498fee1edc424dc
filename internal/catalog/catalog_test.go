package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lectern/internal/chartsource"
)

const sample = `releases:
  - id: morning-light
    title: Morning Light
    type: ep
    artist: The Lanterns
    description: Five songs for the early service.
    songs:
      - id: amazing-grace
        title: Amazing Grace
        chordpro_url: amazing-grace.cho
        lyrics: |
          Amazing grace how sweet the sound
        copyright: Public domain
      - id: be-thou
        title: Be Thou My Vision
        chordpro: |
          {title: Be Thou My Vision}
          {key: D}
          [D]Be thou my [G]vision
      - id: instrumental
        title: Interlude
  - id: lone
    title: Lone
    songs:
      - id: lone
        title: Lone
`

func TestDecode_ReleasesAndSources(t *testing.T) {
	cat, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, cat.Releases, 2)

	rel, ok := cat.Find("morning-light")
	require.True(t, ok)
	assert.True(t, rel.IsEP())
	assert.Equal(t, "The Lanterns", rel.Artist)

	grace, ok := rel.Track("amazing-grace")
	require.True(t, ok)
	assert.True(t, grace.HasChart())
	assert.Equal(t, chartsource.FromURL("amazing-grace.cho"), grace.Source())
	assert.Equal(t, "Public domain", grace.Copyright)

	beThou, _ := rel.Track("be-thou")
	src := beThou.Source()
	assert.True(t, src.IsText())
	assert.Contains(t, src.Text(), "[D]Be thou")

	interlude, _ := rel.Track("instrumental")
	assert.False(t, interlude.HasChart())
	assert.True(t, interlude.Source().IsZero())

	assert.Equal(t, 1, rel.TrackIndex("be-thou"))
	assert.Equal(t, -1, rel.TrackIndex("nope"))
}

func TestDecode_DefaultsToSingle(t *testing.T) {
	cat, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	lone, ok := cat.Find("lone")
	require.True(t, ok)
	assert.Equal(t, Single, lone.Type)
	assert.False(t, lone.IsEP())
}

func TestDecode_Empty(t *testing.T) {
	cat, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat.Releases)
}

func TestDecode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "bad type",
			yaml: "releases:\n  - id: a\n    type: album\n",
			want: "releases[0].type",
		},
		{
			name: "duplicate release",
			yaml: "releases:\n  - id: a\n  - id: a\n",
			want: "releases[1].id",
		},
		{
			name: "missing song id",
			yaml: "releases:\n  - id: a\n    songs:\n      - title: x\n",
			want: "releases[0].songs[0].id",
		},
		{
			name: "duplicate song",
			yaml: "releases:\n  - id: a\n    songs:\n      - id: s\n      - id: s\n",
			want: "releases[0].songs[1].id",
		},
		{
			name: "two sources",
			yaml: "releases:\n  - id: a\n    songs:\n      - id: s\n        chordpro_url: x.cho\n        chordpro: \"[C]x\"\n",
			want: "releases[0].songs[0]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDecode_UnknownFieldRejected(t *testing.T) {
	_, err := Decode(strings.NewReader("releases:\n  - id: a\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}

func TestLoad_InlinesChartFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "charts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "charts", "grace.cho"), []byte("{key: G}\n[G]Amazing"), 0o644))
	catalogPath := filepath.Join(dir, "catalog.yaml")
	body := "releases:\n  - id: r\n    songs:\n      - id: g\n        chordpro_file: charts/grace.cho\n"
	require.NoError(t, os.WriteFile(catalogPath, []byte(body), 0o644))

	cat, err := Load(catalogPath)
	require.NoError(t, err)
	rel, _ := cat.Find("r")
	song, _ := rel.Track("g")
	src := song.Source()
	assert.True(t, src.IsText())
	assert.Equal(t, "{key: G}\n[G]Amazing", src.Text())
}

func TestLoad_MissingChartFile(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	body := "releases:\n  - id: r\n    songs:\n      - id: g\n        chordpro_file: gone.cho\n"
	require.NoError(t, os.WriteFile(catalogPath, []byte(body), 0o644))

	_, err := Load(catalogPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read chart for r/g")
}

func TestLoad_MissingCatalog(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open catalog")
}

func TestNilReceivers(t *testing.T) {
	var cat *Catalog
	_, ok := cat.Find("x")
	assert.False(t, ok)

	var rel *Release
	_, ok = rel.Track("x")
	assert.False(t, ok)
	assert.False(t, rel.IsEP())

	var song *Song
	assert.False(t, song.HasChart())
	assert.True(t, song.Source().IsZero())
}
