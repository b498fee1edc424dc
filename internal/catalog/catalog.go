package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/five82/lectern/internal/chartsource"
)

// ReleaseType is how a release is packaged.
type ReleaseType string

const (
	Single ReleaseType = "single"
	EP     ReleaseType = "ep"
)

// Catalog is the set of releases the viewer can browse.
type Catalog struct {
	Releases []Release `yaml:"releases"`
}

// Release is a single or EP and its tracks.
type Release struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Type        ReleaseType `yaml:"type"`
	Artist      string      `yaml:"artist"`
	Description string      `yaml:"description"`
	Songs       []Song      `yaml:"songs"`
}

// Song is one track of a release. A track has a chart when it names a
// chordpro_url, a chordpro_file next to the catalog, or inline chordpro.
type Song struct {
	ID           string `yaml:"id"`
	Title        string `yaml:"title"`
	ChordProURL  string `yaml:"chordpro_url"`
	ChordProFile string `yaml:"chordpro_file"`
	ChordPro     string `yaml:"chordpro"`
	Lyrics       string `yaml:"lyrics"`
	Copyright    string `yaml:"copyright"`
}

// Load reads and validates a catalog file. chordpro_file entries are read
// relative to the catalog's directory and carried as inline text.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	cat, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if err := cat.inlineFiles(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return cat, nil
}

// Decode parses and validates catalog YAML.
func Decode(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i := range cat.Releases {
		if cat.Releases[i].Type == "" {
			cat.Releases[i].Type = Single
		}
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return &cat, nil
}

func (c *Catalog) inlineFiles(dir string) error {
	for i := range c.Releases {
		for j := range c.Releases[i].Songs {
			song := &c.Releases[i].Songs[j]
			if song.ChordProFile == "" {
				continue
			}
			path := song.ChordProFile
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read chart for %s/%s: %w", c.Releases[i].ID, song.ID, err)
			}
			song.ChordPro = string(data)
		}
	}
	return nil
}

// Validate checks ids, release types and chart sources.
func (c *Catalog) Validate() error {
	var errs criterio.FieldErrorsBuilder
	seenReleases := make(map[string]bool)

	for i, rel := range c.Releases {
		field := fmt.Sprintf("releases[%d]", i)
		if err := required(rel.ID); err != nil {
			errs = errs.Append(field+".id", err)
		} else if seenReleases[rel.ID] {
			errs = errs.Append(field+".id", fmt.Errorf("duplicate id %q", rel.ID))
		}
		seenReleases[rel.ID] = true

		if rel.Type != Single && rel.Type != EP {
			errs = errs.Append(field+".type", fmt.Errorf("unknown release type %q", rel.Type))
		}

		seenSongs := make(map[string]bool)
		for j, song := range rel.Songs {
			sfield := fmt.Sprintf("%s.songs[%d]", field, j)
			if err := required(song.ID); err != nil {
				errs = errs.Append(sfield+".id", err)
			} else if seenSongs[song.ID] {
				errs = errs.Append(sfield+".id", fmt.Errorf("duplicate id %q", song.ID))
			}
			seenSongs[song.ID] = true

			if song.sourceCount() > 1 {
				errs = errs.Append(sfield, fmt.Errorf("set only one of chordpro_url, chordpro_file, chordpro"))
			}
		}
	}
	return errs.ToError()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

// Find returns the release with the given id.
func (c *Catalog) Find(id string) (*Release, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Releases {
		if c.Releases[i].ID == id {
			return &c.Releases[i], true
		}
	}
	return nil, false
}

// IsEP reports whether the release is an EP.
func (r *Release) IsEP() bool { return r != nil && r.Type == EP }

// Track returns the song with the given id.
func (r *Release) Track(id string) (*Song, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Songs {
		if r.Songs[i].ID == id {
			return &r.Songs[i], true
		}
	}
	return nil, false
}

// TrackIndex returns the position of the song with the given id, or -1.
func (r *Release) TrackIndex(id string) int {
	if r == nil {
		return -1
	}
	for i := range r.Songs {
		if r.Songs[i].ID == id {
			return i
		}
	}
	return -1
}

// HasChart reports whether the song has any chart source.
func (s *Song) HasChart() bool {
	return s != nil && s.sourceCount() > 0
}

// Source returns the song's chart source. Inline text wins over a URL; a
// song without a chart returns the zero Source.
func (s *Song) Source() chartsource.Source {
	switch {
	case s == nil:
		return chartsource.Source{}
	case s.ChordPro != "":
		return chartsource.FromText(s.ChordPro)
	case s.ChordProURL != "":
		return chartsource.FromURL(s.ChordProURL)
	default:
		return chartsource.Source{}
	}
}

func (s *Song) sourceCount() int {
	n := 0
	for _, v := range []string{s.ChordProURL, s.ChordProFile, s.ChordPro} {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	return n
}
