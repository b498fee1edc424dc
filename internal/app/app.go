package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/five82/lectern/internal/catalog"
	"github.com/five82/lectern/internal/chartsource"
	"github.com/five82/lectern/internal/config"
	"github.com/five82/lectern/internal/logging"
	"github.com/five82/lectern/internal/prefs"
	"github.com/five82/lectern/internal/state"
	"github.com/five82/lectern/internal/ui"
)

// Options configure a lectern command. Empty fields take the config file's
// values.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lectern/prefs.toml
	LogLevel   string
	LogFile    string

	// Chart selection. URL or File picks a single chart; otherwise Release
	// and Track pick from the catalog.
	Release string
	Track   string
	URL     string
	File    string
}

// ErrNoChart is returned when a command needs a chart and none was named.
var ErrNoChart = errors.New("no chart given: use --url or --file")

// env is what every command needs once configuration is loaded.
type env struct {
	cfg    config.Config
	logger zerolog.Logger
	client *chartsource.Client
	close  func()
}

// setup loads and validates configuration, opens the log and builds the
// chart client. Callers must call close.
func setup(opts Options) (*env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(opts.LogLevel))
	}
	if opts.LogFile != "" {
		if cfg.LogFile, err = config.ExpandPath(opts.LogFile); err != nil {
			return nil, fmt.Errorf("resolve log file: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	log.Logger = logger

	client, err := chartsource.NewClient(cfg.BaseURL, cfg.UserAgent, cfg.Timeout)
	if err != nil {
		closer()
		return nil, fmt.Errorf("init chart client: %w", err)
	}

	return &env{cfg: cfg, logger: logger, client: client, close: closer}, nil
}

// Run boots the lectern viewer until the operator quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	e, err := setup(opts)
	if err != nil {
		return err
	}
	defer e.close()

	userPrefs := prefs.Load(opts.PrefsPath)

	uiOpts := ui.Options{
		Context:   ctx,
		Fetcher:   e.client,
		Store:     state.NewStore(logging.Component("state")),
		ThemeName: userPrefs.Theme,
		View:      userPrefs.View,
		PrefsPath: opts.PrefsPath,
		Logger:    logging.Component("ui"),
	}

	if opts.URL != "" || opts.File != "" {
		src, err := singleSource(opts)
		if err != nil {
			return err
		}
		uiOpts.Source = src
	} else {
		release, err := pickRelease(e.cfg.Catalog, opts.Release)
		if err != nil {
			return err
		}
		if opts.Track != "" {
			if _, ok := release.Track(opts.Track); !ok {
				return fmt.Errorf("track %q not found in release %q", opts.Track, release.ID)
			}
		}
		uiOpts.Release = release
		uiOpts.TrackID = opts.Track
	}

	e.logger.Info().
		Str("release", opts.Release).
		Str("track", opts.Track).
		Str("url", opts.URL).
		Str("file", opts.File).
		Msg("starting viewer")

	return ui.Run(uiOpts)
}

// singleSource builds the chart source for --url or --file.
func singleSource(opts Options) (chartsource.Source, error) {
	switch {
	case opts.URL != "" && opts.File != "":
		return chartsource.Source{}, errors.New("use either --url or --file, not both")
	case opts.URL != "":
		return chartsource.FromURL(opts.URL), nil
	case opts.File != "":
		path, err := config.ExpandPath(opts.File)
		if err != nil {
			return chartsource.Source{}, fmt.Errorf("resolve chart file: %w", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return chartsource.Source{}, fmt.Errorf("read chart file: %w", err)
		}
		return chartsource.FromText(string(data)), nil
	default:
		return chartsource.Source{}, ErrNoChart
	}
}

// pickRelease loads the catalog and returns the named release, or the first
// one when id is empty.
func pickRelease(path, id string) (*catalog.Release, error) {
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if id == "" {
		if len(cat.Releases) == 0 {
			return nil, fmt.Errorf("catalog %s has no releases", path)
		}
		return &cat.Releases[0], nil
	}
	release, ok := cat.Find(id)
	if !ok {
		return nil, fmt.Errorf("release %q not found in %s", id, path)
	}
	return release, nil
}
