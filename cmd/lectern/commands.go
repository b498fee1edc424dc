package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/five82/lectern/internal/app"
)

type globalFlags struct {
	ConfigPath string
	PrefsPath  string
	LogLevel   string
	LogFile    string
}

func (f *globalFlags) register() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "path to config file (defaults to ~/.config/lectern/config.toml)",
			Sources:     cli.EnvVars("LECTERN_CONFIG"),
			Destination: &f.ConfigPath,
		},
		&cli.StringFlag{
			Name:        "prefs",
			Usage:       "path to preferences file (defaults to ~/.config/lectern/prefs.toml)",
			Sources:     cli.EnvVars("LECTERN_PREFS"),
			Destination: &f.PrefsPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Sources:     cli.EnvVars("LECTERN_LOG_LEVEL"),
			Destination: &f.LogLevel,
		},
		&cli.StringFlag{
			Name:        "log-file",
			Usage:       "path to log file",
			Sources:     cli.EnvVars("LECTERN_LOG_FILE"),
			Destination: &f.LogFile,
		},
	}
}

func (f *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.ConfigPath,
		PrefsPath:  f.PrefsPath,
		LogLevel:   f.LogLevel,
		LogFile:    f.LogFile,
	}
}

// chartFlags picks a single chart by URL or local file.
type chartFlags struct {
	url  string
	file string
}

func (f *chartFlags) register() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Aliases:     []string{"u"},
			Usage:       "fetch the chart from this URL",
			Destination: &f.url,
		},
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "read the chart from this ChordPro file",
			Destination: &f.file,
		},
	}
}

type viewCmd struct {
	flags *globalFlags
	chart chartFlags

	release string
	track   string
}

// Flags returns the viewer flags. They are also registered on the root
// command since the viewer is the default action.
func (cmd *viewCmd) Flags() []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:        "release",
			Aliases:     []string{"r"},
			Usage:       "catalog release id (defaults to the first release)",
			Destination: &cmd.release,
		},
		&cli.StringFlag{
			Name:        "track",
			Aliases:     []string{"t"},
			Usage:       "track id to open first",
			Destination: &cmd.track,
		},
	}, cmd.chart.register()...)
}

func (cmd *viewCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "view",
		Usage:     "Open the chart viewer",
		UsageText: "lectern view [--release id] [--track id] | [--url url | --file path]",
		Flags:     cmd.Flags(),
		Action:    cmd.run,
	})
	return root
}

func (cmd *viewCmd) run(ctx context.Context, _ *cli.Command) error {
	opts := cmd.flags.options()
	opts.Release = cmd.release
	opts.Track = cmd.track
	opts.URL = cmd.chart.url
	opts.File = cmd.chart.file
	return app.Run(ctx, opts)
}

type printCmd struct {
	flags *globalFlags
	chart chartFlags

	key     string
	format  string
	noColor bool
}

func (cmd *printCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "print",
		Usage:     "Render one chart to stdout",
		UsageText: "lectern print (--url url | --file path) [--key K] [--format text|html|chordpro]",
		Description: `Prints the chart as chords over lyrics. Text output is colored with the
preferred theme when stdout is a terminal.`,
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:        "key",
				Aliases:     []string{"k"},
				Usage:       "transpose to this key",
				Destination: &cmd.key,
			},
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, html, chordpro)",
				Value:       app.FormatText,
				Destination: &cmd.format,
			},
			&cli.BoolFlag{
				Name:        "no-color",
				Usage:       "never color text output",
				Destination: &cmd.noColor,
			},
		}, cmd.chart.register()...),
		Action: cmd.run,
	})
	return root
}

func (cmd *printCmd) run(ctx context.Context, _ *cli.Command) error {
	opts := cmd.flags.options()
	opts.URL = cmd.chart.url
	opts.File = cmd.chart.file
	return app.Print(ctx, os.Stdout, app.PrintOptions{
		Options: opts,
		Key:     cmd.key,
		Format:  cmd.format,
		Color:   !cmd.noColor && term.IsTerminal(int(os.Stdout.Fd())),
	})
}

type keysCmd struct {
	flags *globalFlags
	chart chartFlags
}

func (cmd *keysCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "keys",
		Usage:     "List the keys a chart can be transposed to",
		UsageText: "lectern keys (--url url | --file path)",
		Flags:     cmd.chart.register(),
		Action:    cmd.run,
	})
	return root
}

func (cmd *keysCmd) run(ctx context.Context, _ *cli.Command) error {
	opts := cmd.flags.options()
	opts.URL = cmd.chart.url
	opts.File = cmd.chart.file
	return app.Keys(ctx, os.Stdout, opts)
}

type checkCmd struct {
	flags   *globalFlags
	workers int
}

func (cmd *checkCmd) Register(root *cli.Command) *cli.Command {
	root.Commands = append(root.Commands, &cli.Command{
		Name:      "check",
		Usage:     "Load every catalog chart and report failures",
		UsageText: "lectern check [--workers n]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "workers",
				Usage:       "concurrent chart retrievals",
				Value:       4,
				Destination: &cmd.workers,
			},
		},
		Action: cmd.run,
	})
	return root
}

func (cmd *checkCmd) run(ctx context.Context, _ *cli.Command) error {
	return app.Check(ctx, os.Stdout, cmd.flags.options(), cmd.workers)
}
