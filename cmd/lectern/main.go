package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRoot().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "lectern: %v\n", err)
		return 1
	}
	return 0
}

func newRoot() *cli.Command {
	flags := &globalFlags{}
	view := &viewCmd{flags: flags}

	root := &cli.Command{
		Name:      "lectern",
		Usage:     "Show ChordPro chord charts in the terminal",
		UsageText: "lectern [global options] [command] [command options]",
		Description: `Lectern renders ChordPro charts as chords over lyrics, transposes them
to any key of the same mode, and keeps a focus view for playing along.

Run 'lectern' with no command to open the viewer on the configured catalog.`,
		Flags: flags.register(),
	}

	root = view.Register(root)
	root = (&printCmd{flags: flags}).Register(root)
	root = (&keysCmd{flags: flags}).Register(root)
	root = (&checkCmd{flags: flags}).Register(root)

	root.Flags = append(root.Flags, view.Flags()...)
	root.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'lectern --help' for usage", c.Args().First())
		}
		return view.run(ctx, c)
	}
	return root
}
