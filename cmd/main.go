package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newApp(runner).Run(ctx, os.Args)
	runner.Close()
	if err != nil {
		logger.Debug("command failed", "err", err)
		fmt.Fprintf(os.Stderr, "%s %v\n", styles.Err("✗"), err)
		stop()
		os.Exit(1)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "fishify",
		Usage:   "Control Spotify playback from the terminal or a chat bot",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Suppress acknowledgements",
			},
		},
		Before:   r.Before,
		Commands: r.register(),
	}
}
