package main

import (
	"context"

	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the example configuration to the --config path.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}
	r.logger.Info("config file created", "path", r.configPath)
	return r.writePlain("%s Wrote %s, add your Spotify client id and secret then run `fishify auth`\n", r.styles.OK("✓"), r.configPath)
}
