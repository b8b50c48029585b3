package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/fishify/internal/bot"
	"github.com/desertthunder/fishify/internal/server"
	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Bot serves the chat-bot webhook until interrupted.
func (r *Runner) Bot(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	if addr == "" {
		addr = r.config.Bot.Addr
	}
	if addr == "" {
		return fmt.Errorf("%w: bot.addr is required", shared.ErrInvalidConfig)
	}

	engine, err := r.Engine(ctx)
	if err != nil {
		return err
	}

	logger := shared.WithLogger(r.logger, "component", "bot")
	if r.config.Bot.Token == "" {
		logger.Warn("bot.token is empty, interactions are not authenticated")
	}

	handler := bot.NewHandler(engine, r.config.Bot.Token, logger)
	return server.New(addr, bot.NewRouter(handler), logger).Run(ctx)
}
