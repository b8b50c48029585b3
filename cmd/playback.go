package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/playback"
	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
)

// Play plays the query, or resumes playback when it is empty.
func (r *Runner) Play(ctx context.Context, cmd *cli.Command) error {
	return r.dispatch(ctx, cmd, (*playback.Engine).Play)
}

// Queue appends the query to the play queue.
func (r *Runner) Queue(ctx context.Context, cmd *cli.Command) error {
	return r.dispatch(ctx, cmd, (*playback.Engine).Queue)
}

type dispatchFunc func(*playback.Engine, context.Context, playback.Query) (formatter.Response, error)

func (r *Runner) dispatch(ctx context.Context, cmd *cli.Command, fn dispatchFunc) error {
	kind, err := parseKind(cmd.String("type"))
	if err != nil {
		return err
	}

	engine, err := r.Engine(ctx)
	if err != nil {
		return err
	}

	resp, err := fn(engine, ctx, playback.Query{Text: joinArgs(cmd), Kind: kind, IsURL: cmd.Bool("url")})
	if err != nil {
		return err
	}
	return r.writeResponse(resp, "")
}

func (r *Runner) QueueList(ctx context.Context, cmd *cli.Command) error {
	return r.run(ctx, "Queue is empty", (*playback.Engine).QueueList)
}

func (r *Runner) Pause(ctx context.Context, cmd *cli.Command) error {
	return r.run(ctx, "", (*playback.Engine).Pause)
}

func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	return r.run(ctx, "", (*playback.Engine).Status)
}

// Skip skips [count] tracks, one by default.
func (r *Runner) Skip(ctx context.Context, cmd *cli.Command) error {
	count := 1
	if arg := cmd.Args().First(); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > playback.MaxSkip {
			return fmt.Errorf("%w: skip count must be a number from 1 to %d, got %q", shared.ErrInvalidArgument, playback.MaxSkip, arg)
		}
		count = n
	}

	return r.run(ctx, "", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.Skip(ctx, count)
	})
}

// Search lists matches for the query.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	kind, err := parseKind(cmd.String("type"))
	if err != nil {
		return err
	}
	limit := cmd.Int("limit")
	if limit < 0 || limit > playback.MaxSearchLimit {
		return fmt.Errorf("%w: limit must be from 1 to %d", shared.ErrInvalidFlag, playback.MaxSearchLimit)
	}
	query := joinArgs(cmd)

	return r.run(ctx, "No results", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.Search(ctx, query, kind, limit)
	})
}

func (r *Runner) DeviceList(ctx context.Context, cmd *cli.Command) error {
	return r.run(ctx, "No devices found", (*playback.Engine).DeviceList)
}

func (r *Runner) DeviceStatus(ctx context.Context, cmd *cli.Command) error {
	return r.run(ctx, "", (*playback.Engine).DeviceStatus)
}

// DeviceConnect transfers playback to the named device, or the first one when no name is given.
func (r *Runner) DeviceConnect(ctx context.Context, cmd *cli.Command) error {
	name := joinArgs(cmd)
	return r.run(ctx, "", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.DeviceConnect(ctx, name)
	})
}

func (r *Runner) SetVolume(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	level, err := strconv.Atoi(arg)
	if err != nil || level < 1 || level > 100 {
		return fmt.Errorf("%w: volume must be a number from 1 to 100, got %q", shared.ErrInvalidArgument, arg)
	}

	return r.run(ctx, "", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.SetVolume(ctx, level)
	})
}

func (r *Runner) SetShuffle(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.Args().First()
	state, err := strconv.ParseBool(strings.ToLower(arg))
	if err != nil {
		return fmt.Errorf("%w: shuffle must be true or false, got %q", shared.ErrInvalidArgument, arg)
	}

	return r.run(ctx, "", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.SetShuffle(ctx, state)
	})
}

func (r *Runner) SetRepeat(ctx context.Context, cmd *cli.Command) error {
	state, err := models.ParseRepeatState(cmd.Args().First())
	if err != nil {
		return err
	}

	return r.run(ctx, "", func(e *playback.Engine, ctx context.Context) (formatter.Response, error) {
		return e.SetRepeat(ctx, state)
	})
}

// run connects the engine, runs op and prints its response.
func (r *Runner) run(ctx context.Context, empty string, op func(*playback.Engine, context.Context) (formatter.Response, error)) error {
	engine, err := r.Engine(ctx)
	if err != nil {
		return err
	}

	resp, err := op(engine, ctx)
	if err != nil {
		return err
	}
	return r.writeResponse(resp, empty)
}

func parseKind(s string) (models.ContentKind, error) {
	if s == "" {
		return models.KindUnspecified, nil
	}
	kind, err := models.ParseKindFold(s)
	if err != nil {
		return models.KindUnspecified, fmt.Errorf("%w: --type: %w", shared.ErrInvalidFlag, err)
	}
	return kind, nil
}
