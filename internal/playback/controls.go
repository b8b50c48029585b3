package playback

import (
	"context"
	"fmt"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

func (e *Engine) Pause(ctx context.Context) (formatter.Response, error) {
	if err := e.mutate(ctx, e.begin("pause"), "pause", e.remote.Pause); err != nil {
		return formatter.Response{}, err
	}
	return formatter.Ack("Paused playback"), nil
}

// Skip advances count tracks, one call per track.
func (e *Engine) Skip(ctx context.Context, count int) (formatter.Response, error) {
	if count < 1 || count > MaxSkip {
		return formatter.Response{}, fmt.Errorf("%w: skip count must be between 1 and %d", shared.ErrInvalidArgument, MaxSkip)
	}

	inv := e.begin("skip")
	for range count {
		if err := e.mutate(ctx, inv, "next", e.remote.Next); err != nil {
			return formatter.Response{}, err
		}
	}
	return formatter.Ack(fmt.Sprintf("Skipped %d tracks", count)), nil
}

func (e *Engine) SetVolume(ctx context.Context, percent int) (formatter.Response, error) {
	if percent < 0 || percent > 100 {
		return formatter.Response{}, fmt.Errorf("%w: volume must be between 0 and 100", shared.ErrInvalidArgument)
	}

	err := e.mutate(ctx, e.begin("set volume"), "set volume", func(ctx context.Context) error {
		return e.remote.SetVolume(ctx, percent)
	})
	if err != nil {
		return formatter.Response{}, err
	}
	return formatter.Ack(fmt.Sprintf("Set volume to %d", percent)), nil
}

func (e *Engine) SetShuffle(ctx context.Context, state bool) (formatter.Response, error) {
	err := e.mutate(ctx, e.begin("set shuffle"), "set shuffle", func(ctx context.Context) error {
		return e.remote.SetShuffle(ctx, state)
	})
	if err != nil {
		return formatter.Response{}, err
	}
	return formatter.Ack(fmt.Sprintf("Set shuffle to %t", state)), nil
}

func (e *Engine) SetRepeat(ctx context.Context, state models.RepeatState) (formatter.Response, error) {
	err := e.mutate(ctx, e.begin("set repeat"), "set repeat", func(ctx context.Context) error {
		return e.remote.SetRepeat(ctx, state)
	})
	if err != nil {
		return formatter.Response{}, err
	}
	return formatter.Ack("Set repeat to " + state.String()), nil
}
