package bot

import (
	"context"
	"fmt"
	"math"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/playback"
)

type command struct {
	run func(ctx context.Context, opts options) (formatter.Response, error)
	// empty is the reply content when the response has no lines.
	empty string
}

func (h *Handler) commandTable() map[string]command {
	e := h.engine
	return map[string]command{
		"play":  {run: h.playCommand(playback.IntentPlay)},
		"queue": {run: h.playCommand(playback.IntentQueue)},
		"search": {empty: "No results", run: func(ctx context.Context, opts options) (formatter.Response, error) {
			query, err := opts.str("query")
			if err != nil {
				return formatter.Response{}, err
			}
			kind, err := opts.kind("type")
			if err != nil {
				return formatter.Response{}, err
			}
			limit, _, err := opts.bounded("limit", 1, playback.MaxSearchLimit)
			if err != nil {
				return formatter.Response{}, err
			}
			return e.Search(ctx, query, kind, limit)
		}},
		"queue_list": {empty: "Queue is empty", run: func(ctx context.Context, _ options) (formatter.Response, error) {
			return e.QueueList(ctx)
		}},
		"pause": {run: func(ctx context.Context, _ options) (formatter.Response, error) {
			return e.Pause(ctx)
		}},
		"skip": {run: func(ctx context.Context, opts options) (formatter.Response, error) {
			count, ok, err := opts.bounded("count", 1, playback.MaxSkip)
			if err != nil {
				return formatter.Response{}, err
			}
			if !ok {
				count = 1
			}
			return e.Skip(ctx, count)
		}},
		"status": {run: func(ctx context.Context, _ options) (formatter.Response, error) {
			return e.Status(ctx)
		}},
		"device_list": {empty: "No devices", run: func(ctx context.Context, _ options) (formatter.Response, error) {
			return e.DeviceList(ctx)
		}},
		"device_connect": {run: func(ctx context.Context, opts options) (formatter.Response, error) {
			name, err := opts.str("name")
			if err != nil {
				return formatter.Response{}, err
			}
			return e.DeviceConnect(ctx, name)
		}},
		"device_status": {run: func(ctx context.Context, _ options) (formatter.Response, error) {
			return e.DeviceStatus(ctx)
		}},
		"set_volume": {run: func(ctx context.Context, opts options) (formatter.Response, error) {
			level, ok, err := opts.integer("level")
			if err != nil {
				return formatter.Response{}, err
			}
			if !ok {
				return formatter.Response{}, &optionError{name: "level", msg: "is required"}
			}
			return e.SetVolume(ctx, level)
		}},
		"set_shuffle": {run: func(ctx context.Context, opts options) (formatter.Response, error) {
			state, ok, err := opts.boolean("state")
			if err != nil {
				return formatter.Response{}, err
			}
			if !ok {
				return formatter.Response{}, &optionError{name: "state", msg: "is required"}
			}
			return e.SetShuffle(ctx, state)
		}},
		"set_repeat": {run: func(ctx context.Context, opts options) (formatter.Response, error) {
			raw, err := opts.str("state")
			if err != nil {
				return formatter.Response{}, err
			}
			state, err := models.ParseRepeatState(raw)
			if err != nil {
				return formatter.Response{}, &optionError{name: "state", msg: err.Error()}
			}
			return e.SetRepeat(ctx, state)
		}},
	}
}

func (h *Handler) playCommand(intent playback.Intent) func(context.Context, options) (formatter.Response, error) {
	return func(ctx context.Context, opts options) (formatter.Response, error) {
		text, err := opts.str("query")
		if err != nil {
			return formatter.Response{}, err
		}
		kind, err := opts.kind("type")
		if err != nil {
			return formatter.Response{}, err
		}
		isURL, _, err := opts.boolean("is_url")
		if err != nil {
			return formatter.Response{}, err
		}

		q := playback.Query{Text: text, Kind: kind, IsURL: isURL}
		if intent == playback.IntentQueue {
			return h.engine.Queue(ctx, q)
		}
		return h.engine.Play(ctx, q)
	}
}

// optionError is a malformed interaction option. It is reported as a bad request rather than a
// failed command.
type optionError struct {
	name string
	msg  string
}

func (e *optionError) Error() string {
	return fmt.Sprintf("option %q %s", e.name, e.msg)
}

// options are decoded JSON values keyed by option name.
type options map[string]any

// str returns a string option, or "" when absent.
func (o options) str(name string) (string, error) {
	v, ok := o[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &optionError{name: name, msg: "must be a string"}
	}
	return s, nil
}

func (o options) integer(name string) (int, bool, error) {
	v, ok := o[name]
	if !ok || v == nil {
		return 0, false, nil
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false, &optionError{name: name, msg: "must be an integer"}
	}
	return int(f), true, nil
}

// bounded is integer restricted to lo..hi when present.
func (o options) bounded(name string, lo, hi int) (int, bool, error) {
	n, ok, err := o.integer(name)
	if err != nil || !ok {
		return n, ok, err
	}
	if n < lo || n > hi {
		return 0, false, &optionError{name: name, msg: fmt.Sprintf("must be between %d and %d", lo, hi)}
	}
	return n, true, nil
}

func (o options) boolean(name string) (bool, bool, error) {
	v, ok := o[name]
	if !ok || v == nil {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, &optionError{name: name, msg: "must be a boolean"}
	}
	return b, true, nil
}

// kind parses a content kind option case-insensitively. Absent means unspecified.
func (o options) kind(name string) (models.ContentKind, error) {
	s, err := o.str(name)
	if err != nil || s == "" {
		return models.KindUnspecified, err
	}
	kind, err := models.ParseKindFold(s)
	if err != nil {
		return models.KindUnspecified, &optionError{name: name, msg: err.Error()}
	}
	return kind, nil
}
