package playback

import (
	"context"
	"fmt"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// Status describes the current session.
func (e *Engine) Status(ctx context.Context) (formatter.Response, error) {
	snapshot, err := e.remote.CurrentPlayback(ctx)
	if err != nil {
		return formatter.Response{}, err
	}

	lines, err := e.RenderStatus(ctx, snapshot)
	if err != nil {
		return formatter.Response{}, err
	}
	return formatter.Listing(lines...), nil
}

// RenderStatus formats a snapshot in a fixed order: state, context, item, progress, volume,
// shuffle and repeat. A nil snapshot fails with [shared.ErrNoActivePlayback].
func (e *Engine) RenderStatus(ctx context.Context, snapshot *models.PlaybackSnapshot) ([]string, error) {
	if snapshot == nil {
		return nil, shared.ErrNoActivePlayback
	}

	lines := []string{"Paused"}
	if snapshot.Playing {
		lines[0] = "Playing"
	}

	if snapshot.Context != nil {
		line, err := e.contextLine(ctx, snapshot.Context)
		if err != nil {
			return nil, err
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	if item := snapshot.Item; item != nil {
		lines = append(lines, formatter.Credit(*item))
		if snapshot.Progress != nil {
			if d, ok := item.Duration(); ok {
				lines = append(lines, formatter.Clock(*snapshot.Progress)+" / "+formatter.Clock(d))
			}
		}
	}

	if v := snapshot.Device.Volume; v != nil {
		lines = append(lines, fmt.Sprintf("Volume: %d%%", *v))
	}
	lines = append(lines,
		"Shuffle: "+formatter.OnOff(snapshot.Shuffle),
		"Repeat: "+snapshot.Repeat.String(),
	)
	return lines, nil
}

// contextLine names the playback context. Contexts that are not content, such as the liked
// songs collection, produce no line.
func (e *Engine) contextLine(ctx context.Context, pc *models.PlaybackContext) (string, error) {
	id, err := models.ParseURI(pc.URI)
	if err != nil {
		e.logger.Debug("skipping playback context", "uri", pc.URI, "type", pc.Type, "err", err)
		return "", nil
	}

	meta, err := e.Fetch(ctx, id)
	if err != nil {
		return "", err
	}
	return id.Kind().Title() + ": " + meta.Name(), nil
}

// QueueList shows the current item and the upcoming queue.
func (e *Engine) QueueList(ctx context.Context) (formatter.Response, error) {
	queue, err := e.remote.CurrentQueue(ctx)
	if err != nil {
		return formatter.Response{}, err
	}
	if queue == nil {
		return formatter.Listing(), nil
	}

	lines := make([]string, 0, len(queue.Items)+1)
	if queue.Current != nil {
		lines = append(lines, formatter.Byline("Currently playing", *queue.Current))
	}
	for i, item := range queue.Items {
		lines = append(lines, formatter.Numbered(i+1, item))
	}
	return formatter.Listing(lines...), nil
}
