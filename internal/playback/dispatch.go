package playback

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// Intent is what to do with resolved content.
type Intent int

const (
	IntentPlay Intent = iota
	IntentQueue
)

func (i Intent) String() string {
	if i == IntentQueue {
		return "queue"
	}
	return "play"
}

// Query names content by free text, a spotify: URI or, with IsURL, an open.spotify.com URL.
type Query struct {
	Text string
	// Kind restricts free-text search. The zero value searches tracks.
	Kind  models.ContentKind
	IsURL bool
}

// Play starts playback of the content q names. An empty query resumes playback.
func (e *Engine) Play(ctx context.Context, q Query) (formatter.Response, error) {
	return e.playByQuery(ctx, q, IntentPlay)
}

// Queue appends the content q names to the play queue.
func (e *Engine) Queue(ctx context.Context, q Query) (formatter.Response, error) {
	return e.playByQuery(ctx, q, IntentQueue)
}

// PlayNow plays a track or episode alone, or any other kind as a context.
func (e *Engine) PlayNow(ctx context.Context, id models.Identifier) error {
	_, err := e.dispatch(ctx, e.begin("play"), id, IntentPlay)
	return err
}

// Enqueue queues a track or episode, or each child of an album, playlist or show in order.
func (e *Engine) Enqueue(ctx context.Context, id models.Identifier) error {
	_, err := e.dispatch(ctx, e.begin("queue"), id, IntentQueue)
	return err
}

func (e *Engine) playByQuery(ctx context.Context, q Query, intent Intent) (formatter.Response, error) {
	inv := e.begin(intent.String())
	q.Text = strings.TrimSpace(q.Text)

	if q.Text == "" {
		if intent == IntentQueue {
			return formatter.Response{}, fmt.Errorf("%w: nothing to queue", shared.ErrMissingArgument)
		}
		if err := e.mutate(ctx, inv, "resume", e.remote.Resume); err != nil {
			return formatter.Response{}, err
		}
		return formatter.Ack("Resumed playback"), nil
	}

	id, err := e.resolve(ctx, q)
	if err != nil {
		return formatter.Response{}, err
	}

	meta, err := e.dispatch(ctx, inv, id, intent)
	if err != nil {
		return formatter.Response{}, err
	}
	if meta == nil {
		fetched, err := e.Fetch(ctx, id)
		if err != nil {
			return formatter.Response{}, err
		}
		meta = &fetched
	}

	verb := "Now playing"
	if intent == IntentQueue {
		verb = "Queued"
	}
	return formatter.Listing(formatter.Byline(verb, *meta)), nil
}

func (e *Engine) resolve(ctx context.Context, q Query) (models.Identifier, error) {
	switch {
	case q.IsURL:
		id, err := models.IdentifierFromURL(q.Text)
		if err != nil {
			return models.Identifier{}, fmt.Errorf("%w: %w", shared.ErrInvalidReference, err)
		}
		return id, nil
	case models.LooksLikeURI(q.Text):
		return models.ParseURI(q.Text)
	default:
		kind := q.Kind
		if !kind.Valid() {
			kind = models.Track
		}
		return e.ResolveFirst(ctx, q.Text, kind)
	}
}

// dispatch routes id by kind and intent. It returns the metadata it had to fetch, if any.
func (e *Engine) dispatch(ctx context.Context, inv *invocation, id models.Identifier, intent Intent) (*models.Metadata, error) {
	inv.logger.Debug("dispatching", "uri", id.URI(), "intent", intent)

	switch intent {
	case IntentPlay:
		if id.Kind().Playable() {
			return nil, e.mutate(ctx, inv, "play items", func(ctx context.Context) error {
				return e.remote.PlayItems(ctx, []models.Identifier{id})
			})
		}
		return nil, e.mutate(ctx, inv, "play context", func(ctx context.Context) error {
			return e.remote.PlayContext(ctx, id)
		})
	case IntentQueue:
		if id.Kind().Playable() {
			return nil, e.mutate(ctx, inv, "enqueue", func(ctx context.Context) error {
				return e.remote.Enqueue(ctx, id)
			})
		}
		if id.Kind() == models.Artist {
			return nil, fmt.Errorf("%w: artists cannot be queued (%s)", shared.ErrQueueUnsupported, id)
		}

		e.sendProgress(fetchContextUpdate(id))
		meta, err := e.Fetch(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := e.expand(ctx, inv, meta); err != nil {
			return nil, err
		}
		return &meta, nil
	default:
		panic(fmt.Sprintf("playback: invalid intent %d", int(intent)))
	}
}

// expand enqueues the children of meta one at a time, stopping at the first failure.
func (e *Engine) expand(ctx context.Context, inv *invocation, meta models.Metadata) error {
	children, ok := meta.Children()
	if !ok {
		return fmt.Errorf("%w: %s has no playable items", shared.ErrQueueUnsupported, meta.Identifier())
	}

	total := len(children)
	inv.logger.Debug("expanding queue", "uri", meta.Identifier().URI(), "items", total)

	for i, child := range children {
		fail := func(err error) error {
			return &QueueExpansionError{Source: meta.Identifier(), Item: child, Index: i + 1, Total: total, Err: err}
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return fail(err)
		}

		e.sendProgress(queueItemUpdate(i+1, total, child))
		err := e.mutate(ctx, inv, "enqueue", func(ctx context.Context) error {
			return e.remote.Enqueue(ctx, child)
		})
		if err != nil {
			return fail(err)
		}
	}

	e.sendProgress(queueDoneUpdate(total, meta.Identifier()))
	return nil
}
