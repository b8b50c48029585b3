package playback

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// ResolveFirst returns the best search match of the given kind.
// An empty result set fails with [shared.ErrEmptySearchResult].
func (e *Engine) ResolveFirst(ctx context.Context, query string, kind models.ContentKind) (models.Identifier, error) {
	results, err := e.remote.Search(ctx, query, kind, 1)
	if err != nil {
		return models.Identifier{}, err
	}
	if len(results) == 0 {
		return models.Identifier{}, fmt.Errorf("%w: no %s matches %q", shared.ErrEmptySearchResult, kind, query)
	}

	first := results[0]
	if first.Kind() != kind {
		panic(fmt.Sprintf("playback: %s search returned %s", kind, first.Kind()))
	}
	return first.Identifier(), nil
}

// ListResults returns display lines for up to limit matches, tracks and 10 results by default.
// An empty result set is an empty list, not an error.
func (e *Engine) ListResults(ctx context.Context, query string, kind models.ContentKind, limit int) ([]string, error) {
	if !kind.Valid() {
		kind = models.Track
	}
	if limit > MaxSearchLimit {
		return nil, fmt.Errorf("%w: limit must be at most %d", shared.ErrInvalidArgument, MaxSearchLimit)
	}
	if limit <= 0 {
		limit = e.searchLimit
	}

	results, err := e.remote.Search(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(results))
	for _, m := range results {
		lines = append(lines, formatter.Credit(m))
	}
	return lines, nil
}

// Search lists matches for query.
func (e *Engine) Search(ctx context.Context, query string, kind models.ContentKind, limit int) (formatter.Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return formatter.Response{}, fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	lines, err := e.ListResults(ctx, query, kind, limit)
	if err != nil {
		return formatter.Response{}, err
	}
	return formatter.Listing(lines...), nil
}
