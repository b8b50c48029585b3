package playback

import (
	"context"
	"fmt"

	"github.com/desertthunder/fishify/internal/models"
)

// Fetch loads full metadata for id with the one remote call its kind calls for.
// Remote errors are returned unchanged.
func (e *Engine) Fetch(ctx context.Context, id models.Identifier) (models.Metadata, error) {
	var (
		meta models.Metadata
		err  error
	)
	switch id.Kind() {
	case models.Track:
		meta, err = e.remote.Track(ctx, id.ID())
	case models.Album:
		meta, err = e.remote.Album(ctx, id.ID())
	case models.Playlist:
		meta, err = e.remote.Playlist(ctx, id.ID())
	case models.Artist:
		meta, err = e.remote.Artist(ctx, id.ID())
	case models.Show:
		meta, err = e.remote.Show(ctx, id.ID())
	case models.Episode:
		meta, err = e.remote.Episode(ctx, id.ID())
	default:
		panic(fmt.Sprintf("playback: invalid content kind %d", int(id.Kind())))
	}
	if err != nil {
		return models.Metadata{}, err
	}

	if meta.Kind() != id.Kind() {
		panic(fmt.Sprintf("playback: fetched %s metadata for %s", meta.Kind(), id))
	}
	return meta, nil
}
