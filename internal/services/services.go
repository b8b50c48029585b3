package services

import (
	"context"

	"github.com/desertthunder/fishify/internal/models"
)

// Remote is the authenticated music service the playback engine drives.
//
// Implementations must be safe for concurrent use. Errors wrap [shared.ErrNotFound] when the
// service reports a missing resource or device and [shared.ErrAPIRequest] otherwise.
type Remote interface {
	// Search returns simplified metadata of the given kind, best match first.
	Search(ctx context.Context, query string, kind models.ContentKind, limit int) ([]models.Metadata, error)

	Track(ctx context.Context, id string) (models.Metadata, error)
	Album(ctx context.Context, id string) (models.Metadata, error)
	Playlist(ctx context.Context, id string) (models.Metadata, error)
	Artist(ctx context.Context, id string) (models.Metadata, error)
	Show(ctx context.Context, id string) (models.Metadata, error)
	Episode(ctx context.Context, id string) (models.Metadata, error)

	// PlayItems replaces playback with exactly the given tracks or episodes.
	PlayItems(ctx context.Context, ids []models.Identifier) error
	// PlayContext starts playback of an album, playlist, artist or show.
	PlayContext(ctx context.Context, id models.Identifier) error
	Resume(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	// Enqueue appends one track or episode to the play queue.
	Enqueue(ctx context.Context, id models.Identifier) error

	Devices(ctx context.Context) ([]models.Device, error)
	TransferPlayback(ctx context.Context, deviceID string) error

	// CurrentPlayback returns nil and no error when there is no session.
	CurrentPlayback(ctx context.Context) (*models.PlaybackSnapshot, error)
	CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error)

	SetVolume(ctx context.Context, percent int) error
	SetShuffle(ctx context.Context, state bool) error
	SetRepeat(ctx context.Context, state models.RepeatState) error
}
