// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
)

// Call is one recorded invocation of a [FakeRemote] method.
type Call struct {
	Method string
	Args   []string
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Method
	}
	return c.Method + "(" + strings.Join(c.Args, ",") + ")"
}

// FakeRemote is an in-memory [services.Remote] that records every call.
//
// Content is looked up by URI in Content, search results by kind in Results. Errors holds
// queued failures per method name: each call pops the head of its queue, a nil entry meaning
// success. ErrorsFor keys failures by method and first argument instead.
type FakeRemote struct {
	mu sync.Mutex

	Content   map[string]models.Metadata
	Results   map[models.ContentKind][]models.Metadata
	DeviceSet []models.Device
	Playback  *models.PlaybackSnapshot
	Queue     *models.QueueSnapshot

	Errors    map[string][]error
	ErrorsFor map[string]error

	calls []Call
}

// NewFakeRemote returns an empty fake with its maps initialized.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		Content:   map[string]models.Metadata{},
		Results:   map[models.ContentKind][]models.Metadata{},
		Errors:    map[string][]error{},
		ErrorsFor: map[string]error{},
	}
}

// Add registers metadata so it can be fetched by id.
func (f *FakeRemote) Add(items ...models.Metadata) *FakeRemote {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range items {
		f.Content[m.Identifier().URI()] = m
	}
	return f
}

// Fail queues errs for the named method, consumed one per call.
func (f *FakeRemote) Fail(method string, errs ...error) *FakeRemote {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[method] = append(f.Errors[method], errs...)
	return f
}

// FailFor makes every call of method with the given first argument fail with err.
func (f *FakeRemote) FailFor(method, arg string, err error) *FakeRemote {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ErrorsFor[method+" "+arg] = err
	return f
}

// Calls returns the recorded calls in order.
func (f *FakeRemote) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call{}, f.calls...)
}

// CallsTo returns the recorded calls of one method.
func (f *FakeRemote) CallsTo(method string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeRemote) record(method string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Args: args})

	if len(args) > 0 {
		if err, ok := f.ErrorsFor[method+" "+args[0]]; ok {
			return err
		}
	}
	if queue := f.Errors[method]; len(queue) > 0 {
		f.Errors[method] = queue[1:]
		return queue[0]
	}
	return nil
}

func (f *FakeRemote) fetch(method string, kind models.ContentKind, id string) (models.Metadata, error) {
	if err := f.record(method, id); err != nil {
		return models.Metadata{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.Content[models.MustIdentifier(kind, id).URI()]
	if !ok {
		return models.Metadata{}, fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, id)
	}
	return m, nil
}

func (f *FakeRemote) Search(ctx context.Context, query string, kind models.ContentKind, limit int) ([]models.Metadata, error) {
	if err := f.record("Search", query, kind.String(), fmt.Sprint(limit)); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	results := append([]models.Metadata{}, f.Results[kind]...)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (f *FakeRemote) Track(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Track", models.Track, id)
}

func (f *FakeRemote) Album(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Album", models.Album, id)
}

func (f *FakeRemote) Playlist(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Playlist", models.Playlist, id)
}

func (f *FakeRemote) Artist(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Artist", models.Artist, id)
}

func (f *FakeRemote) Show(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Show", models.Show, id)
}

func (f *FakeRemote) Episode(ctx context.Context, id string) (models.Metadata, error) {
	return f.fetch("Episode", models.Episode, id)
}

func (f *FakeRemote) PlayItems(ctx context.Context, ids []models.Identifier) error {
	uris := make([]string, 0, len(ids))
	for _, id := range ids {
		uris = append(uris, id.URI())
	}
	return f.record("PlayItems", uris...)
}

func (f *FakeRemote) PlayContext(ctx context.Context, id models.Identifier) error {
	return f.record("PlayContext", id.URI())
}

func (f *FakeRemote) Resume(ctx context.Context) error { return f.record("Resume") }
func (f *FakeRemote) Pause(ctx context.Context) error  { return f.record("Pause") }
func (f *FakeRemote) Next(ctx context.Context) error   { return f.record("Next") }

func (f *FakeRemote) Enqueue(ctx context.Context, id models.Identifier) error {
	return f.record("Enqueue", id.URI())
}

func (f *FakeRemote) Devices(ctx context.Context) ([]models.Device, error) {
	if err := f.record("Devices"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Device{}, f.DeviceSet...), nil
}

func (f *FakeRemote) TransferPlayback(ctx context.Context, deviceID string) error {
	return f.record("TransferPlayback", deviceID)
}

func (f *FakeRemote) CurrentPlayback(ctx context.Context) (*models.PlaybackSnapshot, error) {
	if err := f.record("CurrentPlayback"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Playback, nil
}

func (f *FakeRemote) CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error) {
	if err := f.record("CurrentQueue"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Queue == nil {
		return &models.QueueSnapshot{}, nil
	}
	return f.Queue, nil
}

func (f *FakeRemote) SetVolume(ctx context.Context, percent int) error {
	return f.record("SetVolume", fmt.Sprint(percent))
}

func (f *FakeRemote) SetShuffle(ctx context.Context, state bool) error {
	return f.record("SetShuffle", fmt.Sprint(state))
}

func (f *FakeRemote) SetRepeat(ctx context.Context, state models.RepeatState) error {
	return f.record("SetRepeat", state.APIValue())
}

// ErrNoDevice is the error the remote reports when no device is active.
var ErrNoDevice = fmt.Errorf("%w: no active device", shared.ErrNotFound)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}
