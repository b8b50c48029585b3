package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/fishify/internal/shared"
)

// Device is a playback target known to the remote service.
type Device struct {
	// ID is empty for device classes the service does not expose an id for.
	ID     string
	Name   string
	Type   string
	Active bool
	// Volume is nil when the device does not report one.
	Volume *int
}

// RepeatState is the repeat mode of a playback session.
type RepeatState int

const (
	RepeatOff RepeatState = iota
	RepeatTrack
	RepeatContext
)

// String returns the display form: Off, Track or Context.
func (r RepeatState) String() string {
	switch r {
	case RepeatTrack:
		return "Track"
	case RepeatContext:
		return "Context"
	default:
		return "Off"
	}
}

// APIValue returns the value the remote service accepts: off, track or context.
func (r RepeatState) APIValue() string {
	return strings.ToLower(r.String())
}

// ParseRepeatState accepts on, true and context for context repeat, track for track repeat and
// off or false to disable repeat. Case is ignored.
func ParseRepeatState(s string) (RepeatState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "context":
		return RepeatContext, nil
	case "track":
		return RepeatTrack, nil
	case "off", "false":
		return RepeatOff, nil
	default:
		return RepeatOff, fmt.Errorf("%w: repeat state %q", shared.ErrInvalidArgument, s)
	}
}

// PlaybackContext is the collection a session is playing from, as reported by the service.
type PlaybackContext struct {
	Type string
	URI  string
}

// PlaybackSnapshot is a point-in-time read of the current session.
type PlaybackSnapshot struct {
	Playing  bool
	Context  *PlaybackContext
	Item     *Metadata
	Progress *time.Duration
	Device   Device
	Shuffle  bool
	Repeat   RepeatState
}

// QueueSnapshot is the currently playing item followed by the upcoming queue.
type QueueSnapshot struct {
	Current *Metadata
	Items   []Metadata
}
