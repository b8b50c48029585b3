package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/fishify/internal/shared"
)

// ContentKind names one of the six kinds of content. The zero value means unspecified and is
// never returned by [ParseKind].
type ContentKind int

const (
	KindUnspecified ContentKind = iota
	Track
	Album
	Playlist
	Artist
	Show
	Episode
)

// Kinds lists every valid kind in declaration order.
var Kinds = []ContentKind{Track, Album, Playlist, Artist, Show, Episode}

// String returns the lowercase keyword used in URIs and URLs.
func (k ContentKind) String() string {
	switch k {
	case Track:
		return "track"
	case Album:
		return "album"
	case Playlist:
		return "playlist"
	case Artist:
		return "artist"
	case Show:
		return "show"
	case Episode:
		return "episode"
	default:
		return "unspecified"
	}
}

// Title returns the capitalized display name, e.g. "Playlist".
func (k ContentKind) Title() string {
	s := k.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Valid reports whether k is one of the six kinds.
func (k ContentKind) Valid() bool {
	return k >= Track && k <= Episode
}

// Playable reports whether k names a single playable item rather than a context.
func (k ContentKind) Playable() bool {
	switch k {
	case Track, Episode:
		return true
	case Album, Playlist, Artist, Show:
		return false
	default:
		panic(fmt.Sprintf("models: invalid content kind %d", int(k)))
	}
}

// ParseKind maps an exact, lowercase keyword to its kind.
func ParseKind(s string) (ContentKind, error) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return KindUnspecified, fmt.Errorf("%w: %q", shared.ErrUnknownKind, s)
}

// ParseKindFold is [ParseKind] ignoring case and surrounding whitespace, for user input.
func ParseKindFold(s string) (ContentKind, error) {
	return ParseKind(strings.ToLower(strings.TrimSpace(s)))
}
