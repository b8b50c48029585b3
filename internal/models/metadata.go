package models

import (
	"fmt"
	"time"
)

// Level is the richness of a [Metadata] value.
type Level int

const (
	// Simplified metadata comes from search and listing results.
	Simplified Level = iota
	// Full metadata comes from a direct fetch and carries children for collections.
	Full
)

func (l Level) String() string {
	if l == Full {
		return "full"
	}
	return "simplified"
}

// Metadata is kind-tagged content metadata. Values are only built by the New* constructors,
// one per kind and level, so the facts below always agree with the kind:
//   - Artists is empty for playlists, shows and episodes.
//   - Duration is present only for tracks and episodes.
//   - Children is defined only for full albums, playlists and shows.
type Metadata struct {
	ident    Identifier
	level    Level
	name     string
	artists  []string
	duration time.Duration
	children []Identifier
}

func NewSimplifiedTrack(id, name string, artists []string, d time.Duration) Metadata {
	return Metadata{ident: Identifier{Track, id}, level: Simplified, name: name, artists: clone(artists), duration: d}
}

func NewFullTrack(id, name string, artists []string, d time.Duration) Metadata {
	m := NewSimplifiedTrack(id, name, artists, d)
	m.level = Full
	return m
}

func NewSimplifiedAlbum(id, name string, artists []string) Metadata {
	return Metadata{ident: Identifier{Album, id}, level: Simplified, name: name, artists: clone(artists)}
}

// NewFullAlbum builds album metadata whose children are the given track ids, in album order.
func NewFullAlbum(id, name string, artists []string, trackIDs []string) Metadata {
	m := NewSimplifiedAlbum(id, name, artists)
	m.level = Full
	m.children = identifiers(Track, trackIDs)
	return m
}

func NewSimplifiedPlaylist(id, name string) Metadata {
	return Metadata{ident: Identifier{Playlist, id}, level: Simplified, name: name}
}

// NewFullPlaylist builds playlist metadata from its tracks and episodes, in playlist order.
// Items must be playable identifiers.
func NewFullPlaylist(id, name string, items []Identifier) Metadata {
	for _, item := range items {
		if !item.Kind().Playable() {
			panic(fmt.Sprintf("models: playlist item %s is not playable", item))
		}
	}
	m := NewSimplifiedPlaylist(id, name)
	m.level = Full
	m.children = clone(items)
	if m.children == nil {
		m.children = []Identifier{}
	}
	return m
}

// NewSimplifiedArtist and NewFullArtist credit the artist to itself.
func NewSimplifiedArtist(id, name string) Metadata {
	return Metadata{ident: Identifier{Artist, id}, level: Simplified, name: name, artists: []string{name}}
}

func NewFullArtist(id, name string) Metadata {
	m := NewSimplifiedArtist(id, name)
	m.level = Full
	return m
}

func NewSimplifiedShow(id, name string) Metadata {
	return Metadata{ident: Identifier{Show, id}, level: Simplified, name: name}
}

// NewFullShow builds show metadata whose children are the given episode ids, in show order.
func NewFullShow(id, name string, episodeIDs []string) Metadata {
	m := NewSimplifiedShow(id, name)
	m.level = Full
	m.children = identifiers(Episode, episodeIDs)
	return m
}

func NewSimplifiedEpisode(id, name string, d time.Duration) Metadata {
	return Metadata{ident: Identifier{Episode, id}, level: Simplified, name: name, duration: d}
}

func NewFullEpisode(id, name string, d time.Duration) Metadata {
	m := NewSimplifiedEpisode(id, name, d)
	m.level = Full
	return m
}

func (m Metadata) Kind() ContentKind      { return m.ident.kind }
func (m Metadata) Level() Level           { return m.level }
func (m Metadata) Identifier() Identifier { return m.ident }
func (m Metadata) Name() string           { return m.name }

// Artists returns the credited artists, primary first.
func (m Metadata) Artists() []string { return clone(m.artists) }

// PrimaryArtist returns the first credited artist, or "" when none applies.
func (m Metadata) PrimaryArtist() string {
	if len(m.artists) == 0 {
		return ""
	}
	return m.artists[0]
}

// Duration returns the playable length for tracks and episodes.
func (m Metadata) Duration() (time.Duration, bool) {
	switch m.Kind() {
	case Track, Episode:
		return m.duration, true
	case Album, Playlist, Artist, Show:
		return 0, false
	default:
		panic(fmt.Sprintf("models: invalid content kind %d", int(m.Kind())))
	}
}

// Children returns the ordered playable ids of a full album, playlist or show. The boolean is
// false when the kind or level has no children, which is distinct from an empty collection.
func (m Metadata) Children() ([]Identifier, bool) {
	switch m.Kind() {
	case Album, Playlist, Show:
		if m.level != Full {
			return nil, false
		}
		return clone(m.children), true
	case Track, Episode, Artist:
		return nil, false
	default:
		panic(fmt.Sprintf("models: invalid content kind %d", int(m.Kind())))
	}
}

func identifiers(kind ContentKind, ids []string) []Identifier {
	out := make([]Identifier, 0, len(ids))
	for _, id := range ids {
		out = append(out, Identifier{kind: kind, id: id})
	}
	return out
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
