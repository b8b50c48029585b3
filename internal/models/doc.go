// Package models defines the content identity and playback values shared by the playback engine
// and its front ends.
//
// The package contains three groups of types:
//
// 1. Content identity
//   - [ContentKind] : the six kinds of content the remote service can name
//   - [Identifier] : a kind tag plus the service's opaque id, parsed from a URI or URL
//
// 2. Content metadata
//   - [Metadata] : kind-tagged metadata in simplified (search) or full (fetch) form
//
// 3. Playback state
//   - [Device] : a playback target
//   - [PlaybackSnapshot] : what the service is currently doing
//   - [QueueSnapshot] : the current item plus upcoming items
//   - [RepeatState] : off, track or context repeat
//
// All values are request-scoped and immutable once built.
package models
