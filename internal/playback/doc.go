// Package playback resolves content references and drives the remote player.
//
// # Operations
//
// [Engine] exposes one method per user-facing operation. Each returns a [formatter.Response]:
//
//   - [Engine.Play] and [Engine.Queue] : play or enqueue content named by a search query, URI or URL
//   - [Engine.Search] : list search results
//   - [Engine.Status] and [Engine.QueueList] : describe the current session
//   - [Engine.DeviceList], [Engine.DeviceConnect] and [Engine.DeviceStatus] : manage devices
//   - [Engine.Pause], [Engine.Skip], [Engine.SetVolume], [Engine.SetShuffle] and [Engine.SetRepeat]
//
// The building blocks are exported too: [Engine.Fetch] loads full metadata for an identifier,
// [Engine.PlayNow] and [Engine.Enqueue] dispatch an identifier, [Engine.ResolveFirst] and
// [Engine.ListResults] run searches, [Engine.Device] and [Engine.ActiveDevice] look up devices.
//
// # Dispatch
//
// Tracks and episodes are played directly or appended to the queue. Albums, playlists, artists
// and shows are played as a context. The service cannot enqueue a whole collection, so queueing
// one fetches its children and enqueues them one at a time, in order. A failure part way
// through is reported as a [QueueExpansionError]; items already queued stay queued. Artists have
// no children and cannot be queued.
//
// # Recovery
//
// With [Options.AutoConnect], a playback or queue mutation that fails because no device is
// active is retried once after transferring playback to the first available device. This
// happens at most once per operation, and the original error is returned if it does not help.
//
// # Progress Reporting
//
// Queue expansion reports each enqueue on [Options.Progress] without blocking.
package playback
