// Package services implements the remote playback contract ([Remote]) for Spotify.
//
// # Remote Interface
//
// [Remote] is everything the playback engine needs from a music service: search, per-kind
// metadata fetches, playback and queue mutation, devices and the current session. Values cross
// the boundary as [models] types so the engine never sees provider JSON.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 for authentication with automatic token refresh. Refreshed tokens
// are reported through [SpotifyService.SetTokenRefreshCallback] so the caller can persist them.
//
// Most endpoints go through the [spotify.Client] from github.com/zmb3/spotify/v2. Endpoints whose
// payloads mix tracks and episodes (playlists, episodes, the player state and episode queueing)
// are requested directly with doRequest and decoded into the Spotify* response types.
//
// # Error Handling
//
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrNotFound] : the API answered 404, which for player endpoints means no active device
//   - [shared.ErrAPIRequest] : any other failed request
package services
