package services

// Spotify API response types for the endpoints requested with doRequest,
// based on https://developer.spotify.com/documentation/web-api/reference/

// SpotifyArtist is the simplified artist object.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyShow is the simplified show object embedded in episodes.
type SpotifyShow struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Publisher string `json:"publisher"`
}

// SpotifyItem is a playable item: a track or an episode, distinguished by Type.
type SpotifyItem struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	DurationMS int             `json:"duration_ms"`
	Artists    []SpotifyArtist `json:"artists"`
	Show       *SpotifyShow    `json:"show"`
	URI        string          `json:"uri"`
}

// SpotifyPlaylistTrack is one entry of a playlist. Track is nil for removed items.
type SpotifyPlaylistTrack struct {
	AddedAt string       `json:"added_at"`
	IsLocal bool         `json:"is_local"`
	Track   *SpotifyItem `json:"track"`
}

// SpotifyPlaylistTracks is one page of playlist entries.
type SpotifyPlaylistTracks struct {
	Items []SpotifyPlaylistTrack `json:"items"`
	Total int                    `json:"total"`
	Next  *string                `json:"next"`
}

// SpotifyPlaylist is the full playlist object with its first page of entries.
type SpotifyPlaylist struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Tracks      SpotifyPlaylistTracks `json:"tracks"`
	URI         string                `json:"uri"`
}

// SpotifyDevice is a device as reported inside the player state.
type SpotifyDevice struct {
	ID            *string `json:"id"`
	IsActive      bool    `json:"is_active"`
	IsRestricted  bool    `json:"is_restricted"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	VolumePercent *int    `json:"volume_percent"`
}

// SpotifyContext is the collection the player is playing from.
type SpotifyContext struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
}

// SpotifyPlayerState is the response of GET /me/player.
type SpotifyPlayerState struct {
	Device               SpotifyDevice   `json:"device"`
	ShuffleState         bool            `json:"shuffle_state"`
	RepeatState          string          `json:"repeat_state"`
	Context              *SpotifyContext `json:"context"`
	ProgressMS           *int            `json:"progress_ms"`
	IsPlaying            bool            `json:"is_playing"`
	Item                 *SpotifyItem    `json:"item"`
	CurrentlyPlayingType string          `json:"currently_playing_type"`
}

// SpotifyQueue is the response of GET /me/player/queue.
type SpotifyQueue struct {
	CurrentlyPlaying *SpotifyItem   `json:"currently_playing"`
	Queue            []*SpotifyItem `json:"queue"`
}

type spotifyErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}
