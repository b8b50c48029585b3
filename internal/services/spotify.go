// Spotify implementation of [Remote]
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

const spotifyBaseURL = "https://api.spotify.com/v1/"

var spotifyScopes = []string{
	spotifyauth.ScopeUserReadPlaybackState,
	spotifyauth.ScopeUserModifyPlaybackState,
	spotifyauth.ScopeUserReadCurrentlyPlaying,
}

var _ Remote = (*SpotifyService)(nil)

// SpotifyService implements [Remote] for the Spotify Web API.
type SpotifyService struct {
	config         *oauth2.Config
	tokenSource    *refreshableTokenSource
	baseClient     *http.Client
	httpClient     *http.Client
	api            *spotify.Client
	baseURL        string
	onTokenRefresh func(*oauth2.Token)
}

// SpotifyOption configures a [SpotifyService].
type SpotifyOption func(*SpotifyService)

// WithBaseURL points API requests at another host. The URL must end in a slash.
func WithBaseURL(u string) SpotifyOption {
	return func(s *SpotifyService) {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		s.baseURL = u
	}
}

// WithHTTPClient sets the client whose transport carries authenticated requests and token exchanges.
func WithHTTPClient(c *http.Client) SpotifyOption {
	return func(s *SpotifyService) { s.baseClient = c }
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string, opts ...SpotifyOption) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://127.0.0.1:3000/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: spotifyauth.TokenURL,
		},
	}

	s := &SpotifyService{
		config:  config,
		baseURL: spotifyBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either a cached token
// ("access_token" and/or "refresh_token", optionally "token_type" and an RFC 3339 "expiry") or an
// "auth_code" in credentials. A refresh token alone is refreshed on the first request.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if s.baseClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.baseClient)
	}

	if credentials["access_token"] != "" || credentials["refresh_token"] != "" {
		token := &oauth2.Token{
			AccessToken:  credentials["access_token"],
			RefreshToken: credentials["refresh_token"],
			TokenType:    credentials["token_type"],
		}
		if expiry, err := time.Parse(time.RFC3339, credentials["expiry"]); err == nil {
			token.Expiry = expiry
		}
		s.setToken(ctx, token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %w", shared.ErrAuthFailed, err)
		}
		s.setToken(ctx, token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token without authenticating the service.
func (s *SpotifyService) Exchange(ctx context.Context, code string, opts ...oauth2.AuthCodeOption) (*oauth2.Token, error) {
	if s.baseClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.baseClient)
	}
	return s.config.Exchange(ctx, code, opts...)
}

// Token returns the current, possibly refreshed, token.
func (s *SpotifyService) Token() (*oauth2.Token, error) {
	if s.tokenSource == nil {
		return nil, shared.ErrNotAuthenticated
	}
	return s.tokenSource.Token()
}

// SetTokenRefreshCallback registers fn to receive every new access token.
func (s *SpotifyService) SetTokenRefreshCallback(fn func(*oauth2.Token)) {
	s.onTokenRefresh = fn
	if s.tokenSource != nil {
		s.tokenSource.setCallback(fn)
	}
}

func (s *SpotifyService) setToken(ctx context.Context, token *oauth2.Token) {
	s.tokenSource = &refreshableTokenSource{
		source:   oauth2.ReuseTokenSource(token, s.config.TokenSource(ctx, token)),
		callback: s.onTokenRefresh,
	}
	s.httpClient = oauth2.NewClient(ctx, s.tokenSource)
	s.api = spotify.New(s.httpClient, spotify.WithBaseURL(s.baseURL))
}

func (s *SpotifyService) ready() error {
	if s.api == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}
	return nil
}

// Search implements [Remote].
func (s *SpotifyService) Search(ctx context.Context, query string, kind models.ContentKind, limit int) ([]models.Metadata, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	st, err := searchType(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}

	res, err := s.api.Search(ctx, query, st, spotify.Limit(limit))
	if err != nil {
		return nil, apiError("search", err)
	}

	results := []models.Metadata{}
	switch kind {
	case models.Track:
		if res.Tracks != nil {
			for _, t := range res.Tracks.Tracks {
				if t.ID != "" {
					results = append(results, models.NewSimplifiedTrack(string(t.ID), t.Name, artistNames(t.Artists), millis(t.Duration)))
				}
			}
		}
	case models.Album:
		if res.Albums != nil {
			for _, a := range res.Albums.Albums {
				if a.ID != "" {
					results = append(results, models.NewSimplifiedAlbum(string(a.ID), a.Name, artistNames(a.Artists)))
				}
			}
		}
	case models.Playlist:
		if res.Playlists != nil {
			for _, p := range res.Playlists.Playlists {
				if p.ID != "" {
					results = append(results, models.NewSimplifiedPlaylist(string(p.ID), p.Name))
				}
			}
		}
	case models.Artist:
		if res.Artists != nil {
			for _, a := range res.Artists.Artists {
				if a.ID != "" {
					results = append(results, models.NewSimplifiedArtist(string(a.ID), a.Name))
				}
			}
		}
	case models.Show:
		if res.Shows != nil {
			for _, sh := range res.Shows.Shows {
				if sh.ID != "" {
					results = append(results, models.NewSimplifiedShow(string(sh.ID), sh.Name))
				}
			}
		}
	case models.Episode:
		if res.Episodes != nil {
			for _, e := range res.Episodes.Episodes {
				if e.ID != "" {
					results = append(results, models.NewSimplifiedEpisode(string(e.ID), e.Name, millis(e.Duration_ms)))
				}
			}
		}
	}
	return results, nil
}

// Track implements [Remote].
func (s *SpotifyService) Track(ctx context.Context, id string) (models.Metadata, error) {
	if err := s.ready(); err != nil {
		return models.Metadata{}, err
	}
	t, err := s.api.GetTrack(ctx, spotify.ID(id))
	if err != nil {
		return models.Metadata{}, apiError("get track", err)
	}
	return fullTrack(*t), nil
}

// Album implements [Remote]. Every page of the album's tracks is read.
func (s *SpotifyService) Album(ctx context.Context, id string) (models.Metadata, error) {
	if err := s.ready(); err != nil {
		return models.Metadata{}, err
	}
	album, err := s.api.GetAlbum(ctx, spotify.ID(id))
	if err != nil {
		return models.Metadata{}, apiError("get album", err)
	}

	page := &album.Tracks
	var trackIDs []string
	for {
		for _, t := range page.Tracks {
			if t.ID != "" {
				trackIDs = append(trackIDs, string(t.ID))
			}
		}
		if page.Next == "" {
			break
		}
		if err := s.api.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				break
			}
			return models.Metadata{}, apiError("get album tracks", err)
		}
	}

	return models.NewFullAlbum(string(album.ID), album.Name, artistNames(album.Artists), trackIDs), nil
}

// Playlist implements [Remote]. Tracks and episodes are both kept; local files are skipped.
func (s *SpotifyService) Playlist(ctx context.Context, id string) (models.Metadata, error) {
	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("playlists/%s?additional_types=episode", url.PathEscape(id))
	if err := s.doRequest(ctx, http.MethodGet, endpoint, &playlist); err != nil {
		return models.Metadata{}, err
	}

	var items []models.Identifier
	page := playlist.Tracks
	for {
		for _, entry := range page.Items {
			if ident, ok := entry.identifier(); ok {
				items = append(items, ident)
			}
		}
		if page.Next == nil || *page.Next == "" {
			break
		}
		next := *page.Next
		page = SpotifyPlaylistTracks{}
		if err := s.doRequest(ctx, http.MethodGet, next, &page); err != nil {
			return models.Metadata{}, err
		}
	}

	return models.NewFullPlaylist(playlist.ID, playlist.Name, items), nil
}

// Artist implements [Remote].
func (s *SpotifyService) Artist(ctx context.Context, id string) (models.Metadata, error) {
	if err := s.ready(); err != nil {
		return models.Metadata{}, err
	}
	a, err := s.api.GetArtist(ctx, spotify.ID(id))
	if err != nil {
		return models.Metadata{}, apiError("get artist", err)
	}
	return models.NewFullArtist(string(a.ID), a.Name), nil
}

// Show implements [Remote]. Every page of the show's episodes is read.
func (s *SpotifyService) Show(ctx context.Context, id string) (models.Metadata, error) {
	if err := s.ready(); err != nil {
		return models.Metadata{}, err
	}
	show, err := s.api.GetShow(ctx, spotify.ID(id))
	if err != nil {
		return models.Metadata{}, apiError("get show", err)
	}

	page := &show.Episodes
	var episodeIDs []string
	for {
		for _, e := range page.Episodes {
			if e.ID != "" {
				episodeIDs = append(episodeIDs, string(e.ID))
			}
		}
		if page.Next == "" {
			break
		}
		if err := s.api.NextPage(ctx, page); err != nil {
			if errors.Is(err, spotify.ErrNoMorePages) {
				break
			}
			return models.Metadata{}, apiError("get show episodes", err)
		}
	}

	return models.NewFullShow(string(show.ID), show.Name, episodeIDs), nil
}

// Episode implements [Remote].
func (s *SpotifyService) Episode(ctx context.Context, id string) (models.Metadata, error) {
	var episode SpotifyItem
	if err := s.doRequest(ctx, http.MethodGet, "episodes/"+url.PathEscape(id), &episode); err != nil {
		return models.Metadata{}, err
	}
	return models.NewFullEpisode(episode.ID, episode.Name, millis(episode.DurationMS)), nil
}

// PlayItems implements [Remote].
func (s *SpotifyService) PlayItems(ctx context.Context, ids []models.Identifier) error {
	if err := s.ready(); err != nil {
		return err
	}
	uris := make([]spotify.URI, 0, len(ids))
	for _, id := range ids {
		uris = append(uris, spotify.URI(id.URI()))
	}
	return apiError("start playback", s.api.PlayOpt(ctx, &spotify.PlayOptions{URIs: uris}))
}

// PlayContext implements [Remote].
func (s *SpotifyService) PlayContext(ctx context.Context, id models.Identifier) error {
	if err := s.ready(); err != nil {
		return err
	}
	uri := spotify.URI(id.URI())
	return apiError("start playback", s.api.PlayOpt(ctx, &spotify.PlayOptions{PlaybackContext: &uri}))
}

func (s *SpotifyService) Resume(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("resume playback", s.api.Play(ctx))
}

func (s *SpotifyService) Pause(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("pause playback", s.api.Pause(ctx))
}

func (s *SpotifyService) Next(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("skip to next", s.api.Next(ctx))
}

// Enqueue implements [Remote]. The client library only queues tracks, so episodes are
// queued by URI directly.
func (s *SpotifyService) Enqueue(ctx context.Context, id models.Identifier) error {
	if err := s.ready(); err != nil {
		return err
	}
	switch id.Kind() {
	case models.Track:
		return apiError("add to queue", s.api.QueueSong(ctx, spotify.ID(id.ID())))
	case models.Episode:
		return s.doRequest(ctx, http.MethodPost, "me/player/queue?uri="+url.QueryEscape(id.URI()), nil)
	case models.Album, models.Playlist, models.Artist, models.Show:
		return fmt.Errorf("%w: %s", shared.ErrQueueUnsupported, id)
	default:
		panic(fmt.Sprintf("services: invalid content kind %d", int(id.Kind())))
	}
}

// Devices implements [Remote].
func (s *SpotifyService) Devices(ctx context.Context) ([]models.Device, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	devices, err := s.api.PlayerDevices(ctx)
	if err != nil {
		return nil, apiError("list devices", err)
	}

	out := make([]models.Device, 0, len(devices))
	for _, d := range devices {
		device := models.Device{ID: string(d.ID), Name: d.Name, Type: d.Type, Active: d.Active}
		if !d.Restricted {
			volume := int(d.Volume)
			device.Volume = &volume
		}
		out = append(out, device)
	}
	return out, nil
}

func (s *SpotifyService) TransferPlayback(ctx context.Context, deviceID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("transfer playback", s.api.TransferPlayback(ctx, spotify.ID(deviceID), false))
}

// CurrentPlayback implements [Remote]. The API answers 204 when nothing is playing.
func (s *SpotifyService) CurrentPlayback(ctx context.Context) (*models.PlaybackSnapshot, error) {
	var state *SpotifyPlayerState
	if err := s.doRequest(ctx, http.MethodGet, "me/player?additional_types=episode", &state); err != nil {
		return nil, err
	}
	if state == nil {
		return nil, nil
	}
	return state.snapshot(), nil
}

// CurrentQueue implements [Remote]. The queue mixes tracks and episodes, so it is decoded with
// the item types rather than the SDK's track-only queue.
func (s *SpotifyService) CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error) {
	var queue SpotifyQueue
	if err := s.doRequest(ctx, http.MethodGet, "me/player/queue", &queue); err != nil {
		return nil, err
	}

	snapshot := &models.QueueSnapshot{Items: []models.Metadata{}}
	if queue.CurrentlyPlaying != nil && queue.CurrentlyPlaying.ID != "" {
		current := queue.CurrentlyPlaying.metadata()
		snapshot.Current = &current
	}
	for _, item := range queue.Queue {
		if item != nil && item.ID != "" {
			snapshot.Items = append(snapshot.Items, item.metadata())
		}
	}
	return snapshot, nil
}

// SetVolume implements [Remote].
func (s *SpotifyService) SetVolume(ctx context.Context, percent int) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("set volume", s.api.Volume(ctx, percent))
}

func (s *SpotifyService) SetShuffle(ctx context.Context, state bool) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("set shuffle", s.api.Shuffle(ctx, state))
}

func (s *SpotifyService) SetRepeat(ctx context.Context, state models.RepeatState) error {
	if err := s.ready(); err != nil {
		return err
	}
	return apiError("set repeat", s.api.Repeat(ctx, state.APIValue()))
}

// doRequest performs an authenticated HTTP request to the Spotify API. Endpoints are relative
// to the base URL unless they are absolute, as pagination links are. A 204 leaves result untouched.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, result any) error {
	if err := s.ready(); err != nil {
		return err
	}

	apiURL := endpoint
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		apiURL = s.baseURL + strings.TrimPrefix(endpoint, "/")
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", shared.ErrAPIRequest, method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body spotifyErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return statusError(method+" "+req.URL.Path, resp.StatusCode, body.Error.Message)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrAPIRequest, err)
	}
	return nil
}

// apiError maps errors from the client library onto the shared taxonomy. It returns nil for nil.
func apiError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se spotify.Error
	if errors.As(err, &se) {
		return statusError(op, se.Status, se.Message)
	}
	return fmt.Errorf("%w: %s: %w", shared.ErrAPIRequest, op, err)
}

func statusError(op string, status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s: %s", shared.ErrNotFound, op, message)
	}
	return fmt.Errorf("%w: %s: spotify API error: status %d: %s", shared.ErrAPIRequest, op, status, message)
}

func searchType(kind models.ContentKind) (spotify.SearchType, error) {
	switch kind {
	case models.Track:
		return spotify.SearchTypeTrack, nil
	case models.Album:
		return spotify.SearchTypeAlbum, nil
	case models.Playlist:
		return spotify.SearchTypePlaylist, nil
	case models.Artist:
		return spotify.SearchTypeArtist, nil
	case models.Show:
		return spotify.SearchTypeShow, nil
	case models.Episode:
		return spotify.SearchTypeEpisode, nil
	default:
		return 0, fmt.Errorf("%w: %d", shared.ErrUnknownKind, int(kind))
	}
}

func fullTrack(t spotify.FullTrack) models.Metadata {
	return models.NewFullTrack(string(t.ID), t.Name, artistNames(t.Artists), millis(t.Duration))
}

func artistNames(artists []spotify.SimpleArtist) []string {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		names = append(names, a.Name)
	}
	return names
}

func millis[T ~int | ~int64 | ~float64](ms T) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func (e SpotifyPlaylistTrack) identifier() (models.Identifier, bool) {
	if e.IsLocal || e.Track == nil || e.Track.ID == "" {
		return models.Identifier{}, false
	}
	kind := models.Track
	if e.Track.Type == "episode" {
		kind = models.Episode
	}
	return models.MustIdentifier(kind, e.Track.ID), true
}

func (i *SpotifyItem) metadata() models.Metadata {
	if i.Type == "episode" {
		return models.NewFullEpisode(i.ID, i.Name, millis(i.DurationMS))
	}
	names := make([]string, 0, len(i.Artists))
	for _, a := range i.Artists {
		names = append(names, a.Name)
	}
	return models.NewFullTrack(i.ID, i.Name, names, millis(i.DurationMS))
}

func (st *SpotifyPlayerState) snapshot() *models.PlaybackSnapshot {
	snapshot := &models.PlaybackSnapshot{
		Playing: st.IsPlaying,
		Shuffle: st.ShuffleState,
		Device: models.Device{
			Name:   st.Device.Name,
			Type:   st.Device.Type,
			Active: st.Device.IsActive,
			Volume: st.Device.VolumePercent,
		},
	}
	if st.Device.ID != nil {
		snapshot.Device.ID = *st.Device.ID
	}
	if repeat, err := models.ParseRepeatState(st.RepeatState); err == nil {
		snapshot.Repeat = repeat
	}
	if st.Context != nil && st.Context.URI != "" {
		snapshot.Context = &models.PlaybackContext{Type: st.Context.Type, URI: st.Context.URI}
	}
	if st.Item != nil && st.Item.ID != "" {
		item := st.Item.metadata()
		snapshot.Item = &item
	}
	if st.ProgressMS != nil {
		progress := millis(*st.ProgressMS)
		snapshot.Progress = &progress
	}
	return snapshot
}

// refreshableTokenSource reports each new access token to callback.
type refreshableTokenSource struct {
	mu       sync.Mutex
	source   oauth2.TokenSource
	callback func(*oauth2.Token)
	last     string
}

func (r *refreshableTokenSource) Token() (*oauth2.Token, error) {
	token, err := r.source.Token()
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	changed := token.AccessToken != r.last
	if changed {
		r.last = token.AccessToken
	}
	callback := r.callback
	r.mu.Unlock()

	if changed && callback != nil {
		callback(token)
	}
	return token, nil
}

func (r *refreshableTokenSource) setCallback(fn func(*oauth2.Token)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callback = fn
}
