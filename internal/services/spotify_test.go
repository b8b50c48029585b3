package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/fishify/internal/models"
	"github.com/desertthunder/fishify/internal/shared"
	"golang.org/x/oauth2"
)

var testCredentials = map[string]string{
	"client_id":     "test_client_id",
	"client_secret": "test_client_secret",
	"redirect_uri":  "http://127.0.0.1:3000/callback",
}

// newTestService returns a service authenticated against a local API served by mux.
func newTestService(t *testing.T, mux *http.ServeMux) *SpotifyService {
	t.Helper()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	srv, err := NewSpotifyService(testCredentials, WithBaseURL(ts.URL+"/v1/"), WithHTTPClient(ts.Client()))
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "test_token"}); err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv, err := NewSpotifyService(testCredentials)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.config.RedirectURL != "http://127.0.0.1:3000/callback" {
				t.Errorf("unexpected redirect URL %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "test_client_secret"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "test_client_id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Default Redirect URI", func(t *testing.T) {
			srv, err := NewSpotifyService(map[string]string{
				"client_id":     "test_client_id",
				"client_secret": "test_client_secret",
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if srv.config.RedirectURL != "http://127.0.0.1:3000/callback" {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})
	})

	t.Run("Get AuthURL", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		authURL := srv.GetAuthURL("test_state")
		for _, want := range []string{"accounts.spotify.com", "test_client_id", "test_state", "user-modify-playback-state"} {
			if !strings.Contains(authURL, want) {
				t.Errorf("auth URL should contain %q, got %s", want, authURL)
			}
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("Not authenticated", func(t *testing.T) {
			_, err := srv.Track(context.Background(), "abc")
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if _, err := srv.Token(); !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})

		t.Run("WithAccessToken", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{
				"access_token":  "test_access_token",
				"refresh_token": "test_refresh_token",
				"expiry":        time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
			})
			if err != nil {
				t.Errorf("expected no error with access token, got %v", err)
			}
			token, err := srv.Token()
			if err != nil || token.AccessToken != "test_access_token" {
				t.Fatalf("Token() = %v, %v", token, err)
			}
			if token.RefreshToken != "test_refresh_token" {
				t.Errorf("expected refresh token to be kept, got %s", token.RefreshToken)
			}
		})

		t.Run("Missing Credentials", func(t *testing.T) {
			err := srv.Authenticate(context.Background(), map[string]string{})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("Remote Interface", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		var _ Remote = srv
	})

	t.Run("SetTokenRefreshCallback", func(t *testing.T) {
		srv, err := NewSpotifyService(testCredentials)
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}

		t.Run("sets callback before authentication", func(t *testing.T) {
			var got string
			srv.SetTokenRefreshCallback(func(token *oauth2.Token) { got = token.AccessToken })
			if srv.onTokenRefresh == nil {
				t.Fatal("expected callback to be set")
			}

			if err := srv.Authenticate(context.Background(), map[string]string{"access_token": "first"}); err != nil {
				t.Fatalf("failed to authenticate: %v", err)
			}
			if _, err := srv.Token(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != "first" {
				t.Errorf("expected callback with first token, got %q", got)
			}
		})

		t.Run("replaces callback after authentication", func(t *testing.T) {
			called := false
			srv.SetTokenRefreshCallback(func(token *oauth2.Token) { called = true })
			srv.tokenSource.last = ""
			if _, err := srv.Token(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !called {
				t.Error("expected replacement callback to be called")
			}
		})

		t.Run("can set nil callback", func(t *testing.T) {
			srv.SetTokenRefreshCallback(nil)
			if srv.onTokenRefresh != nil {
				t.Error("expected callback to be nil")
			}
		})
	})
}

func TestRefreshableTokenSource(t *testing.T) {
	t.Run("calls callback on first token fetch", func(t *testing.T) {
		var captured *oauth2.Token
		source := &refreshableTokenSource{
			source:   &mockTokenSource{token: &oauth2.Token{AccessToken: "test_token"}},
			callback: func(token *oauth2.Token) { captured = token },
		}

		token, err := source.Token()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if captured == nil || captured.AccessToken != "test_token" {
			t.Errorf("expected captured token, got %v", captured)
		}
		if token.AccessToken != "test_token" {
			t.Errorf("expected returned token to be 'test_token', got %s", token.AccessToken)
		}
	})

	t.Run("calls callback only when token changes", func(t *testing.T) {
		callCount := 0
		mock := &mockTokenSource{token: &oauth2.Token{AccessToken: "token1"}}
		source := &refreshableTokenSource{source: mock, callback: func(*oauth2.Token) { callCount++ }}

		_, _ = source.Token()
		_, _ = source.Token()
		if callCount != 1 {
			t.Errorf("expected callback called once, got %d", callCount)
		}

		mock.token = &oauth2.Token{AccessToken: "token2"}
		token2, _ := source.Token()
		if callCount != 2 {
			t.Errorf("expected callback called twice, got %d", callCount)
		}
		if token2.AccessToken != "token2" {
			t.Errorf("expected new token, got %s", token2.AccessToken)
		}
	})

	t.Run("handles nil callback gracefully", func(t *testing.T) {
		source := &refreshableTokenSource{source: &mockTokenSource{token: &oauth2.Token{AccessToken: "test_token"}}}
		token, err := source.Token()
		if err != nil || token.AccessToken != "test_token" {
			t.Errorf("Token() = %v, %v", token, err)
		}
	})

	t.Run("propagates source errors", func(t *testing.T) {
		source := &refreshableTokenSource{
			source:   &mockTokenSource{err: errors.New("token source error")},
			callback: func(*oauth2.Token) { t.Error("callback should not be called on error") },
		}

		token, err := source.Token()
		if err == nil || !strings.Contains(err.Error(), "token source error") {
			t.Errorf("expected source error, got %v", err)
		}
		if token != nil {
			t.Error("expected nil token on error")
		}
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		var mu sync.Mutex
		callCount := 0
		source := &refreshableTokenSource{
			source: &mockTokenSource{token: &oauth2.Token{AccessToken: "shared"}},
			callback: func(*oauth2.Token) {
				mu.Lock()
				callCount++
				mu.Unlock()
			},
		}

		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = source.Token()
			}()
		}
		wg.Wait()

		if callCount != 1 {
			t.Errorf("expected a single callback, got %d", callCount)
		}
	})
}

func TestSpotifyRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("Track", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/tracks/{id}", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test_token" {
				t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
			}
			if r.PathValue("id") == "missing" {
				writeJSON(w, http.StatusNotFound, `{"error":{"status":404,"message":"Non existing id"}}`)
				return
			}
			writeJSON(w, http.StatusOK, `{"id":"abc","name":"Song","duration_ms":185000,"artists":[{"id":"a1","name":"Artist"},{"id":"a2","name":"Guest"}]}`)
		})
		srv := newTestService(t, mux)

		track, err := srv.Track(ctx, "abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if track.Kind() != models.Track || track.Level() != models.Full || track.Name() != "Song" {
			t.Errorf("unexpected track %+v", track)
		}
		if track.PrimaryArtist() != "Artist" || len(track.Artists()) != 2 {
			t.Errorf("unexpected artists %v", track.Artists())
		}
		if d, ok := track.Duration(); !ok || d != 185*time.Second {
			t.Errorf("unexpected duration %v", d)
		}

		_, err = srv.Track(ctx, "missing")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("server errors map to ErrAPIRequest", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("PUT /v1/me/player/pause", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusForbidden, `{"error":{"status":403,"message":"Restriction violated"}}`)
		})
		srv := newTestService(t, mux)

		err := srv.Pause(ctx)
		if !errors.Is(err, shared.ErrAPIRequest) || errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if err == nil || !strings.Contains(err.Error(), "Restriction violated") {
			t.Errorf("expected remote message in error, got %v", err)
		}
	})

	t.Run("Search albums", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			if q.Get("q") != "in rainbows" || q.Get("type") != "album" || q.Get("limit") != "2" {
				t.Errorf("unexpected search query %v", q)
			}
			writeJSON(w, http.StatusOK, `{"albums":{"items":[
				{"id":"alb1","name":"In Rainbows","artists":[{"id":"r","name":"Radiohead"}]},
				{"id":"alb2","name":"In Rainbows Disk 2","artists":[{"id":"r","name":"Radiohead"}]}
			]}}`)
		})
		srv := newTestService(t, mux)

		results, err := srv.Search(ctx, "in rainbows", models.Album, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Identifier() != models.MustIdentifier(models.Album, "alb1") || results[0].Level() != models.Simplified {
			t.Errorf("unexpected first result %+v", results[0])
		}
		if results[1].PrimaryArtist() != "Radiohead" {
			t.Errorf("unexpected artist %q", results[1].PrimaryArtist())
		}
	})

	t.Run("Search skips null playlist items", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"playlists":{"items":[null,{"id":"pl1","name":"Focus"}]}}`)
		})
		srv := newTestService(t, mux)

		results, err := srv.Search(ctx, "focus", models.Playlist, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 1 || results[0].Name() != "Focus" {
			t.Errorf("unexpected results %+v", results)
		}
	})

	t.Run("Search empty", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/search", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"tracks":{"items":[]}}`)
		})
		srv := newTestService(t, mux)

		results, err := srv.Search(ctx, "nothing", models.Track, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if results == nil || len(results) != 0 {
			t.Errorf("expected empty results, got %v", results)
		}
	})

	t.Run("Album", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/albums/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"id":"alb","name":"Record","artists":[{"id":"a","name":"Band"}],
				"tracks":{"items":[{"id":"t1","name":"One"},{"id":"t2","name":"Two"},{"id":"t3","name":"Three"}],"next":null}}`)
		})
		srv := newTestService(t, mux)

		album, err := srv.Album(ctx, "alb")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		children, ok := album.Children()
		if !ok || len(children) != 3 {
			t.Fatalf("expected 3 children, got %v", children)
		}
		for i, want := range []string{"t1", "t2", "t3"} {
			if children[i] != models.MustIdentifier(models.Track, want) {
				t.Errorf("child %d = %v, want %s", i, children[i], want)
			}
		}
	})

	t.Run("Playlist pages, episodes and local files", func(t *testing.T) {
		var base string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/playlists/{id}", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("additional_types") != "episode" {
				t.Errorf("expected episodes to be requested, got %v", r.URL.Query())
			}
			writeJSON(w, http.StatusOK, `{"id":"pl","name":"Mix","tracks":{"items":[
				{"track":{"type":"track","id":"t1","name":"One"}},
				{"is_local":true,"track":{"type":"track","id":"","name":"Local"}},
				{"track":null},
				{"track":{"type":"episode","id":"e1","name":"Pod"}}
			],"next":"`+base+`/v1/playlists/pl/tracks?offset=4"}}`)
		})
		mux.HandleFunc("GET /v1/playlists/{id}/tracks", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"items":[{"track":{"type":"track","id":"t2","name":"Two"}}],"next":null}`)
		})
		ts := httptest.NewServer(mux)
		defer ts.Close()
		base = ts.URL

		srv, err := NewSpotifyService(testCredentials, WithBaseURL(ts.URL+"/v1"))
		if err != nil {
			t.Fatalf("failed to create service: %v", err)
		}
		if err := srv.Authenticate(ctx, map[string]string{"access_token": "test_token"}); err != nil {
			t.Fatalf("failed to authenticate: %v", err)
		}

		playlist, err := srv.Playlist(ctx, "pl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		children, ok := playlist.Children()
		if !ok {
			t.Fatal("expected playlist children")
		}
		want := []models.Identifier{
			models.MustIdentifier(models.Track, "t1"),
			models.MustIdentifier(models.Episode, "e1"),
			models.MustIdentifier(models.Track, "t2"),
		}
		if len(children) != len(want) {
			t.Fatalf("expected %v, got %v", want, children)
		}
		for i := range want {
			if children[i] != want[i] {
				t.Errorf("child %d = %v, want %v", i, children[i], want[i])
			}
		}
	})

	t.Run("Episode", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/episodes/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"type":"episode","id":"ep","name":"Interview","duration_ms":3661000,"show":{"id":"sh","name":"Pod"}}`)
		})
		srv := newTestService(t, mux)

		episode, err := srv.Episode(ctx, "ep")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if episode.Kind() != models.Episode || len(episode.Artists()) != 0 {
			t.Errorf("unexpected episode %+v", episode)
		}
		if d, _ := episode.Duration(); d != 3661*time.Second {
			t.Errorf("unexpected duration %v", d)
		}
	})

	t.Run("PlayItems and PlayContext", func(t *testing.T) {
		var bodies []map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("PUT /v1/me/player/play", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			bodies = append(bodies, body)
			w.WriteHeader(http.StatusNoContent)
		})
		srv := newTestService(t, mux)

		if err := srv.PlayItems(ctx, []models.Identifier{models.MustIdentifier(models.Track, "t1")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := srv.PlayContext(ctx, models.MustIdentifier(models.Album, "alb")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(bodies) != 2 {
			t.Fatalf("expected 2 play requests, got %d", len(bodies))
		}
		uris, _ := bodies[0]["uris"].([]any)
		if len(uris) != 1 || uris[0] != "spotify:track:t1" {
			t.Errorf("unexpected uris %v", bodies[0])
		}
		if bodies[1]["context_uri"] != "spotify:album:alb" {
			t.Errorf("unexpected context %v", bodies[1])
		}
	})

	t.Run("Enqueue", func(t *testing.T) {
		var queued []string
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v1/me/player/queue", func(w http.ResponseWriter, r *http.Request) {
			queued = append(queued, r.URL.Query().Get("uri"))
			w.WriteHeader(http.StatusNoContent)
		})
		srv := newTestService(t, mux)

		if err := srv.Enqueue(ctx, models.MustIdentifier(models.Track, "t1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := srv.Enqueue(ctx, models.MustIdentifier(models.Episode, "e1")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := srv.Enqueue(ctx, models.MustIdentifier(models.Artist, "ar")); !errors.Is(err, shared.ErrQueueUnsupported) {
			t.Errorf("expected ErrQueueUnsupported, got %v", err)
		}

		if len(queued) != 2 || queued[0] != "spotify:track:t1" || queued[1] != "spotify:episode:e1" {
			t.Errorf("unexpected queued uris %v", queued)
		}
	})

	t.Run("Enqueue without active device", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /v1/me/player/queue", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, `{"error":{"status":404,"message":"Player command failed: No active device found"}}`)
		})
		srv := newTestService(t, mux)

		if err := srv.Enqueue(ctx, models.MustIdentifier(models.Episode, "e1")); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if err := srv.Enqueue(ctx, models.MustIdentifier(models.Track, "t1")); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Devices", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/me/player/devices", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"devices":[
				{"id":"d1","is_active":true,"is_restricted":false,"name":"Desk","type":"Computer","volume_percent":40},
				{"id":null,"is_active":false,"is_restricted":true,"name":"TV","type":"TV","volume_percent":0}
			]}`)
		})
		srv := newTestService(t, mux)

		devices, err := srv.Devices(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(devices) != 2 {
			t.Fatalf("expected 2 devices, got %d", len(devices))
		}
		if devices[0].ID != "d1" || !devices[0].Active || devices[0].Volume == nil || *devices[0].Volume != 40 {
			t.Errorf("unexpected first device %+v", devices[0])
		}
		if devices[1].ID != "" || devices[1].Volume != nil {
			t.Errorf("unexpected restricted device %+v", devices[1])
		}
	})

	t.Run("CurrentPlayback without session", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/me/player", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		srv := newTestService(t, mux)

		snapshot, err := srv.CurrentPlayback(ctx)
		if err != nil || snapshot != nil {
			t.Errorf("expected no snapshot and no error, got %v, %v", snapshot, err)
		}
	})

	t.Run("CurrentPlayback", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/me/player", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{
				"device":{"id":"d1","is_active":true,"name":"Desk","type":"Computer","volume_percent":55},
				"shuffle_state":true,"repeat_state":"context",
				"context":{"type":"playlist","uri":"spotify:playlist:pl"},
				"progress_ms":65000,"is_playing":true,
				"item":{"type":"episode","id":"e1","name":"Interview","duration_ms":3600000},
				"currently_playing_type":"episode"}`)
		})
		srv := newTestService(t, mux)

		snapshot, err := srv.CurrentPlayback(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !snapshot.Playing || !snapshot.Shuffle || snapshot.Repeat != models.RepeatContext {
			t.Errorf("unexpected flags %+v", snapshot)
		}
		if snapshot.Context == nil || snapshot.Context.URI != "spotify:playlist:pl" {
			t.Errorf("unexpected context %+v", snapshot.Context)
		}
		if snapshot.Item == nil || snapshot.Item.Kind() != models.Episode {
			t.Errorf("unexpected item %+v", snapshot.Item)
		}
		if snapshot.Progress == nil || *snapshot.Progress != 65*time.Second {
			t.Errorf("unexpected progress %v", snapshot.Progress)
		}
		if snapshot.Device.ID != "d1" || snapshot.Device.Volume == nil || *snapshot.Device.Volume != 55 {
			t.Errorf("unexpected device %+v", snapshot.Device)
		}
	})

	t.Run("CurrentQueue", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /v1/me/player/queue", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{
				"currently_playing":{"type":"track","id":"t0","name":"Now","artists":[{"id":"a","name":"Band"}]},
				"queue":[
					{"type":"track","id":"t1","name":"Next","artists":[]},
					{"type":"track","id":"t2","name":"Later","artists":[{"id":"b","name":"Other"}]},
					{"type":"episode","id":"e1","name":"Pilot","duration_ms":60000,"show":{"id":"s1","name":"Pod"}},
					null
				]}`)
		})
		srv := newTestService(t, mux)

		queue, err := srv.CurrentQueue(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if queue.Current == nil || queue.Current.Name() != "Now" {
			t.Errorf("unexpected current item %+v", queue.Current)
		}
		if len(queue.Items) != 3 || queue.Items[1].PrimaryArtist() != "Other" {
			t.Fatalf("unexpected queue items %+v", queue.Items)
		}
		if id := queue.Items[2].Identifier(); id.Kind() != models.Episode || id.URI() != "spotify:episode:e1" {
			t.Errorf("expected the queued episode to keep its kind, got %s", id)
		}
	})

	t.Run("settings", func(t *testing.T) {
		var got []string
		mux := http.NewServeMux()
		record := func(w http.ResponseWriter, r *http.Request) {
			got = append(got, r.URL.Path+"?"+r.URL.RawQuery)
			w.WriteHeader(http.StatusNoContent)
		}
		mux.HandleFunc("PUT /v1/me/player/volume", record)
		mux.HandleFunc("PUT /v1/me/player/shuffle", record)
		mux.HandleFunc("PUT /v1/me/player/repeat", record)
		mux.HandleFunc("PUT /v1/me/player", record)
		srv := newTestService(t, mux)

		if err := srv.SetVolume(ctx, 30); err != nil {
			t.Fatalf("SetVolume failed: %v", err)
		}
		if err := srv.SetShuffle(ctx, true); err != nil {
			t.Fatalf("SetShuffle failed: %v", err)
		}
		if err := srv.SetRepeat(ctx, models.RepeatTrack); err != nil {
			t.Fatalf("SetRepeat failed: %v", err)
		}
		if err := srv.TransferPlayback(ctx, "d1"); err != nil {
			t.Fatalf("TransferPlayback failed: %v", err)
		}

		joined := strings.Join(got, " ")
		for _, want := range []string{"volume_percent=30", "state=true", "state=track", "/v1/me/player?"} {
			if !strings.Contains(joined, want) {
				t.Errorf("expected %q in requests %v", want, got)
			}
		}
	})
}

// mockTokenSource implements [oauth2.TokenSource] for testing
type mockTokenSource struct {
	token *oauth2.Token
	err   error
}

func (m *mockTokenSource) Token() (*oauth2.Token, error) {
	return m.token, m.err
}
