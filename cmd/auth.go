package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/desertthunder/fishify/internal/server"
	"github.com/desertthunder/fishify/internal/services"
	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const authTimeout = 2 * time.Minute

// Auth performs the OAuth2 authorization code flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization and saves the token to the config file.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	if err := r.config.Validate(); err != nil {
		return err
	}

	svc, err := services.NewSpotifyService(r.spotifyCredentials())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	token, err := r.doOAuth(ctx, svc)
	if err != nil {
		return err
	}

	r.config.Credentials.Spotify.SetToken(token)
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.logger.Info("authorization successful", "path", r.configPath)
	return r.writePlain("%s Logged in, token saved to %s\n", r.styles.OK("✓"), r.configPath)
}

// authorizer is the part of the Spotify client the OAuth flow needs.
type authorizer interface {
	server.Exchanger
	GetAuthURL(state string) string
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server.
func (r *Runner) doOAuth(ctx context.Context, auth authorizer) (*oauth2.Token, error) {
	callbackPath := "/callback"
	if u, err := url.Parse(r.config.Credentials.Spotify.RedirectURI); err == nil && u.Path != "" {
		callbackPath = u.Path
	}

	state := shared.GenerateState()
	oauthHandler := server.NewOAuthHandler(auth, callbackPath, state)
	router := server.NewRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	addr := net.JoinHostPort(r.config.Server.Host, strconv.Itoa(r.config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	serverErrors := make(chan error, 1)
	srv := server.New(addr, router, r.logger)
	go func() { serverErrors <- srv.Serve(ctx, ln) }()

	authURL := auth.GetAuthURL(state)
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser automatically", "err", err)
		r.writePlain("%s Please open this URL in your browser:\n%s\n\n", r.styles.Warn("⚠"), authURL)
	}
	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-serverErrors:
		if err == nil {
			err = errors.New("callback server stopped")
		}
		return nil, fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, authTimeout)
		}
		return nil, ctx.Err()
	}

	cancel()
	if err := <-serverErrors; err != nil {
		r.logger.Warn("error shutting down server", "err", err)
	}

	if result.Error() != nil {
		return nil, result.Error()
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}
	return result.Token, nil
}
