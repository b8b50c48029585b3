package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fishify/internal/formatter"
	"github.com/desertthunder/fishify/internal/playback"
	"github.com/desertthunder/fishify/internal/services"
	"github.com/desertthunder/fishify/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	remote     services.Remote
	engine     *playback.Engine
	progress   chan playback.ProgressUpdate
	drained    chan struct{}
	logger     *log.Logger
	output     io.Writer
	styles     *Palette
	quiet      bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	// Remote replaces the Spotify client built from the config.
	Remote services.Remote
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration.
// A nil Config is loaded from the --config flag before the first command runs.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		remote:     opts.Remote,
		logger:     opts.Logger,
		output:     opts.Output,
		styles:     styles,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		playCommand, queueCommand, pauseCommand, skipCommand, statusCommand, searchCommand,
		deviceCommand, setCommand, authCommand, botCommand, initCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads the configuration and applies the global flags.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.quiet = cmd.Bool("quiet")
	if r.configPath == "" {
		r.configPath = cmd.String("config")
	}

	if r.config == nil {
		config, err := shared.LoadConfigOrDefault(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	shared.SetLogLevel(r.logger, r.config.Log.Level)
	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}
	return ctx, nil
}

// Engine returns the playback engine, connecting to Spotify on first use.
func (r *Runner) Engine(ctx context.Context) (*playback.Engine, error) {
	if r.engine != nil {
		return r.engine, nil
	}
	if r.config == nil {
		r.config = shared.DefaultConfig()
	}

	if r.remote == nil {
		svc, err := r.spotifyClient(ctx)
		if err != nil {
			return nil, err
		}
		r.remote = svc
	}

	r.progress = make(chan playback.ProgressUpdate, 16)
	r.drained = make(chan struct{})
	go r.logProgress(r.progress, r.drained)

	engine, err := playback.NewEngine(playback.Options{
		Remote:      r.remote,
		Logger:      shared.WithLogger(r.logger, "component", "playback"),
		AutoConnect: r.config.Playback.AutoConnect,
		QueueRate:   r.config.Playback.QueueRate,
		SearchLimit: r.config.Playback.SearchLimit,
		Progress:    r.progress,
	})
	if err != nil {
		return nil, err
	}
	r.engine = engine
	return engine, nil
}

// spotifyClient authenticates with the token cached in the config and persists refreshed tokens.
func (r *Runner) spotifyClient(ctx context.Context) (*services.SpotifyService, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	creds := r.config.Credentials.Spotify
	token := creds.Token()
	if token == nil {
		return nil, fmt.Errorf("%w: run `fishify auth` first", shared.ErrNotAuthenticated)
	}

	svc, err := services.NewSpotifyService(r.spotifyCredentials())
	if err != nil {
		return nil, err
	}
	svc.SetTokenRefreshCallback(r.saveToken)

	err = svc.Authenticate(ctx, map[string]string{
		"access_token":  creds.AccessToken,
		"refresh_token": creds.RefreshToken,
		"token_type":    creds.TokenType,
		"expiry":        creds.Expiry,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (r *Runner) spotifyCredentials() map[string]string {
	creds := r.config.Credentials.Spotify
	return map[string]string{
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"redirect_uri":  creds.RedirectURI,
	}
}

func (r *Runner) saveToken(token *oauth2.Token) {
	r.config.Credentials.Spotify.SetToken(token)
	if err := shared.SaveConfig(r.configPath, r.config); err != nil {
		r.logger.Warn("failed to save refreshed token", "path", r.configPath, "err", err)
		return
	}
	r.logger.Debug("saved refreshed token", "path", r.configPath)
}

// Close stops progress logging once the pending updates are written.
// The engine is dropped with it; the next command builds a new one.
func (r *Runner) Close() {
	if r.progress == nil {
		return
	}
	close(r.progress)
	<-r.drained
	r.progress, r.drained, r.engine = nil, nil, nil
}

func (r *Runner) logProgress(updates <-chan playback.ProgressUpdate, drained chan<- struct{}) {
	defer close(drained)
	for u := range updates {
		r.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total, "item", u.Item)
	}
}

// writeResponse prints listings line by line and acknowledgements behind a check mark.
// Acknowledgements are dropped with --quiet. empty is printed for a listing with no lines.
func (r *Runner) writeResponse(resp formatter.Response, empty string) error {
	if !resp.Verbose() {
		if r.quiet {
			return nil
		}
		return r.writePlain("%s %s\n", r.styles.OK("✓"), resp.Text())
	}

	if resp.Empty() {
		if empty == "" {
			return nil
		}
		return r.writePlain("%s\n", r.styles.Help(empty))
	}
	return r.writePlain("%s\n", resp.Text())
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func joinArgs(cmd *cli.Command) string {
	return strings.Join(cmd.Args().Slice(), " ")
}
