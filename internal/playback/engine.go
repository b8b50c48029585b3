package playback

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fishify/internal/services"
	"github.com/desertthunder/fishify/internal/shared"
	"golang.org/x/time/rate"
)

const defaultSearchLimit = 10

const (
	// MaxSkip is the largest track count a single skip accepts.
	MaxSkip = 255
	// MaxSearchLimit is the largest page the search API returns.
	MaxSearchLimit = 50
)

// Options configures an [Engine].
type Options struct {
	Remote services.Remote
	Logger *log.Logger
	// AutoConnect retries a mutation once on the first device when no device is active.
	AutoConnect bool
	// QueueRate caps enqueue calls per second during queue expansion. Zero leaves them unpaced.
	QueueRate float64
	// SearchLimit is the number of results [Engine.Search] lists by default.
	SearchLimit int
	// Progress receives queue expansion updates. Sends never block.
	Progress chan<- ProgressUpdate
}

// Engine runs playback operations against a [services.Remote].
//
// An Engine holds no per-operation state and may be shared between goroutines.
type Engine struct {
	remote      services.Remote
	logger      *log.Logger
	autoConnect bool
	limiter     *rate.Limiter
	searchLimit int
	progress    chan<- ProgressUpdate
}

// NewEngine creates an Engine from opts.
func NewEngine(opts Options) (*Engine, error) {
	if opts.Remote == nil {
		return nil, fmt.Errorf("%w: remote not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(io.Discard)
	}
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = defaultSearchLimit
	}
	opts.SearchLimit = min(opts.SearchLimit, MaxSearchLimit)

	limit := rate.Inf
	if opts.QueueRate > 0 {
		limit = rate.Limit(opts.QueueRate)
	}

	return &Engine{
		remote:      opts.Remote,
		logger:      opts.Logger,
		autoConnect: opts.AutoConnect,
		limiter:     rate.NewLimiter(limit, 1),
		searchLimit: opts.SearchLimit,
		progress:    opts.Progress,
	}, nil
}

// invocation is the private state of one top-level operation.
type invocation struct {
	logger    *log.Logger
	recovered bool
}

func (e *Engine) begin(op string) *invocation {
	return &invocation{logger: shared.WithLogger(e.logger, "op", op, "invocation", shared.GenerateID()[:8])}
}

// mutate runs call and, when it fails with no active device, connects the first device and
// runs it once more. Recovery is spent after the first attempt in an invocation.
func (e *Engine) mutate(ctx context.Context, inv *invocation, name string, call func(context.Context) error) error {
	err := call(ctx)
	if err == nil || !e.autoConnect || inv.recovered || !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	inv.recovered = true
	inv.logger.Warn("no active device, connecting to the first available device", "call", name, "err", err)

	device, derr := e.Device(ctx, "")
	if derr != nil {
		inv.logger.Debug("device lookup failed", "err", derr)
		return err
	}
	if device.ID == "" {
		inv.logger.Debug("first device has no id", "device", device.Name)
		return err
	}
	if terr := e.remote.TransferPlayback(ctx, device.ID); terr != nil {
		inv.logger.Debug("transfer failed", "device", device.Name, "err", terr)
		return err
	}
	if rerr := call(ctx); rerr != nil {
		inv.logger.Debug("retry failed", "call", name, "err", rerr)
		return err
	}

	inv.logger.Info("connected and retried", "call", name, "device", device.Name)
	return nil
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(update ProgressUpdate) {
	if e.progress == nil {
		return
	}
	select {
	case e.progress <- update:
	default:
	}
}
