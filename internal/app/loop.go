package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/five82/botplot/internal/logging"
	"github.com/five82/botplot/internal/logtail"
	"github.com/five82/botplot/internal/state"
)

// LoopOptions configure the sources a Loop reads.
type LoopOptions struct {
	RecordPath    string // flat numeric samples; "-" reads stdin
	TelemetryPath string // grouped stream blocks; "-" reads stdin
	Stdin         *os.File
	StreamTimeout time.Duration
	Store         *state.Store
	Logger        *slog.Logger
}

// Loop is the refresh engine. Each Tick polls every source once, parses what
// arrived and appends it to the store. It has no timer of its own; the caller
// decides the cadence. A Loop is not safe for concurrent use.
type Loop struct {
	store  *state.Store
	feeds  []feed
	logger *slog.Logger
	ticks  int
	closed bool
}

// NewLoop opens the configured sources.
func NewLoop(opts LoopOptions) (*Loop, error) {
	feeds, err := openFeeds(opts)
	if err != nil {
		return nil, err
	}
	store := opts.Store
	if store == nil {
		store = state.New(state.Options{})
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loop{store: store, feeds: feeds, logger: logger.With("component", "loop")}, nil
}

// Store returns the store the loop appends to.
func (l *Loop) Store() *state.Store { return l.store }

// Ticks returns the number of completed ticks, including the bootstrap.
func (l *Loop) Ticks() int { return l.ticks }

// Bootstrap reads everything the sources currently hold.
func (l *Loop) Bootstrap() error {
	err := l.Tick()
	l.logger.Info("bootstrap complete", "samples", l.store.Total(), "sources", len(l.feeds))
	return err
}

// Tick runs one poll-parse-append cycle. It returns logtail.ErrStreamClosed
// once a stream source has ended, after appending its final data. Any other
// error is fatal.
func (l *Loop) Tick() error {
	if l.closed {
		return logtail.ErrStreamClosed
	}
	l.ticks++

	appended := 0
	ended := false
	for _, f := range l.feeds {
		n, err := f.pull(l.store)
		appended += n
		switch {
		case err == nil:
		case errors.Is(err, logtail.ErrStreamClosed):
			l.logger.Info("input stream closed", "source", f.name())
			ended = true
		default:
			l.logger.Error("tick failed", "source", f.name(), "error", err)
			return err
		}
	}

	l.logger.Debug("tick", "tick", l.ticks, "appended", appended, "total", l.store.Total())
	if ended {
		l.closed = true
		return logtail.ErrStreamClosed
	}
	return nil
}

// Drain ticks until the sources are exhausted: file sources once, stream
// sources until their writer closes. Stream closure is not an error here.
func (l *Loop) Drain(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := l.Tick()
		if errors.Is(err, logtail.ErrStreamClosed) {
			return nil
		}
		if err != nil {
			return err
		}
		if !l.streaming() {
			return nil
		}
	}
}

func (l *Loop) streaming() bool {
	for _, f := range l.feeds {
		if f.streaming() {
			return true
		}
	}
	return false
}

// Close releases every source.
func (l *Loop) Close() error {
	var errs []error
	for _, f := range l.feeds {
		if err := f.close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
