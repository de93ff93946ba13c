package app

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/five82/botplot/internal/config"
	"github.com/five82/botplot/internal/logging"
	"github.com/five82/botplot/internal/logtail"
	"github.com/five82/botplot/internal/plot"
	"github.com/five82/botplot/internal/prefs"
	"github.com/five82/botplot/internal/state"
	"github.com/five82/botplot/internal/ui"
)

// Options configure a botplot run.
type Options struct {
	Config      config.Config
	PrefsPath   string // empty uses ~/.config/botplot/prefs.toml
	NoUpdate    bool   // draw the bootstrap data once and never poll again
	NoAutoscale bool   // show the full history instead of the trailing window
	Stdin       *os.File
	Logger      *slog.Logger
}

// Run reads the sources, then hands the engine to the chart UI until the user
// quits, ctx is cancelled, or a stream source ends.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	loop, err := NewLoop(loopOptions(opts, logger))
	if err != nil {
		return err
	}
	defer func() { _ = loop.Close() }()

	err = loop.Bootstrap()
	closed := errors.Is(err, logtail.ErrStreamClosed)
	if err != nil && !closed {
		return err
	}
	if closed && !opts.NoUpdate {
		return nil
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)
	follow := !opts.NoAutoscale && userPrefs.Following(true)

	uiErr := ui.Run(ctx, ui.Options{
		Engine:    loop,
		Store:     loop.Store(),
		Interval:  opts.Config.RefreshInterval,
		NoUpdate:  opts.NoUpdate,
		Sources:   sourceLabels(opts.Config),
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		Logger:    logger,
		Plot:      plotOptions(opts.Config, follow),
	})
	if errors.Is(uiErr, logtail.ErrStreamClosed) {
		return nil
	}
	return uiErr
}

// Collect reads the sources to exhaustion and returns the populated store.
func Collect(ctx context.Context, opts Options) (*state.Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	loop, err := NewLoop(loopOptions(opts, logger))
	if err != nil {
		return nil, err
	}
	defer func() { _ = loop.Close() }()

	if err := loop.Drain(ctx); err != nil {
		return nil, err
	}
	return loop.Store(), nil
}

// NewStore returns a store with the aggregate views cfg asks for.
func NewStore(cfg config.Config) *state.Store {
	return state.New(state.Options{
		FlatAggregates:    cfg.FlatOverlays,
		ChannelAggregates: cfg.TelemetryOverlays,
	})
}

func loopOptions(opts Options, logger *slog.Logger) LoopOptions {
	return LoopOptions{
		RecordPath:    opts.Config.RecordPath,
		TelemetryPath: opts.Config.TelemetryPath,
		Stdin:         opts.Stdin,
		StreamTimeout: opts.Config.StreamTimeout,
		Store:         NewStore(opts.Config),
		Logger:        logger,
	}
}

func plotOptions(cfg config.Config, follow bool) plot.Options {
	return plot.Options{
		Window:   cfg.VisibleWindow,
		Follow:   follow,
		PinFlatY: cfg.PinFlatY,
		FlatYMin: cfg.FlatYMin,
		FlatYMax: cfg.FlatYMax,
	}
}

func sourceLabels(cfg config.Config) []string {
	var labels []string
	for _, p := range []string{cfg.RecordPath, cfg.TelemetryPath} {
		switch p {
		case "":
		case config.StdinSource:
			labels = append(labels, "stdin")
		default:
			labels = append(labels, p)
		}
	}
	return labels
}
