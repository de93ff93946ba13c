package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/botplot/internal/aggregate"
)

// Config captures every setting botplot reads from disk.
type Config struct {
	RecordPath    string
	TelemetryPath string

	RefreshInterval time.Duration
	StreamTimeout   time.Duration
	VisibleWindow   int

	FlatOverlays      []aggregate.Spec
	TelemetryOverlays []aggregate.Spec

	PinFlatY           bool
	FlatYMin, FlatYMax float64

	LogPath   string
	LogLevel  string
	LogFormat string
}

const (
	defaultConfigPath      = "~/.config/botplot/config.toml"
	defaultRecordPath      = "~/bitfighter/exe/screenshots/record"
	defaultLogPath         = "~/.local/state/botplot/botplot.log"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultRefreshInterval = 3 * time.Second
	defaultStreamTimeout   = 100 * time.Millisecond
	defaultVisibleWindow   = 2000
)

var defaultFlatOverlays = []aggregate.Spec{
	{Kind: aggregate.Mean, Window: 100},
	{Kind: aggregate.Mean, Window: 1000},
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		RecordPath:      mustExpand(defaultRecordPath),
		RefreshInterval: defaultRefreshInterval,
		StreamTimeout:   defaultStreamTimeout,
		VisibleWindow:   defaultVisibleWindow,
		FlatOverlays:    append([]aggregate.Spec(nil), defaultFlatOverlays...),
		LogPath:         mustExpand(defaultLogPath),
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}
}

type rawConfig struct {
	RecordPath        string    `toml:"record_path"`
	TelemetryPath     string    `toml:"telemetry_path"`
	RefreshInterval   string    `toml:"refresh_interval"`
	StreamTimeout     string    `toml:"stream_timeout"`
	VisibleWindow     int       `toml:"visible_window"`
	FlatOverlays      *[]string `toml:"flat_overlays"`
	TelemetryOverlays []string  `toml:"telemetry_overlays"`
	FlatYRange        []float64 `toml:"flat_y_range"`
	LogPath           string    `toml:"log_path"`
	LogLevel          string    `toml:"log_level"`
	LogFormat         string    `toml:"log_format"`
}

// Load locates and parses the botplot config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.apply(raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) apply(raw rawConfig) error {
	if p := strings.TrimSpace(raw.RecordPath); p != "" {
		c.RecordPath = ExpandSource(p)
	}
	if p := strings.TrimSpace(raw.TelemetryPath); p != "" {
		c.TelemetryPath = ExpandSource(p)
	}
	if p := strings.TrimSpace(raw.LogPath); p != "" {
		c.LogPath = mustExpand(p)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(raw.LogFormat); v != "" {
		c.LogFormat = v
	}

	if d, err := parseDuration("refresh_interval", raw.RefreshInterval); err != nil {
		return err
	} else if d > 0 {
		c.RefreshInterval = d
	}
	if d, err := parseDuration("stream_timeout", raw.StreamTimeout); err != nil {
		return err
	} else if d > 0 {
		c.StreamTimeout = d
	}

	switch {
	case raw.VisibleWindow < 0:
		return fmt.Errorf("visible_window: must not be negative")
	case raw.VisibleWindow > 0:
		c.VisibleWindow = raw.VisibleWindow
	}

	// An explicit empty list disables the flat overlays.
	if raw.FlatOverlays != nil {
		specs, err := aggregate.ParseSpecs(*raw.FlatOverlays)
		if err != nil {
			return fmt.Errorf("flat_overlays: %w", err)
		}
		c.FlatOverlays = specs
	}
	if len(raw.TelemetryOverlays) > 0 {
		specs, err := aggregate.ParseSpecs(raw.TelemetryOverlays)
		if err != nil {
			return fmt.Errorf("telemetry_overlays: %w", err)
		}
		c.TelemetryOverlays = specs
	}

	switch len(raw.FlatYRange) {
	case 0:
	case 2:
		if raw.FlatYRange[0] >= raw.FlatYRange[1] {
			return fmt.Errorf("flat_y_range: min must be below max")
		}
		c.PinFlatY = true
		c.FlatYMin, c.FlatYMax = raw.FlatYRange[0], raw.FlatYRange[1]
	default:
		return fmt.Errorf("flat_y_range: want [min, max]")
	}
	return nil
}

func parseDuration(field, text string) (time.Duration, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(text)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", field, text)
	}
	return d, nil
}

// StdinSource is the source path that selects the stream input mode.
const StdinSource = "-"

// ExpandSource expands a source path, leaving StdinSource and empty paths alone.
func ExpandSource(path string) string {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == StdinSource {
		return trimmed
	}
	return mustExpand(trimmed)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
