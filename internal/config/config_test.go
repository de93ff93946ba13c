package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/botplot/internal/aggregate"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RefreshInterval != 3*time.Second {
		t.Fatalf("RefreshInterval = %v, want 3s", cfg.RefreshInterval)
	}
	if cfg.VisibleWindow != 2000 {
		t.Fatalf("VisibleWindow = %d, want 2000", cfg.VisibleWindow)
	}
	if len(cfg.FlatOverlays) != 2 || cfg.FlatOverlays[0].Window != 100 || cfg.FlatOverlays[1].Window != 1000 {
		t.Fatalf("FlatOverlays = %v, want mean:100 mean:1000", cfg.FlatOverlays)
	}
	if !strings.HasPrefix(cfg.RecordPath, home) {
		t.Fatalf("RecordPath = %q, want it under HOME %q", cfg.RecordPath, home)
	}
	if cfg.TelemetryPath != "" {
		t.Fatalf("TelemetryPath = %q, want empty", cfg.TelemetryPath)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
record_path = "  ~/bot/record  "
telemetry_path = "-"
refresh_interval = "500ms"
visible_window = 300
flat_overlays = ["sum:10"]
telemetry_overlays = ["mean:5"]
flat_y_range = [0.0, 1.5]
log_level = " debug "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.RecordPath != filepath.Join(home, "bot/record") {
		t.Fatalf("RecordPath = %q", cfg.RecordPath)
	}
	if cfg.TelemetryPath != StdinSource {
		t.Fatalf("TelemetryPath = %q, want -", cfg.TelemetryPath)
	}
	if cfg.RefreshInterval != 500*time.Millisecond || cfg.VisibleWindow != 300 {
		t.Fatalf("RefreshInterval=%v VisibleWindow=%d", cfg.RefreshInterval, cfg.VisibleWindow)
	}
	if len(cfg.FlatOverlays) != 1 || cfg.FlatOverlays[0] != (aggregate.Spec{Kind: aggregate.Sum, Window: 10}) {
		t.Fatalf("FlatOverlays = %v", cfg.FlatOverlays)
	}
	if len(cfg.TelemetryOverlays) != 1 || cfg.TelemetryOverlays[0].Kind != aggregate.Mean {
		t.Fatalf("TelemetryOverlays = %v", cfg.TelemetryOverlays)
	}
	if !cfg.PinFlatY || cfg.FlatYMin != 0 || cfg.FlatYMax != 1.5 {
		t.Fatalf("flat y = %v [%v,%v]", cfg.PinFlatY, cfg.FlatYMin, cfg.FlatYMax)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoad_EmptyOverlayListDisablesSmoothing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load(writeConfig(t, `flat_overlays = []`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.FlatOverlays) != 0 {
		t.Fatalf("FlatOverlays = %v, want none", cfg.FlatOverlays)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad toml", `record_path = [`, "parse config"},
		{"bad duration", `refresh_interval = "soon"`, "refresh_interval"},
		{"negative window", `visible_window = -5`, "visible_window"},
		{"bad overlay", `flat_overlays = ["median:3"]`, "flat_overlays"},
		{"bad y range", `flat_y_range = [2.0, 1.0]`, "flat_y_range"},
		{"short y range", `flat_y_range = [2.0]`, "flat_y_range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %s error", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %q, want it to mention %s", err.Error(), tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestExpandSource_KeepsStdin(t *testing.T) {
	if got := ExpandSource(" - "); got != StdinSource {
		t.Fatalf("ExpandSource(-) = %q", got)
	}
	if got := ExpandSource(""); got != "" {
		t.Fatalf("ExpandSource(\"\") = %q", got)
	}
}
