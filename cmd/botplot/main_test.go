package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/botplot/internal/aggregate"
	"github.com/five82/botplot/internal/config"
	"github.com/five82/botplot/internal/state"
	"github.com/five82/botplot/internal/telemetry"
)

func writeInput(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func executeSummary(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"summary"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestSummaryPrintsSeriesTable(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := t.TempDir()
	record := writeInput(t, dir, "record", "1\n2\n3\n4\n5\n")
	telem := writeInput(t, dir, "telemetry", "bot1:\n- hp: 50\n- ammo: 3\nbot1:\n- hp: 45\n")
	cfgPath := writeInput(t, dir, "config.toml", "flat_overlays = [\"sum:3\"]\n")

	out, err := executeSummary(t, "--config", cfgPath, "--file", record, "--telemetry", telem)
	if err != nil {
		t.Fatalf("summary returned error: %v", err)
	}
	for _, want := range []string{"Series", "record", "sum:3=12", "bot1/hp", "bot1/ammo", "45"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryReportsParseErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	record := writeInput(t, t.TempDir(), "record", "1\nnot_a_number\n")

	_, err := executeSummary(t, "--file", record)
	if !errors.Is(err, telemetry.ErrParse) {
		t.Fatalf("summary error = %v, want ErrParse", err)
	}
}

func TestResolveConfigOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name      string
		args      []string
		record    string
		telemetry string
		interval  time.Duration
		wantErr   bool
	}{
		{name: "stdin record", args: []string{"-f", "-"}, record: config.StdinSource},
		{name: "telemetry only", args: []string{"-t", "/tmp/telemetry"}, telemetry: "/tmp/telemetry"},
		{name: "both", args: []string{"-f", "/tmp/record", "-t", "-"}, record: "/tmp/record", telemetry: config.StdinSource},
		{name: "interval", args: []string{"-f", "/tmp/record", "--interval", "250ms"}, record: "/tmp/record", interval: 250 * time.Millisecond},
		{name: "bad interval", args: []string{"--interval", "0s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := &rootFlags{}
			cmd := newRootCommandWithFlags(flags)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}
			cfg, err := resolveConfig(cmd, flags)
			if tt.wantErr {
				if err == nil {
					t.Fatal("resolveConfig returned nil error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveConfig: %v", err)
			}
			if cfg.RecordPath != tt.record || cfg.TelemetryPath != tt.telemetry {
				t.Fatalf("paths = %q %q, want %q %q", cfg.RecordPath, cfg.TelemetryPath, tt.record, tt.telemetry)
			}
			if tt.interval != 0 && cfg.RefreshInterval != tt.interval {
				t.Fatalf("RefreshInterval = %v, want %v", cfg.RefreshInterval, tt.interval)
			}
		})
	}
}

func TestRenderSummaryFooter(t *testing.T) {
	out := renderSummary([][]string{{"record", "3", "1", "0.5", "2", "-"}}, 3)
	for _, want := range []string{"Series", "Aggregates", "record", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}

	empty := renderSummary(nil, 0)
	if !strings.Contains(empty, "(no series)") {
		t.Fatalf("empty table missing placeholder:\n%s", empty)
	}
}

func TestSummaryRowsWarmup(t *testing.T) {
	store := state.New(state.Options{FlatAggregates: []aggregate.Spec{{Kind: aggregate.Mean, Window: 10}}})
	store.Flat().Append(0.5)
	rows := summaryRows(store)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0][5] != "mean:10=-" {
		t.Fatalf("aggregate column = %q, want mean:10=-", rows[0][5])
	}
}
