package ui

import (
	"strings"
	"testing"

	"github.com/chriskim06/drawille-go"

	"github.com/five82/botplot/internal/plot"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

func TestLineColors_RawUsesRawColor(t *testing.T) {
	th := GetTheme("Nightfox")
	p := plot.Panel{Lines: []plot.Line{
		{Label: "raw", Kind: plot.Raw},
		{Label: "mean:100", Kind: plot.Overlay},
		{Label: "mean:1000", Kind: plot.Overlay},
	}}
	got := lineColors(p, th)
	want := []drawille.Color{th.RawLine, th.LineColor(0), th.LineColor(1)}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("lineColors[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPanelData_EnvelopeAndWarmup(t *testing.T) {
	th := GetTheme("Nightfox")
	p := plot.Panel{
		XMin: 0, XMax: 100,
		Lines: []plot.Line{
			{Label: "raw", Kind: plot.Raw, Start: 0, Values: ramp(100)},
			{Label: "mean:10", Kind: plot.Overlay, Start: 9, Values: ramp(91)},
		},
	}

	data, colors, points := panelData(p, 20, th)
	if points != 20 {
		t.Fatalf("points = %d, want 20", points)
	}
	// raw min, raw max, overlay
	if len(data) != 3 || len(colors) != 3 {
		t.Fatalf("lines = %d, want 3", len(data))
	}
	if data[0][0] != 0 || data[1][0] != 4 {
		t.Fatalf("first envelope column = [%v,%v], want [0,4]", data[0][0], data[1][0])
	}
	overlay := data[2]
	if len(overlay) != 20 {
		t.Fatalf("overlay columns = %d, want 20", len(overlay))
	}
	// Columns 0 and 1 cover indices 0..9; only index 9 has an overlay value.
	if overlay[0] != overlay[1] {
		t.Fatalf("warm-up columns should repeat the first value, got %v %v", overlay[0], overlay[1])
	}
}

func TestPanelData_FlatSeriesGetsAnchors(t *testing.T) {
	p := plot.Panel{XMin: 0, XMax: 5, Lines: []plot.Line{
		{Label: "hp", Kind: plot.Signal, Values: []float64{3, 3, 3, 3, 3}},
	}}
	data, colors, _ := panelData(p, 40, GetTheme("Slate"))
	if len(data) != 3 {
		t.Fatalf("lines = %d, want signal plus two anchors", len(data))
	}
	if data[1][0] != 2 || data[2][0] != 4 {
		t.Fatalf("anchors = %v %v, want 2 and 4", data[1], data[2])
	}
	if colors[1] != drawille.Default || colors[2] != drawille.Default {
		t.Fatalf("anchors should use the default color")
	}
}

func TestPanelData_PinnedRangeClamps(t *testing.T) {
	p := plot.Panel{
		XMin: 0, XMax: 3,
		YPinned: true, YMin: 0, YMax: 1.5,
		Lines: []plot.Line{{Label: "raw", Kind: plot.Raw, Values: []float64{-1, 0.5, 9}}},
	}
	data, _, _ := panelData(p, 40, GetTheme("Slate"))
	raw := data[0]
	if raw[0] != 0 || raw[1] != 0.5 || raw[2] != 1.5 {
		t.Fatalf("clamped raw = %v, want [0 0.5 1.5]", raw)
	}
	last := len(data) - 1
	if data[last-1][0] != 0 || data[last][0] != 1.5 {
		t.Fatalf("anchors = %v %v, want the pinned range", data[last-1], data[last])
	}
}

func TestPanelData_EmptyPanel(t *testing.T) {
	data, _, points := panelData(plot.Panel{Title: "bot1"}, 40, GetTheme("Slate"))
	if data != nil || points != 0 {
		t.Fatalf("empty panel produced %d lines and %d points", len(data), points)
	}
}

func TestRenderLegendShowsNewestValues(t *testing.T) {
	m := New(Options{})
	p := plot.Panel{Lines: []plot.Line{
		{Label: "hp", Kind: plot.Signal, Values: []float64{50, 45}},
		{Label: "ammo", Kind: plot.Signal},
	}}
	legend := m.renderLegend(p)
	for _, want := range []string{"hp", "45", "ammo"} {
		if !strings.Contains(legend, want) {
			t.Fatalf("legend %q missing %q", legend, want)
		}
	}
}

func TestRenderLegendTruncatesLongLabels(t *testing.T) {
	m := New(Options{})
	long := "shield_energy_remaining_after_respawn"
	p := plot.Panel{Lines: []plot.Line{{Label: long, Kind: plot.Signal, Values: []float64{1}}}}

	legend := m.renderLegend(p)
	if strings.Contains(legend, long) {
		t.Fatalf("legend %q should truncate %q", legend, long)
	}
	if want := truncate(long, legendLabelLimit); !strings.Contains(legend, want) {
		t.Fatalf("legend %q missing truncated label %q", legend, want)
	}
}
