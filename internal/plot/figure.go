// Package plot describes what the chart shows, independent of the terminal.
//
// Build turns the series store into a Figure: one panel for the flat record
// series (raw samples plus aggregate overlays) and one panel per stream with a
// line per channel. Each panel carries the half-open x range that is visible.
// When following, the range is the newest Window samples; otherwise the whole
// history is shown and the renderer scales to fit.
package plot

import (
	"fmt"

	"github.com/five82/botplot/internal/state"
)

// DefaultWindow is the number of trailing samples visible while following.
const DefaultWindow = 2000

// LineKind tells the renderer how to draw a line.
type LineKind int

const (
	// Raw lines are the unsmoothed flat samples.
	Raw LineKind = iota
	// Overlay lines are aggregate views.
	Overlay
	// Signal lines are stream channels.
	Signal
)

// Line is a run of consecutive sample values beginning at sample index Start.
type Line struct {
	Label  string
	Kind   LineKind
	Start  int
	Values []float64
}

// End returns the index one past the last value.
func (l Line) End() int { return l.Start + len(l.Values) }

// Panel is one subplot.
type Panel struct {
	Title      string
	XMin, XMax int // visible indices [XMin, XMax)
	Lines      []Line

	// YPinned fixes the vertical range to [YMin, YMax].
	YPinned    bool
	YMin, YMax float64
}

// Empty reports whether no line has any value.
func (p Panel) Empty() bool {
	for _, l := range p.Lines {
		if len(l.Values) > 0 {
			return false
		}
	}
	return true
}

// Figure is the full chart surface.
type Figure struct {
	Panels []Panel
}

// Options control the visible range.
type Options struct {
	Window int  // trailing samples shown while following; <= 0 uses DefaultWindow
	Follow bool // false shows the full history

	// PinFlatY fixes the record panel to [FlatYMin, FlatYMax].
	PinFlatY           bool
	FlatYMin, FlatYMax float64
}

func (o Options) visible() int {
	if !o.Follow {
		return 0
	}
	if o.Window <= 0 {
		return DefaultWindow
	}
	return o.Window
}

// Build snapshots the store into a figure. The returned slices alias store
// memory and are only valid until the next append.
func Build(store *state.Store, opts Options) Figure {
	var fig Figure
	w := opts.visible()

	if store.HasFlat() {
		flat := store.Flat()
		start, end := flat.Window(w)
		panel := Panel{
			Title: state.FlatName,
			XMin:  start,
			XMax:  end,
			Lines: []Line{{Label: "raw", Kind: Raw, Start: start, Values: flat.Slice(start, end)}},
		}
		panel.Lines = append(panel.Lines, overlays("", flat, start, end)...)
		if opts.PinFlatY {
			panel.YPinned, panel.YMin, panel.YMax = true, opts.FlatYMin, opts.FlatYMax
		}
		fig.Panels = append(fig.Panels, panel)
	}

	for _, st := range store.Streams() {
		end := 0
		for _, ch := range st.Channels() {
			end = max(end, ch.Len())
		}
		start := 0
		if w > 0 && end > w {
			start = end - w
		}
		panel := Panel{Title: st.Name(), XMin: start, XMax: end}
		for _, ch := range st.Channels() {
			panel.Lines = append(panel.Lines, Line{
				Label:  ch.Name(),
				Kind:   Signal,
				Start:  start,
				Values: ch.Slice(start, end),
			})
			panel.Lines = append(panel.Lines, overlays(ch.Name()+" ", ch.Series, start, end)...)
		}
		fig.Panels = append(fig.Panels, panel)
	}
	return fig
}

func overlays(prefix string, s *state.Series, start, end int) []Line {
	var lines []Line
	for _, agg := range s.Aggregates() {
		from, values := agg.Range(start, end)
		lines = append(lines, Line{
			Label:  fmt.Sprintf("%s%s", prefix, agg.Spec()),
			Kind:   Overlay,
			Start:  from,
			Values: values,
		})
	}
	return lines
}
