package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chriskim06/drawille-go"

	"github.com/five82/botplot/internal/plot"
)

const (
	// axisReserve is the width left for the canvas y-axis labels.
	axisReserve = 10
	// minPanelHeight covers the title, the legend and two canvas rows.
	minPanelHeight = 4
	// legendLabelLimit caps one legend label, in runes.
	legendLabelLimit = 24
)

// renderFigure stacks the panels vertically into width x height cells.
func (m Model) renderFigure(fig plot.Figure, width, height int) string {
	styles := m.theme.Styles()
	if len(fig.Panels) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render("Waiting for samples..."))
	}

	visible := len(fig.Panels)
	if height/visible < minPanelHeight {
		visible = max(1, height/minPanelHeight)
	}
	each := height / visible

	rendered := make([]string, 0, visible)
	for i, p := range fig.Panels[:visible] {
		h := each
		if i == visible-1 {
			h = height - each*(visible-1)
		}
		rendered = append(rendered, m.renderPanel(p, width, h))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

// renderPanel draws one panel: a title row, a legend row and the canvas.
func (m Model) renderPanel(p plot.Panel, width, height int) string {
	styles := m.theme.Styles()
	block := lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height)

	title := styles.PanelTitle.Render(p.Title)
	if p.XMax > p.XMin {
		title += "  " + styles.FaintText.Render(fmt.Sprintf("x %d..%d", p.XMin, p.XMax-1))
	}
	legend := m.renderLegend(p)

	canvasHeight := height - 2
	data, colors, points := panelData(p, max(2, (width-axisReserve)*2), m.theme)
	if canvasHeight < 1 || points < 2 || len(data) == 0 {
		msg := "no samples yet"
		if points == 1 {
			msg = "1 sample"
		}
		return block.Render(lipgloss.JoinVertical(lipgloss.Left, title, legend, styles.MutedText.Render(msg)))
	}

	canvas := drawille.NewCanvas(width, canvasHeight)
	canvas.NumDataPoints = points
	canvas.LineColors = colors
	canvas.AxisColor = m.theme.ChartAxis
	canvas.LabelColor = m.theme.ChartLabel
	canvas.HorizontalLabels = []string{strconv.Itoa(p.XMin), strconv.Itoa(p.XMax - 1)}
	canvas.Fill(data)

	return block.Render(lipgloss.JoinVertical(lipgloss.Left, title, legend, canvas.String()))
}

// renderLegend lists the panel's lines in their chart colors, with the
// newest value of each.
func (m Model) renderLegend(p plot.Panel) string {
	colors := lineColors(p, m.theme)
	faint := m.theme.Styles().FaintText
	parts := make([]string, 0, len(p.Lines))
	for i, l := range p.Lines {
		entry := chartStyle(colors[i]).Render("■ " + truncate(l.Label, legendLabelLimit))
		if n := len(l.Values); n > 0 {
			entry += " " + faint.Render(formatValue(l.Values[n-1]))
		}
		parts = append(parts, entry)
	}
	return strings.Join(parts, "  ")
}

// lineColors assigns each line of p its chart color. Raw lines share the
// theme's raw color; every other line takes the next palette entry.
func lineColors(p plot.Panel, theme Theme) []drawille.Color {
	colors := make([]drawille.Color, len(p.Lines))
	next := 0
	for i, l := range p.Lines {
		if l.Kind == plot.Raw {
			colors[i] = theme.RawLine
			continue
		}
		colors[i] = theme.LineColor(next)
		next++
	}
	return colors
}

// panelData resamples every line of p onto a common set of columns. The
// raw line becomes a min/max envelope when several samples share a column.
// Columns before a line's first value repeat that value, because the canvas
// draws every line from the left edge. Single-point anchor lines are appended
// to fix the vertical range; the canvas does not draw them.
func panelData(p plot.Panel, maxPoints int, theme Theme) ([][]float64, []drawille.Color, int) {
	points := plot.Buckets(p.XMin, p.XMax, maxPoints)
	if points == 0 {
		return nil, nil, 0
	}
	colors := lineColors(p, theme)
	span := p.XMax - p.XMin

	var (
		data   [][]float64
		out    []drawille.Color
		lo, hi = math.Inf(1), math.Inf(-1)
	)
	add := func(values []float64, c drawille.Color) {
		filled, ok := plot.FillGaps(values)
		if !ok {
			return
		}
		for i, v := range filled {
			if p.YPinned {
				v = math.Min(math.Max(v, p.YMin), p.YMax)
				filled[i] = v
			}
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		data = append(data, filled)
		out = append(out, c)
	}

	for i, l := range p.Lines {
		if l.Kind == plot.Raw && span > points {
			add(plot.Resample(l, p.XMin, p.XMax, points, plot.ReduceMin), colors[i])
			add(plot.Resample(l, p.XMin, p.XMax, points, plot.ReduceMax), colors[i])
			continue
		}
		add(plot.Resample(l, p.XMin, p.XMax, points, plot.ReduceMean), colors[i])
	}
	if len(data) == 0 {
		return nil, nil, points
	}

	switch {
	case p.YPinned:
		lo, hi = p.YMin, p.YMax
	case lo == hi:
		lo, hi = lo-1, hi+1
	default:
		return data, out, points
	}
	data = append(data, []float64{lo}, []float64{hi})
	out = append(out, drawille.Default, drawille.Default)
	return data, out, points
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 5, 64)
}
