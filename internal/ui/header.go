package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/botplot/internal/plot"
)

// renderHeader renders the status bar above the charts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{bg.Render("botplot", styles.Logo)}

	if len(m.sources) > 0 {
		limit := max(16, m.width/(2*len(m.sources)))
		names := make([]string, len(m.sources))
		for i, s := range m.sources {
			names[i] = truncateMiddle(s, limit)
		}
		parts = append(parts, bg.Render(strings.Join(names, " + "), styles.MutedText))
	}

	parts = append(parts,
		bg.Render("samples", styles.FaintText)+bg.Space()+bg.Render(strconv.Itoa(m.store.Total()), styles.Text))

	if m.plotOpts.Follow {
		parts = append(parts, bg.Render("FOLLOW "+m.windowLabel(), styles.SuccessText))
	} else {
		parts = append(parts, bg.Render("FULL HISTORY", styles.WarningText.Bold(true)))
	}

	switch {
	case m.noUpdate:
		parts = append(parts, bg.Render("static", styles.FaintText))
	case !m.lastUpdated.IsZero():
		parts = append(parts, bg.Render("updated "+m.lastUpdated.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderFooter renders the short key help.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	h := m.help
	h.Width = max(0, m.width-2)
	h.Styles.ShortKey = styles.AccentText
	h.Styles.ShortDesc = styles.MutedText
	h.Styles.ShortSeparator = styles.FaintText
	return lipgloss.NewStyle().Padding(0, 1).Render(h.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) windowLabel() string {
	w := m.plotOpts.Window
	if w <= 0 {
		w = plot.DefaultWindow
	}
	return strconv.Itoa(w)
}

func (m Model) intervalLabel() string {
	if m.noUpdate {
		return "off"
	}
	return m.interval.String()
}
