package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

var summaryHeader = table.Row{"Series", "Samples", "Last", "Min", "Max", "Aggregates"}

// numeric columns are right aligned, by 1-based column number
var summaryNumeric = map[int]bool{2: true, 3: true, 4: true, 5: true}

// renderSummary draws the summary rows with a footer carrying the total
// sample count across all series.
func renderSummary(rows [][]string, total int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(summaryHeader)

	for _, row := range rows {
		r := make(table.Row, len(summaryHeader))
		for i := range r {
			r[i] = ""
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}
	if len(rows) == 0 {
		tw.AppendRow(table.Row{"(no series)", "0", "-", "-", "-", "-"})
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(total), "", "", "", ""})

	configs := make([]table.ColumnConfig, 0, len(summaryHeader))
	for n := 1; n <= len(summaryHeader); n++ {
		align := text.AlignLeft
		if summaryNumeric[n] {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      n,
			Align:       align,
			AlignHeader: text.AlignLeft,
			AlignFooter: align,
		})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
