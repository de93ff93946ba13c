package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/botplot/internal/app"
	"github.com/five82/botplot/internal/logging"
	"github.com/five82/botplot/internal/state"
)

func newSummaryCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print per-series statistics and exit",
		Long: `Read every input to its end and print one row per series: sample count,
newest value, range, and the newest value of each aggregate overlay.

A stdin input is read until its writer closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			logger, closeLog, err := logging.New(logging.Options{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				OutputPaths: []string{"stderr"},
			})
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer func() { _ = closeLog() }()

			store, err := app.Collect(cmd.Context(), app.Options{
				Config: cfg,
				Stdin:  stdinFile(cmd),
				Logger: logger,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummary(summaryRows(store), store.Total()))
			return nil
		},
	}
}

// summaryRows returns one row per series: the record series first, then
// stream channels in first-seen order.
func summaryRows(store *state.Store) [][]string {
	var rows [][]string
	if store.HasFlat() {
		rows = append(rows, seriesRow(state.FlatName, store.Flat()))
	}
	for _, st := range store.Streams() {
		for _, ch := range st.Channels() {
			rows = append(rows, seriesRow(st.Name()+"/"+ch.Name(), ch.Series))
		}
	}
	return rows
}

func seriesRow(name string, s *state.Series) []string {
	row := []string{name, strconv.Itoa(s.Len()), "-", "-", "-", "-"}
	last, ok := s.Last()
	if !ok {
		return row
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range s.Values() {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	row[2], row[3], row[4] = formatFloat(last.Value), formatFloat(lo), formatFloat(hi)

	var aggs []string
	for _, agg := range s.Aggregates() {
		value := "-"
		if v, ok := agg.Last(); ok {
			value = formatFloat(v)
		}
		aggs = append(aggs, agg.Spec().String()+"="+value)
	}
	if len(aggs) > 0 {
		row[5] = strings.Join(aggs, " ")
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
