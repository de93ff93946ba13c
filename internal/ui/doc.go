// Package ui renders botplot's live charts in the terminal with Bubble Tea.
//
// The Model owns the refresh cadence. Every tick it calls Engine.Tick, which
// appends new samples to the state.Store, then View rebuilds a plot.Figure
// and draws each panel on a braille canvas. Both run on the Bubble Tea event
// goroutine, so the store is never read while it is being written.
//
// # Layout
//
//   - Header: sources, total samples, follow mode, last refresh time
//   - Panels: the record series first, then one per telemetry stream
//   - Footer: short key help
//
// Each panel has a title with its visible x range, a legend naming every line
// in its chart color with the newest value, and the canvas. The raw record
// series is drawn in a muted color as a min/max band; overlays and channels
// cycle through the theme palette.
//
// # Key Bindings
//
//   - f: Toggle between following the newest window and the full history
//   - T: Cycle theme
//   - h or ?: Toggle help
//   - q or Ctrl+C: Quit
//
// Theme and follow mode are saved to the prefs file when changed.
package ui
