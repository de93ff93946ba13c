// Package app wires botplot together: it opens the configured sources, runs
// the refresh engine and hands it to the chart UI.
//
// # Engine
//
// Loop owns the sources. Each Tick polls every source once, parses the new
// lines or bytes and appends the results to the state.Store, which in turn
// extends every aggregate view. Loop has no timer; the UI calls Tick on its
// refresh cadence from inside its update function, so the store has exactly
// one writer and needs no locking.
//
//	Bootstrap ──> Tick ──> (UI draws) ──> wait interval ──> Tick ──> ...
//
// A record source feeds the unnamed series through telemetry.FlatParser. A
// telemetry source feeds streams and channels through telemetry.GroupedParser,
// which keeps an unfinished trailing block until more bytes arrive.
//
// # Termination
//
//   - Parse and I/O errors stop the engine and are returned to the caller
//   - logtail.ErrStreamClosed from a stdin source ends the run cleanly
//   - The user quits from the UI, or the context is cancelled
//
// # Summary mode
//
// Collect drains the sources without a UI: file sources are read once and a
// stdin source is read until its writer closes.
package app
