// Package state holds the series collected from telemetry sources.
//
// # Overview
//
// A Store is created when the render loop starts and lives until the process
// exits. It contains:
//
//   - the flat series, fed by the numeric record file
//   - a set of streams, each a named group of channels, fed by the grouped
//     telemetry file
//
// Streams and channels are created the first time their name is seen and are
// never removed, so pointers returned by Stream and Channel stay valid for the
// life of the store. Iteration order is first-seen order, which is also the
// panel and legend order on screen.
//
// # Series
//
// A Series is append-only. Sample indices are contiguous from 0. Each series
// carries the aggregate views configured for its kind (aggregate.Accumulator),
// which are extended on every Append so a refresh never re-scans history.
//
// # Concurrency
//
// The render loop is the only writer and the display reads between loop
// steps on the same goroutine, so the store does no locking.
package state
