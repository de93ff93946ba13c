// Package logging builds the slog loggers botplot components write to.
//
// The chart view owns the terminal, so live runs send records to a file while
// one-shot commands such as summary write to stderr. Console output is a
// compact key=value line format; JSON output is available for tooling. A
// no-op logger is provided for tests.
package logging
