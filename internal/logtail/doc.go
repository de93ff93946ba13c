// Package logtail reads newly appended data from growing log sources.
//
// # Overview
//
// The bot being monitored appends telemetry to plain text files and never
// rewrites them. This package keeps a byte offset per source and, on every
// poll, returns only what was appended since the previous poll.
//
// Two source kinds are provided:
//
//   - Tailer: an open regular file. Every poll re-seeks to the consumed
//     offset and reads with a fresh buffer, so bytes appended by another
//     process become visible without reopening the file.
//   - StreamReader: a continuously written descriptor (stdin). Every read is
//     preceded by a poll(2) readiness wait bounded by a short timeout.
//
// # Partial Lines
//
// Tailer.Poll returns complete lines only. An unterminated trailing line is
// not consumed; the offset stays at its first byte so the next poll re-reads
// it once the writer finishes it:
//
//	append "1.5\n2."   -> Poll() = ["1.5"]
//	append "25\n"      -> Poll() = ["2.25"]
//
// ReadChunk instead hands back every appended byte and leaves record
// assembly to the caller (the grouped telemetry parser keeps its own tail).
//
// # Error Handling
//
//   - ErrFileNotFound: Open on a missing path. Fatal at startup.
//   - ErrTruncated: the file shrank below the consumed offset.
//   - ErrStreamClosed: a StreamReader observed end of input. Callers treat
//     this as a clean shutdown signal.
//
// An empty file, or a poll with nothing new, returns no lines and no error.
//
// # Concurrency
//
// Sources are owned by the render loop and accessed sequentially. None of
// the types here are safe for concurrent use.
package logtail
