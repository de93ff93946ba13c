package telemetry

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("parse error")

// ParseError describes a line that violates the producer's format.
type ParseError struct {
	Source string // source name, usually a file path
	Line   int    // 1-based line number within the source
	Text   string
	Err    error
}

func (e *ParseError) Error() string {
	loc := e.Source
	if loc == "" {
		loc = "input"
	}
	if e.Line > 0 {
		loc = fmt.Sprintf("%s:%d", loc, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", loc, e.Text, e.Err)
	}
	return fmt.Sprintf("%s: %q: malformed line", loc, e.Text)
}

// Unwrap exposes both ErrParse and the underlying cause to errors.Is.
func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}
