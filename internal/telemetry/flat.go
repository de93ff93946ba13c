package telemetry

import (
	"strconv"
	"strings"
)

// FlatParser parses the numeric record format: one float literal per line.
type FlatParser struct {
	source string
	line   int
}

// NewFlatParser returns a parser whose errors cite source.
func NewFlatParser(source string) *FlatParser {
	return &FlatParser{source: source}
}

// Parse converts the next line into a sample value.
func (p *FlatParser) Parse(line string) (float64, error) {
	p.line++
	text := strings.TrimSpace(line)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ParseError{Source: p.source, Line: p.line, Text: line, Err: numError(err)}
	}
	return value, nil
}

// ParseLines parses lines in order, stopping at the first malformed one.
func (p *FlatParser) ParseLines(lines []string) ([]float64, error) {
	values := make([]float64, 0, len(lines))
	for _, line := range lines {
		v, err := p.Parse(line)
		if err != nil {
			return values, err
		}
		values = append(values, v)
	}
	return values, nil
}

// numError drops strconv's echo of the input, which ParseError already carries.
func numError(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
