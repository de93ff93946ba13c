package telemetry

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// Entry is one channel reading inside a block.
type Entry struct {
	Channel string
	Value   float64
}

// Block is one stream header with the entries that followed it.
type Block struct {
	Stream  string
	Entries []Entry
}

var (
	errNoHeader    = errors.New("channel entry before any stream header")
	errBadEntry    = errors.New(`channel entry must look like "- name: value"`)
	errBadHeader   = errors.New(`stream header must look like "name:"`)
	errUnknownLine = errors.New("neither stream header nor channel entry")
)

// GroupedParser incrementally parses grouped telemetry:
//
//	bot1:
//	- hp: 50
//	- ammo: 3
//
// Feed accepts arbitrary chunks and keeps the trailing unfinished block for
// the next call, so every byte is scanned a bounded number of times.
type GroupedParser struct {
	source  string
	pending []byte
	line    int    // lines consumed before pending
	last    string // stream of the most recently completed block
}

// NewGroupedParser returns a parser whose errors cite source.
func NewGroupedParser(source string) *GroupedParser {
	return &GroupedParser{source: source}
}

// Pending reports how many unconsumed bytes are buffered.
func (p *GroupedParser) Pending() int { return len(p.pending) }

// Feed appends chunk and returns every block that is now complete.
func (p *GroupedParser) Feed(chunk []byte) ([]Block, error) {
	p.pending = append(p.pending, chunk...)
	return p.scan(false)
}

// Flush treats buffered input as final, completing any trailing block.
func (p *GroupedParser) Flush() ([]Block, error) {
	if len(p.pending) == 0 {
		return nil, nil
	}
	if p.pending[len(p.pending)-1] != '\n' {
		p.pending = append(p.pending, '\n')
	}
	return p.scan(true)
}

type scanBlock struct {
	block Block
	start int // byte offset of the block's first line in pending
	line  int // number of lines before the block within pending
}

func (p *GroupedParser) scan(final bool) ([]Block, error) {
	cut := bytes.LastIndexByte(p.pending, '\n') + 1
	complete, partial := p.pending[:cut], p.pending[cut:]

	var blocks []scanBlock
	offset, lineIdx := 0, 0
	for offset < len(complete) {
		end := bytes.IndexByte(complete[offset:], '\n') + offset
		raw := strings.TrimSuffix(string(complete[offset:end]), "\r")
		lineNo := p.line + lineIdx + 1

		switch kind, name, entry, err := classify(raw); {
		case err != nil:
			return nil, &ParseError{Source: p.source, Line: lineNo, Text: raw, Err: err}
		case kind == lineHeader:
			blocks = append(blocks, scanBlock{block: Block{Stream: name}, start: offset, line: lineIdx})
		case kind == lineEntry:
			if len(blocks) == 0 {
				if p.last == "" {
					return nil, &ParseError{Source: p.source, Line: lineNo, Text: raw, Err: errNoHeader}
				}
				blocks = append(blocks, scanBlock{block: Block{Stream: p.last}, start: 0, line: 0})
			}
			cur := &blocks[len(blocks)-1].block
			cur.Entries = append(cur.Entries, entry)
		}
		offset = end + 1
		lineIdx++
	}

	done := len(blocks)
	if !final && continuesBlock(partial) && done > 0 {
		done--
	}
	return p.commit(blocks, done), nil
}

// commit consumes the first n scanned blocks and returns them.
func (p *GroupedParser) commit(blocks []scanBlock, n int) []Block {
	consumed, lines := 0, 0
	switch {
	case n < len(blocks):
		consumed, lines = blocks[n].start, blocks[n].line
	case n > 0:
		cut := bytes.LastIndexByte(p.pending, '\n') + 1
		consumed, lines = cut, bytes.Count(p.pending[:cut], []byte{'\n'})
	}
	if consumed == 0 {
		return nil
	}
	rest := make([]byte, len(p.pending)-consumed)
	copy(rest, p.pending[consumed:])
	p.pending = rest
	p.line += lines
	if n == 0 {
		return nil
	}

	out := make([]Block, n)
	for i := 0; i < n; i++ {
		out[i] = blocks[i].block
	}
	p.last = out[n-1].Stream
	return out
}

// continuesBlock reports whether an unterminated trailing line can still add
// entries to the block before it.
func continuesBlock(partial []byte) bool {
	if len(partial) == 0 {
		return false
	}
	trimmed := bytes.TrimLeft(partial, " \t")
	return len(trimmed) == 0 || trimmed[0] == '-'
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineHeader
	lineEntry
)

func classify(raw string) (lineKind, string, Entry, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return lineBlank, "", Entry{}, nil
	}
	if strings.HasPrefix(trimmed, "-") {
		entry, err := parseEntry(trimmed)
		return lineEntry, "", entry, err
	}
	if !strings.HasSuffix(trimmed, ":") {
		return lineBlank, "", Entry{}, errUnknownLine
	}
	name := strings.TrimSpace(strings.TrimSuffix(trimmed, ":"))
	if name == "" || strings.Contains(name, ": ") {
		return lineBlank, "", Entry{}, errBadHeader
	}
	return lineHeader, name, Entry{}, nil
}

func parseEntry(trimmed string) (Entry, error) {
	body, ok := strings.CutPrefix(trimmed, "- ")
	if !ok {
		return Entry{}, errBadEntry
	}
	name, valueText, ok := strings.Cut(body, ": ")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Entry{}, errBadEntry
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(valueText), 64)
	if err != nil {
		return Entry{}, numError(err)
	}
	return Entry{Channel: name, Value: value}, nil
}
