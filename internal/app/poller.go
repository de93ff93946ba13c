package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/five82/botplot/internal/config"
	"github.com/five82/botplot/internal/logtail"
	"github.com/five82/botplot/internal/state"
	"github.com/five82/botplot/internal/telemetry"
)

// source is satisfied by both logtail.Tailer and logtail.StreamReader.
type source interface {
	Name() string
	Poll() ([]string, error)
	ReadChunk() ([]byte, error)
	Close() error
}

// feed moves whatever one source has produced since the last pull into the
// store and reports how many samples it appended.
type feed interface {
	name() string
	streaming() bool
	pull(store *state.Store) (int, error)
	close() error
}

func openSource(path string, stdin *os.File, timeout time.Duration) (source, error) {
	if path != config.StdinSource {
		return logtail.Open(path)
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, errors.New("stdin is a terminal: pipe samples in or pass a file path")
	}
	return logtail.NewStreamReader(stdin, timeout), nil
}

// flatFeed reads one numeric sample per line into the unnamed series.
type flatFeed struct {
	src    source
	parser *telemetry.FlatParser
	stream bool
}

func newFlatFeed(src source, stream bool) *flatFeed {
	return &flatFeed{src: src, parser: telemetry.NewFlatParser(src.Name()), stream: stream}
}

func (f *flatFeed) name() string    { return f.src.Name() }
func (f *flatFeed) streaming() bool { return f.stream }
func (f *flatFeed) close() error    { return f.src.Close() }

func (f *flatFeed) pull(store *state.Store) (int, error) {
	lines, readErr := f.src.Poll()
	values, err := f.parser.ParseLines(lines)
	series := store.Flat()
	for _, v := range values {
		series.Append(v)
	}
	if err != nil {
		return len(values), err
	}
	return len(values), readErr
}

// groupedFeed reads stream blocks into per-channel series.
type groupedFeed struct {
	src    source
	parser *telemetry.GroupedParser
	stream bool
}

func newGroupedFeed(src source, stream bool) *groupedFeed {
	return &groupedFeed{src: src, parser: telemetry.NewGroupedParser(src.Name()), stream: stream}
}

func (f *groupedFeed) name() string    { return f.src.Name() }
func (f *groupedFeed) streaming() bool { return f.stream }
func (f *groupedFeed) close() error    { return f.src.Close() }

func (f *groupedFeed) pull(store *state.Store) (int, error) {
	chunk, readErr := f.src.ReadChunk()
	blocks, err := f.parser.Feed(chunk)
	if err == nil && errors.Is(readErr, logtail.ErrStreamClosed) {
		// No more bytes can arrive, so the trailing block is complete.
		var rest []telemetry.Block
		rest, err = f.parser.Flush()
		blocks = append(blocks, rest...)
	}

	n := 0
	for _, block := range blocks {
		// A header with no entries still registers its stream.
		store.Stream(block.Stream)
		for _, entry := range block.Entries {
			store.Record(block.Stream, entry.Channel, entry.Value)
			n++
		}
	}
	if err != nil {
		return n, err
	}
	return n, readErr
}

func openFeeds(opts LoopOptions) ([]feed, error) {
	if opts.RecordPath == config.StdinSource && opts.TelemetryPath == config.StdinSource {
		return nil, errors.New("stdin can feed only one of record and telemetry")
	}

	var feeds []feed
	closeAll := func() {
		for _, f := range feeds {
			_ = f.close()
		}
	}

	if opts.RecordPath != "" {
		src, err := openSource(opts.RecordPath, opts.Stdin, opts.StreamTimeout)
		if err != nil {
			return nil, fmt.Errorf("open record: %w", err)
		}
		feeds = append(feeds, newFlatFeed(src, opts.RecordPath == config.StdinSource))
	}
	if opts.TelemetryPath != "" {
		src, err := openSource(opts.TelemetryPath, opts.Stdin, opts.StreamTimeout)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("open telemetry: %w", err)
		}
		feeds = append(feeds, newGroupedFeed(src, opts.TelemetryPath == config.StdinSource))
	}
	if len(feeds) == 0 {
		return nil, errors.New("no input: pass --file or --telemetry")
	}
	return feeds, nil
}
