package state

import (
	"github.com/five82/botplot/internal/aggregate"
)

// FlatName labels the unnamed series fed by the numeric record file.
const FlatName = "record"

// Sample is one value at its position within a series.
type Sample struct {
	Index int
	Value float64
}

// Series is an append-only sequence of values with attached aggregate views.
type Series struct {
	name   string
	values []float64
	aggs   []*aggregate.Accumulator
}

func newSeries(name string, specs []aggregate.Spec) *Series {
	s := &Series{name: name}
	for _, spec := range specs {
		s.aggs = append(s.aggs, aggregate.NewAccumulator(spec))
	}
	return s
}

// Name returns the channel name, or FlatName for the unnamed series.
func (s *Series) Name() string { return s.name }

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.values) }

// Append adds v as the next sample and extends every aggregate view.
func (s *Series) Append(v float64) Sample {
	s.values = append(s.values, v)
	for _, agg := range s.aggs {
		agg.Push(v)
	}
	return Sample{Index: len(s.values) - 1, Value: v}
}

// At returns the sample at index i.
func (s *Series) At(i int) Sample {
	return Sample{Index: i, Value: s.values[i]}
}

// Last returns the newest sample.
func (s *Series) Last() (Sample, bool) {
	if len(s.values) == 0 {
		return Sample{}, false
	}
	return s.At(len(s.values) - 1), true
}

// Values returns every value; the slice is shared and must not be modified.
func (s *Series) Values() []float64 { return s.values }

// Window returns the half-open index range [start, end) covering the newest
// w samples, or the whole series when w <= 0.
func (s *Series) Window(w int) (start, end int) {
	end = len(s.values)
	if w > 0 && end > w {
		start = end - w
	}
	return start, end
}

// Slice returns values with indices in [from, to).
func (s *Series) Slice(from, to int) []float64 {
	if from < 0 {
		from = 0
	}
	if to > len(s.values) {
		to = len(s.values)
	}
	if from >= to {
		return nil
	}
	return s.values[from:to]
}

// Aggregates returns the aggregate views in configuration order.
func (s *Series) Aggregates() []*aggregate.Accumulator { return s.aggs }

// Channel is one named signal of a stream.
type Channel struct {
	*Series
}

// Stream groups the channels reported under one header.
type Stream struct {
	name     string
	channels map[string]*Channel
	order    []*Channel
	specs    []aggregate.Spec
}

// Name returns the stream identifier.
func (st *Stream) Name() string { return st.name }

// Channels returns channels in first-seen order.
func (st *Stream) Channels() []*Channel { return st.order }

// Lookup returns an existing channel.
func (st *Stream) Lookup(name string) (*Channel, bool) {
	ch, ok := st.channels[name]
	return ch, ok
}

// Channel returns the named channel, creating it on first sight.
func (st *Stream) Channel(name string) *Channel {
	if ch, ok := st.channels[name]; ok {
		return ch
	}
	ch := &Channel{Series: newSeries(name, st.specs)}
	st.channels[name] = ch
	st.order = append(st.order, ch)
	return ch
}

// Options configure the aggregate views attached to new series.
type Options struct {
	FlatAggregates    []aggregate.Spec
	ChannelAggregates []aggregate.Spec
}

// Store owns every series for the lifetime of the process. Streams and
// channels are never removed. A Store has a single writer and is not safe for
// concurrent use.
type Store struct {
	opts    Options
	flat    *Series
	streams map[string]*Stream
	order   []*Stream
}

// New returns an empty store.
func New(opts Options) *Store {
	return &Store{opts: opts, streams: make(map[string]*Stream)}
}

// Flat returns the unnamed series, creating it on first use.
func (s *Store) Flat() *Series {
	if s.flat == nil {
		s.flat = newSeries(FlatName, s.opts.FlatAggregates)
	}
	return s.flat
}

// HasFlat reports whether the unnamed series exists.
func (s *Store) HasFlat() bool { return s.flat != nil }

// Stream returns the named stream, creating it on first sight.
func (s *Store) Stream(name string) *Stream {
	if st, ok := s.streams[name]; ok {
		return st
	}
	st := &Stream{
		name:     name,
		channels: make(map[string]*Channel),
		specs:    s.opts.ChannelAggregates,
	}
	s.streams[name] = st
	s.order = append(s.order, st)
	return st
}

// Lookup returns an existing stream.
func (s *Store) Lookup(name string) (*Stream, bool) {
	st, ok := s.streams[name]
	return st, ok
}

// Streams returns streams in first-seen order.
func (s *Store) Streams() []*Stream { return s.order }

// Record appends one reading, creating its stream and channel if needed.
func (s *Store) Record(stream, channel string, v float64) Sample {
	return s.Stream(stream).Channel(channel).Append(v)
}

// Total returns the number of samples across all series.
func (s *Store) Total() int {
	total := 0
	if s.flat != nil {
		total += s.flat.Len()
	}
	for _, st := range s.order {
		for _, ch := range st.order {
			total += ch.Len()
		}
	}
	return total
}
