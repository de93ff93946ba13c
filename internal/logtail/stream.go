package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// ErrStreamClosed signals that the writer side of a stream input went away.
// It is a normal termination condition, not a failure.
var ErrStreamClosed = errors.New("input stream closed")

// DefaultStreamTimeout bounds each readiness wait.
const DefaultStreamTimeout = 100 * time.Millisecond

const streamReadSize = 64 * 1024

// streamDrainLimit bounds how much one ReadChunk collects from a backlog.
const streamDrainLimit = 8 << 20

// StreamReader reads a continuously written descriptor such as stdin. Each
// read first waits for readiness for at most the configured timeout, then
// drains whatever is already buffered in the descriptor.
type StreamReader struct {
	name    string
	file    *os.File
	timeout time.Duration
	pending []byte
	buf     []byte
	eof     bool
}

// NewStreamReader wraps file; a non-positive timeout uses DefaultStreamTimeout.
func NewStreamReader(file *os.File, timeout time.Duration) *StreamReader {
	if timeout <= 0 {
		timeout = DefaultStreamTimeout
	}
	return &StreamReader{
		name:    file.Name(),
		file:    file,
		timeout: timeout,
		buf:     make([]byte, streamReadSize),
	}
}

// Name returns the descriptor name (e.g. /dev/stdin).
func (s *StreamReader) Name() string { return s.name }

// Poll returns complete lines that became available within the timeout.
// Partial lines are buffered until terminated. Once the writer has closed,
// a buffered unterminated line is returned as the final line together with
// ErrStreamClosed.
func (s *StreamReader) Poll() ([]string, error) {
	chunk, err := s.ReadChunk()
	if len(chunk) > 0 {
		s.pending = append(s.pending, chunk...)
	}
	var lines []string
	for {
		idx := bytes.IndexByte(s.pending, '\n')
		if idx < 0 {
			break
		}
		lines = append(lines, string(trimEOL(s.pending[:idx+1])))
		s.pending = s.pending[idx+1:]
	}
	if errors.Is(err, ErrStreamClosed) && len(s.pending) > 0 {
		lines = append(lines, string(trimEOL(s.pending)))
		s.pending = nil
	}
	if len(s.pending) == 0 {
		s.pending = nil
	}
	return lines, err
}

// ReadChunk returns every byte that is ready: it waits up to the timeout for
// the first read, then keeps reading while more input is immediately
// available. An empty result with a nil error means nothing was ready before
// the timeout. End of input is reported as ErrStreamClosed on the call after
// the last bytes were returned.
func (s *StreamReader) ReadChunk() ([]byte, error) {
	if s.eof {
		return nil, ErrStreamClosed
	}
	ready, err := s.wait(s.timeout)
	if err != nil || !ready {
		return nil, err
	}

	var chunk []byte
	for len(chunk) < streamDrainLimit {
		n, err := s.file.Read(s.buf)
		if n == 0 {
			// Readable with nothing to read: the writer closed its end.
			s.eof = true
			break
		}
		chunk = append(chunk, s.buf[:n]...)
		if err != nil {
			return chunk, fmt.Errorf("read %s: %w", s.name, err)
		}
		more, err := s.wait(0)
		if err != nil {
			return chunk, err
		}
		if !more {
			break
		}
	}
	if len(chunk) == 0 {
		return nil, ErrStreamClosed
	}
	return chunk, nil
}

// Close releases the descriptor.
func (s *StreamReader) Close() error {
	return s.file.Close()
}

// wait reports readiness within timeout; a zero timeout only checks.
func (s *StreamReader) wait(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.file.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, fmt.Errorf("poll %s: %w", s.name, err)
	}
	if n == 0 {
		return false, nil
	}
	// POLLHUP without POLLIN still needs a read to observe the EOF.
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
}
