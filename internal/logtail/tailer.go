package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrFileNotFound reports that a log source does not exist at startup.
	ErrFileNotFound = errors.New("log file not found")
	// ErrTruncated reports that a tailed file shrank below the consumed offset.
	ErrTruncated = errors.New("log file truncated")
)

// Tailer reads lines appended to an open file across polling cycles.
// It is not safe for concurrent use.
type Tailer struct {
	name   string
	file   *os.File
	offset int64
}

// Open opens path for tailing from the beginning of the file.
func Open(path string) (*Tailer, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return &Tailer{name: path, file: file}, nil
}

// NewTailer wraps an already open file, starting at offset 0.
func NewTailer(file *os.File) *Tailer {
	return &Tailer{name: file.Name(), file: file}
}

// Name returns the path the tailer was opened with.
func (t *Tailer) Name() string { return t.name }

// Offset returns the number of bytes consumed so far.
func (t *Tailer) Offset() int64 { return t.offset }

// Poll returns the complete lines appended since the previous poll. An
// unterminated trailing line is left in the file and returned once its
// newline arrives.
func (t *Tailer) Poll() ([]string, error) {
	reader, err := t.rewind()
	if err != nil {
		return nil, err
	}

	var lines []string
	for {
		raw, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				// raw holds the partial line, if any; it is re-read next poll.
				return lines, nil
			}
			return lines, fmt.Errorf("read %s: %w", t.name, err)
		}
		t.offset += int64(len(raw))
		lines = append(lines, string(trimEOL(raw)))
	}
}

// ReadChunk returns every byte appended since the previous call, including
// an unterminated tail. Callers that need whole records must buffer it.
func (t *Tailer) ReadChunk() ([]byte, error) {
	reader, err := t.rewind()
	if err != nil {
		return nil, err
	}
	chunk, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", t.name, err)
	}
	t.offset += int64(len(chunk))
	if len(chunk) == 0 {
		return nil, nil
	}
	return chunk, nil
}

// Close releases the underlying file.
func (t *Tailer) Close() error {
	return t.file.Close()
}

// rewind seeks back to the consumed offset and returns a fresh reader so no
// read-ahead from a previous cycle hides newly appended bytes.
func (t *Tailer) rewind() (*bufio.Reader, error) {
	info, err := t.file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", t.name, err)
	}
	if info.Size() < t.offset {
		return nil, fmt.Errorf("%s: size %d below offset %d: %w", t.name, info.Size(), t.offset, ErrTruncated)
	}
	if _, err := t.file.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", t.name, err)
	}
	return bufio.NewReaderSize(t.file, 64*1024), nil
}

func trimEOL(raw []byte) []byte {
	raw = bytes.TrimSuffix(raw, []byte{'\n'})
	return bytes.TrimSuffix(raw, []byte{'\r'})
}
