// Package sink appends serialized records to a per-session log file.
package sink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tsellick/keytrace/internal/record"
)

// FileName builds a session log file name from a prefix, the session
// start time, and the session identifier. The timestamp plus the
// identifier keep one run from ever clobbering another.
func FileName(prefix string, start time.Time, sessionID string) string {
	return fmt.Sprintf("%s%s_%s.csv", prefix, start.Format("20060102_150405"), sessionID)
}

// Sink owns one open log file. It is exclusively owned by the control
// loop for the duration of a recording; nothing here is safe for
// concurrent use.
type Sink struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	rows   int
	closed bool
}

// Create opens a new log file at path. The file must not already
// exist; a colliding or uncreatable path fails with ErrCannotCreate.
func Create(path string) (*Sink, error) {
	f, err := os.OpenFile(filepath.Clean(path), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCannotCreate, path, err)
	}
	return &Sink{path: path, f: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one record as a line. Records land in arrival order.
// A write failure is fatal to the session; the caller must stop and
// Close rather than retry.
func (s *Sink) Append(rec record.LogRecord) error {
	if s.closed {
		return fmt.Errorf("%w: sink closed", ErrWriteFailed)
	}
	if _, err := s.w.WriteString(string(rec)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	s.rows++
	return nil
}

// Rows reports how many records have been appended.
func (s *Sink) Rows() int { return s.rows }

// Path reports where the log file lives.
func (s *Sink) Path() string { return s.path }

// Close flushes and releases the file. It runs on every session exit
// path and is safe to call more than once.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	ferr := s.w.Flush()
	cerr := s.f.Close()
	if ferr != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, ferr)
	}
	if cerr != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, cerr)
	}
	return nil
}
