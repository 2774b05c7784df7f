package logging

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Rotation defaults for file-backed sinks.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// WriterSink is a Sink writing one timestamped line per entry to an io.Writer.
type WriterSink struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewWriterSink creates a WriterSink over w. If w is an io.Closer, Close closes it.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, now: time.Now}
}

// Info writes an informational entry.
func (s *WriterSink) Info(eid uint32, msg string) error {
	return s.write("INFORMATION", eid, msg)
}

// Warning writes a warning entry.
func (s *WriterSink) Warning(eid uint32, msg string) error {
	return s.write("WARNING", eid, msg)
}

// Error writes an error entry.
func (s *WriterSink) Error(eid uint32, msg string) error {
	return s.write("ERROR", eid, msg)
}

// Close closes the underlying writer if it supports it.
func (s *WriterSink) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *WriterSink) write(kind string, eid uint32, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.w, "%s %s [%d] %s\n", s.now().Format(time.RFC3339), kind, eid, msg)
	return err
}

// Ensure WriterSink implements Sink.
var _ Sink = (*WriterSink)(nil)
