package logging

import "sync"

// Entry is one record captured by MockSink.
type Entry struct {
	Kind    string
	EventID uint32
	Message string
}

// MockSink is an in-memory Sink for testing.
type MockSink struct {
	mu      sync.Mutex
	entries []Entry
	closed  bool
}

// Info records an informational entry.
func (m *MockSink) Info(eid uint32, msg string) error { return m.add("info", eid, msg) }

// Warning records a warning entry.
func (m *MockSink) Warning(eid uint32, msg string) error { return m.add("warning", eid, msg) }

// Error records an error entry.
func (m *MockSink) Error(eid uint32, msg string) error { return m.add("error", eid, msg) }

// Close marks the sink closed.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Entries returns a copy of the recorded entries.
func (m *MockSink) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// Closed reports whether Close was called.
func (m *MockSink) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *MockSink) add(kind string, eid uint32, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{Kind: kind, EventID: eid, Message: msg})
	return nil
}

// Ensure MockSink implements Sink.
var _ Sink = (*MockSink)(nil)
