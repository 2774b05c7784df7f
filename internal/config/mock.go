package config

import "sync"

// MapStore is an in-memory Store and Writer for testing.
type MapStore struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string

	// Err, when set, is returned by every read.
	Err error

	// Reads counts Get and GetStrings calls.
	Reads int
}

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

// Get returns a stored value.
func (m *MapStore) Get(ns Namespace, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.values[ns.Key(key)]
	return v, ok, nil
}

// GetStrings returns a stored list value.
func (m *MapStore) GetStrings(ns Namespace, key string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if m.Err != nil {
		return nil, false, m.Err
	}
	v, ok := m.lists[ns.Key(key)]
	return v, ok, nil
}

// Set stores a value.
func (m *MapStore) Set(ns Namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[ns.Key(key)] = value
	return nil
}

// SetStrings stores a list value.
func (m *MapStore) SetStrings(ns Namespace, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[ns.Key(key)] = values
	return nil
}

// Ensure MapStore implements Store and Writer.
var (
	_ Store  = (*MapStore)(nil)
	_ Writer = (*MapStore)(nil)
)
