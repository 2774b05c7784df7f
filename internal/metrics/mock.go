package metrics

import (
	"context"
	"sync"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// MockPusher is a mock implementation of domain.MetricsPusher for testing.
type MockPusher struct {
	PushFunc func(ctx context.Context, identity string, result *domain.WorkloadResult) error

	mu sync.Mutex
	// PushedResults stores all results that have been pushed.
	PushedResults []*domain.WorkloadResult
}

// Push calls the mock PushFunc and stores the result.
func (m *MockPusher) Push(ctx context.Context, identity string, result *domain.WorkloadResult) error {
	m.mu.Lock()
	m.PushedResults = append(m.PushedResults, result)
	m.mu.Unlock()

	if m.PushFunc != nil {
		return m.PushFunc(ctx, identity, result)
	}
	return nil
}

// Reset clears all stored results.
func (m *MockPusher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PushedResults = nil
}

// Ensure MockPusher implements domain.MetricsPusher.
var _ domain.MetricsPusher = (*MockPusher)(nil)
