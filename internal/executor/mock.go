package executor

import (
	"context"
	"sync"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// MockExecutor is a mock implementation of domain.Executor for testing.
type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, w domain.Workload) *domain.WorkloadResult

	mu        sync.Mutex
	workloads []domain.Workload
}

// Execute calls the mock ExecuteFunc and records the workload.
func (m *MockExecutor) Execute(ctx context.Context, w domain.Workload) *domain.WorkloadResult {
	m.mu.Lock()
	m.workloads = append(m.workloads, w)
	m.mu.Unlock()

	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, w)
	}
	result := domain.NewWorkloadResult(w)
	result.Complete(nil)
	return result
}

// Workloads returns the workloads executed so far.
func (m *MockExecutor) Workloads() []domain.Workload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Workload(nil), m.workloads...)
}

// Ensure MockExecutor implements domain.Executor.
var _ domain.Executor = (*MockExecutor)(nil)
