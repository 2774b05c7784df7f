package platform

import (
	"context"
	"sync"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// MockSupervisor is a mock implementation of domain.Supervisor for testing.
// It is also the StatusHandle it returns.
type MockSupervisor struct {
	RegisterErr   error
	SetStatusFunc func(st domain.Status) error

	mu       sync.Mutex
	identity string
	handler  domain.ControlHandler
	statuses []domain.Status
}

// Register records the handler, or fails with RegisterErr.
func (m *MockSupervisor) Register(identity string, handler domain.ControlHandler) (domain.StatusHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.identity = identity
	if m.RegisterErr != nil {
		return nil, m.RegisterErr
	}
	m.handler = handler
	return m, nil
}

// SetStatus records every attempted report and calls SetStatusFunc.
func (m *MockSupervisor) SetStatus(st domain.Status) error {
	m.mu.Lock()
	m.statuses = append(m.statuses, st)
	m.mu.Unlock()

	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(st)
	}
	return nil
}

// Send delivers a control request to the registered handler.
func (m *MockSupervisor) Send(req domain.ControlRequest) domain.ControlAck {
	m.mu.Lock()
	handler := m.handler
	m.mu.Unlock()

	if handler == nil {
		return domain.AckNotImplemented
	}
	return handler(req)
}

// Registered reports whether a handler was registered.
func (m *MockSupervisor) Registered() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.handler != nil
}

// Identity returns the identity passed to Register.
func (m *MockSupervisor) Identity() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.identity
}

// Statuses returns a copy of the attempted reports.
func (m *MockSupervisor) Statuses() []domain.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Status(nil), m.statuses...)
}

// States returns the state of each attempted report.
func (m *MockSupervisor) States() []domain.LifecycleState {
	m.mu.Lock()
	defer m.mu.Unlock()

	states := make([]domain.LifecycleState, len(m.statuses))
	for i, st := range m.statuses {
		states[i] = st.State
	}
	return states
}

// MockServiceManager is a mock implementation of ServiceManager for testing.
type MockServiceManager struct {
	InstallFunc   func(ctx context.Context, opts InstallOptions) error
	UninstallFunc func(ctx context.Context, name string) error
	StartFunc     func(ctx context.Context, name string) error
	StopFunc      func(ctx context.Context, name string) error
	StatusFunc    func(ctx context.Context, name string) (*ServiceStatus, error)

	mu       sync.Mutex
	installs []InstallOptions
}

// Install calls InstallFunc and records opts.
func (m *MockServiceManager) Install(ctx context.Context, opts InstallOptions) error {
	m.mu.Lock()
	m.installs = append(m.installs, opts)
	m.mu.Unlock()

	if m.InstallFunc != nil {
		return m.InstallFunc(ctx, opts)
	}
	return nil
}

// Uninstall calls UninstallFunc.
func (m *MockServiceManager) Uninstall(ctx context.Context, name string) error {
	if m.UninstallFunc != nil {
		return m.UninstallFunc(ctx, name)
	}
	return nil
}

// Start calls StartFunc.
func (m *MockServiceManager) Start(ctx context.Context, name string) error {
	if m.StartFunc != nil {
		return m.StartFunc(ctx, name)
	}
	return nil
}

// Stop calls StopFunc.
func (m *MockServiceManager) Stop(ctx context.Context, name string) error {
	if m.StopFunc != nil {
		return m.StopFunc(ctx, name)
	}
	return nil
}

// Status calls StatusFunc.
func (m *MockServiceManager) Status(ctx context.Context, name string) (*ServiceStatus, error) {
	if m.StatusFunc != nil {
		return m.StatusFunc(ctx, name)
	}
	return &ServiceStatus{State: ServiceStateStopped}, nil
}

// IsSupported returns true.
func (m *MockServiceManager) IsSupported() bool {
	return true
}

// Installs returns the options passed to Install.
func (m *MockServiceManager) Installs() []InstallOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]InstallOptions(nil), m.installs...)
}

// Ensure the mocks implement their interfaces.
var (
	_ domain.Supervisor   = (*MockSupervisor)(nil)
	_ domain.StatusHandle = (*MockSupervisor)(nil)
	_ ServiceManager      = (*MockServiceManager)(nil)
)
