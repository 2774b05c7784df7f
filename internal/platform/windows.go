//go:build windows

package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/logging"
)

// WindowsServiceManager manages Windows services.
type WindowsServiceManager struct {
	params *config.RegistryStore
}

// NewServiceManager creates a new service manager for the current platform.
func NewServiceManager() ServiceManager {
	return &WindowsServiceManager{params: config.NewRegistryStore()}
}

// IsSupported returns true on Windows.
func (w *WindowsServiceManager) IsSupported() bool {
	return true
}

// Install registers the event log source, creates the service and writes its
// Parameters key.
func (w *WindowsServiceManager) Install(ctx context.Context, opts InstallOptions) error {
	exePath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Make path absolute
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	// Check if service already exists
	s, err := m.OpenService(opts.Name)
	if err == nil {
		s.Close()
		return fmt.Errorf("service %s already exists", opts.Name)
	}

	if err := logging.InstallSource(opts.Name); err != nil {
		return err
	}

	args := []string{domain.RunServiceCommand, opts.Name}
	binPath := fmt.Sprintf(`"%s" %s`, exePath, strings.Join(args, " "))

	startType := uint32(mgr.StartManual)
	if opts.AutoStart {
		startType = uint32(mgr.StartAutomatic)
	}

	displayName := opts.DisplayName
	if displayName == "" {
		displayName = opts.Name
	}
	description := opts.Description
	if description == "" {
		description = DefaultDescription
	}

	cfg := mgr.Config{
		ServiceType:      windows.SERVICE_WIN32_OWN_PROCESS,
		StartType:        startType,
		ErrorControl:     mgr.ErrorNormal,
		Dependencies:     opts.Dependencies,
		DisplayName:      displayName,
		Description:      description,
		ServiceStartName: opts.Username,
		Password:         opts.Password,
	}

	s, err = m.CreateService(opts.Name, exePath, cfg, args...)
	if err != nil {
		if rmErr := logging.RemoveSource(opts.Name); rmErr != nil {
			fmt.Printf("Warning: %v\n", rmErr)
		}
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer s.Close()

	ns := config.NamespaceFor(opts.Name)
	for key, value := range opts.Parameters {
		if err := w.params.Set(ns, key, value); err != nil {
			return fmt.Errorf("failed to write parameters: %w", err)
		}
	}
	for key, values := range opts.ListParameters {
		if err := w.params.SetStrings(ns, key, values); err != nil {
			return fmt.Errorf("failed to write parameters: %w", err)
		}
	}

	fmt.Printf("Service installed: %s\n", binPath)
	return nil
}

// Uninstall stops the service, deletes it and removes its event log source.
// Stop is re-requested every two seconds until the service reports Stopped
// or ctx is done.
func (w *WindowsServiceManager) Uninstall(ctx context.Context, name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("service %s not found: %w", name, err)
	}
	defer s.Close()

	for {
		status, err := s.Query()
		if err != nil {
			return fmt.Errorf("failed to query service status: %w", err)
		}
		if status.State == svc.Stopped {
			break
		}
		if _, err := s.Control(svc.Stop); err != nil && !errors.Is(err, windows.ERROR_SERVICE_CANNOT_ACCEPT_CTRL) {
			fmt.Printf("Warning: failed to stop service: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for service to stop: %w", ctx.Err())
		case <-time.After(uninstallPollInterval):
		}
	}

	if err := s.Delete(); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	if err := logging.RemoveSource(name); err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	return nil
}

// Start starts the Windows service.
func (w *WindowsServiceManager) Start(ctx context.Context, name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("service %s not found: %w", name, err)
	}
	defer s.Close()

	if err := s.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	return nil
}

// Stop requests a stop and waits for the service to report Stopped. The
// service finishes its current workload before it stops.
func (w *WindowsServiceManager) Stop(ctx context.Context, name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("service %s not found: %w", name, err)
	}
	defer s.Close()

	status, err := s.Control(svc.Stop)
	if err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	for status.State != svc.Stopped {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for service to stop: %w", ctx.Err())
		case <-time.After(300 * time.Millisecond):
		}
		status, err = s.Query()
		if err != nil {
			return fmt.Errorf("failed to query service status: %w", err)
		}
	}

	return nil
}

// Status returns the current service status.
func (w *WindowsServiceManager) Status(ctx context.Context, name string) (*ServiceStatus, error) {
	m, err := mgr.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to service manager: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return &ServiceStatus{
			State:   ServiceStateNotInstalled,
			Message: "Service is not installed",
		}, nil
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return nil, fmt.Errorf("failed to query service status: %w", err)
	}

	var state ServiceState
	switch status.State {
	case svc.Stopped:
		state = ServiceStateStopped
	case svc.StartPending:
		state = ServiceStateStarting
	case svc.Running:
		state = ServiceStateRunning
	case svc.StopPending:
		state = ServiceStateStopping
	default:
		state = ServiceStateUnknown
	}

	return &ServiceStatus{
		State: state,
		PID:   int(status.ProcessId),
	}, nil
}
