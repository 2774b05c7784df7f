package domain

import "context"

// ServiceState represents the state of an installed service as seen by the admin tooling.
type ServiceState string

const (
	// ServiceStateUnknown indicates the state cannot be determined.
	ServiceStateUnknown ServiceState = "unknown"
	// ServiceStateStopped indicates the service is stopped.
	ServiceStateStopped ServiceState = "stopped"
	// ServiceStateStarting indicates the service is starting.
	ServiceStateStarting ServiceState = "starting"
	// ServiceStateRunning indicates the service is running.
	ServiceStateRunning ServiceState = "running"
	// ServiceStateStopping indicates the service is stopping.
	ServiceStateStopping ServiceState = "stopping"
	// ServiceStateNotInstalled indicates the service is not installed.
	ServiceStateNotInstalled ServiceState = "not_installed"
)

// String returns the string representation of the service state.
func (s ServiceState) String() string {
	return string(s)
}

// ServiceStatus contains information about the service status.
type ServiceStatus struct {
	// State is the current service state.
	State ServiceState `json:"state"`

	// PID is the process ID if running.
	PID int `json:"pid,omitempty"`

	// Message provides additional status information.
	Message string `json:"message,omitempty"`
}

// InstallOptions contains options for service installation.
type InstallOptions struct {
	// Name is the service identity.
	Name string

	// DisplayName defaults to Name.
	DisplayName string

	// Description defaults to a generic wrapper description.
	Description string

	// Dependencies are services that must start first.
	Dependencies []string

	// Username is the account to run the service as. Empty means LocalSystem.
	Username string

	// Password is the password for the account.
	Password string

	// AutoStart enables automatic service start on boot.
	AutoStart bool

	// Parameters are written to the per-instance configuration record.
	Parameters map[string]string

	// ListParameters are multi-valued entries of the configuration record.
	ListParameters map[string][]string
}

// ServiceManager defines the interface for managing system services.
// Implementations are platform-specific.
type ServiceManager interface {
	// Install registers the service, its event log source and its parameters.
	Install(ctx context.Context, opts InstallOptions) error

	// Uninstall stops, removes and deregisters the service.
	Uninstall(ctx context.Context, name string) error

	// Start starts the service.
	Start(ctx context.Context, name string) error

	// Stop stops the service.
	Stop(ctx context.Context, name string) error

	// Status returns the current service status.
	Status(ctx context.Context, name string) (*ServiceStatus, error)

	// IsSupported returns true if this service manager is supported on the current platform.
	IsSupported() bool
}
