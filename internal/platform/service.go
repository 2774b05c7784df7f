// Package platform provides platform-specific service management.
package platform

import (
	"context"
	"time"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// InstallOptions contains options for service installation.
type InstallOptions = domain.InstallOptions

// ServiceStatus contains service status information.
type ServiceStatus = domain.ServiceStatus

// ServiceState represents service state.
type ServiceState = domain.ServiceState

// Service state constants.
const (
	ServiceStateUnknown      = domain.ServiceStateUnknown
	ServiceStateStopped      = domain.ServiceStateStopped
	ServiceStateStarting     = domain.ServiceStateStarting
	ServiceStateRunning      = domain.ServiceStateRunning
	ServiceStateStopping     = domain.ServiceStateStopping
	ServiceStateNotInstalled = domain.ServiceStateNotInstalled
)

const (
	// DefaultDescription is used when install is not given a description.
	DefaultDescription = "Service Wrapper Service"

	// uninstallPollInterval is how often uninstall re-requests a stop.
	uninstallPollInterval = 2 * time.Second
)

// ServiceManager defines the interface for managing system services.
type ServiceManager = domain.ServiceManager

// ServiceHost connects a service activation to the host supervisor.
type ServiceHost interface {
	// Run hands control to the supervisor and returns once the activation
	// has finished.
	Run(ctx context.Context, identity string, a domain.Activator) error
}
