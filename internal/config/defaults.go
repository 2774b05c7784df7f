// Package config loads the per-instance service configuration record.
package config

import "github.com/sharkusmanch/svcwrap/internal/domain"

// Value names inside a service's Parameters record.
const (
	KeyLogLevel       = "LogLevel"
	KeyWorkDir        = "WorkDir"
	KeyCommand        = "Command"
	KeyArguments      = "Arguments"
	KeyLogFile        = "LogFile"
	KeyPushgatewayURL = "PushgatewayURL"
)

// Default configuration values.
const (
	DefaultLogLevel = domain.LogLevelError

	// InstallLogLevel is written into a fresh Parameters record by install-service.
	InstallLogLevel = domain.LogLevelWarn

	DefaultPushgatewayURL = ""
)

// DefaultArguments returns the argument list used when none is configured.
func DefaultArguments() []string {
	return append([]string(nil), defaultArguments...)
}
