package domain

import (
	"errors"
	"fmt"
)

// Error classes raised while bringing a service activation up and down.
// Callers wrap these with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	// ErrConfigBackend means the configuration backend could not be read.
	ErrConfigBackend = errors.New("configuration backend error")

	// ErrLoggingInit means the system log channel could not be opened.
	ErrLoggingInit = errors.New("logging initialization error")

	// ErrWorkingDirectory means the configured working directory could not be entered.
	ErrWorkingDirectory = errors.New("working directory error")

	// ErrSupervisorProtocol means registration with, or a status report to, the supervisor failed.
	ErrSupervisorProtocol = errors.New("supervisor protocol error")

	// ErrSupervisorUnreachable means the supervisor no longer accepts status reports.
	ErrSupervisorUnreachable = fmt.Errorf("%w: supervisor unreachable", ErrSupervisorProtocol)

	// ErrWorkloadExecution means the workload could not be spawned or exited non-zero.
	ErrWorkloadExecution = errors.New("workload execution error")

	// ErrInvalidTransition means a lifecycle report would move the state backwards.
	ErrInvalidTransition = errors.New("invalid lifecycle transition")

	// ErrInvalidInvocation means the service-mode arguments were malformed.
	ErrInvalidInvocation = errors.New("invalid service invocation")
)

// IsFatal reports whether err belongs to a class that aborts startup.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfigBackend) ||
		errors.Is(err, ErrLoggingInit) ||
		errors.Is(err, ErrWorkingDirectory) ||
		errors.Is(err, ErrSupervisorProtocol) ||
		errors.Is(err, ErrInvalidInvocation)
}
