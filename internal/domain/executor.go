package domain

import "context"

// Workload describes the external command a service activation runs.
type Workload struct {
	// Command is the program to spawn.
	Command string

	// Args is the fixed argument list passed to Command.
	Args []string

	// LogFile receives the merged stdout/stderr of the run, opened in append mode.
	LogFile string
}

// Executor defines the interface for running a workload.
// This abstraction allows for different implementations (real process, mock, etc.).
type Executor interface {
	// Execute runs the workload once and blocks until it finishes.
	// Failures are reported in the result, never returned.
	Execute(ctx context.Context, w Workload) *WorkloadResult
}
