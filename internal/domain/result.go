// Package domain defines core business types and interfaces.
package domain

import (
	"errors"
	"os/exec"
	"time"
)

// WorkloadResult contains the outcome of one workload execution attempt.
type WorkloadResult struct {
	Command   string        `json:"command"`
	Args      []string      `json:"args,omitempty"`
	Success   bool          `json:"success"`
	ExitCode  int           `json:"exit_code"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
}

// NewWorkloadResult creates a new WorkloadResult for the given workload.
// ExitCode stays -1 until the child process has actually run.
func NewWorkloadResult(w Workload) *WorkloadResult {
	return &WorkloadResult{
		Command:   w.Command,
		Args:      w.Args,
		ExitCode:  -1,
		StartTime: time.Now(),
	}
}

// Complete marks the result as complete. A nil error means success.
func (r *WorkloadResult) Complete(err error) {
	r.EndTime = time.Now()
	r.Duration = r.EndTime.Sub(r.StartTime)
	r.Success = err == nil

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		r.ExitCode = 0
	case errors.As(err, &exitErr):
		r.ExitCode = exitErr.ExitCode()
	}

	if err != nil {
		r.Error = err.Error()
	}
}
