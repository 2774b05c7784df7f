// Package executor provides implementations of the Executor interface.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// CommandExecutor implements Executor by spawning an external process.
type CommandExecutor struct {
	env     map[string]string
	logger  *slog.Logger
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// CommandOption configures a CommandExecutor.
type CommandOption func(*CommandExecutor)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CommandOption {
	return func(e *CommandExecutor) {
		e.logger = logger
	}
}

// WithEnv sets environment variables to pass to the workload.
func WithEnv(env map[string]string) CommandOption {
	return func(e *CommandExecutor) {
		e.env = env
	}
}

// NewCommandExecutor creates a new CommandExecutor.
func NewCommandExecutor(opts ...CommandOption) *CommandExecutor {
	e := &CommandExecutor{
		logger:  slog.Default(),
		command: exec.CommandContext,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Execute runs the workload once, appending its combined output to w.LogFile.
// If the log file cannot be opened the command is not spawned.
func (e *CommandExecutor) Execute(ctx context.Context, w domain.Workload) *domain.WorkloadResult {
	result := domain.NewWorkloadResult(w)

	f, err := os.OpenFile(w.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		e.logger.Error("unable to open workload log file", "path", w.LogFile, "error", err)
		result.Complete(fmt.Errorf("%w: opening log file: %w", domain.ErrWorkloadExecution, err))
		return result
	}
	defer f.Close()

	e.logger.Info("running workload", "command", w.Command, "args", w.Args, "log_file", w.LogFile)

	// #nosec G204 -- command and args come from the service's own configuration record
	cmd := e.command(ctx, w.Command, w.Args...)
	cmd.Stdout = f
	cmd.Stderr = f

	// Set environment variables if configured
	if len(e.env) > 0 {
		cmd.Env = os.Environ()
		for k, v := range e.env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
	}

	if err := cmd.Run(); err != nil {
		result.Complete(fmt.Errorf("%w: %s: %w", domain.ErrWorkloadExecution, w.Command, err))
		e.logger.Error("workload failed",
			"command", w.Command,
			"exit_code", result.ExitCode,
			"duration", result.Duration,
			"error", err,
		)
		return result
	}

	result.Complete(nil)
	e.logger.Info("workload completed", "command", w.Command, "duration", result.Duration)
	return result
}

// Ensure CommandExecutor implements domain.Executor.
var _ domain.Executor = (*CommandExecutor)(nil)
