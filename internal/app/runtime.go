// Package app provides the core application logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/executor"
	"github.com/sharkusmanch/svcwrap/internal/logging"
	"github.com/sharkusmanch/svcwrap/internal/metrics"
)

const (
	// DefaultWaitHint is the wait hint sent with pending states.
	DefaultWaitHint = 30 * time.Second

	// DefaultPushTimeout bounds the metrics push after the workload.
	DefaultPushTimeout = 10 * time.Second
)

// LogOpener initializes the system log for a service instance.
type LogOpener func(identity string, level domain.LogLevel) (*slog.Logger, io.Closer, error)

// Runtime drives one service activation: configuration, logging,
// registration with the supervisor, the workload and the stop sequence.
type Runtime struct {
	store         config.Store
	openLog       LogOpener
	executor      domain.Executor
	metricsPusher domain.MetricsPusher
	chdir         func(dir string) error
	stderr        io.Writer
	startWaitHint time.Duration
	stopWaitHint  time.Duration
	pushTimeout   time.Duration
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithStore sets the configuration backend.
func WithStore(s config.Store) RuntimeOption {
	return func(r *Runtime) {
		r.store = s
	}
}

// WithLogOpener sets how the system log is opened.
func WithLogOpener(open LogOpener) RuntimeOption {
	return func(r *Runtime) {
		r.openLog = open
	}
}

// WithExecutor sets the executor. By default a CommandExecutor is created
// once logging is available.
func WithExecutor(e domain.Executor) RuntimeOption {
	return func(r *Runtime) {
		r.executor = e
	}
}

// WithMetricsPusher sets the metrics pusher. Without one, metrics are only
// pushed when the configuration names a Pushgateway.
func WithMetricsPusher(m domain.MetricsPusher) RuntimeOption {
	return func(r *Runtime) {
		r.metricsPusher = m
	}
}

// WithChdir replaces os.Chdir.
func WithChdir(chdir func(dir string) error) RuntimeOption {
	return func(r *Runtime) {
		r.chdir = chdir
	}
}

// WithStderr sets where diagnostics go before the system log is available.
func WithStderr(w io.Writer) RuntimeOption {
	return func(r *Runtime) {
		r.stderr = w
	}
}

// WithWaitHints sets the wait hints for the start and stop pending states.
func WithWaitHints(start, stop time.Duration) RuntimeOption {
	return func(r *Runtime) {
		r.startWaitHint = start
		r.stopWaitHint = stop
	}
}

// NewRuntime creates a new Runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		openLog:       logging.Open,
		chdir:         os.Chdir,
		stderr:        os.Stderr,
		startWaitHint: DefaultWaitHint,
		stopWaitHint:  DefaultWaitHint,
		pushTimeout:   DefaultPushTimeout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.store == nil {
		r.store = config.NewDefaultStore()
	}

	return r
}

// Activate runs the service named identity under sup until it has reported
// Stopped. A non-nil error means the activation could not run and the
// process should exit non-zero; workload failures are logged, not returned.
func (r *Runtime) Activate(ctx context.Context, identity string, sup domain.Supervisor) error {
	cfg, err := config.NewLoader(r.store).Load(identity)
	if err != nil {
		fmt.Fprintf(r.stderr, "%s: %v\n", identity, err)
		return err
	}

	logger, closer, err := r.openLog(identity, cfg.LogLevel)
	if err != nil {
		if !errors.Is(err, domain.ErrLoggingInit) {
			err = fmt.Errorf("%w: %w", domain.ErrLoggingInit, err)
		}
		fmt.Fprintf(r.stderr, "%s: %v\n", identity, err)
		return err
	}
	defer closer.Close()

	logger = logger.With("service", identity, "activation", uuid.NewString())
	logger.Debug("setting up service",
		"log_level", cfg.LogLevel,
		"work_dir", cfg.WorkDir,
		"command", cfg.Command,
	)

	if cfg.HasWorkDir() {
		if err := r.chdir(cfg.WorkDir); err != nil {
			err = fmt.Errorf("%w: %s: %w", domain.ErrWorkingDirectory, cfg.WorkDir, err)
			logger.Error("unable to change working directory", "error", err)
			return err
		}
		logger.Debug("changed working directory", "path", cfg.WorkDir)
	}

	bridge := NewControlBridge(logger)
	handle, err := sup.Register(identity, bridge.Handle)
	if err != nil {
		if !errors.Is(err, domain.ErrSupervisorProtocol) {
			err = fmt.Errorf("%w: registering control handler: %w", domain.ErrSupervisorProtocol, err)
		}
		logger.Error("unable to register control handler", "error", err)
		return err
	}

	reporter := NewStatusReporter(handle, logger)
	bridge.Attach(reporter)

	if err := r.report(reporter, domain.StateStartPending, domain.AcceptNone, r.startWaitHint); err != nil {
		return err
	}
	if err := r.report(reporter, domain.StateRunning, domain.AcceptStop, 0); err != nil {
		return err
	}

	result := r.executorFor(logger).Execute(ctx, cfg.Workload())
	logger.Info("workload finished",
		"success", result.Success,
		"exit_code", result.ExitCode,
		"duration", result.Duration,
	)
	if bridge.StopRequested() {
		logger.Warn("stop was requested while the workload was running; it ran to completion")
	}

	r.pushMetrics(ctx, logger, identity, cfg, result)

	if err := r.report(reporter, domain.StateStopPending, domain.AcceptNone, r.stopWaitHint); err != nil {
		return err
	}
	if err := r.report(reporter, domain.StateStopped, domain.AcceptNone, 0); err != nil {
		return err
	}

	logger.Debug("service terminated")
	return nil
}

// report publishes a transition. Only a lost supervisor aborts the
// activation; other publish failures are logged by the reporter.
func (r *Runtime) report(rep *StatusReporter, state domain.LifecycleState, accepts domain.Accepted, hint time.Duration) error {
	err := rep.Report(state, accepts, hint)
	if errors.Is(err, domain.ErrSupervisorUnreachable) {
		return err
	}
	return nil
}

func (r *Runtime) executorFor(logger *slog.Logger) domain.Executor {
	if r.executor != nil {
		return r.executor
	}
	return executor.NewCommandExecutor(executor.WithLogger(logger))
}

func (r *Runtime) pushMetrics(ctx context.Context, logger *slog.Logger, identity string, cfg config.ServiceConfig, result *domain.WorkloadResult) {
	pusher := r.metricsPusher
	if pusher == nil {
		if cfg.PushgatewayURL == "" {
			return
		}
		pusher = metrics.NewPushgatewayClient(cfg.PushgatewayURL, metrics.WithLogger(logger))
	}

	ctx, cancel := context.WithTimeout(ctx, r.pushTimeout)
	defer cancel()

	if err := pusher.Push(ctx, identity, result); err != nil {
		logger.Warn("failed to push metrics", "error", err)
	}
}

// Ensure Runtime implements domain.Activator.
var _ domain.Activator = (*Runtime)(nil)
