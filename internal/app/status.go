package app

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// StatusReporter owns the lifecycle state of one activation and publishes
// every transition to the supervisor.
type StatusReporter struct {
	handle domain.StatusHandle
	logger *slog.Logger

	mu         sync.Mutex
	current    domain.LifecycleState
	checkpoint uint32
	history    []domain.Status
}

// NewStatusReporter creates a StatusReporter publishing through handle.
func NewStatusReporter(handle domain.StatusHandle, logger *slog.Logger) *StatusReporter {
	return &StatusReporter{
		handle: handle,
		logger: logger,
	}
}

// Report moves to state and publishes it. States only move forward; a pending
// state may be re-reported, which bumps its checkpoint.
//
// A failed publish is logged and returned wrapped in domain.ErrSupervisorProtocol;
// the state still advances so the remaining sequence can be attempted.
func (r *StatusReporter) Report(state domain.LifecycleState, accepts domain.Accepted, waitHint time.Duration) error {
	r.mu.Lock()
	switch {
	case state < r.current, state == r.current && !state.IsPending():
		prev := r.current
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, prev, state)
	case state == r.current:
		r.checkpoint++
	default:
		r.checkpoint = 0
	}
	r.current = state
	st := domain.Status{
		State:      state,
		Accepts:    accepts,
		Checkpoint: r.checkpoint,
		WaitHint:   waitHint,
	}
	r.mu.Unlock()

	// The handle may block until the supervisor drains it; the lock is not
	// held so control requests can still read the current state.
	if err := r.handle.SetStatus(st); err != nil {
		r.logger.Error("failed to report service status", "state", state, "error", err)
		return fmt.Errorf("%w: reporting %s: %w", domain.ErrSupervisorProtocol, state, err)
	}

	r.mu.Lock()
	r.history = append(r.history, st)
	r.mu.Unlock()

	r.logger.Debug("service status reported",
		"state", state,
		"checkpoint", st.Checkpoint,
		"wait_hint", waitHint,
	)
	return nil
}

// Current returns the most recently reported state, or zero before the first report.
func (r *StatusReporter) Current() domain.LifecycleState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns the statuses published successfully so far.
func (r *StatusReporter) History() []domain.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Status(nil), r.history...)
}
