package app

import (
	"log/slog"
	"sync/atomic"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// ControlBridge answers control requests from the supervisor. It only logs
// and acknowledges; it never waits on the workload.
type ControlBridge struct {
	logger        *slog.Logger
	reporter      atomic.Pointer[StatusReporter]
	stopRequested atomic.Bool
}

// NewControlBridge creates a ControlBridge.
func NewControlBridge(logger *slog.Logger) *ControlBridge {
	return &ControlBridge{logger: logger}
}

// Attach lets interrogations report the state owned by r.
func (b *ControlBridge) Attach(r *StatusReporter) {
	b.reporter.Store(r)
}

// Handle is the domain.ControlHandler registered with the supervisor.
func (b *ControlBridge) Handle(req domain.ControlRequest) domain.ControlAck {
	switch req {
	case domain.ControlInterrogate:
		b.logger.Debug("svc signal received: interrogate", "state", b.state())
		return domain.AckNoError

	case domain.ControlStop:
		// Acknowledged only. The workload runs to completion and the
		// service reports Stopped afterwards.
		b.stopRequested.Store(true)
		b.logger.Debug("svc signal received: stop", "state", b.state())
		return domain.AckNoError

	case domain.ControlPause, domain.ControlContinue:
		b.logger.Debug("svc signal received: "+req.String(), "state", b.state())
		return domain.AckNotImplemented

	default:
		b.logger.Debug("svc signal received: other", "state", b.state())
		return domain.AckNotImplemented
	}
}

// StopRequested reports whether a Stop request has been acknowledged.
func (b *ControlBridge) StopRequested() bool {
	return b.stopRequested.Load()
}

func (b *ControlBridge) state() domain.LifecycleState {
	if r := b.reporter.Load(); r != nil {
		return r.Current()
	}
	return 0
}
