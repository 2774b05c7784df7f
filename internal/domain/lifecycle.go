package domain

import (
	"context"
	"time"
)

// LifecycleState is the coarse phase of a service activation as reported to the supervisor.
type LifecycleState int

// States in the order an activation moves through them.
const (
	StateStartPending LifecycleState = iota + 1
	StateRunning
	StateStopPending
	StateStopped
)

// String returns the string representation of the lifecycle state.
func (s LifecycleState) String() string {
	switch s {
	case StateStartPending:
		return "start_pending"
	case StateRunning:
		return "running"
	case StateStopPending:
		return "stop_pending"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// IsPending returns true for the transitional states that carry a wait hint.
func (s LifecycleState) IsPending() bool {
	return s == StateStartPending || s == StateStopPending
}

// Accepted is the set of control requests the service currently accepts.
type Accepted uint32

const (
	// AcceptNone accepts no control requests.
	AcceptNone Accepted = 0
	// AcceptStop accepts Stop requests.
	AcceptStop Accepted = 1
)

// Status is one lifecycle report published to the supervisor.
type Status struct {
	State      LifecycleState
	Accepts    Accepted
	Checkpoint uint32
	WaitHint   time.Duration
}

// ControlRequest is a command delivered asynchronously by the supervisor.
type ControlRequest int

const (
	ControlInterrogate ControlRequest = iota + 1
	ControlStop
	ControlPause
	ControlContinue
	ControlOther
)

// String returns the string representation of the control request.
func (c ControlRequest) String() string {
	switch c {
	case ControlInterrogate:
		return "interrogate"
	case ControlStop:
		return "stop"
	case ControlPause:
		return "pause"
	case ControlContinue:
		return "continue"
	default:
		return "other"
	}
}

// ControlAck is the acknowledgement returned for a control request.
type ControlAck int

const (
	AckNoError ControlAck = iota
	AckNotImplemented
)

// String returns the string representation of the acknowledgement.
func (a ControlAck) String() string {
	if a == AckNoError {
		return "no_error"
	}
	return "not_implemented"
}

// ControlHandler receives control requests. It must return promptly.
type ControlHandler func(req ControlRequest) ControlAck

// StatusHandle publishes lifecycle reports. Implementations must be safe for
// concurrent use.
type StatusHandle interface {
	SetStatus(st Status) error
}

// Supervisor is the host service manager as seen from inside the service.
type Supervisor interface {
	// Register installs handler for control requests and returns the handle
	// used for status reports.
	Register(identity string, handler ControlHandler) (StatusHandle, error)
}

// Activator runs one service activation against a supervisor.
type Activator interface {
	Activate(ctx context.Context, identity string, sup Supervisor) error
}

// RunServiceCommand is the first launch argument the supervisor passes to an
// installed instance, followed by the service identity.
const RunServiceCommand = "run-service"
