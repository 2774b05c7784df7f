package platform

import (
	"fmt"
	"io"
	"sync"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// ConsoleSupervisor is a domain.Supervisor that prints status reports to a
// console and lets the caller deliver control requests.
type ConsoleSupervisor struct {
	out io.Writer

	mu       sync.Mutex
	identity string
	handler  domain.ControlHandler
}

// NewConsoleSupervisor creates a ConsoleSupervisor writing to out.
func NewConsoleSupervisor(out io.Writer) *ConsoleSupervisor {
	return &ConsoleSupervisor{out: out}
}

// Register records the control handler.
func (s *ConsoleSupervisor) Register(identity string, handler domain.ControlHandler) (domain.StatusHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = identity
	s.handler = handler
	fmt.Fprintf(s.out, "%s: registered\n", identity)
	return s, nil
}

// SetStatus prints the report.
func (s *ConsoleSupervisor) SetStatus(st domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := fmt.Fprintf(s.out, "%s: %s (accepts=%d checkpoint=%d wait_hint=%s)\n",
		s.identity, st.State, st.Accepts, st.Checkpoint, st.WaitHint)
	return err
}

// Deliver passes req to the registered handler. Before registration every
// request is answered with NotImplemented.
func (s *ConsoleSupervisor) Deliver(req domain.ControlRequest) domain.ControlAck {
	s.mu.Lock()
	handler, identity := s.handler, s.identity
	s.mu.Unlock()

	if handler == nil {
		return domain.AckNotImplemented
	}
	ack := handler(req)

	s.mu.Lock()
	fmt.Fprintf(s.out, "%s: control %s: %s\n", identity, req, ack)
	s.mu.Unlock()
	return ack
}

// Ensure ConsoleSupervisor implements domain.Supervisor and domain.StatusHandle.
var (
	_ domain.Supervisor   = (*ConsoleSupervisor)(nil)
	_ domain.StatusHandle = (*ConsoleSupervisor)(nil)
)
