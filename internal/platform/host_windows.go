//go:build windows

package platform

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/windows/svc"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// statusSendTimeout bounds how long a status report may wait on the SCM
// before the supervisor is considered unreachable.
const statusSendTimeout = 30 * time.Second

// NewServiceHost returns the SCM host when running as a Windows service,
// and a ForegroundHost in an interactive session.
func NewServiceHost() ServiceHost {
	return &windowsHost{}
}

type windowsHost struct{}

// Run dispatches the activation through the SCM.
func (h *windowsHost) Run(ctx context.Context, identity string, a domain.Activator) error {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return fmt.Errorf("failed to determine session type: %w", err)
	}
	if !isService {
		return NewForegroundHost().Run(ctx, identity, a)
	}

	ws := &windowsService{ctx: ctx, identity: identity, activator: a}
	if err := svc.Run(identity, ws); err != nil {
		return fmt.Errorf("%w: connecting to service control manager: %w", domain.ErrSupervisorProtocol, err)
	}
	return ws.err
}

// windowsService implements svc.Handler.
type windowsService struct {
	ctx       context.Context
	identity  string
	activator domain.Activator
	err       error
}

func (ws *windowsService) Execute(args []string, r <-chan svc.ChangeRequest, changes chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	sup := newSCMSupervisor(r, changes)
	defer sup.close()

	ws.err = ws.activator.Activate(ws.ctx, ws.identity, sup)
	if ws.err != nil {
		return true, 1
	}
	return false, 0
}

// scmSupervisor adapts the svc.Handler channels to domain.Supervisor.
type scmSupervisor struct {
	requests <-chan svc.ChangeRequest
	changes  chan<- svc.Status
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

func newSCMSupervisor(r <-chan svc.ChangeRequest, changes chan<- svc.Status) *scmSupervisor {
	return &scmSupervisor{
		requests: r,
		changes:  changes,
		done:     make(chan struct{}),
	}
}

// Register starts the goroutine that answers control requests.
func (s *scmSupervisor) Register(identity string, handler domain.ControlHandler) (domain.StatusHandle, error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-s.done:
				return
			case c, ok := <-s.requests:
				if !ok {
					return
				}
				// The SCM is always acknowledged with NO_ERROR; the handler's
				// answer is only logged by the handler itself.
				handler(controlRequest(c.Cmd))
				if c.Cmd == svc.Interrogate {
					select {
					case s.changes <- c.CurrentStatus:
					case <-s.done:
						return
					}
				}
			}
		}
	}()
	return s, nil
}

// SetStatus forwards st to the SCM.
func (s *scmSupervisor) SetStatus(st domain.Status) error {
	timer := time.NewTimer(statusSendTimeout)
	defer timer.Stop()

	select {
	case s.changes <- svcStatus(st):
		return nil
	case <-s.done:
		return domain.ErrSupervisorUnreachable
	case <-timer.C:
		return fmt.Errorf("%w: no response after %s", domain.ErrSupervisorUnreachable, statusSendTimeout)
	}
}

func (s *scmSupervisor) close() {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
}

func svcStatus(st domain.Status) svc.Status {
	var accepts svc.Accepted
	if st.Accepts&domain.AcceptStop != 0 {
		accepts |= svc.AcceptStop
	}
	return svc.Status{
		State:      svcState(st.State),
		Accepts:    accepts,
		CheckPoint: st.Checkpoint,
		WaitHint:   uint32(st.WaitHint / time.Millisecond),
	}
}

func svcState(s domain.LifecycleState) svc.State {
	switch s {
	case domain.StateStartPending:
		return svc.StartPending
	case domain.StateRunning:
		return svc.Running
	case domain.StateStopPending:
		return svc.StopPending
	default:
		return svc.Stopped
	}
}

func controlRequest(c svc.Cmd) domain.ControlRequest {
	switch c {
	case svc.Interrogate:
		return domain.ControlInterrogate
	case svc.Stop:
		return domain.ControlStop
	case svc.Pause:
		return domain.ControlPause
	case svc.Continue:
		return domain.ControlContinue
	default:
		return domain.ControlOther
	}
}

// Ensure scmSupervisor implements domain.Supervisor and domain.StatusHandle.
var (
	_ domain.Supervisor   = (*scmSupervisor)(nil)
	_ domain.StatusHandle = (*scmSupervisor)(nil)
)
