//go:build windows

package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/windows/svc"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

func TestSvcStatus(t *testing.T) {
	st := svcStatus(domain.Status{
		State:      domain.StateStartPending,
		Accepts:    domain.AcceptNone,
		Checkpoint: 2,
		WaitHint:   30 * time.Second,
	})

	assert.Equal(t, svc.StartPending, st.State)
	assert.Equal(t, svc.Accepted(0), st.Accepts)
	assert.Equal(t, uint32(2), st.CheckPoint)
	assert.Equal(t, uint32(30000), st.WaitHint)

	running := svcStatus(domain.Status{State: domain.StateRunning, Accepts: domain.AcceptStop})
	assert.Equal(t, svc.Running, running.State)
	assert.Equal(t, svc.AcceptStop, running.Accepts)
}

func TestControlRequest(t *testing.T) {
	tests := []struct {
		cmd  svc.Cmd
		want domain.ControlRequest
	}{
		{svc.Interrogate, domain.ControlInterrogate},
		{svc.Stop, domain.ControlStop},
		{svc.Pause, domain.ControlPause},
		{svc.Continue, domain.ControlContinue},
		{svc.Shutdown, domain.ControlOther},
		{svc.ParamChange, domain.ControlOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, controlRequest(tt.cmd))
	}
}

func TestSCMSupervisor_InterrogateEchoesCurrentStatus(t *testing.T) {
	requests := make(chan svc.ChangeRequest)
	changes := make(chan svc.Status, 4)
	sup := newSCMSupervisor(requests, changes)
	defer sup.close()

	got := make(chan domain.ControlRequest, 4)
	_, err := sup.Register("svcfoo", func(req domain.ControlRequest) domain.ControlAck {
		got <- req
		return domain.AckNoError
	})
	require.NoError(t, err)

	current := svc.Status{State: svc.Running, Accepts: svc.AcceptStop}
	requests <- svc.ChangeRequest{Cmd: svc.Interrogate, CurrentStatus: current}

	assert.Equal(t, domain.ControlInterrogate, <-got)
	assert.Equal(t, current, <-changes)
}

func TestSCMSupervisor_SetStatusAfterClose(t *testing.T) {
	sup := newSCMSupervisor(make(chan svc.ChangeRequest), make(chan svc.Status))
	sup.close()

	err := sup.SetStatus(domain.Status{State: domain.StateStopped})
	assert.True(t, errors.Is(err, domain.ErrSupervisorUnreachable))
}
