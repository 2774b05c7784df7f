package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/platform"
)

func TestControlBridge_Dispatch(t *testing.T) {
	tests := []struct {
		req  domain.ControlRequest
		want domain.ControlAck
	}{
		{domain.ControlInterrogate, domain.AckNoError},
		{domain.ControlStop, domain.AckNoError},
		{domain.ControlPause, domain.AckNotImplemented},
		{domain.ControlContinue, domain.AckNotImplemented},
		{domain.ControlOther, domain.AckNotImplemented},
		{domain.ControlRequest(99), domain.AckNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.req.String(), func(t *testing.T) {
			b := NewControlBridge(discardLogger())
			assert.Equal(t, tt.want, b.Handle(tt.req))
		})
	}
}

func TestControlBridge_StopRequested(t *testing.T) {
	b := NewControlBridge(discardLogger())

	b.Handle(domain.ControlInterrogate)
	assert.False(t, b.StopRequested())

	b.Handle(domain.ControlStop)
	assert.True(t, b.StopRequested())
}

func TestControlBridge_DoesNotChangeState(t *testing.T) {
	sup := &platform.MockSupervisor{}
	r := NewStatusReporter(sup, discardLogger())
	b := NewControlBridge(discardLogger())
	b.Attach(r)

	assert.NoError(t, r.Report(domain.StateRunning, domain.AcceptStop, 0))

	for _, req := range []domain.ControlRequest{
		domain.ControlInterrogate,
		domain.ControlStop,
		domain.ControlPause,
		domain.ControlOther,
	} {
		b.Handle(req)
	}

	assert.Equal(t, domain.StateRunning, r.Current())
	assert.Len(t, sup.Statuses(), 1)
}
