package platform

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// activatorFunc adapts a function to domain.Activator.
type activatorFunc func(ctx context.Context, identity string, sup domain.Supervisor) error

func (f activatorFunc) Activate(ctx context.Context, identity string, sup domain.Supervisor) error {
	return f(ctx, identity, sup)
}

// syncBuffer is a bytes.Buffer safe for the host's concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestForegroundHost_SignalDeliveredAsStop(t *testing.T) {
	out := &syncBuffer{}
	sigCh := make(chan os.Signal, 1)
	host := NewForegroundHost(WithOutput(out), WithSignals(sigCh))

	stopped := make(chan struct{})
	a := activatorFunc(func(ctx context.Context, identity string, sup domain.Supervisor) error {
		handle, err := sup.Register(identity, func(req domain.ControlRequest) domain.ControlAck {
			if req == domain.ControlStop {
				close(stopped)
			}
			return domain.AckNoError
		})
		if err != nil {
			return err
		}
		if err := handle.SetStatus(domain.Status{State: domain.StateRunning, Accepts: domain.AcceptStop}); err != nil {
			return err
		}

		sigCh <- os.Interrupt
		select {
		case <-stopped:
		case <-time.After(5 * time.Second):
			return errors.New("stop not delivered")
		}
		return handle.SetStatus(domain.Status{State: domain.StateStopped})
	})

	err := host.Run(context.Background(), "svcfoo", a)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "svcfoo: registered", lines[0])
	assert.Contains(t, lines[1], "svcfoo: running (accepts=1")
	// The stop acknowledgement and the final report race each other.
	assert.Contains(t, lines[2:], "svcfoo: control stop: no_error")
	assert.Contains(t, out.String(), "svcfoo: stopped (accepts=0")
}

func TestForegroundHost_ReturnsActivationError(t *testing.T) {
	host := NewForegroundHost(WithOutput(&syncBuffer{}), WithSignals(make(chan os.Signal)))
	want := errors.New("boom")

	err := host.Run(context.Background(), "svcfoo", activatorFunc(func(context.Context, string, domain.Supervisor) error {
		return want
	}))

	assert.ErrorIs(t, err, want)
}

func TestConsoleSupervisor_DeliverBeforeRegister(t *testing.T) {
	sup := NewConsoleSupervisor(&syncBuffer{})
	assert.Equal(t, domain.AckNotImplemented, sup.Deliver(domain.ControlStop))
}

func TestConsoleSupervisor_SetStatus(t *testing.T) {
	out := &syncBuffer{}
	sup := NewConsoleSupervisor(out)
	_, err := sup.Register("svcfoo", func(domain.ControlRequest) domain.ControlAck { return domain.AckNoError })
	require.NoError(t, err)

	require.NoError(t, sup.SetStatus(domain.Status{
		State:    domain.StateStartPending,
		WaitHint: 30 * time.Second,
	}))

	assert.Contains(t, out.String(), "svcfoo: start_pending (accepts=0 checkpoint=0 wait_hint=30s)")
}

func TestMockSupervisor(t *testing.T) {
	m := &MockSupervisor{}
	assert.Equal(t, domain.AckNotImplemented, m.Send(domain.ControlStop))

	var got []domain.ControlRequest
	handle, err := m.Register("svcfoo", func(req domain.ControlRequest) domain.ControlAck {
		got = append(got, req)
		return domain.AckNoError
	})
	require.NoError(t, err)
	assert.True(t, m.Registered())
	assert.Equal(t, "svcfoo", m.Identity())

	assert.Equal(t, domain.AckNoError, m.Send(domain.ControlInterrogate))
	require.NoError(t, handle.SetStatus(domain.Status{State: domain.StateRunning}))

	assert.Equal(t, []domain.ControlRequest{domain.ControlInterrogate}, got)
	assert.Equal(t, []domain.LifecycleState{domain.StateRunning}, m.States())
}

func TestMockSupervisor_RegisterError(t *testing.T) {
	m := &MockSupervisor{RegisterErr: errors.New("denied")}

	_, err := m.Register("svcfoo", func(domain.ControlRequest) domain.ControlAck { return domain.AckNoError })

	assert.Error(t, err)
	assert.False(t, m.Registered())
}
