package platform

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// ForegroundHost runs an activation attached to a console. Interrupt and
// terminate signals are delivered to the service as Stop requests.
type ForegroundHost struct {
	out     io.Writer
	signals <-chan os.Signal
}

// ForegroundOption configures a ForegroundHost.
type ForegroundOption func(*ForegroundHost)

// WithOutput sets where status reports are printed.
func WithOutput(w io.Writer) ForegroundOption {
	return func(h *ForegroundHost) {
		h.out = w
	}
}

// WithSignals replaces the process signal channel.
func WithSignals(ch <-chan os.Signal) ForegroundOption {
	return func(h *ForegroundHost) {
		h.signals = ch
	}
}

// NewForegroundHost creates a new ForegroundHost.
func NewForegroundHost(opts ...ForegroundOption) *ForegroundHost {
	h := &ForegroundHost{out: os.Stdout}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Run executes the activation and returns its error.
func (h *ForegroundHost) Run(ctx context.Context, identity string, a domain.Activator) error {
	sigCh := h.signals
	if sigCh == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ch)
		sigCh = ch
	}

	sup := NewConsoleSupervisor(h.out)
	done := make(chan struct{})

	var g errgroup.Group
	g.Go(func() error {
		defer close(done)
		return a.Activate(ctx, identity, sup)
	})
	g.Go(func() error {
		for {
			select {
			case <-done:
				return nil
			case <-sigCh:
				sup.Deliver(domain.ControlStop)
			}
		}
	})

	return g.Wait()
}

// Ensure ForegroundHost implements ServiceHost.
var _ ServiceHost = (*ForegroundHost)(nil)
