// Package logging routes structured service logs to the host system log.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

// EventID is the event identifier attached to every record.
const EventID uint32 = 1

// Sink is a severity-aware system log channel, such as the Windows event log.
type Sink interface {
	Info(eid uint32, msg string) error
	Warning(eid uint32, msg string) error
	Error(eid uint32, msg string) error
	Close() error
}

// Open initializes the system log channel for identity and returns a logger
// filtered at level. The returned closer releases the channel.
func Open(identity string, level domain.LogLevel) (*slog.Logger, io.Closer, error) {
	sink, err := openSink(identity)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening system log for %s: %w", domain.ErrLoggingInit, identity, err)
	}
	return New(sink, level), sink, nil
}

// New creates a logger writing to sink with level as the maximum severity emitted.
func New(sink Sink, level domain.LogLevel) *slog.Logger {
	return slog.New(NewHandler(sink, &slog.HandlerOptions{Level: level.Slog()}))
}

// Handler is a slog.Handler that renders records in text form and forwards
// them to a Sink by severity.
type Handler struct {
	sink  Sink
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

// NewHandler creates a Handler. Time is dropped from the rendered text since
// the sink stamps every entry.
func NewHandler(sink Sink, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	textOpts := *opts
	textOpts.ReplaceAttr = chainReplace(opts.ReplaceAttr)

	buf := &bytes.Buffer{}
	return &Handler{
		sink:  sink,
		mu:    &sync.Mutex{},
		buf:   buf,
		inner: slog.NewTextHandler(buf, &textOpts),
	}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	msg := strings.TrimRight(h.buf.String(), "\n")

	switch {
	case r.Level >= slog.LevelError:
		return h.sink.Error(EventID, msg)
	case r.Level >= slog.LevelWarn:
		return h.sink.Warning(EventID, msg)
	default:
		return h.sink.Info(EventID, msg)
	}
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{sink: h.sink, mu: h.mu, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{sink: h.sink, mu: h.mu, buf: h.buf, inner: h.inner.WithGroup(name)}
}

func chainReplace(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{}
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= domain.SlogLevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
		}
		if next != nil {
			return next(groups, a)
		}
		return a
	}
}

// Ensure Handler implements slog.Handler.
var _ slog.Handler = (*Handler)(nil)
