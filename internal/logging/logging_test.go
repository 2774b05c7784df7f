package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharkusmanch/svcwrap/internal/domain"
)

func TestHandler_RoutesBySeverity(t *testing.T) {
	sink := &MockSink{}
	logger := New(sink, domain.LogLevelDebug)

	logger.Debug("setting up service")
	logger.Info("running command")
	logger.Warn("stop requested")
	logger.Error("unable to open file", "error", "denied")

	entries := sink.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "info", entries[0].Kind)
	assert.Equal(t, "info", entries[1].Kind)
	assert.Equal(t, "warning", entries[2].Kind)
	assert.Equal(t, "error", entries[3].Kind)
	assert.Contains(t, entries[3].Message, `msg="unable to open file"`)
	assert.Contains(t, entries[3].Message, "error=denied")
	assert.Equal(t, EventID, entries[3].EventID)
}

func TestHandler_LevelFilter(t *testing.T) {
	tests := []struct {
		level domain.LogLevel
		want  int
	}{
		{domain.LogLevelOff, 0},
		{domain.LogLevelError, 1},
		{domain.LogLevelWarn, 2},
		{domain.LogLevelInfo, 3},
		{domain.LogLevelDebug, 4},
		{domain.LogLevelTrace, 5},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			sink := &MockSink{}
			logger := New(sink, tt.level)

			logger.Log(context.Background(), domain.SlogLevelTrace, "trace")
			logger.Debug("debug")
			logger.Info("info")
			logger.Warn("warn")
			logger.Error("error")

			assert.Len(t, sink.Entries(), tt.want)
		})
	}
}

func TestHandler_TraceLevelName(t *testing.T) {
	sink := &MockSink{}
	logger := New(sink, domain.LogLevelTrace)

	logger.Log(context.Background(), domain.SlogLevelTrace, "deep detail")

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "level=TRACE")
}

func TestHandler_DropsTime(t *testing.T) {
	sink := &MockSink{}
	New(sink, domain.LogLevelInfo).Info("hello")

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.NotContains(t, entries[0].Message, "time=")
	assert.False(t, strings.HasSuffix(entries[0].Message, "\n"))
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	sink := &MockSink{}
	logger := New(sink, domain.LogLevelInfo).With("service", "svcfoo").WithGroup("workload")

	logger.Info("finished", "exit_code", 0)

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "service=svcfoo")
	assert.Contains(t, entries[0].Message, "workload.exit_code=0")
}

func TestHandler_CustomReplaceAttrStillApplied(t *testing.T) {
	sink := &MockSink{}
	h := NewHandler(sink, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "secret" {
				a.Value = slog.StringValue("***")
			}
			return a
		},
	})

	slog.New(h).Info("login", "secret", "hunter2")

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Message, "secret=***")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)
	sink.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	require.NoError(t, sink.Warning(7, "careful"))
	require.NoError(t, sink.Close())

	assert.Equal(t, "2026-01-02T03:04:05Z WARNING [7] careful\n", buf.String())
}
