package domain

import (
	"log/slog"
	"math"
	"strings"
)

// LogLevel is the maximum severity a service activation emits.
type LogLevel string

const (
	LogLevelOff   LogLevel = "off"
	LogLevelError LogLevel = "error"
	LogLevelWarn  LogLevel = "warn"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
	LogLevelTrace LogLevel = "trace"
)

// Slog levels outside the four built-in ones.
const (
	SlogLevelTrace = slog.Level(-8)
	SlogLevelOff   = slog.Level(math.MaxInt32)
)

// ParseLogLevel resolves a configured level name. Anything unrecognized,
// including the empty string, resolves to LogLevelError.
func ParseLogLevel(s string) LogLevel {
	switch l := LogLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case LogLevelOff, LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug, LogLevelTrace:
		return l
	default:
		return LogLevelError
	}
}

// Slog returns the minimum slog level that passes the filter.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelOff:
		return SlogLevelOff
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelTrace:
		return SlogLevelTrace
	default:
		return slog.LevelError
	}
}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	return string(l)
}
