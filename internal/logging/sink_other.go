//go:build !windows

package logging

import (
	"os"
	"path/filepath"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// openSink opens a rotated log file named after the service in the default log directory.
func openSink(identity string) (Sink, error) {
	dir, err := config.DefaultLogDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, err
	}

	return NewWriterSink(&lumberjack.Logger{
		Filename:   filepath.Join(dir, identity+".log"),
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
		Compress:   true,
	}), nil
}
