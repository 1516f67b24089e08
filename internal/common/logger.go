package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the process logger.
type LogOptions struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ParseLevel maps a configured level name to its slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: invalid log level: %s", ErrInvalidConfig, level)
	}
}

// NewLogHandler builds the handler for opts writing to w, and to a rotating
// file when opts.File is set. The returned closer releases the file.
func NewLogHandler(w io.Writer, opts LogOptions) (slog.Handler, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		w = io.MultiWriter(w, file)
		closer = file
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch opts.Format {
	case "console", "":
		return slog.NewTextHandler(w, handlerOpts), closer, nil
	case "json":
		return slog.NewJSONHandler(w, handlerOpts), closer, nil
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("%w: invalid log format: %s", ErrInvalidConfig, opts.Format)
	}
}

// SetupLogger installs the default logger on stderr.
func SetupLogger(opts LogOptions) (io.Closer, error) {
	handler, closer, err := NewLogHandler(os.Stderr, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(handler))
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
