// Package logger wraps slog with the handler and level used across the service.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the application logger shared by services, adapters and HTTP middleware.
type Logger struct {
	*slog.Logger
}

// New returns a text logger on stdout. level is a raw slog level, so -4 is
// debug and 8 is error.
func New(level int) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter returns a text logger writing to w.
func NewWithWriter(w io.Writer, level int) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})
	return &Logger{Logger: slog.New(handler)}
}

// With returns a Logger that attaches args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// Fatal logs at error level and exits with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
