package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/dwestland/auth-starter/internal/pkg/config"
)

// SlogLogger is the Logger implementation backed by log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewConsoleLogger creates a text logger writing to stdout. settings are
// expected to be validated.
func NewConsoleLogger(settings *config.LoggerSettings) Logger {
	return newTextLogger(os.Stdout, handlerOptions(settings))
}

// NewWriterLogger creates a text logger writing to w.
func NewWriterLogger(w io.Writer, level string) Logger {
	return newTextLogger(w, &slog.HandlerOptions{Level: config.ParseLogLevel(level)})
}

func newTextLogger(w io.Writer, opts *slog.HandlerOptions) Logger {
	return &SlogLogger{logger: slog.New(slog.NewTextHandler(w, opts))}
}

func handlerOptions(settings *config.LoggerSettings) *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: settings.Level(), AddSource: settings.AddSource}
}

// Debug logs a debug message.
func (l *SlogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs an informational message.
func (l *SlogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs a warning message.
func (l *SlogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error message.
func (l *SlogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// With returns a logger that adds args to every record.
func (l *SlogLogger) With(args ...any) Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}
