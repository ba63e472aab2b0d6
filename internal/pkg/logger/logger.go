package logger

// Logger defines the structured logging interface. Args are alternating
// key/value pairs in the log/slog convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}
