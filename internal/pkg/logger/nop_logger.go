package logger

// NopLogger discards everything.
type NopLogger struct{}

// NewNopLogger returns a Logger that drops every record.
func NewNopLogger() Logger { return NopLogger{} }

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

func (n NopLogger) With(...any) Logger { return n }
