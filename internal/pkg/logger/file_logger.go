package logger

import (
	"io"
	"log/slog"

	"github.com/dwestland/auth-starter/internal/pkg/config"

	"github.com/natefinch/lumberjack"
)

// NewFileLogger creates a JSON logger writing to the rotated file described
// by settings. settings are expected to be validated.
func NewFileLogger(settings *config.LoggerSettings) Logger {
	return &SlogLogger{logger: slog.New(slog.NewJSONHandler(rotatingWriter(settings), handlerOptions(settings)))}
}

func rotatingWriter(settings *config.LoggerSettings) io.Writer {
	return &lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   true,
	}
}
