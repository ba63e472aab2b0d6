package config

import (
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

// Levels accepted in LOG_LEVEL. "warn" is an alias of "warning".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Sinks accepted in LOG_TYPE.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

var logLevels = map[string]slog.Level{
	LogLevelDebug:   slog.LevelDebug,
	LogLevelInfo:    slog.LevelInfo,
	"warn":          slog.LevelWarn,
	LogLevelWarning: slog.LevelWarn,
	LogLevelError:   slog.LevelError,
}

// rotationLimits bounds the lumberjack settings of the file sink.
var rotationLimits = []struct {
	name     string
	value    func(*LoggerSettings) int
	min, max int
}{
	{"max size (MB)", func(s *LoggerSettings) int { return s.MaxSize }, 1, 100},
	{"max backups", func(s *LoggerSettings) int { return s.MaxBackups }, 1, 10},
	{"max age (days)", func(s *LoggerSettings) int { return s.MaxAge }, 1, 365},
}

// LoggerSettings selects the log sink and level. The rotation fields only
// apply to the file sink.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warn warning error"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	AddSource  bool   `mapstructure:"add_source"`
}

// Validate checks the level and sink, then the rotation bounds of the file sink
func (s *LoggerSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	if s.LogType != LogTypeFile {
		return nil
	}

	if s.FilePath == "" {
		return fmt.Errorf("file path is required for the %s sink", LogTypeFile)
	}
	for _, limit := range rotationLimits {
		if v := limit.value(s); v < limit.min || v > limit.max {
			return fmt.Errorf("%s must be between %d and %d, got %d", limit.name, limit.min, limit.max, v)
		}
	}
	return nil
}

// Level returns the slog level of LogLevel.
func (s *LoggerSettings) Level() slog.Level {
	return ParseLogLevel(s.LogLevel)
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level. Unknown values map
// to info.
func ParseLogLevel(level string) slog.Level {
	if l, ok := logLevels[level]; ok {
		return l
	}
	return slog.LevelInfo
}
