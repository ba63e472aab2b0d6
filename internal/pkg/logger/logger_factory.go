package logger

import (
	"fmt"
	"sync"

	"github.com/dwestland/auth-starter/internal/pkg/config"
)

var (
	mu      sync.RWMutex
	current Logger
)

// InitLogger installs the process-wide logger. Once one is installed later
// calls are no-ops; a failed call installs nothing and may be retried.
func InitLogger(settings *config.LoggerSettings) error {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return nil
	}
	l, err := New(settings)
	if err != nil {
		return err
	}
	current = l
	return nil
}

// GetLogger returns the logger installed by InitLogger.
func GetLogger() (Logger, error) {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil, fmt.Errorf("logger not initialized: call InitLogger first")
	}
	return current, nil
}

// New builds a logger from settings without installing it. The console sink
// writes text to stdout, the file sink writes JSON to a rotated file.
func New(settings *config.LoggerSettings) (Logger, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch settings.LogType {
	case config.LogTypeConsole:
		return NewConsoleLogger(settings), nil
	case config.LogTypeFile:
		return NewFileLogger(settings), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", settings.LogType)
	}
}
