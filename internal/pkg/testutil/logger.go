package testutil

import (
	"testing"

	"github.com/dwestland/auth-starter/internal/pkg/config"
	"github.com/dwestland/auth-starter/internal/pkg/logger"
)

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// SetupTestLogger returns a debug logger that writes through t.Log, so output
// only shows up for failing or verbose tests.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	return logger.NewWriterLogger(testWriter{t: t}, config.LogLevelDebug)
}
