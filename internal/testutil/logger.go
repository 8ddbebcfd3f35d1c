package testutil

import (
	"bytes"
	"log/slog"

	"github.com/preston-bernstein/mlb-streaks-service/internal/logging"
)

// NewBufferLogger returns a debug-level text logger writing to a buffer, and the buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{
		Level:   "debug",
		Format:  "text",
		Service: "mlb-streaks-test",
		Output:  &buf,
	})
	return logger, &buf
}
