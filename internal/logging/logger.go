package logging

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide structured logger.
func NewLogger(level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
