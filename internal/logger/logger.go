package logger

import (
	"log/slog"
	"os"
)

// Logger represents the application logger.
type Logger struct {
	*slog.Logger
}

// New creates a JSON logger writing to stdout at the given level
// (0 = info, negative = debug, positive = warn/error).
func New(level int) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.Level(level),
	})
	return &Logger{Logger: slog.New(handler)}
}
