package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger so packages don't depend on handler setup.
type Logger struct {
	*slog.Logger
}

func New(level string) *Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return &Logger{Logger: slog.New(handler)}
}

func Default() *Logger {
	return New("info")
}
