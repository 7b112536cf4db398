// Package logging provides structured logging helpers built on log/slog.
// All binaries log JSON to stdout by default; the level is controlled via
// the LOG_LEVEL environment variable.
package logging

import (
	"context"
	"log/slog"
	"os"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// Level reads the log level from the LOG_LEVEL environment variable.
// Supported values: debug, info, warn, error. Default: info.
func Level() slog.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a JSON logger for production use. Source locations are
// attached for warn and error records.
func NewLogger() *slog.Logger {
	level := Level()
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelWarn,
	}))
}

// NewTextLogger creates a human-readable logger for local development and
// CLI output. Logs go to stderr so command output stays clean on stdout.
func NewTextLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: Level(),
	}))
}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext retrieves the logger from the context, falling back to the
// process default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
