package common

import (
	"context"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
)

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger shared.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) shared.Logger {
	if logger, ok := ctx.Value(loggerKey).(shared.Logger); ok {
		return logger
	}
	return shared.NoOpLogger{}
}
