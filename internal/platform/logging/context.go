package logging

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var defaultLogger = slog.Default()

// FromContext extracts the logger from context.
// Returns the default logger if no logger is found or ctx is nil.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := Lookup(ctx); ok {
		return logger
	}

	return defaultLogger
}

// Lookup returns the logger stored in ctx, if any.
func Lookup(ctx context.Context) (*slog.Logger, bool) {
	if ctx == nil {
		return nil, false
	}

	logger, ok := ctx.Value(ctxKey{}).(*slog.Logger)

	return logger, ok && logger != nil
}

// WithContext stores a logger in the context.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithLinkKind adds the view link kind to the logger in context.
// Returns a new context with the enriched logger.
func WithLinkKind(ctx context.Context, kind string) context.Context {
	logger := FromContext(ctx).With(slog.String("kind", kind))
	return WithContext(ctx, logger)
}

// WithStage adds the deployment stage to the logger in context.
// Returns a new context with the enriched logger.
func WithStage(ctx context.Context, stage string) context.Context {
	logger := FromContext(ctx).With(slog.String("stage", stage))
	return WithContext(ctx, logger)
}

// WithCommand adds the CLI command name to the logger in context.
// Returns a new context with the enriched logger.
func WithCommand(ctx context.Context, command string) context.Context {
	logger := FromContext(ctx).With(slog.String("command", command))
	return WithContext(ctx, logger)
}

// SetDefault sets the default logger used when no logger is in context.
func SetDefault(logger *slog.Logger) {
	defaultLogger = logger
	slog.SetDefault(logger)
}
