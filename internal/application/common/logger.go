// Package common holds the small, cross-cutting pieces every application
// package needs (context-carried logging) without pulling in a full
// dependency-injection layer.
package common

import "context"

// RunLogger provides structured logging for one tmbuild run.
type RunLogger interface {
	Log(level, message string, fields map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger RunLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from ctx, or a no-op logger if none
// was attached — every application command can log unconditionally.
func LoggerFromContext(ctx context.Context) RunLogger {
	if logger, ok := ctx.Value(loggerKey).(RunLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, fields map[string]interface{}) {}
