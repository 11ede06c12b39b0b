package logger

import "context"

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// WithLogger adds logger to context
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext retrieves logger from context.
// Returns a no-op logger if none found in context
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return NewNop()
}
