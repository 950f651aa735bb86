package shared

import (
	"context"
	"time"
)

type requestIDContextKey struct{}

type requestStartContextKey struct{}

// ContextWithRequestID stores the correlation id in context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, id)
}

// RequestIDFromContext extracts the correlation id from context.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}

// ContextWithStart stores the instant the request entered the pipeline.
func ContextWithStart(ctx context.Context, start time.Time) context.Context {
	return context.WithValue(ctx, requestStartContextKey{}, start)
}

// StartFromContext extracts the request start instant.
func StartFromContext(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(requestStartContextKey{}).(time.Time)
	return start, ok
}
