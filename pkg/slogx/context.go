package slogx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := Lookup(ctx); ok {
		return l
	}
	return slog.Default()
}

// Lookup returns the logger attached to the context, if any. Callers with
// their own fallback logger use this instead of FromContext.
func Lookup(ctx context.Context) (*slog.Logger, bool) {
	l, ok := ctx.Value(ctxKey{}).(*slog.Logger)
	return l, ok
}

// WithCallID attaches a call-scoped logger carrying the given correlation ID.
func WithCallID(ctx context.Context, callID string) context.Context {
	l := FromContext(ctx)
	return WithContext(ctx, l.With("call_id", callID))
}
