// Package reqlog carries a request-scoped *slog.Logger through a context.
package reqlog

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// WithLogger returns a copy of ctx that carries l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// From returns the logger stored in ctx, or slog.Default() when none is set.
func From(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// With returns a copy of ctx whose logger has args appended.
func With(ctx context.Context, args ...any) context.Context {
	return WithLogger(ctx, From(ctx).With(args...))
}

// Stage returns the request logger tagged with a pipeline stage.
func Stage(ctx context.Context, stage string) *slog.Logger {
	return From(ctx).With("stage", stage)
}
