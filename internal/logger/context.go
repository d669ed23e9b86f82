package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type ctxKey struct{}

type eventKey struct{}

// Event collects the fields of one request's canonical log line. Handlers add
// to it through Annotate; the HTTP middleware that created it writes the line.
type Event struct {
	mu     sync.Mutex
	fields []zap.Field
}

// Fields returns a copy of the collected fields.
func (e *Event) Fields() []zap.Field {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]zap.Field(nil), e.fields...)
}

func (e *Event) add(fields []zap.Field) {
	e.mu.Lock()
	e.fields = append(e.fields, fields...)
	e.mu.Unlock()
}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// ContextWithEvent starts a canonical log event for a request.
func ContextWithEvent(ctx context.Context) (context.Context, *Event) {
	ev := &Event{}
	return context.WithValue(ctx, eventKey{}, ev), ev
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	return Or(ctx, zap.NewNop())
}

// Or returns the request logger, or fallback outside a request.
func Or(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return fallback
}

// Annotate attaches request-scoped fields (query text, sort mode, cache
// outcome...) to the canonical log line and to the logger of the returned ctx.
func Annotate(ctx context.Context, fields ...zap.Field) context.Context {
	if ev, ok := ctx.Value(eventKey{}).(*Event); ok {
		ev.add(fields)
	}
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return ContextWithLogger(ctx, l.With(fields...))
	}
	return ctx
}
