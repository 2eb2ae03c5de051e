package contextx

import (
	"context"
	"fmt"
)

// TraceID identifies one inbound HTTP request.
type TraceID string

// CycleID identifies one poll cycle of the tracker.
type CycleID string

type (
	contextKeyTraceID struct{}
	contextKeyCycleID struct{}
)

func (t TraceID) String() string {
	return string(t)
}

func (c CycleID) String() string {
	return string(c)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	return valueFromContext[TraceID](ctx, contextKeyTraceID{}, "trace id")
}

func WithCycleID(ctx context.Context, cycleID CycleID) context.Context {
	return context.WithValue(ctx, contextKeyCycleID{}, cycleID)
}

func CycleIDFromContext(ctx context.Context) (CycleID, error) {
	return valueFromContext[CycleID](ctx, contextKeyCycleID{}, "cycle id")
}

func valueFromContext[T any](ctx context.Context, key any, name string) (T, error) {
	v, ok := ctx.Value(key).(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: %w", name, ErrNoValue)
	}

	return v, nil
}
