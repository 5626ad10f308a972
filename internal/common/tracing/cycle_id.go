package tracing

import (
	"context"

	"github.com/google/uuid"
)

type cycleIDCtxKeyType struct{}

var cycleIDCtxKey = cycleIDCtxKeyType{}

// WithCycleID tags ctx with a fresh poll cycle id unless it already has one.
func WithCycleID(ctx context.Context) context.Context {
	if _, ok := ctx.Value(cycleIDCtxKey).(string); ok {
		return ctx
	}

	return context.WithValue(ctx, cycleIDCtxKey, generateCycleID())
}

func CycleID(ctx context.Context) string {
	id, ok := ctx.Value(cycleIDCtxKey).(string)
	if !ok {
		return ""
	}

	return id
}

func generateCycleID() string {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v.String()
}
