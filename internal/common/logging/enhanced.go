package logging

import (
	"context"
	"log/slog"
	"slices"

	"github.com/khmm12/ping-monitor/internal/common/tracing"
)

type ctxAttrsKey struct{}

// ContextWithAttrs attaches attrs to every record logged with the returned
// context. Attrs from outer contexts are kept.
func ContextWithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	prev, _ := ctx.Value(ctxAttrsKey{}).([]slog.Attr)

	return context.WithValue(ctx, ctxAttrsKey{}, append(slices.Clip(prev), attrs...))
}

var _ slog.Handler = (*EnhancedHandler)(nil)

// EnhancedHandler adds the poll cycle id and context attrs to every record.
type EnhancedHandler struct {
	next slog.Handler
}

func NewEnhancedHandler(next slog.Handler) *EnhancedHandler {
	return &EnhancedHandler{next: next}
}

func (h *EnhancedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *EnhancedHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := tracing.CycleID(ctx); id != "" {
		r.AddAttrs(slog.String("cycle_id", id))
	}

	if attrs, ok := ctx.Value(ctxAttrsKey{}).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	return h.next.Handle(ctx, r)
}

func (h *EnhancedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewEnhancedHandler(h.next.WithAttrs(attrs))
}

func (h *EnhancedHandler) WithGroup(name string) slog.Handler {
	return NewEnhancedHandler(h.next.WithGroup(name))
}
