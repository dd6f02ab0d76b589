package logger

import (
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

type traceKey string

// TraceIDKey context and gin key carrying the trace id
const TraceIDKey = "trace_id"

const ctxTraceKey traceKey = TraceIDKey

// ContextHandler adds trace_id from the context to every record
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if id := TraceID(ctx); id != "" {
		r.AddAttrs(log.String(TraceIDKey, id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}

// WithTraceID returns ctx carrying id, generating one when id is empty
func WithTraceID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, ctxTraceKey, id)
}

// TraceID reads the trace id from ctx
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ctxTraceKey).(string); ok {
		return id
	}
	if id, ok := ctx.Value(TraceIDKey).(string); ok {
		return id
	}
	return ""
}
