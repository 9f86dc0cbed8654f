package logger

import "context"

type contextKey int

const (
	requestKey contextKey = iota
	loggerKey
)

// Request identifies the HTTP request a log entry was written for. Empty
// members are left out of log entries.
type Request struct {
	ID     string
	Method string
	Route  string
}

func (r Request) fields() []Field {
	fields := make([]Field, 0, 3)
	if r.ID != "" {
		fields = append(fields, String("request_id", r.ID))
	}
	if r.Method != "" {
		fields = append(fields, String("method", r.Method))
	}
	if r.Route != "" {
		fields = append(fields, String("route", r.Route))
	}
	return fields
}

// WithRequest stores req in ctx for loggers derived with WithContext
func WithRequest(ctx context.Context, req Request) context.Context {
	return context.WithValue(ctx, requestKey, req)
}

// RequestFromContext returns the request stored by WithRequest
func RequestFromContext(ctx context.Context) (Request, bool) {
	req, ok := ctx.Value(requestKey).(Request)
	return req, ok
}

// RequestIDFromContext returns the ID of the request stored in ctx, or ""
func RequestIDFromContext(ctx context.Context) string {
	req, _ := RequestFromContext(ctx)
	return req.ID
}

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context, or returns the default logger
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// Ctx returns the context's logger annotated with its request
func Ctx(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}

// withRequest is the shared WithContext implementation of the backends
func withRequest(ctx context.Context, l Logger) Logger {
	req, ok := RequestFromContext(ctx)
	if !ok {
		return l
	}
	fields := req.fields()
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}
