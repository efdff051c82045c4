package middleware

import (
	"context"
	"net/http"

	"github.com/Suhaibinator/SPipeline/pkg/httpstage"
	"github.com/google/uuid"
)

// TraceIDHeader is the response header carrying the trace ID
const TraceIDHeader = "X-Trace-ID"

type traceIDKey struct{}

// TraceIDKey is the key used to store the trace ID in the request context
var TraceIDKey = traceIDKey{}

// Trace creates a stage that assigns every request a unique trace ID. An
// incoming X-Trace-ID header is kept when trustHeader is set.
func Trace(trustHeader bool) Middleware {
	return httpstage.Use0(func(ctx context.Context, c *httpstage.Context) error {
		traceID := ""
		if trustHeader {
			traceID = c.Request.Header.Get(TraceIDHeader)
		}
		if traceID == "" {
			traceID = uuid.New().String()
		}

		c.Writer.Header().Set(TraceIDHeader, traceID)
		c.Request = c.Request.WithContext(context.WithValue(ctx, TraceIDKey, traceID))
		return nil
	}, options("trace", nil)...)
}

// GetTraceID extracts the trace ID from the request context.
// Returns an empty string if no trace ID is found.
func GetTraceID(r *http.Request) string {
	return GetTraceIDFromContext(r.Context())
}

// GetTraceIDFromContext extracts the trace ID from a context.
func GetTraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
		return traceID
	}
	return ""
}
