package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// maxRequestIDLength caps request-id header values copied into spans.
const maxRequestIDLength = 128

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// Tracing returns OpenTelemetry tracing middleware wrapping otelgin. When
// disabled it passes requests through untouched.
func Tracing(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnrichment adds the request id to the active span and marks 4xx/5xx
// responses with error status. Place it after Tracing so it runs inside the
// span, before otelgin ends it.
func SpanEnrichment() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := traceRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if status := c.Writer.Status(); status >= http.StatusBadRequest {
			span.SetStatus(codes.Error, http.StatusText(status))
			span.SetAttributes(attribute.Int("http.response.status_code", status))
		}
	}
}

// traceRequestID reads the request id set by the RequestID middleware,
// falling back to the inbound header with a length cap.
func traceRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok && id != "" {
			return id
		}
	}
	headerID := c.GetHeader(RequestIDKey)
	if len(headerID) > maxRequestIDLength {
		return headerID[:maxRequestIDLength]
	}
	return headerID
}
