package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	// ServiceName is the name of the service for trace identification.
	ServiceName string
	// Enabled controls whether tracing is active.
	Enabled bool
	// Options are passed through to otelgin, e.g. a TracerProvider in tests.
	Options []otelgin.Option
}

// TracingWithConfig returns the otelgin server-span middleware. The span name
// follows the format "HTTP METHOD route" (e.g. "GET /api/properties/:id").
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return otelgin.Middleware(cfg.ServiceName, cfg.Options...)
}

// SpanAttributes tags the server span with the request ID and the property and
// unit path parameters, and marks 5xx responses as errors.
// It must run after TracingWithConfig.
func SpanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			c.Next()
			return
		}

		if requestID := GetRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if id := c.Param("id"); id != "" {
			span.SetAttributes(attribute.String("property.id", id))
		}
		if unitID := c.Param("unitId"); unitID != "" {
			span.SetAttributes(attribute.String("unit.id", unitID))
		}

		c.Next()

		statusCode := c.Writer.Status()
		if statusCode >= http.StatusBadRequest {
			span.SetAttributes(attribute.Int("http.status_code", statusCode))
		}
		if statusCode >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(statusCode))
		}
	}
}
