package middleware

import (
	"time"

	"github.com/attcrm/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
)

// Metrics records request count, latency and in-flight requests. Requests
// are labelled by route template, so /api/properties/:id stays one series.
// Register it outside Recovery so that panics are counted as 500s.
func Metrics(m *telemetry.Metrics, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		m.RequestStarted()

		c.Next()

		m.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
