package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"mercury-mail.backend/internal/metrics"
)

// MetricsMiddleware records per-request counters and latency. Routes
// are labeled by their registered pattern, not the raw path, to keep
// cardinality bounded.
func MetricsMiddleware(collector *metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		collector.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
