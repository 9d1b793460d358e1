// internal/middleware/metrics.go
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cappeLindo/webcars-api/internal/metrics"
)

// Metrics records request count, latency, and in-flight gauge per route.
// gin's FullPath keeps parameterized routes (e.g. /v1/cars/:id) so metric
// cardinality stays bounded.
func Metrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		reg.HTTPRequestsInFlight.WithLabelValues(endpoint).Inc()
		defer reg.HTTPRequestsInFlight.WithLabelValues(endpoint).Dec()

		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		reg.HTTPRequestsTotal.WithLabelValues(
			endpoint,
			c.Request.Method,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		reg.HTTPRequestDuration.WithLabelValues(
			endpoint,
			c.Request.Method,
		).Observe(duration)
	}
}
