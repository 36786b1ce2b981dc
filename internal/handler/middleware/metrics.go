package middleware

import (
	"strconv"
	"time"

	"space-booking/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// PrometheusMiddleware labels requests by route template, so /api/spaces/:id
// stays one series regardless of the id.
func PrometheusMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		statusCode := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
