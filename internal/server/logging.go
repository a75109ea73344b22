package server

import (
	"time"

	"github.com/myos14/gymAdmin/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLoggingMiddleware logs one line per request after it completes.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Infof("%s %s %d %dms %s",
			c.Request.Method, path, status, latency.Milliseconds(), c.ClientIP())
	}
}
