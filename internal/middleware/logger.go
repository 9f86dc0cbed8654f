package middleware

import (
	"time"

	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/gin-gonic/gin"
)

// Logger middleware for logging HTTP requests. Method and route come from
// the request stored by RequestID.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		statusCode := c.Writer.Status()
		fields := []logger.Field{
			logger.String("path", path),
			logger.Int("status", statusCode),
			logger.Duration("latency", time.Since(start)),
			logger.String("client_ip", c.ClientIP()),
			logger.Int("bytes", c.Writer.Size()),
		}

		log := logger.Ctx(c.Request.Context())
		switch {
		case statusCode >= 500:
			log.Error("request completed", fields...)
		case statusCode >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
