package middleware

import (
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID of a request
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds client-provided request IDs
const maxRequestIDLength = 128

// RequestID propagates the client's X-Request-ID or generates a new one, and
// attaches it together with log to the request context.
func RequestID(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		ctx := logger.WithRequest(c.Request.Context(), logger.Request{
			ID:     requestID,
			Method: c.Request.Method,
			Route:  c.FullPath(),
		})
		ctx = logger.WithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
