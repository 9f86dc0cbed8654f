package middleware

import (
	"io"

	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/gin-gonic/gin"
)

// Recovery turns panics in later handlers into the static internal server
// error problem. The panic value is logged, never sent.
func Recovery(w *problemhttp.Writer) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Ctx(c.Request.Context()).Error("panic recovered",
			logger.Any("panic", recovered),
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
		)
		w.Fallback(c)
	})
}
