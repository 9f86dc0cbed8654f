package middleware

import (
	"bytes"
	"net/http"

	"github.com/JonnyWalker81/problemjson/internal/bind"
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/models"
	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/internal/repository"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"

	// maxIdempotencyKeyLength bounds the keys clients may send
	maxIdempotencyKeyLength = 255
)

// idempotencyBodyWriter wraps gin.ResponseWriter to capture the response body for idempotency caching
type idempotencyBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyBodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency middleware ensures exactly-once semantics for create operations.
// Mutating requests must carry an Idempotency-Key header:
//   - Missing or oversized keys are rejected with a validation problem whose
//     source is the header
//   - A key seen before for the same route replays the cached response
//   - Otherwise the request runs and a 2xx response is cached for replays
func Idempotency(w *problemhttp.Writer, repo repository.IdempotencyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		// Only apply to mutating requests
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodPatch {
			c.Next()
			return
		}

		errs := bind.RequireHeader(c, IdempotencyKeyHeader)
		key := c.GetHeader(IdempotencyKeyHeader)
		if len(key) > maxIdempotencyKeyLength {
			errs.Add("must be at most 255 characters long", apierror.FromHeader(IdempotencyKeyHeader))
		}
		if errs.Len() > 0 {
			problemhttp.Write(w, c, apierror.NewValidationError("", errs.Errors...))
			return
		}

		// Build the route identifier (method + path)
		route := method + " " + c.FullPath()

		existing, err := repo.Get(c.Request.Context(), key, route)
		if err != nil {
			// On error, we proceed without idempotency to avoid blocking valid requests
			log.Error("failed to check idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			c.Next()
			return
		}

		if existing != nil {
			log.Info("replaying idempotent response",
				logger.String("key", key),
				logger.String("route", route),
				logger.Int("status_code", existing.StatusCode),
			)

			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.StatusCode, existing.ContentType, existing.ResponseBody)
			c.Abort()
			return
		}

		// No existing record - capture the response for storage
		blw := &idempotencyBodyWriter{
			body:           bytes.NewBuffer(nil),
			ResponseWriter: c.Writer,
		}
		c.Writer = blw

		c.Next()

		// Only cache successful responses (2xx)
		statusCode := c.Writer.Status()
		if statusCode < 200 || statusCode >= 300 {
			return
		}

		record := &models.IdempotencyKey{
			Key:          key,
			Route:        route,
			ContentType:  c.Writer.Header().Get("Content-Type"),
			ResponseBody: blw.body.Bytes(),
			StatusCode:   statusCode,
		}
		if err := repo.Store(c.Request.Context(), record); err != nil {
			// Log but don't fail - the request already succeeded
			log.Warn("failed to store idempotency key",
				logger.Err(err),
				logger.String("key", key),
			)
			return
		}

		log.Debug("stored idempotency key",
			logger.String("key", key),
			logger.String("route", route),
			logger.Int("status_code", statusCode),
		)
	}
}
