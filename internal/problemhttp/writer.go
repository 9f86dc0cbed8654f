package problemhttp

import (
	"strconv"

	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/metrics"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
)

// Writer sends problems to clients and records what was sent.
type Writer struct {
	problems *metrics.Problems
}

// NewWriter creates a Writer. problems may be nil.
func NewWriter(problems *metrics.Problems) *Writer {
	return &Writer{problems: problems}
}

// Write encodes p, writes it as the response and aborts the handler chain.
// If p cannot be encoded the static internal server error is sent instead
// and the cause is logged. Extensions implementing apierror.RetryAfterer
// also set the Retry-After header.
func Write[E any](w *Writer, c *gin.Context, p apierror.ProblemDetails[E]) {
	fellBack := false
	resp := apierror.EncodeWith(p, func(err error) {
		fellBack = true
		logger.Ctx(c.Request.Context()).Error("problem could not be encoded, sending fallback",
			logger.Err(err),
			logger.Int("status", p.Status),
			logger.String("type", p.Type),
		)
	})

	if fellBack {
		w.record(resp.Status, apierror.TypeInternal, true)
	} else {
		if p.Extensions != nil {
			if ra, ok := any(*p.Extensions).(apierror.RetryAfterer); ok && ra.RetryAfterSeconds() > 0 {
				c.Header("Retry-After", strconv.Itoa(ra.RetryAfterSeconds()))
			}
		}
		w.record(resp.Status, p.Type, false)
	}

	c.Render(resp.Status, Render{Response: resp})
	c.Abort()
}

// Fallback sends the static internal server error response.
func (w *Writer) Fallback(c *gin.Context) {
	resp := apierror.InternalServerError()
	w.record(resp.Status, apierror.TypeInternal, false)
	c.Render(resp.Status, Render{Response: resp})
	c.Abort()
}

// NoRoute answers requests for unknown paths.
func (w *Writer) NoRoute(c *gin.Context) {
	Write(w, c, apierror.NewRouteNotFoundError(c.Request.URL.Path))
}

// NoMethod answers requests whose path exists for other methods.
func (w *Writer) NoMethod(c *gin.Context) {
	Write(w, c, apierror.NewMethodNotAllowedError(c.Request.Method))
}

func (w *Writer) record(status int, problemType string, fellBack bool) {
	if w == nil {
		return
	}
	if fellBack {
		w.problems.Fallback()
	}
	w.problems.Emitted(status, problemType)
}

// RequestID returns the request ID set by the request ID middleware,
// falling back to the X-Request-ID header.
func RequestID(c *gin.Context) string {
	if id := logger.RequestIDFromContext(c.Request.Context()); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}
