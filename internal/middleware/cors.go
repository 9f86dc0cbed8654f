package middleware

import (
	"net/http"
	"strings"

	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
)

// wildcardOrigin matches a single subdomain label, as in https://*.example.com
type wildcardOrigin struct {
	scheme string
	suffix string
}

// parseWildcardOrigin returns nil unless pattern is scheme://*.domain.tld
func parseWildcardOrigin(pattern string) *wildcardOrigin {
	scheme, host, ok := strings.Cut(pattern, "://")
	if !ok || scheme == "" {
		return nil
	}
	if !strings.HasPrefix(host, "*.") || strings.Count(host, "*") != 1 {
		return nil
	}
	suffix := host[1:]
	// At least two labels after the wildcard
	if strings.Count(suffix, ".") < 2 {
		return nil
	}
	return &wildcardOrigin{scheme: scheme + "://", suffix: suffix}
}

func (w *wildcardOrigin) matches(origin string) bool {
	host, ok := strings.CutPrefix(origin, w.scheme)
	if !ok {
		return false
	}
	label, ok := strings.CutSuffix(host, w.suffix)
	return ok && label != "" && !strings.ContainsAny(label, "./:")
}

// CORS handles cross-origin requests. An empty allowedOrigins list allows
// every origin. Preflight requests from other origins get a 403 problem.
func CORS(w *problemhttp.Writer, allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0

	exact := make(map[string]bool)
	var wildcards []*wildcardOrigin
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if wc := parseWildcardOrigin(origin); wc != nil {
			wildcards = append(wildcards, wc)
			continue
		}
		exact[origin] = true
	}

	allowed := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, wc := range wildcards {
			if wc.matches(origin) {
				return true
			}
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && allowed(origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		case c.Request.Method == http.MethodOptions:
			detail := "Preflight requests must send an Origin header"
			if origin != "" {
				detail = "Origin " + origin + " is not allowed"
			}
			problemhttp.Write(w, c, apierror.New(apierror.TypeForbidden, http.StatusForbidden, apierror.TitleForbidden, detail))
			return
		}

		// Problem documents are only readable cross-origin if exposed
		c.Header("Access-Control-Expose-Headers", "Content-Type, Retry-After, X-Request-ID")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, Idempotency-Key, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
