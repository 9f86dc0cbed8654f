package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParseWildcardOrigin(t *testing.T) {
	tests := map[string]*wildcardOrigin{
		"https://*.example.com":                {scheme: "https://", suffix: ".example.com"},
		"http://*.docs.local":                  {scheme: "http://", suffix: ".docs.local"},
		"https://*.problemjson-docs.pages.dev": {scheme: "https://", suffix: ".problemjson-docs.pages.dev"},
		"*.example.com":                        nil,
		"*":                                    nil,
		"https://example.*":                    nil,
		"https://*.*.example.com":              nil,
		"https://*example.com":                 nil,
		"https://*.com":                        nil,
		"https://example.com":                  nil,
	}

	for pattern, want := range tests {
		assert.Equal(t, want, parseWildcardOrigin(pattern), pattern)
	}
}

func TestCORS(t *testing.T) {
	allowed := []string{"https://docs.example.com", "https://*.problemjson-docs.pages.dev"}

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
		// wantDetail is the detail of the 403 problem, if any
		wantDetail string
	}{
		{name: "allow all", method: http.MethodGet, origin: "https://anywhere.test", wantStatus: http.StatusOK, wantOrigin: "*"},
		{name: "exact origin", allowed: allowed, method: http.MethodGet, origin: "https://docs.example.com", wantStatus: http.StatusOK, wantOrigin: "https://docs.example.com"},
		{name: "wildcard preview", allowed: allowed, method: http.MethodOptions, origin: "https://pr-12.problemjson-docs.pages.dev", wantStatus: http.StatusNoContent, wantOrigin: "https://pr-12.problemjson-docs.pages.dev"},
		{name: "wildcard needs a label", allowed: allowed, method: http.MethodOptions, origin: "https://problemjson-docs.pages.dev",
			wantStatus: http.StatusForbidden, wantDetail: "Origin https://problemjson-docs.pages.dev is not allowed"},
		{name: "wildcard is one label deep", allowed: allowed, method: http.MethodOptions, origin: "https://a.b.problemjson-docs.pages.dev",
			wantStatus: http.StatusForbidden, wantDetail: "Origin https://a.b.problemjson-docs.pages.dev is not allowed"},
		{name: "wildcard scheme must match", allowed: allowed, method: http.MethodOptions, origin: "http://pr-12.problemjson-docs.pages.dev",
			wantStatus: http.StatusForbidden, wantDetail: "Origin http://pr-12.problemjson-docs.pages.dev is not allowed"},
		{name: "preflight without origin", allowed: allowed, method: http.MethodOptions,
			wantStatus: http.StatusForbidden, wantDetail: "Preflight requests must send an Origin header"},
		{name: "simple request from other origin passes without header", allowed: allowed, method: http.MethodGet, origin: "https://evil.test", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORS(problemhttp.NewWriter(nil), tt.allowed))
			r.GET("/api/v1/people/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.OPTIONS("/api/v1/people/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tt.method, "/api/v1/people/1", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))

			if tt.wantDetail == "" {
				return
			}
			assert.Equal(t, apierror.ContentTypeProblemJSON, rr.Header().Get("Content-Type"))
			assert.JSONEq(t, `{
				"type": "forbidden",
				"status": 403,
				"title": "Forbidden",
				"detail": "`+tt.wantDetail+`"
			}`, rr.Body.String())
		})
	}
}
