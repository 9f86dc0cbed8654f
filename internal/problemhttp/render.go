// Package problemhttp writes problem documents through gin.
package problemhttp

import (
	"net/http"

	"github.com/JonnyWalker81/problemjson/pkg/apierror"
)

// Render is a gin render.Render for an encoded problem response.
type Render struct {
	Response apierror.Response
}

// Render writes the encoded body.
func (r Render) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	_, err := w.Write(r.Response.Body)
	return err
}

// WriteContentType sets the problem media type and disables sniffing.
func (r Render) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	header.Set("Content-Type", r.Response.ContentType)
	header.Set("X-Content-Type-Options", "nosniff")
}
