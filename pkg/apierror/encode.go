package apierror

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// initialBufferSize fits most problem documents without growing.
const initialBufferSize = 128

// ErrInvalidStatus indicates a problem whose status is not an HTTP status code.
var ErrInvalidStatus = errors.New("apierror: status is not a valid HTTP status code")

// Response is an encoded problem ready to be handed to the transport.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Header returns the headers the response must be sent with.
func (r Response) Header() http.Header {
	return http.Header{"Content-Type": []string{r.ContentType}}
}

// Write sends the response through w.
func (r Response) Write(w http.ResponseWriter) error {
	header := w.Header()
	header.Set("Content-Type", r.ContentType)
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(r.Status)
	_, err := w.Write(r.Body)
	return err
}

// Encode serializes p into a Response. If p cannot be serialized the static
// InternalServerError response is returned instead, so the result is always
// a well-formed problem document.
func Encode[E any](p ProblemDetails[E]) Response {
	return EncodeWith(p, nil)
}

// EncodeWith is Encode with an observer that receives the cause whenever
// the fallback response is substituted. onFallback may be nil.
func EncodeWith[E any](p ProblemDetails[E], onFallback func(error)) Response {
	body, err := encode(p)
	if err != nil {
		if onFallback != nil {
			onFallback(err)
		}
		return InternalServerError()
	}

	return Response{
		Status:      p.Status,
		ContentType: ContentTypeProblemJSON,
		Body:        body,
	}
}

func encode[E any](p ProblemDetails[E]) ([]byte, error) {
	if p.Status < 100 || p.Status > 599 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, p.Status)
	}

	buf := bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
