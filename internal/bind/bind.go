// Package bind decodes and validates request input, reporting every failure
// as an apierror.ValidationError with the location that caused it.
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/JonnyWalker81/problemjson/internal/problemhttp"
	"github.com/JonnyWalker81/problemjson/pkg/apierror"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterTagNames makes gin's validator report JSON member names instead of
// Go field names, so namespaces translate directly into JSON pointers. The
// validator caches struct metadata on first use, so this must run before any
// request is bound.
func RegisterTagNames() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterTagNameFunc(jsonTagName)
		}
	})
}

func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// JSON decodes the request body into obj and validates it. When ok is false
// errs holds at least one failure.
func JSON(c *gin.Context, obj any) (errs apierror.ValidationErrors, ok bool) {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		body, _ := c.Get(gin.BodyBytesKey)
		raw, _ := body.([]byte)
		return Translate(err, raw), false
	}
	return apierror.ValidationErrors{}, true
}

// Translate converts a binding error into validation errors. Failures inside
// the body carry a JSON pointer; failures of the body as a whole carry none.
// body is the request body the error came from. It may be nil, in which case
// type mismatches inside arrays point at the array.
func Translate(err error, body []byte) apierror.ValidationErrors {
	var out apierror.ValidationErrors

	var fieldErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			out.Add(message(fe), apierror.FromBody(namespacePointer(fe.Namespace())))
		}
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			out.Add("must be "+jsonKind(typeErr.Type), apierror.FromWholeBody())
			break
		}
		tokens, found := valuePath(body, typeErr.Offset)
		if !found || len(tokens) == 0 {
			tokens = strings.Split(typeErr.Field, ".")
		}
		out.Add("must be "+jsonKind(typeErr.Type), apierror.FromBody(apierror.Pointer(tokens...)))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		out.Add("is not valid JSON", apierror.FromWholeBody())
	case errors.Is(err, io.EOF):
		out.Add("is required", apierror.FromWholeBody())
	default:
		out.Add("could not be read", apierror.FromWholeBody())
	}

	return out
}

// namespacePointer turns a validator namespace such as
// "CreatePersonRequest.addresses[0].street" into "/addresses/0/street".
// The first segment names the root struct and is dropped.
func namespacePointer(namespace string) string {
	segments := strings.Split(namespace, ".")
	if len(segments) > 0 {
		segments = segments[1:]
	}

	tokens := make([]string, 0, len(segments))
	for _, seg := range segments {
		name, rest, indexed := strings.Cut(seg, "[")
		if name != "" {
			tokens = append(tokens, name)
		}
		for indexed {
			var idx string
			idx, rest, _ = strings.Cut(rest, "]")
			tokens = append(tokens, idx)
			_, rest, indexed = strings.Cut(rest, "[")
		}
	}
	return apierror.Pointer(tokens...)
}

func jsonKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	case reflect.Pointer:
		return jsonKind(t.Elem())
	}
	return "a different type"
}

// RequireHeader reports every named header missing from the request.
func RequireHeader(c *gin.Context, names ...string) apierror.ValidationErrors {
	var out apierror.ValidationErrors
	for _, name := range names {
		if strings.TrimSpace(c.GetHeader(name)) == "" {
			out.Add("is required", apierror.FromHeader(http.CanonicalHeaderKey(name)))
		}
	}
	return out
}

// RequireContentType rejects requests with a body whose media type is not want.
func RequireContentType(w *problemhttp.Writer, want string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		if got := c.ContentType(); got != want {
			problemhttp.Write(w, c, apierror.NewUnsupportedMediaTypeError(got, want))
			return
		}
		c.Next()
	}
}
