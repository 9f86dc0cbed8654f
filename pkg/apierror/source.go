package apierror

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-openapi/jsonpointer"
)

// Discriminant values of the "source" member.
const (
	SourceBody   = "body"
	SourceHeader = "header"
)

var (
	// ErrMissingSource indicates a validation error without a Source.
	ErrMissingSource = errors.New("apierror: validation error has no source")
	// ErrUnknownSource indicates a "source" discriminant other than body or header.
	ErrUnknownSource = errors.New("apierror: unknown validation error source")
)

// Source is the request part where a validation problem occurred.
// It is implemented by BodySource and HeaderSource only.
type Source interface {
	// Kind returns the value of the "source" discriminant.
	Kind() string

	isSource()
}

// BodySource locates a problem in the request payload.
type BodySource struct {
	// Pointer is an RFC 6901 JSON Pointer at the problematic body property.
	// Nil means the payload as a whole is the problem.
	Pointer *string
}

// HeaderSource locates a problem in a named request header.
type HeaderSource struct {
	Name string
}

func (BodySource) Kind() string   { return SourceBody }
func (HeaderSource) Kind() string { return SourceHeader }

func (BodySource) isSource()   {}
func (HeaderSource) isSource() {}

// MarshalJSON writes the discriminant and, when set, the pointer.
func (s BodySource) MarshalJSON() ([]byte, error) {
	return marshalNoEscape(struct {
		Source  string  `json:"source"`
		Pointer *string `json:"pointer,omitempty"`
	}{SourceBody, s.Pointer})
}

// MarshalJSON writes the discriminant and the header name.
func (s HeaderSource) MarshalJSON() ([]byte, error) {
	return marshalNoEscape(struct {
		Source string `json:"source"`
		Name   string `json:"name"`
	}{SourceHeader, s.Name})
}

// FromBody returns a body source pointing at the given JSON Pointer.
func FromBody(pointer string) Source {
	return BodySource{Pointer: &pointer}
}

// FromWholeBody returns a body source for problems with the payload as a whole.
func FromWholeBody() Source {
	return BodySource{}
}

// FromHeader returns a source for the named request header.
func FromHeader(name string) Source {
	return HeaderSource{Name: name}
}

// Pointer builds a JSON Pointer from unescaped reference tokens.
// Pointer() is the empty pointer, which refers to the whole document.
func Pointer(tokens ...string) string {
	var p []byte
	for _, token := range tokens {
		p = append(p, '/')
		p = append(p, jsonpointer.Escape(token)...)
	}
	return string(p)
}

// sourceFields is the union of the members any Source variant writes.
type sourceFields struct {
	Source  string  `json:"source"`
	Pointer *string `json:"pointer"`
	Name    *string `json:"name"`
}

func (f sourceFields) toSource() (Source, error) {
	switch f.Source {
	case SourceBody:
		return BodySource{Pointer: f.Pointer}, nil
	case SourceHeader:
		if f.Name == nil {
			return nil, fmt.Errorf("apierror: header source without name")
		}
		return HeaderSource{Name: *f.Name}, nil
	case "":
		return nil, ErrMissingSource
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, f.Source)
	}
}

// ParseSource decodes a JSON object carrying a "source" discriminant.
func ParseSource(data []byte) (Source, error) {
	var f sourceFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f.toSource()
}
