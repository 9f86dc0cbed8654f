package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrExtensionNotObject indicates an extension did not serialize to a JSON object.
	ErrExtensionNotObject = errors.New("apierror: extension must serialize to a JSON object")
	// ErrReservedMember indicates an extension tried to set one of the envelope members.
	ErrReservedMember = errors.New("apierror: extension uses a reserved member name")
)

// ProblemDetails represents an RFC 9457 Problem Details response carrying an
// optional extension payload of type E.
//
// The members of the serialized extension are merged into the top-level
// object rather than nested under a key, so E must serialize to a JSON
// object and must not use the names type, status, title or detail.
type ProblemDetails[E any] struct {
	Type   string // Stable identifier for the problem kind (URI or short token)
	Status int    // HTTP status code, duplicated from the transport
	Title  string // Short summary, stable for a given Type
	Detail string // Explanation specific to this occurrence

	// Extensions is flattened into the envelope. Nil means no extra members.
	Extensions *E
}

// NoExtensions is the extension type of problems without extra members.
type NoExtensions struct{}

// Problem is a problem document without extension members.
type Problem = ProblemDetails[NoExtensions]

// envelope holds the members every problem document carries, in wire order.
type envelope struct {
	Type   string `json:"type"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// New creates a problem without extension members.
func New(problemType string, status int, title, detail string) Problem {
	return Problem{
		Type:   problemType,
		Status: status,
		Title:  title,
		Detail: detail,
	}
}

// WithExtensions returns a copy of p carrying ext as its extension payload.
func WithExtensions[E, F any](p ProblemDetails[F], ext E) ProblemDetails[E] {
	return ProblemDetails[E]{
		Type:       p.Type,
		Status:     p.Status,
		Title:      p.Title,
		Detail:     p.Detail,
		Extensions: &ext,
	}
}

// Error implements the error interface for ProblemDetails.
func (p ProblemDetails[E]) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// MarshalJSON writes the envelope members followed by the extension members.
func (p ProblemDetails[E]) MarshalJSON() ([]byte, error) {
	base, err := marshalNoEscape(envelope{
		Type:   p.Type,
		Status: p.Status,
		Title:  p.Title,
		Detail: p.Detail,
	})
	if err != nil {
		return nil, err
	}

	if p.Extensions == nil {
		return base, nil
	}

	ext, err := marshalNoEscape(p.Extensions)
	if err != nil {
		return nil, fmt.Errorf("apierror: encode extensions: %w", err)
	}
	if err := checkReserved(ext); err != nil {
		return nil, err
	}

	return appendMembers(base, ext)
}

// UnmarshalJSON reads the envelope members and, when the document has any
// other member, decodes the whole object into a new extension value.
func (p *ProblemDetails[E]) UnmarshalJSON(data []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	if members == nil {
		return ErrExtensionNotObject
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	p.Type = env.Type
	p.Status = env.Status
	p.Title = env.Title
	p.Detail = env.Detail
	p.Extensions = nil

	for name := range members {
		if isReserved(name) {
			continue
		}
		ext := new(E)
		if err := json.Unmarshal(data, ext); err != nil {
			return fmt.Errorf("apierror: decode extensions: %w", err)
		}
		p.Extensions = ext
		break
	}

	return nil
}

// Decode parses a problem document whose extension members decode into E.
func Decode[E any](data []byte) (ProblemDetails[E], error) {
	var p ProblemDetails[E]
	if err := json.Unmarshal(data, &p); err != nil {
		return ProblemDetails[E]{}, err
	}
	return p, nil
}

func isReserved(name string) bool {
	switch name {
	case "type", "status", "title", "detail":
		return true
	}
	return false
}

// checkReserved rejects extension objects that would shadow envelope members.
func checkReserved(ext []byte) error {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(ext, &members); err != nil || members == nil {
		return ErrExtensionNotObject
	}
	for name := range members {
		if isReserved(name) {
			return fmt.Errorf("%w: %q", ErrReservedMember, name)
		}
	}
	return nil
}
