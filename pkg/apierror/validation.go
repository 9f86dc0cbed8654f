package apierror

import "encoding/json"

// ValidationErrors is the extension of validation problems. Entries keep the
// order in which they were added.
type ValidationErrors struct {
	Errors []ValidationError
}

// ValidationError describes one failure and where in the request it happened.
type ValidationError struct {
	Detail string
	Source Source
}

// Add appends a failure located at src.
func (v *ValidationErrors) Add(detail string, src Source) {
	v.Errors = append(v.Errors, ValidationError{Detail: detail, Source: src})
}

// Len returns the number of failures.
func (v ValidationErrors) Len() int {
	return len(v.Errors)
}

// MarshalJSON writes {"errors": [...]}; an empty list is written as [].
func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	errs := v.Errors
	if errs == nil {
		errs = []ValidationError{}
	}
	return marshalNoEscape(struct {
		Errors []ValidationError `json:"errors"`
	}{errs})
}

// UnmarshalJSON reads the "errors" member.
func (v *ValidationErrors) UnmarshalJSON(data []byte) error {
	var raw struct {
		Errors []ValidationError `json:"errors"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Errors = raw.Errors
	return nil
}

// MarshalJSON writes the detail followed by the members of the source.
func (e ValidationError) MarshalJSON() ([]byte, error) {
	if e.Source == nil {
		return nil, ErrMissingSource
	}

	base, err := marshalNoEscape(struct {
		Detail string `json:"detail"`
	}{e.Detail})
	if err != nil {
		return nil, err
	}

	src, err := marshalNoEscape(e.Source)
	if err != nil {
		return nil, err
	}

	return appendMembers(base, src)
}

// UnmarshalJSON reads the detail and dispatches on the "source" discriminant.
func (e *ValidationError) UnmarshalJSON(data []byte) error {
	var raw struct {
		Detail string `json:"detail"`
		sourceFields
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	src, err := raw.toSource()
	if err != nil {
		return err
	}

	e.Detail = raw.Detail
	e.Source = src
	return nil
}
