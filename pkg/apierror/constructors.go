package apierror

import (
	"fmt"
	"net/http"
)

// RetryAfterer is implemented by extensions that tell clients when to retry.
// HTTP adapters send the value as the Retry-After header.
type RetryAfterer interface {
	RetryAfterSeconds() int
}

// RetryInfo is the extension of rate limit and availability problems.
type RetryInfo struct {
	RetryAfter int `json:"retry_after"` // Seconds until retry allowed
}

// RetryAfterSeconds implements RetryAfterer.
func (r RetryInfo) RetryAfterSeconds() int {
	return r.RetryAfter
}

// NewValidationError creates a 400 Bad Request problem for validation failures.
// All failures are reported at once, in the order given.
func NewValidationError(detail string, errs ...ValidationError) ProblemDetails[ValidationErrors] {
	if detail == "" {
		detail = "One or more fields failed validation"
	}
	p := New(TypeValidation, http.StatusBadRequest, TitleValidation, detail)
	return WithExtensions(p, ValidationErrors{Errors: errs})
}

// NewBadRequestError creates a 400 Bad Request problem for malformed requests.
func NewBadRequestError(detail string) Problem {
	return New(TypeBadRequest, http.StatusBadRequest, TitleBadRequest, detail)
}

// NewUnauthorizedError creates a 401 Unauthorized problem.
func NewUnauthorizedError() Problem {
	return New(TypeUnauthorized, http.StatusUnauthorized, TitleUnauthorized,
		"Authentication is required to access this resource")
}

// NewForbiddenError creates a 403 Forbidden problem.
func NewForbiddenError() Problem {
	return New(TypeForbidden, http.StatusForbidden, TitleForbidden,
		"You do not have permission to access this resource")
}

// NewNotFoundError creates a 404 Not Found problem for a missing resource.
func NewNotFoundError(resource, id string) Problem {
	return New(TypeNotFound, http.StatusNotFound, TitleNotFound,
		fmt.Sprintf("%s with ID '%s' was not found", resource, id))
}

// NewRouteNotFoundError creates a 404 Not Found problem for an unknown path.
func NewRouteNotFoundError(path string) Problem {
	return New(TypeNotFound, http.StatusNotFound, TitleNotFound,
		fmt.Sprintf("path %s not found", path))
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed problem.
func NewMethodNotAllowedError(method string) Problem {
	return New(TypeMethodNotAllowed, http.StatusMethodNotAllowed, TitleMethodNotAllowed,
		fmt.Sprintf("method %s not allowed", method))
}

// NewConflictError creates a 409 Conflict problem.
func NewConflictError(detail string) Problem {
	return New(TypeConflict, http.StatusConflict, TitleConflict, detail)
}

// NewUnsupportedMediaTypeError creates a 415 Unsupported Media Type problem.
func NewUnsupportedMediaTypeError(got, want string) Problem {
	return New(TypeUnsupportedMediaType, http.StatusUnsupportedMediaType, TitleUnsupportedMediaType,
		fmt.Sprintf("content type %q is not supported, use %q", got, want))
}

// NewRateLimitError creates a 429 Too Many Requests problem.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(retryAfter int) ProblemDetails[RetryInfo] {
	p := New(TypeRateLimit, http.StatusTooManyRequests, TitleRateLimit,
		fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter))
	return WithExtensions(p, RetryInfo{RetryAfter: retryAfter})
}

// NewInternalError creates a 500 Internal Server Error problem.
// It intentionally hides internal error details from the client; the cause
// should be logged server-side.
func NewInternalError() Problem {
	return New(TypeInternal, http.StatusInternalServerError, TitleInternal,
		"An unexpected error occurred")
}

// NewServiceUnavailableError creates a 503 Service Unavailable problem.
func NewServiceUnavailableError(retryAfter int) ProblemDetails[RetryInfo] {
	p := New(TypeServiceUnavailable, http.StatusServiceUnavailable, TitleServiceUnavailable,
		"The service is temporarily unavailable")
	return WithExtensions(p, RetryInfo{RetryAfter: retryAfter})
}
