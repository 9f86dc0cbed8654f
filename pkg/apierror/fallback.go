package apierror

import "net/http"

// InternalServerErrorProblem is the body sent when a problem cannot be encoded.
const InternalServerErrorProblem = `{
    "type": "internal_server_error",
    "title": "Internal Server Error",
    "detail": "Something went wrong when processing your request. Please try again later.",
    "status": 500
}`

// InternalServerError returns the fallback response. Each call gets its own
// copy of the body, so callers may modify it freely.
func InternalServerError() Response {
	return Response{
		Status:      http.StatusInternalServerError,
		ContentType: ContentTypeProblemJSON,
		Body:        []byte(InternalServerErrorProblem),
	}
}
