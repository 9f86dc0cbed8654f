package apierror

// Problem type identifiers used as the "type" member.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "validation_error"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "bad_request"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "unauthorized"

	// TypeForbidden indicates insufficient permissions (403)
	TypeForbidden = "forbidden"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "not_found"

	// TypeMethodNotAllowed indicates the route exists for other methods (405)
	TypeMethodNotAllowed = "method_not_allowed"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "conflict"

	// TypeUnsupportedMediaType indicates a request body in an unsupported format (415)
	TypeUnsupportedMediaType = "unsupported_media_type"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "internal_server_error"

	// TypeServiceUnavailable indicates the service cannot handle requests right now (503)
	TypeServiceUnavailable = "service_unavailable"
)

// Titles for each problem type
const (
	TitleValidation           = "Bad Request"
	TitleBadRequest           = "Bad Request"
	TitleUnauthorized         = "Unauthorized"
	TitleForbidden            = "Forbidden"
	TitleNotFound             = "Not Found"
	TitleMethodNotAllowed     = "Method Not Allowed"
	TitleConflict             = "Conflict"
	TitleUnsupportedMediaType = "Unsupported Media Type"
	TitleRateLimit            = "Too Many Requests"
	TitleInternal             = "Internal Server Error"
	TitleServiceUnavailable   = "Service Unavailable"
)
