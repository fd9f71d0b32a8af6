package handlers

// JSON error codes returned in { "error": "...", "code": "..." } by the JSON endpoints.
const (
	ErrCodeUnauthorized   = "unauthorized"
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "conflict"
	ErrCodeForbidden      = "forbidden"
	ErrCodeRateLimited    = "rate_limited"
	ErrCodeInvalidLink    = "invalid_link"
	ErrCodeInternal       = "internal_error"
)
