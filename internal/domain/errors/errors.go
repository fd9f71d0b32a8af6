package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status or flash messages.
var (
	ErrUserExists         = errors.New("username or email already registered")
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account email has not been confirmed")
	ErrAccountLocked      = errors.New("too many failed login attempts")
	ErrNotAdmin           = errors.New("administrator privileges required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("link is invalid or has expired")
	ErrForbidden          = errors.New("not allowed to modify this resource")

	ErrProjectNotFound    = errors.New("project not found")
	ErrIndividualNotFound = errors.New("individual development not found")
	ErrContactNotFound    = errors.New("contact not found")

	ErrMissingField        = errors.New("required field is missing")
	ErrInvalidEmail        = errors.New("email address is not valid")
	ErrInvalidMonth        = errors.New("month must be formatted as YYYY-MM")
	ErrInvalidNumber       = errors.New("value must be a non-negative number")
	ErrInvalidCategory     = errors.New("unknown technology category")
	ErrInvalidProcess      = errors.New("unknown development process")
	ErrDuplicateTechnology = errors.New("duplicate technology name in the same category")

	// ErrLinkInvalid covers malformed, unknown and deactivated share links alike.
	ErrLinkInvalid = errors.New("this link is invalid")

	ErrFontUnavailable = errors.New("pdf font could not be loaded")
)
