package handlers

import (
	"errors"
	"strings"
	"unicode"

	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

const genericFailure = "Something went wrong. Please try again."

var fixedMessages = []struct {
	err      error
	category string
	message  string
}{
	{domerrors.ErrUserExists, mw.FlashError, "That username or email address is already registered."},
	{domerrors.ErrEmailTaken, mw.FlashError, "That email address is already in use."},
	{domerrors.ErrInvalidCredentials, mw.FlashDanger, "Invalid username or password."},
	{domerrors.ErrAccountInactive, mw.FlashWarning, "Please confirm your email address before logging in. You can ask for a new confirmation link below."},
	{domerrors.ErrAccountLocked, mw.FlashDanger, "Too many failed login attempts. Please try again later."},
	{domerrors.ErrNotAdmin, mw.FlashDanger, "Administrator privileges are required."},
	{domerrors.ErrInvalidToken, mw.FlashDanger, "The link is invalid or has expired."},
	{domerrors.ErrForbidden, mw.FlashDanger, "You are not allowed to change this item."},
	{domerrors.ErrUserNotFound, mw.FlashDanger, "User not found."},
	{domerrors.ErrProjectNotFound, mw.FlashDanger, "Project not found."},
	{domerrors.ErrIndividualNotFound, mw.FlashDanger, "Individual development not found."},
	{domerrors.ErrContactNotFound, mw.FlashDanger, "Message not found."},
	{domerrors.ErrLinkInvalid, mw.FlashDanger, "This link is invalid."},
}

// Validation errors carry detail (field, category, name) in their text.
var validationErrors = []error{
	domerrors.ErrMissingField,
	domerrors.ErrInvalidEmail,
	domerrors.ErrInvalidMonth,
	domerrors.ErrInvalidNumber,
	domerrors.ErrInvalidCategory,
	domerrors.ErrInvalidProcess,
	domerrors.ErrDuplicateTechnology,
}

// userMessage maps a domain error to a flash category and text. ok is false for
// unexpected errors, which the caller logs.
func userMessage(err error) (category, message string, ok bool) {
	for _, m := range fixedMessages {
		if errors.Is(err, m.err) {
			return m.category, m.message, true
		}
	}
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return mw.FlashError, sentence(err.Error()), true
		}
	}
	return "", "", false
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	out := string(r)
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}
