package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	if ErrUserExists == nil {
		t.Error("ErrUserExists should not be nil")
	}
	if ErrInvalidCredentials == nil {
		t.Error("ErrInvalidCredentials should not be nil")
	}
	if ErrLinkInvalid == nil {
		t.Error("ErrLinkInvalid should not be nil")
	}
}

func TestWrappedMissingField(t *testing.T) {
	err := fmt.Errorf("%w: project name", ErrMissingField)
	if !errors.Is(err, ErrMissingField) {
		t.Error("wrapped error should match ErrMissingField")
	}
	if errors.Is(err, ErrInvalidMonth) {
		t.Error("wrapped error should not match ErrInvalidMonth")
	}
}
