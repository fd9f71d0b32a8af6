package handlers

import (
	"errors"
	"fmt"
	"testing"

	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
		message  string
		ok       bool
	}{
		{"invalid email", domerrors.ErrInvalidEmail, mw.FlashError, "Email address is not valid.", true},
		{"bad login", domerrors.ErrInvalidCredentials, mw.FlashDanger, "Invalid username or password.", true},
		{"wrapped validation", fmt.Errorf("%w: project_name", domerrors.ErrMissingField), mw.FlashError, "Required field is missing: project_name.", true},
		{"unexpected", errors.New("connection reset"), "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, message, ok := userMessage(tt.err)
			if category != tt.category || message != tt.message || ok != tt.ok {
				t.Errorf("userMessage(%v) = %q, %q, %v; want %q, %q, %v", tt.err, category, message, ok, tt.category, tt.message, tt.ok)
			}
		})
	}
}
