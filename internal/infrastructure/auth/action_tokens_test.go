package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

func TestIssueAndValidate(t *testing.T) {
	s := NewActionTokenSigner([]byte("secret"), "skillcanvas")
	token, err := s.Issue(ports.PurposeConfirmEmail, "taro@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	email, err := s.Validate(ports.PurposeConfirmEmail, token)
	if err != nil || email != "taro@example.com" {
		t.Fatalf("Validate = %q, %v", email, err)
	}
}

func TestValidateRejects(t *testing.T) {
	s := NewActionTokenSigner([]byte("secret"), "skillcanvas")
	token, _ := s.Issue(ports.PurposeConfirmEmail, "taro@example.com", time.Hour)

	if _, err := s.Validate(ports.PurposeResetPassword, token); !errors.Is(err, errWrongPurpose) {
		t.Errorf("wrong purpose: got %v", err)
	}
	other := NewActionTokenSigner([]byte("other-secret"), "skillcanvas")
	if _, err := other.Validate(ports.PurposeConfirmEmail, token); err == nil {
		t.Error("token signed with another secret accepted")
	}
	foreign := NewActionTokenSigner([]byte("secret"), "someone-else")
	if _, err := foreign.Validate(ports.PurposeConfirmEmail, token); err == nil {
		t.Error("token from another issuer accepted")
	}
	if _, err := s.Validate(ports.PurposeConfirmEmail, "not.a.token"); err == nil {
		t.Error("garbage accepted")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	s := NewActionTokenSigner([]byte("secret"), "skillcanvas")
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }
	token, _ := s.Issue(ports.PurposeResetPassword, "taro@example.com", time.Hour)

	s.now = func() time.Time { return issued.Add(59 * time.Minute) }
	if _, err := s.Validate(ports.PurposeResetPassword, token); err != nil {
		t.Errorf("token within ttl rejected: %v", err)
	}
	s.now = func() time.Time { return issued.Add(61 * time.Minute) }
	if _, err := s.Validate(ports.PurposeResetPassword, token); err == nil {
		t.Error("expired token accepted")
	}
}
