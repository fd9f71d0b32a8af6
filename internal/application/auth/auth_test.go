package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/lockout"
)

type fixture struct {
	store    *portstest.Store
	enqueuer *portstest.Enqueuer
	register *RegisterUser
	verify   *VerifyEmail
	login    *Login
	forgot   *ForgotPassword
	reset    *ResetPassword
}

func newFixture() *fixture {
	store := portstest.NewStore()
	enq := &portstest.Enqueuer{}
	users := store.Users()
	signer := portstest.Signer{}
	hasher := portstest.PlainHasher{}
	sender := NewSendEmailVerification(signer, enq, "http://localhost:8080/", 3600)
	return &fixture{
		store:    store,
		enqueuer: enq,
		register: NewRegisterUser(users, hasher, sender),
		verify:   NewVerifyEmail(signer, users),
		login:    NewLogin(users, hasher, lockout.NewMemoryStore(3, 60)),
		forgot:   NewForgotPassword(signer, users, enq, "http://localhost:8080", 3600),
		reset:    NewResetPassword(signer, users, hasher),
	}
}

func tokenFromBody(t *testing.T, body, prefix string) string {
	t.Helper()
	i := strings.Index(body, prefix)
	if i < 0 {
		t.Fatalf("body %q does not contain %q", body, prefix)
	}
	return body[i+len(prefix):]
}

func TestRegisterConfirmLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	res, err := f.register.Execute(ctx, RegisterUserInput{Username: "taro", Email: "taro@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if res.User.IsActive {
		t.Fatal("new user should be inactive")
	}
	if _, err := f.login.Execute(ctx, LoginInput{Username: "taro", Password: "secret123"}); !errors.Is(err, domerrors.ErrAccountInactive) {
		t.Fatalf("login before confirm: got %v, want ErrAccountInactive", err)
	}

	mail := f.enqueuer.LastEmail()
	if mail.To != "taro@example.com" {
		t.Fatalf("confirmation sent to %q", mail.To)
	}
	token := tokenFromBody(t, mail.Body, "http://localhost:8080/confirm_email/")
	vr, err := f.verify.Execute(ctx, VerifyEmailInput{Token: token})
	if err != nil || vr.AlreadyActive {
		t.Fatalf("verify: %v %+v", err, vr)
	}
	vr, err = f.verify.Execute(ctx, VerifyEmailInput{Token: token})
	if err != nil || !vr.AlreadyActive {
		t.Fatalf("second verify should report already active: %v %+v", err, vr)
	}

	lr, err := f.login.Execute(ctx, LoginInput{Username: "taro", Password: "secret123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if lr.User.Email != "taro@example.com" {
		t.Errorf("unexpected user %+v", lr.User)
	}
	if _, err := f.login.Execute(ctx, LoginInput{Username: "taro", Password: "secret123", RequireAdmin: true}); !errors.Is(err, domerrors.ErrNotAdmin) {
		t.Errorf("admin login for non-admin: got %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	in := RegisterUserInput{Username: "a", Email: "a@example.com", Password: "pw"}
	if _, err := f.register.Execute(ctx, in); err != nil {
		t.Fatal(err)
	}
	if _, err := f.register.Execute(ctx, in); !errors.Is(err, domerrors.ErrUserExists) {
		t.Errorf("duplicate email: got %v", err)
	}
	in.Email = "other@example.com"
	if _, err := f.register.Execute(ctx, in); !errors.Is(err, domerrors.ErrUserExists) {
		t.Errorf("duplicate username: got %v", err)
	}
	if _, err := f.register.Execute(ctx, RegisterUserInput{Username: "b", Email: "not-an-email", Password: "pw"}); !errors.Is(err, domerrors.ErrInvalidEmail) {
		t.Errorf("bad email: got %v", err)
	}
}

func TestVerifyRejectsWrongPurpose(t *testing.T) {
	f := newFixture()
	token, _ := portstest.Signer{}.Issue("reset_password", "x@example.com", 3600)
	if _, err := f.verify.Execute(context.Background(), VerifyEmailInput{Token: token}); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Errorf("got %v, want ErrInvalidToken", err)
	}
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, _ = f.register.Execute(ctx, RegisterUserInput{Username: "lock", Email: "lock@example.com", Password: "right", Active: true})
	for i := 0; i < 3; i++ {
		if _, err := f.login.Execute(ctx, LoginInput{Username: "lock", Password: "wrong"}); !errors.Is(err, domerrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: got %v", i, err)
		}
	}
	res, err := f.login.Execute(ctx, LoginInput{Username: "lock", Password: "right"})
	if !errors.Is(err, domerrors.ErrAccountLocked) {
		t.Fatalf("got %v, want ErrAccountLocked", err)
	}
	if res == nil || res.RetryAfter <= 0 {
		t.Errorf("expected retry-after, got %+v", res)
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	_, _ = f.register.Execute(ctx, RegisterUserInput{Username: "r", Email: "r@example.com", Password: "old", Active: true})

	if _, err := f.forgot.Execute(ctx, ForgotPasswordInput{Email: "nobody@example.com"}); err != nil {
		t.Fatalf("unknown email should not fail: %v", err)
	}
	if len(f.enqueuer.Emails) != 0 {
		t.Fatal("no email should be sent for an unknown address")
	}
	if _, err := f.forgot.Execute(ctx, ForgotPasswordInput{Email: "r@example.com"}); err != nil {
		t.Fatal(err)
	}
	mail := f.enqueuer.LastEmail()
	token := tokenFromBody(t, mail.Body, "http://localhost:8080/reset_password/")
	if err := f.reset.CheckToken(token); err != nil {
		t.Fatalf("CheckToken: %v", err)
	}
	if err := f.reset.CheckToken("garbage"); !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Errorf("CheckToken(garbage) = %v", err)
	}
	if _, err := f.reset.Execute(ctx, ResetPasswordInput{Token: token, NewPassword: "new"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.login.Execute(ctx, LoginInput{Username: "r", Password: "new"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
}

func TestRegisterKeepsAccountWhenMailFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.enqueuer.FailEmails(errors.New("smtp unavailable"))

	res, err := f.register.Execute(ctx, RegisterUserInput{Username: "jiro", Email: "jiro@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register should succeed without the email: %v", err)
	}
	if res.ConfirmationErr == nil {
		t.Fatal("expected ConfirmationErr to report the failed send")
	}
	if u, _ := f.store.Users().GetByEmail(ctx, "jiro@example.com"); u == nil || u.IsActive {
		t.Fatalf("expected a stored inactive user, got %+v", u)
	}
}

func TestResendConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	resend := NewResendConfirmation(f.store.Users(), NewSendEmailVerification(portstest.Signer{}, f.enqueuer, "http://localhost:8080", 3600))
	_, _ = f.register.Execute(ctx, RegisterUserInput{Username: "ina", Email: "ina@example.com", Password: "pw"})
	_, _ = f.register.Execute(ctx, RegisterUserInput{Username: "act", Email: "act@example.com", Password: "pw", Active: true})
	sent := len(f.enqueuer.Emails)

	tests := []struct {
		email    string
		wantMail bool
	}{
		{"ina@example.com", true},
		{"act@example.com", false},
		{"nobody@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if _, err := resend.Execute(ctx, ResendConfirmationInput{Email: tt.email}); err != nil {
				t.Fatal(err)
			}
			got := len(f.enqueuer.Emails) > sent
			if got != tt.wantMail {
				t.Errorf("mail sent = %v, want %v", got, tt.wantMail)
			}
			sent = len(f.enqueuer.Emails)
		})
	}

	token := tokenFromBody(t, f.enqueuer.LastEmail().Body, "http://localhost:8080/confirm_email/")
	if _, err := f.verify.Execute(ctx, VerifyEmailInput{Token: token}); err != nil {
		t.Fatalf("resent link should confirm: %v", err)
	}
	f.enqueuer.FailEmails(errors.New("smtp unavailable"))
	_, _ = f.register.Execute(ctx, RegisterUserInput{Username: "late", Email: "late@example.com", Password: "pw"})
	if _, err := resend.Execute(ctx, ResendConfirmationInput{Email: "late@example.com"}); err == nil {
		t.Error("a failed send should be reported")
	}
}
