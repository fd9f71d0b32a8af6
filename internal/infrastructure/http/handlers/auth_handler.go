package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	base
	register       *auth.RegisterUser
	verifyEmail    *auth.VerifyEmail
	login          *auth.Login
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	resend         *auth.ResendConfirmation
}

// AuthUseCases groups the account-access flows served by AuthHandler.
type AuthUseCases struct {
	Register       *auth.RegisterUser
	VerifyEmail    *auth.VerifyEmail
	Resend         *auth.ResendConfirmation
	Login          *auth.Login
	ForgotPassword *auth.ForgotPassword
	ResetPassword  *auth.ResetPassword
}

func NewAuthHandler(views *Views, sessions *mw.Sessions, uc AuthUseCases, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		base:           base{views: views, sessions: sessions, log: log},
		register:       uc.Register,
		verifyEmail:    uc.VerifyEmail,
		login:          uc.Login,
		forgotPassword: uc.ForgotPassword,
		resetPassword:  uc.ResetPassword,
		resend:         uc.Resend,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", nil)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var f registerForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/register")
		return
	}
	email := SanitizeEmail(f.Email)
	if email == "" || !auth.ValidEmail(email) {
		h.flash(w, r, mw.FlashError, "Please enter a valid email address.")
		h.redirect(w, r, "/register")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterUserInput{
		Username: f.Username,
		Email:    email,
		Password: SanitizePassword(f.Password),
	})
	if err != nil {
		AuditLog(h.log, r, EventRegister, "", false, err.Error())
		mw.RecordAuthAttempt(EventRegister, false)
		h.fail(w, r, err, "/register")
		return
	}
	AuditLog(h.log, r, EventRegister, result.User.ID.String(), true, "")
	mw.RecordAuthAttempt(EventRegister, true)
	if result.ConfirmationErr != nil {
		h.log.Error().Err(result.ConfirmationErr).Str("user_id", result.User.ID.String()).Msg("send confirmation email")
		h.flash(w, r, mw.FlashWarning, "Your account was created, but we could not send the confirmation email. Please request a new link.")
		h.redirect(w, r, "/resend_confirmation")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Registration complete. Please follow the link in the confirmation email we sent you.")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) ResendConfirmationPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "resend_confirmation.html", nil)
}

// ResendConfirmation answers the same way whether or not the address needs confirming.
func (h *AuthHandler) ResendConfirmation(w http.ResponseWriter, r *http.Request) {
	var f emailForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/resend_confirmation")
		return
	}
	if _, err := h.resend.Execute(r.Context(), auth.ResendConfirmationInput{Email: SanitizeEmail(f.Email)}); err != nil {
		h.log.Error().Err(err).Msg("resend confirmation")
		h.flash(w, r, mw.FlashError, genericFailure)
		h.redirect(w, r, "/resend_confirmation")
		return
	}
	h.flash(w, r, mw.FlashInfo, "If that address is waiting for confirmation, a new link has been sent to it.")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	res, err := h.verifyEmail.Execute(r.Context(), auth.VerifyEmailInput{Token: chi.URLParam(r, "token")})
	if err != nil {
		h.fail(w, r, err, "/login")
		return
	}
	if res.AlreadyActive {
		h.flash(w, r, mw.FlashInfo, "Your account is already confirmed. Please log in.")
	} else {
		h.flash(w, r, mw.FlashSuccess, "Your email address has been confirmed. You can now log in.")
	}
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if currentUser(r) != nil {
		h.redirect(w, r, "/userinfo")
		return
	}
	h.render(w, r, http.StatusOK, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/login")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{Username: f.Username, Password: f.Password})
	if err != nil {
		AuditLog(h.log, r, EventLogin, "", false, err.Error())
		mw.RecordAuthAttempt(EventLogin, false)
		if errors.Is(err, domerrors.ErrAccountLocked) && result != nil && result.RetryAfter > 0 {
			h.flash(w, r, mw.FlashDanger, "Too many failed login attempts. Try again in "+strconv.Itoa(result.RetryAfter)+" seconds.")
			h.redirect(w, r, "/login")
			return
		}
		h.fail(w, r, err, "/login")
		return
	}
	if err := h.sessions.SignIn(w, r, result.User); err != nil {
		h.fail(w, r, err, "/login")
		return
	}
	AuditLog(h.log, r, EventLogin, result.User.ID.String(), true, "")
	mw.RecordAuthAttempt(EventLogin, true)
	h.flash(w, r, mw.FlashSuccess, "Logged in.")
	h.redirect(w, r, "/userinfo")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.log.Warn().Err(err).Msg("sign out")
	}
	h.flash(w, r, mw.FlashInfo, "You have been logged out.")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "forgot_password.html", nil)
}

// ForgotPassword answers the same way whether or not the address is registered.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var f emailForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/forgot_password")
		return
	}
	if _, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{Email: SanitizeEmail(f.Email)}); err != nil {
		h.log.Error().Err(err).Msg("forgot password")
	}
	h.flash(w, r, mw.FlashInfo, "If that address is registered, a password reset link has been sent to it.")
	h.redirect(w, r, "/login")
}

func (h *AuthHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.resetPassword.CheckToken(token); err != nil {
		h.fail(w, r, err, "/forgot_password")
		return
	}
	h.render(w, r, http.StatusOK, "reset_password.html", map[string]string{"Token": token})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var f resetForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/reset_password/"+token)
		return
	}
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{Token: token, NewPassword: SanitizePassword(f.Password)})
	if err != nil {
		AuditLog(h.log, r, EventPasswordReset, "", false, err.Error())
		if errors.Is(err, domerrors.ErrInvalidToken) {
			h.fail(w, r, err, "/forgot_password")
			return
		}
		h.fail(w, r, err, "/reset_password/"+token)
		return
	}
	AuditLog(h.log, r, EventPasswordReset, "", true, "")
	h.flash(w, r, mw.FlashSuccess, "Your password has been reset. Please log in.")
	h.redirect(w, r, "/login")
}
