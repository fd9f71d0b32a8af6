package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/account"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

// AccountHandler serves the signed-in user's account and profile pages.
type AccountHandler struct {
	base
	updateAccount *account.UpdateAccount
	updateProfile *account.UpdateProfile
	deleteAccount *account.DeleteAccount
}

func NewAccountHandler(views *Views, sessions *mw.Sessions, updateAccount *account.UpdateAccount, updateProfile *account.UpdateProfile, deleteAccount *account.DeleteAccount, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		base:          base{views: views, sessions: sessions, log: log},
		updateAccount: updateAccount,
		updateProfile: updateProfile,
		deleteAccount: deleteAccount,
	}
}

func (h *AccountHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "userinfo.html", nil)
}

func (h *AccountHandler) AccountPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "account.html", nil)
}

func (h *AccountHandler) Account(w http.ResponseWriter, r *http.Request) {
	var f accountForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/account")
		return
	}
	user := currentUser(r)
	_, err := h.updateAccount.Execute(r.Context(), account.UpdateAccountInput{
		UserID:   user.ID,
		Username: f.Username,
		Email:    SanitizeEmail(f.Email),
		Password: SanitizePassword(f.Password),
	})
	if err != nil {
		h.fail(w, r, err, "/account")
		return
	}
	h.log.Info().Str("user_id", user.ID.String()).Msg("account updated")
	h.flash(w, r, mw.FlashSuccess, "Your account has been updated.")
	h.redirect(w, r, "/account")
}

func (h *AccountHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := h.deleteAccount.Execute(r.Context(), account.DeleteAccountInput{UserID: user.ID}); err != nil {
		h.fail(w, r, err, "/account")
		return
	}
	h.log.Info().Str("user_id", user.ID.String()).Msg("account deleted")
	if err := h.sessions.SignOut(w, r); err != nil {
		h.log.Warn().Err(err).Msg("sign out")
	}
	h.flash(w, r, mw.FlashInfo, "Your account has been deleted.")
	h.redirect(w, r, "/")
}

func (h *AccountHandler) ProfilePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "profile.html", nil)
}

func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	var f profileForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/profile")
		return
	}
	p, err := f.profile()
	if err != nil {
		h.fail(w, r, err, "/profile")
		return
	}
	user := currentUser(r)
	if _, err := h.updateProfile.Execute(r.Context(), account.UpdateProfileInput{UserID: user.ID, Profile: p}); err != nil {
		h.fail(w, r, err, "/profile")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Your profile has been updated.")
	h.redirect(w, r, "/profile")
}
