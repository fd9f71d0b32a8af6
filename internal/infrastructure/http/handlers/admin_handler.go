package handlers

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/account"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/admin"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/contact"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/logging"
)

// AdminDeps are the use cases behind the admin console.
type AdminDeps struct {
	Login          *auth.Login
	SearchUsers    *admin.SearchUsers
	SearchProjects *admin.SearchProjects
	CreateUser     *admin.CreateUser
	UpdateUser     *admin.UpdateUser
	GetUser        *admin.GetUser
	DeleteUser     *account.DeleteAccount
	CreateProject  *project.CreateProject
	GetProject     *project.GetProject
	EditProject    *project.EditProject
	DeleteProject  *project.DeleteProject
	ListContacts   *contact.List
	GetContact     *contact.Get
	Reply          *contact.Reply
	Users          ports.UserRepository
	// ShareURL turns a link code into its public address.
	ShareURL func(code string) string
	LogFile  string
}

// AdminHandler serves /admin and /admin/*. Everything but the login is behind RequireAdmin.
type AdminHandler struct {
	base
	d AdminDeps
}

func NewAdminHandler(views *Views, sessions *mw.Sessions, deps AdminDeps, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{base: base{views: views, sessions: sessions, log: log}, d: deps}
}

var adminActor = project.Actor{IsAdmin: true}

func (h *AdminHandler) audit(r *http.Request, action string) {
	AuditLog(h.log.With().Str("action", action).Logger(), r, EventAdminAction, currentUser(r).ID.String(), true, "")
}

func (h *AdminHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if u := currentUser(r); u != nil && u.IsAdmin {
		h.redirect(w, r, "/admin/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin_login.html", nil)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/admin")
		return
	}
	res, err := h.d.Login.Execute(r.Context(), auth.LoginInput{Username: f.Username, Password: f.Password, RequireAdmin: true})
	if err != nil {
		AuditLog(h.log, r, EventAdminLogin, "", false, err.Error())
		mw.RecordAuthAttempt(EventAdminLogin, false)
		if errors.Is(err, domerrors.ErrAccountLocked) && res != nil && res.RetryAfter > 0 {
			h.flash(w, r, mw.FlashDanger, "Too many failed login attempts. Try again in "+strconv.Itoa(res.RetryAfter)+" seconds.")
			h.redirect(w, r, "/admin")
			return
		}
		h.fail(w, r, err, "/admin")
		return
	}
	if err := h.sessions.SignIn(w, r, res.User); err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	AuditLog(h.log, r, EventAdminLogin, res.User.ID.String(), true, "")
	mw.RecordAuthAttempt(EventAdminLogin, true)
	h.redirect(w, r, "/admin/dashboard")
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(w, r); err != nil {
		h.log.Warn().Err(err).Msg("sign out")
	}
	h.flash(w, r, mw.FlashInfo, "You have been logged out.")
	h.redirect(w, r, "/admin")
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	users, err := h.d.SearchUsers.Execute(ctx, ports.UserFilter{}, 1)
	if err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	projects, err := h.d.SearchProjects.Execute(ctx, ports.ProjectFilter{}, 1)
	if err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	contacts, err := h.d.ListContacts.Execute(ctx)
	if err != nil {
		h.fail(w, r, err, "/admin")
		return
	}
	h.render(w, r, http.StatusOK, "admin_dashboard.html", map[string]int{
		"Users":    users.Total,
		"Projects": projects.Total,
		"Contacts": len(contacts),
	})
}

func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.d.SearchUsers.Execute(r.Context(), userFilterFromQuery(q), queryPage(q))
	if err != nil {
		h.fail(w, r, err, "/admin/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin_users.html", map[string]any{
		"Page":  page,
		"Rows":  usersJSON(page, h.d.ShareURL).Users,
		"Pages": pageLinks(page.PageInfo),
		"Query": withoutPage(q),
	})
}

func (h *AdminHandler) UsersPagination(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.d.SearchUsers.Execute(r.Context(), userFilterFromQuery(q), queryPage(q))
	if err != nil {
		h.log.Error().Err(err).Msg("search users")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, usersJSON(page, h.d.ShareURL))
}

// adminUserForm is the admin create/edit user form. Password is only used on create.
type adminUserForm struct {
	Username string `form:"username" validate:"required,max=80"`
	Email    string `form:"email" validate:"required,email,max=254"`
	Password string `form:"password" validate:"omitempty,min=8,max=128"`
	IsAdmin  bool   `form:"is_admin"`
}

func decodeAdminUser(r *http.Request) (adminUserForm, domain.Profile, error) {
	var f adminUserForm
	if err := decodeForm(r, &f); err != nil {
		return f, domain.Profile{}, err
	}
	var pf profileForm
	if err := decodeForm(r, &pf); err != nil {
		return f, domain.Profile{}, err
	}
	p, err := pf.profile()
	return f, p, err
}

func (h *AdminHandler) UserCreatePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "admin_user.html", map[string]any{"Create": true, "Target": &domain.User{}})
}

func (h *AdminHandler) UserCreate(w http.ResponseWriter, r *http.Request) {
	f, profile, err := decodeAdminUser(r)
	if err != nil {
		h.submissionFail(w, r, err, "/admin/user/create")
		return
	}
	if f.Password == "" {
		h.flash(w, r, mw.FlashError, "Password is required.")
		h.redirect(w, r, "/admin/user/create")
		return
	}
	u, err := h.d.CreateUser.Execute(r.Context(), admin.CreateUserInput{
		Username: f.Username,
		Email:    SanitizeEmail(f.Email),
		Password: SanitizePassword(f.Password),
		IsAdmin:  f.IsAdmin,
		Profile:  profile,
	})
	if err != nil {
		h.fail(w, r, err, "/admin/user/create")
		return
	}
	h.audit(r, "user.create")
	h.flash(w, r, mw.FlashSuccess, "User "+u.Username+" created.")
	h.redirect(w, r, "/admin/users")
}

func (h *AdminHandler) UserPage(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrUserNotFound, "/admin/users")
		return
	}
	detail, err := h.d.GetUser.Execute(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "/admin/users")
		return
	}
	linkURL := ""
	if detail.ActiveLink != nil {
		linkURL = h.d.ShareURL(detail.ActiveLink.Code)
	}
	h.render(w, r, http.StatusOK, "admin_user.html", map[string]any{"Target": detail.User, "LinkURL": linkURL})
}

func (h *AdminHandler) UserUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrUserNotFound, "/admin/users")
		return
	}
	back := "/admin/user/" + id.String()
	f, profile, err := decodeAdminUser(r)
	if err != nil {
		h.submissionFail(w, r, err, back)
		return
	}
	_, err = h.d.UpdateUser.Execute(r.Context(), admin.UpdateUserInput{
		UserID:   id,
		Username: f.Username,
		Email:    SanitizeEmail(f.Email),
		IsAdmin:  f.IsAdmin,
		Profile:  profile,
	})
	if err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.audit(r, "user.update")
	h.flash(w, r, mw.FlashSuccess, "User updated.")
	h.redirect(w, r, back)
}

func (h *AdminHandler) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrUserNotFound, "/admin/users")
		return
	}
	if id == currentUser(r).ID {
		h.flash(w, r, mw.FlashError, "You cannot delete the account you are signed in with.")
		h.redirect(w, r, "/admin/users")
		return
	}
	if err := h.d.DeleteUser.Execute(r.Context(), account.DeleteAccountInput{UserID: id}); err != nil {
		h.fail(w, r, err, "/admin/users")
		return
	}
	h.audit(r, "user.delete")
	h.flash(w, r, mw.FlashSuccess, "User deleted.")
	h.redirect(w, r, "/admin/users")
}

func (h *AdminHandler) Logs(w http.ResponseWriter, r *http.Request) {
	entries, err := logging.ReadRecent(h.d.LogFile, time.Now(), logging.RecentWindow)
	if err != nil {
		h.fail(w, r, err, "/admin/dashboard")
		return
	}
	// newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	h.render(w, r, http.StatusOK, "admin_logs.html", entries)
}

func (h *AdminHandler) Contacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.d.ListContacts.Execute(r.Context())
	if err != nil {
		h.fail(w, r, err, "/admin/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin_contacts.html", contacts)
}

func (h *AdminHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, domerrors.ErrContactNotFound, "/admin/contacts")
		return
	}
	c, err := h.d.GetContact.Execute(r.Context(), domain.NewContactID(id))
	if err != nil {
		h.fail(w, r, err, "/admin/contacts")
		return
	}
	h.render(w, r, http.StatusOK, "admin_contact.html", map[string]any{"Contact": c, "Subject": contact.ReplySubject})
}

func (h *AdminHandler) ContactReply(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, domerrors.ErrContactNotFound, "/admin/contacts")
		return
	}
	back := "/admin/contact/" + id.String()
	var f replyForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, back)
		return
	}
	if err := h.d.Reply.Execute(r.Context(), contact.ReplyInput{ContactID: domain.NewContactID(id), Message: f.Message}); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.audit(r, "contact.reply")
	h.flash(w, r, mw.FlashSuccess, "Reply sent.")
	h.redirect(w, r, "/admin/contacts")
}

func userIDParam(r *http.Request) (domain.UserID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return domain.UserID{}, false
	}
	return domain.NewUserID(id), true
}

// withoutPage returns the query string minus the page parameter, for pager links.
func withoutPage(q url.Values) template.URL {
	c := url.Values{}
	for k, v := range q {
		if k != "page" {
			c[k] = v
		}
	}
	return template.URL(c.Encode())
}
