package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/account"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/admin"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/auth"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/contact"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/individual"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/link"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/sheet"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/pdf"
)

const testBaseURL = "http://skillcanvas.test"

type testApp struct {
	srv   *httptest.Server
	store *portstest.Store
	mail  *portstest.Enqueuer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := zerolog.Nop()
	store := portstest.NewStore()
	users, projects, individuals, links, contacts := store.Users(), store.Projects(), store.Individuals(), store.Links(), store.Contacts()
	enq := &portstest.Enqueuer{}
	hasher := portstest.PlainHasher{}
	signer := portstest.Signer{}

	views, err := handlers.NewViews()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	sessions := middleware.NewSessions("router-test-secret-0123456789abcd", false, 3600, users, log)

	verifier := auth.NewSendEmailVerification(signer, enq, testBaseURL, 3600)
	register := auth.NewRegisterUser(users, hasher, verifier)
	login := auth.NewLogin(users, hasher, nil)
	createLink := link.NewCreateLink(links, testBaseURL)
	build := sheet.NewBuildSheet(users, projects, individuals, links, testBaseURL)
	public := sheet.NewBuildPublicSheet(link.NewResolveLink(links), build)

	cfg := RouterConfig{
		AuthHandler: handlers.NewAuthHandler(views, sessions, handlers.AuthUseCases{
			Register:       register,
			VerifyEmail:    auth.NewVerifyEmail(signer, users),
			Resend:         auth.NewResendConfirmation(users, verifier),
			Login:          login,
			ForgotPassword: auth.NewForgotPassword(signer, users, enq, testBaseURL, 3600),
			ResetPassword:  auth.NewResetPassword(signer, users, hasher),
		}, log),
		PagesHandler:   handlers.NewPagesHandler(views, sessions, contact.NewSubmit(contacts, enq), log),
		AccountHandler: handlers.NewAccountHandler(views, sessions, account.NewUpdateAccount(users, hasher), account.NewUpdateProfile(users), account.NewDeleteAccount(users), log),
		ProjectHandler: handlers.NewProjectHandler(views, sessions, project.NewCreateProject(projects), project.NewGetProject(projects),
			project.NewEditProject(projects), project.NewDeleteProject(projects), individual.NewCreate(individuals), individual.NewDelete(individuals), log),
		SheetHandler: handlers.NewSheetHandler(views, sessions, build, public, sheet.NewExportPDF(public, pdf.NewRenderer(config.PDFConfig{})),
			sheet.NewTechUsage(projects, individuals), createLink, link.NewInvalidateLink(links), log),
		AdminHandler: handlers.NewAdminHandler(views, sessions, handlers.AdminDeps{
			Login:          login,
			SearchUsers:    admin.NewSearchUsers(users),
			SearchProjects: admin.NewSearchProjects(projects),
			CreateUser:     admin.NewCreateUser(register, users),
			UpdateUser:     admin.NewUpdateUser(users),
			GetUser:        admin.NewGetUser(users, links),
			DeleteUser:     account.NewDeleteAccount(users),
			CreateProject:  project.NewCreateProject(projects),
			GetProject:     project.NewGetProject(projects),
			EditProject:    project.NewEditProject(projects),
			DeleteProject:  project.NewDeleteProject(projects),
			ListContacts:   contact.NewList(contacts),
			GetContact:     contact.NewGet(contacts),
			Reply:          contact.NewReply(contacts, enq),
			Users:          users,
			ShareURL:       createLink.URL,
		}, log),
		HealthHandler: handlers.NewHealthHandler(),
		Sessions:      sessions,
		Log:           log,
	}
	srv := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(srv.Close)
	return &testApp{srv: srv, store: store, mail: enq}
}

func (a *testApp) addUser(t *testing.T, username string, isAdmin bool) *domain.User {
	t.Helper()
	now := time.Now()
	u := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "plain:password123",
		IsActive:     true,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.store.Users().Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}
	return u
}

// client keeps cookies and does not follow redirects.
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) login(t *testing.T, c *http.Client, path, username string) {
	t.Helper()
	res, err := c.PostForm(a.srv.URL+path, url.Values{"username": {username}, "password": {"password123"}})
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status = %d", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc == path {
		t.Fatalf("login failed, redirected back to %s", loc)
	}
}

func get(t *testing.T, c *http.Client, u string) (*http.Response, string) {
	t.Helper()
	res, err := c.Get(u)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res, string(body)
}

func TestPublicPages(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	cases := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/features", http.StatusOK},
		{"/contact", http.StatusOK},
		{"/login", http.StatusOK},
		{"/register", http.StatusOK},
		{"/invalid", http.StatusOK},
		{"/health", http.StatusOK},
		{"/static/app.css", http.StatusOK},
		{"/view_sheet/not-a-code", http.StatusNotFound},
		{"/no/such/page", http.StatusNotFound},
		{"/sheet", http.StatusSeeOther},
		{"/admin", http.StatusOK},
		{"/admin/dashboard", http.StatusSeeOther},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			res, _ := get(t, c, app.srv.URL+tc.path)
			if res.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", res.StatusCode, tc.want)
			}
		})
	}
}

func TestInvalidPDFLinkRedirects(t *testing.T) {
	app := newTestApp(t)
	res, _ := get(t, app.client(t), app.srv.URL+"/download_pdf/missing")
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/invalid" {
		t.Errorf("got %d to %q", res.StatusCode, res.Header.Get("Location"))
	}
}

func TestNonAdminIsForbiddenInBackOffice(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "taro", false)
	c := app.client(t)
	app.login(t, c, "/login", "taro")

	res, _ := get(t, c, app.srv.URL+"/admin/dashboard")
	if res.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", res.StatusCode)
	}
	// the admin login itself refuses non-admins
	res2, err := app.client(t).PostForm(app.srv.URL+"/admin", url.Values{"username": {"taro"}, "password": {"password123"}})
	if err != nil {
		t.Fatal(err)
	}
	res2.Body.Close()
	if res2.Header.Get("Location") != "/admin" {
		t.Errorf("non-admin admin login redirected to %q", res2.Header.Get("Location"))
	}
}

func TestShareLinkAndPDFDownload(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "hanako", false)
	c := app.client(t)
	app.login(t, c, "/login", "hanako")

	form := url.Values{
		"start_month":    {"2022-01"},
		"end_month":      {"2022-12"},
		"project_name":   {"Billing"},
		"language_0":     {"Go"},
		"language_0_num": {"12"},
		"process":        {domain.PhaseImplementation},
	}
	res, err := c.PostForm(app.srv.URL+"/input", form)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("input status = %d", res.StatusCode)
	}

	res, err = c.Post(app.srv.URL+"/create_link", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Link string `json:"link"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if !strings.HasPrefix(out.Link, testBaseURL+"/view_sheet/") {
		t.Fatalf("link = %q", out.Link)
	}
	code := out.Link[strings.LastIndex(out.Link, "/")+1:]

	anon := app.client(t)
	view, body := get(t, anon, app.srv.URL+"/view_sheet/"+code)
	if view.StatusCode != http.StatusOK || !strings.Contains(body, "Billing") {
		t.Errorf("view_sheet status %d, contains project: %v", view.StatusCode, strings.Contains(body, "Billing"))
	}
	pdfRes, pdfBody := get(t, anon, app.srv.URL+"/download_pdf/"+code)
	if pdfRes.StatusCode != http.StatusOK {
		t.Fatalf("pdf status = %d", pdfRes.StatusCode)
	}
	if ct := pdfRes.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := pdfRes.Header.Get("Content-Disposition"); !strings.Contains(cd, "skillsheet_hanako.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(pdfBody, "%PDF-") {
		t.Error("body is not a PDF")
	}

	res, err = c.Post(app.srv.URL+"/invalidate_link", "application/x-www-form-urlencoded", nil)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if view, _ := get(t, anon, app.srv.URL+"/view_sheet/"+code); view.StatusCode != http.StatusNotFound {
		t.Errorf("disabled link status = %d", view.StatusCode)
	}
}

func TestAdminUserSearchJSON(t *testing.T) {
	app := newTestApp(t)
	app.addUser(t, "root", true)
	for _, name := range []string{"alice", "bob", "alicia"} {
		app.addUser(t, name, false)
	}
	c := app.client(t)
	app.login(t, c, "/admin", "root")

	res, body := get(t, c, app.srv.URL+"/admin/users_pagination?username=ali&page=1")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	var out struct {
		Users []struct {
			Username string `json:"username"`
		} `json:"users"`
		Total       int `json:"total"`
		Pages       int `json:"pages"`
		CurrentPage int `json:"current_page"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if out.Total != 2 || out.Pages != 1 || out.CurrentPage != 1 || len(out.Users) != 2 {
		t.Errorf("unexpected page %+v", out)
	}

	res, _ = get(t, c, app.srv.URL+"/admin/users_pagination?is_admin=true")
	if res.StatusCode != http.StatusOK {
		t.Errorf("is_admin filter status = %d", res.StatusCode)
	}
	for _, p := range []string{"/admin/dashboard", "/admin/users", "/admin/projects", "/admin/contacts", "/admin/logs", "/admin/user/create", "/admin/project/create"} {
		if res, _ := get(t, c, app.srv.URL+p); res.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d", p, res.StatusCode)
		}
	}
}

func TestRegisterWithMailDownCanResend(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.mail.FailEmails(errors.New("smtp unavailable"))

	form := url.Values{
		"username":         {"jiro"},
		"email":            {"jiro@example.com"},
		"password":         {"password123"},
		"confirm_password": {"password123"},
	}
	res, err := c.PostForm(app.srv.URL+"/register", form)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/resend_confirmation" {
		t.Fatalf("register: got %d to %q", res.StatusCode, res.Header.Get("Location"))
	}
	if u, _ := app.store.Users().GetByUsername(context.Background(), "jiro"); u == nil || u.IsActive {
		t.Fatalf("expected an inactive account, got %+v", u)
	}
	if res, body := get(t, c, app.srv.URL+"/resend_confirmation"); res.StatusCode != http.StatusOK || !strings.Contains(body, "could not send the confirmation email") {
		t.Fatalf("resend page: status %d, warning flash missing", res.StatusCode)
	}

	app.mail.FailEmails(nil)
	res, err = c.PostForm(app.srv.URL+"/resend_confirmation", url.Values{"email": {"jiro@example.com"}})
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusSeeOther || res.Header.Get("Location") != "/login" {
		t.Fatalf("resend: got %d to %q", res.StatusCode, res.Header.Get("Location"))
	}
	mail := app.mail.LastEmail()
	if mail.To != "jiro@example.com" || !strings.Contains(mail.Body, testBaseURL+"/confirm_email/") {
		t.Errorf("unexpected confirmation mail %+v", mail)
	}
}
