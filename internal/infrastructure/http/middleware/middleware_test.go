package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports/portstest"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func withUser(r *http.Request, u *domain.User) *http.Request {
	return r.WithContext(WithUser(r.Context(), u))
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(zerolog.Nop())(okHandler)
	cases := []struct {
		name string
		user *domain.User
		want int
	}{
		{"anonymous", nil, http.StatusSeeOther},
		{"non-admin", &domain.User{ID: domain.NewUserID(uuid.New()), IsActive: true}, http.StatusForbidden},
		{"admin", &domain.User{ID: domain.NewUserID(uuid.New()), IsActive: true, IsAdmin: true}, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
			if c.user != nil {
				req = withUser(req, c.user)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != c.want {
				t.Errorf("status = %d, want %d", rec.Code, c.want)
			}
			if c.want == http.StatusSeeOther && rec.Header().Get("Location") != "/admin" {
				t.Errorf("Location = %q", rec.Header().Get("Location"))
			}
		})
	}
}

func newTestSessions(t *testing.T) (*Sessions, *portstest.Store) {
	t.Helper()
	store := portstest.NewStore()
	return NewSessions("test-secret-test-secret-test-sec", false, 3600, store.Users(), zerolog.Nop()), store
}

func TestSessionSignInLoadsUser(t *testing.T) {
	s, store := newTestSessions(t)
	u := &domain.User{ID: domain.NewUserID(uuid.New()), Username: "ann", Email: "ann@example.com", IsActive: true, CreatedAt: time.Now()}
	if err := store.Users().Create(context.Background(), u); err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	if err := s.SignIn(rec, httptest.NewRequest(http.MethodPost, "/login", nil), u); err != nil {
		t.Fatal(err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}

	var seen *domain.User
	h := s.Load(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/userinfo", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if seen == nil || seen.ID != u.ID {
		t.Fatalf("user not loaded, got %+v", seen)
	}
}

func TestRequireLoginRedirects(t *testing.T) {
	s, _ := newTestSessions(t)
	rec := httptest.NewRecorder()
	s.RequireLogin(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sheet", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Errorf("got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestFlashRoundTrip(t *testing.T) {
	s, _ := newTestSessions(t)
	rec := httptest.NewRecorder()
	s.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/input", nil), FlashError, "Project name is required.")

	req := httptest.NewRequest(http.MethodGet, "/input", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	flashes := s.PopFlashes(httptest.NewRecorder(), req)
	if len(flashes) != 1 || flashes[0].Category != FlashError || flashes[0].Message != "Project name is required." {
		t.Errorf("unexpected flashes %+v", flashes)
	}
}

func TestFormRateLimiterOnlyCountsPosts(t *testing.T) {
	mw, err := NewFormRateLimiter("1-M")
	if err != nil {
		t.Fatal(err)
	}
	h := mw(okHandler)
	do := func(method string) int {
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	if got := do(http.MethodPost); got != http.StatusOK {
		t.Fatalf("first POST = %d", got)
	}
	if got := do(http.MethodGet); got != http.StatusOK {
		t.Errorf("GET should pass, got %d", got)
	}
	if got := do(http.MethodPost); got != http.StatusTooManyRequests {
		t.Errorf("second POST = %d, want 429", got)
	}
}

func TestCORSDisabledWithoutOrigins(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tech_projects/Go", nil)
	req.Header.Set("Origin", "https://example.com")
	CORS(nil)(okHandler).ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("no CORS headers expected")
	}
}
