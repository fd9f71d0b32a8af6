package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

const (
	sessionName = "skillcanvas"
	userIDKey   = "user_id"
)

// Flash categories, in display order.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
	FlashDanger  = "danger"
)

var flashCategories = []string{FlashSuccess, FlashInfo, FlashWarning, FlashError, FlashDanger}

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// Sessions keeps the signed-in user id and flash messages in a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
	users ports.UserRepository
	log   zerolog.Logger
}

func NewSessions(secret string, secure bool, maxAge int, users ports.UserRepository, log zerolog.Logger) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store, users: users, log: log}
}

// session never fails: a cookie that no longer decodes yields a fresh session.
func (s *Sessions) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.log.Debug().Err(err).Msg("discarding undecodable session cookie")
	}
	return sess
}

// Load puts the signed-in, confirmed user into the request context.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := s.session(r).Values[userIDKey].(string)
		id, err := uuid.Parse(raw)
		if raw == "" || err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.users.GetByID(r.Context(), domain.NewUserID(id))
		if err != nil {
			s.log.Error().Err(err).Str("user_id", raw).Msg("load session user")
		}
		if user != nil && user.IsActive {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn binds the session to user.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, user *domain.User) error {
	sess := s.session(r)
	sess.Values[userIDKey] = user.ID.String()
	return sess.Save(r, w)
}

// SignOut forgets the user but keeps pending flashes.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, userIDKey)
	return sess.Save(r, w)
}

// AddFlash queues a message for the next page.
func (s *Sessions) AddFlash(w http.ResponseWriter, r *http.Request, category, message string) {
	sess := s.session(r)
	sess.AddFlash(message, "flash_"+category)
	if err := sess.Save(r, w); err != nil {
		s.log.Warn().Err(err).Msg("save flash")
	}
}

// PopFlashes returns and clears queued messages. It must run before the response body is written.
func (s *Sessions) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	sess := s.session(r)
	var out []Flash
	for _, c := range flashCategories {
		for _, v := range sess.Flashes("flash_" + c) {
			if msg, ok := v.(string); ok {
				out = append(out, Flash{Category: c, Message: msg})
			}
		}
	}
	if len(out) > 0 {
		if err := sess.Save(r, w); err != nil {
			s.log.Warn().Err(err).Msg("clear flashes")
		}
	}
	return out
}
