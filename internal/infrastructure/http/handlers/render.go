package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

//go:embed all:templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and script under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var templateFuncs = template.FuncMap{
	"duration": domain.FormatDuration,
	"join":     strings.Join,
	"processes": func(ps []domain.Process) string {
		return strings.Join(domain.ProcessNames(ps), ", ")
	},
	"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"add":      func(a, b int) int { return a + b },
}

// Views holds one parsed template set per page: the layout, shared partials and the page.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &Views{pages: make(map[string]*template.Template)}
	for _, f := range files {
		name := path.Base(f)
		if name == "layout.html" || strings.HasPrefix(name, "_") {
			continue
		}
		t, err := template.New("layout.html").Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/_*.html", f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// pageData is what every template receives.
type pageData struct {
	User    *domain.User
	Flashes []mw.Flash
	D       any
}

// base bundles what every page handler needs.
type base struct {
	views    *Views
	sessions *mw.Sessions
	log      zerolog.Logger
}

func (b base) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	t, ok := b.views.pages[page]
	if !ok {
		b.log.Error().Str("page", page).Msg("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	pd := pageData{
		User:    mw.UserFromContext(r.Context()),
		Flashes: b.sessions.PopFlashes(w, r),
		D:       data,
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", pd); err != nil {
		b.log.Error().Err(err).Str("page", page).Msg("render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (b base) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	b.sessions.AddFlash(w, r, category, message)
}

func (b base) redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// fail flashes err and redirects to. Errors without a user-facing message are logged
// and replaced by a generic one.
func (b base) fail(w http.ResponseWriter, r *http.Request, err error, to string) {
	category, message, ok := userMessage(err)
	if !ok {
		b.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		category, message = mw.FlashDanger, genericFailure
	}
	b.flash(w, r, category, message)
	b.redirect(w, r, to)
}

// formFail reports a decode or validation error of a submitted form.
func (b base) formFail(w http.ResponseWriter, r *http.Request, err error, to string) {
	b.flash(w, r, mw.FlashError, validationMessage(err))
	b.redirect(w, r, to)
}

func currentUser(r *http.Request) *domain.User {
	return mw.UserFromContext(r.Context())
}
