package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/contact"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

// PagesHandler serves the public static pages and the contact form.
type PagesHandler struct {
	base
	submit *contact.Submit
}

func NewPagesHandler(views *Views, sessions *mw.Sessions, submit *contact.Submit, log zerolog.Logger) *PagesHandler {
	return &PagesHandler{base: base{views: views, sessions: sessions, log: log}, submit: submit}
}

func (h *PagesHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", nil)
}

func (h *PagesHandler) Features(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "features.html", nil)
}

func (h *PagesHandler) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "contact.html", nil)
}

func (h *PagesHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var f contactForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/contact")
		return
	}
	if _, err := h.submit.Execute(r.Context(), contact.SubmitInput{Name: f.Name, Email: SanitizeEmail(f.Email), Message: f.Message}); err != nil {
		h.fail(w, r, err, "/contact")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Thank you for your message. We will get back to you soon.")
	h.redirect(w, r, "/contact")
}

// Invalid is where broken share links end up.
func (h *PagesHandler) Invalid(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "invalid.html", nil)
}

func (h *PagesHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "error.html", map[string]any{"Status": http.StatusNotFound, "Message": "Page not found."})
}
