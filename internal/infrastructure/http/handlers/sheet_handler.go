package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/link"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/sheet"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

// SheetHandler serves the owner's sheet, share links and the public views.
type SheetHandler struct {
	base
	build      *sheet.BuildSheet
	public     *sheet.BuildPublicSheet
	exportPDF  *sheet.ExportPDF
	techUsage  *sheet.TechUsage
	createLink *link.CreateLink
	invalidate *link.InvalidateLink
}

func NewSheetHandler(views *Views, sessions *mw.Sessions, build *sheet.BuildSheet, public *sheet.BuildPublicSheet, exportPDF *sheet.ExportPDF, techUsage *sheet.TechUsage, createLink *link.CreateLink, invalidate *link.InvalidateLink, log zerolog.Logger) *SheetHandler {
	return &SheetHandler{
		base:       base{views: views, sessions: sessions, log: log},
		build:      build,
		public:     public,
		exportPDF:  exportPDF,
		techUsage:  techUsage,
		createLink: createLink,
		invalidate: invalidate,
	}
}

func (h *SheetHandler) Sheet(w http.ResponseWriter, r *http.Request) {
	s, err := h.build.Execute(r.Context(), sheet.BuildSheetInput{UserID: currentUser(r).ID, WithLink: true})
	if err != nil {
		h.fail(w, r, err, "/userinfo")
		return
	}
	linkURL := ""
	if s.ActiveLink != nil {
		linkURL = h.createLink.URL(s.ActiveLink.Code)
	}
	h.render(w, r, http.StatusOK, "sheet.html", map[string]any{"Sheet": s, "LinkURL": linkURL, "Owner": true})
}

// CreateLink issues a new share link and answers {"link": url}.
func (h *SheetHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	res, err := h.createLink.Execute(r.Context(), link.CreateLinkInput{UserID: user.ID})
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID.String()).Msg("create link")
		writeErr(w, http.StatusInternalServerError, "", "could not create link")
		return
	}
	h.log.Info().Str("user_id", user.ID.String()).Msg("share link issued")
	writeJSON(w, http.StatusOK, map[string]string{"link": res.URL})
}

func (h *SheetHandler) InvalidateLink(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if err := h.invalidate.Execute(r.Context(), link.InvalidateLinkInput{UserID: user.ID}); err != nil {
		h.fail(w, r, err, "/sheet")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "The share link has been disabled.")
	h.redirect(w, r, "/sheet")
}

// TechProjects lists the signed-in user's projects and developments that used a technology.
func (h *SheetHandler) TechProjects(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	if user == nil {
		writeErr(w, http.StatusUnauthorized, "", "login required")
		return
	}
	res, err := h.techUsage.Execute(r.Context(), user.ID, chi.URLParam(r, "tech_name"))
	if err != nil {
		h.log.Error().Err(err).Msg("tech usage")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *SheetHandler) ViewSheet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "link_code")
	s, err := h.public.Execute(r.Context(), code)
	if errors.Is(err, domerrors.ErrLinkInvalid) {
		mw.RecordSheetExport("html", false)
		h.render(w, r, http.StatusNotFound, "invalid.html", nil)
		return
	}
	if err != nil {
		mw.RecordSheetExport("html", false)
		h.log.Error().Err(err).Msg("build public sheet")
		h.render(w, r, http.StatusInternalServerError, "error.html", map[string]any{"Status": http.StatusInternalServerError, "Message": genericFailure})
		return
	}
	mw.RecordSheetExport("html", true)
	h.render(w, r, http.StatusOK, "view_sheet.html", map[string]any{"Sheet": s, "Code": code})
}

func (h *SheetHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	res, err := h.exportPDF.Execute(r.Context(), chi.URLParam(r, "link_code"))
	if errors.Is(err, domerrors.ErrLinkInvalid) {
		mw.RecordSheetExport("pdf", false)
		h.fail(w, r, err, "/invalid")
		return
	}
	if err != nil {
		mw.RecordSheetExport("pdf", false)
		h.log.Error().Err(err).Msg("render pdf")
		http.Error(w, "Could not generate the PDF.", http.StatusInternalServerError)
		return
	}
	mw.RecordSheetExport("pdf", true)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}
