package handlers

import (
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

func (h *AdminHandler) Projects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.d.SearchProjects.Execute(r.Context(), projectFilterFromQuery(q), queryPage(q))
	if err != nil {
		h.fail(w, r, err, "/admin/dashboard")
		return
	}
	h.render(w, r, http.StatusOK, "admin_projects.html", map[string]any{
		"Page":  page,
		"Rows":  projectsJSON(page).Projects,
		"Pages": pageLinks(page.PageInfo),
		"Query": withoutPage(q),
	})
}

func (h *AdminHandler) ProjectsPagination(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.d.SearchProjects.Execute(r.Context(), projectFilterFromQuery(q), queryPage(q))
	if err != nil {
		h.log.Error().Err(err).Msg("search projects")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, projectsJSON(page))
}

func (h *AdminHandler) ProjectCreatePage(w http.ResponseWriter, r *http.Request) {
	v := newProjectFormView("Add a project for a user", "/admin/project/create", "/admin/projects", nil)
	v.AskOwner = true
	v.Owner = r.URL.Query().Get("username")
	h.render(w, r, http.StatusOK, "project_form.html", v)
}

func (h *AdminHandler) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	fields, err := parseProjectSubmission(r)
	if err != nil {
		h.submissionFail(w, r, err, "/admin/project/create")
		return
	}
	owner, err := h.d.Users.GetByUsername(r.Context(), strings.TrimSpace(r.PostForm.Get("owner")))
	if err != nil {
		h.fail(w, r, err, "/admin/project/create")
		return
	}
	if owner == nil {
		h.fail(w, r, domerrors.ErrUserNotFound, "/admin/project/create")
		return
	}
	if _, err := h.d.CreateProject.Execute(r.Context(), project.CreateProjectInput{UserID: owner.ID, Fields: fields}); err != nil {
		h.fail(w, r, err, "/admin/project/create")
		return
	}
	h.audit(r, "project.create")
	h.flash(w, r, mw.FlashSuccess, "Project added for "+owner.Username+".")
	h.redirect(w, r, "/admin/projects")
}

func (h *AdminHandler) ProjectPage(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/admin/projects")
		return
	}
	p, err := h.d.GetProject.Execute(r.Context(), adminActor, id)
	if err != nil {
		h.fail(w, r, err, "/admin/projects")
		return
	}
	h.render(w, r, http.StatusOK, "project_form.html", newProjectFormView("Edit project", "/admin/project/"+id.String(), "/admin/projects", p))
}

func (h *AdminHandler) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/admin/projects")
		return
	}
	back := "/admin/project/" + id.String()
	fields, err := parseProjectSubmission(r)
	if err != nil {
		h.submissionFail(w, r, err, back)
		return
	}
	if _, err := h.d.EditProject.Execute(r.Context(), project.EditProjectInput{Actor: adminActor, ProjectID: id, Fields: fields}); err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.audit(r, "project.update")
	h.flash(w, r, mw.FlashSuccess, "Project updated.")
	h.redirect(w, r, "/admin/projects")
}

func (h *AdminHandler) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/admin/projects")
		return
	}
	if err := h.d.DeleteProject.Execute(r.Context(), project.DeleteProjectInput{Actor: adminActor, ProjectID: id}); err != nil {
		h.fail(w, r, err, "/admin/projects")
		return
	}
	h.audit(r, "project.delete")
	h.flash(w, r, mw.FlashSuccess, "Project deleted.")
	h.redirect(w, r, "/admin/projects")
}
