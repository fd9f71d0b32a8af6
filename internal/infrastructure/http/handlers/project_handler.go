package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/individual"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
	mw "github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/http/middleware"
)

// ProjectHandler serves project and individual development forms of the signed-in user.
type ProjectHandler struct {
	base
	create           *project.CreateProject
	get              *project.GetProject
	edit             *project.EditProject
	del              *project.DeleteProject
	createIndividual *individual.Create
	deleteIndividual *individual.Delete
}

func NewProjectHandler(views *Views, sessions *mw.Sessions, create *project.CreateProject, get *project.GetProject, edit *project.EditProject, del *project.DeleteProject, createIndividual *individual.Create, deleteIndividual *individual.Delete, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		base:             base{views: views, sessions: sessions, log: log},
		create:           create,
		get:              get,
		edit:             edit,
		del:              del,
		createIndividual: createIndividual,
		deleteIndividual: deleteIndividual,
	}
}

// projectFormView is the data of project_form.html, shared with the admin pages.
type projectFormView struct {
	Title     string
	Action    string
	Cancel    string
	Owner     string // admin create only
	AskOwner  bool
	Project   *domain.Project
	Rows      []categoryRows
	Processes []processChoice
}

func newProjectFormView(title, action, cancel string, p *domain.Project) projectFormView {
	if p == nil {
		p = &domain.Project{}
	}
	return projectFormView{
		Title:     title,
		Action:    action,
		Cancel:    cancel,
		Project:   p,
		Rows:      technologyRows(p.Technologies),
		Processes: processChoices(p.Processes),
	}
}

func actorOf(r *http.Request) project.Actor {
	u := currentUser(r)
	return project.Actor{UserID: u.ID, IsAdmin: u.IsAdmin}
}

// parseProjectSubmission decodes the fixed fields and the dynamic child rows.
func parseProjectSubmission(r *http.Request) (project.Fields, error) {
	var f projectForm
	if err := decodeForm(r, &f); err != nil {
		return project.Fields{}, err
	}
	techs, err := ParseTechnologyForm(r.PostForm)
	if err != nil {
		return project.Fields{}, err
	}
	return f.fields(techs, ParseProcessForm(r.PostForm)), nil
}

// submissionFail routes validator errors and domain errors to the right flash.
func (b base) submissionFail(w http.ResponseWriter, r *http.Request, err error, to string) {
	if _, _, ok := userMessage(err); ok {
		b.fail(w, r, err, to)
		return
	}
	b.formFail(w, r, err, to)
}

func (h *ProjectHandler) InputPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "project_form.html", newProjectFormView("Add a project", "/input", "/sheet", nil))
}

func (h *ProjectHandler) Input(w http.ResponseWriter, r *http.Request) {
	fields, err := parseProjectSubmission(r)
	if err != nil {
		h.submissionFail(w, r, err, "/input")
		return
	}
	user := currentUser(r)
	res, err := h.create.Execute(r.Context(), project.CreateProjectInput{UserID: user.ID, Fields: fields})
	if err != nil {
		h.fail(w, r, err, "/input")
		return
	}
	h.log.Info().Str("user_id", user.ID.String()).Str("project_id", res.Project.ID.String()).Msg("project added")
	h.flash(w, r, mw.FlashSuccess, "Project added.")
	h.redirect(w, r, "/input")
}

func (h *ProjectHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/sheet")
		return
	}
	p, err := h.get.Execute(r.Context(), actorOf(r), id)
	if err != nil {
		h.fail(w, r, err, "/sheet")
		return
	}
	h.render(w, r, http.StatusOK, "project_form.html", newProjectFormView("Edit project", "/edit_project/"+id.String(), "/sheet", p))
}

func (h *ProjectHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/sheet")
		return
	}
	back := "/edit_project/" + id.String()
	fields, err := parseProjectSubmission(r)
	if err != nil {
		h.submissionFail(w, r, err, back)
		return
	}
	res, err := h.edit.Execute(r.Context(), project.EditProjectInput{Actor: actorOf(r), ProjectID: id, Fields: fields})
	if err != nil {
		h.fail(w, r, err, back)
		return
	}
	h.log.Info().
		Str("project_id", id.String()).
		Int("tech_inserted", len(res.Diff.InsertTechnologies)).
		Int("tech_updated", len(res.Diff.UpdateTechnologies)).
		Int("tech_deleted", len(res.Diff.DeleteTechnologies)).
		Msg("project updated")
	h.flash(w, r, mw.FlashSuccess, "Project updated.")
	h.redirect(w, r, "/sheet")
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectIDParam(r)
	if !ok {
		h.fail(w, r, domerrors.ErrProjectNotFound, "/sheet")
		return
	}
	if err := h.del.Execute(r.Context(), project.DeleteProjectInput{Actor: actorOf(r), ProjectID: id}); err != nil {
		h.fail(w, r, err, "/sheet")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Project deleted.")
	h.redirect(w, r, "/sheet")
}

func (h *ProjectHandler) IndividualPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "individual_form.html", map[string]any{
		"Rows":      technologyRows(nil),
		"Processes": processChoices(nil),
	})
}

func (h *ProjectHandler) Individual(w http.ResponseWriter, r *http.Request) {
	var f individualForm
	if err := decodeForm(r, &f); err != nil {
		h.formFail(w, r, err, "/individual_input")
		return
	}
	techs, err := ParseTechnologyForm(r.PostForm)
	if err != nil {
		h.fail(w, r, err, "/individual_input")
		return
	}
	user := currentUser(r)
	_, err = h.createIndividual.Execute(r.Context(), individual.CreateInput{
		UserID:       user.ID,
		StartMonth:   f.StartMonth,
		EndMonth:     f.EndMonth,
		Name:         f.Name,
		Summary:      f.Summary,
		Technologies: techs,
		Processes:    ParseProcessForm(r.PostForm),
	})
	if err != nil {
		h.fail(w, r, err, "/individual_input")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Individual development added.")
	h.redirect(w, r, "/individual_input")
}

func (h *ProjectHandler) DeleteIndividual(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, domerrors.ErrIndividualNotFound, "/sheet")
		return
	}
	if err := h.deleteIndividual.Execute(r.Context(), individual.DeleteInput{Actor: actorOf(r), ID: domain.NewIndividualID(id)}); err != nil {
		h.fail(w, r, err, "/sheet")
		return
	}
	h.flash(w, r, mw.FlashSuccess, "Individual development deleted.")
	h.redirect(w, r, "/sheet")
}

func projectIDParam(r *http.Request) (domain.ProjectID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return domain.ProjectID{}, false
	}
	return domain.NewProjectID(id), true
}
