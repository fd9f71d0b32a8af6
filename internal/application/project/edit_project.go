package project

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// Actor is the signed-in user performing a change. Admins may change any project.
type Actor struct {
	UserID  domain.UserID
	IsAdmin bool
}

func (a Actor) owns(owner domain.UserID) bool { return a.IsAdmin || a.UserID == owner }

type EditProjectInput struct {
	Actor     Actor
	ProjectID domain.ProjectID
	Fields    Fields
}

type EditProjectResult struct {
	Project *domain.Project
	Diff    domain.ChildDiff
}

// EditProject updates project fields and replaces its technology and process sets with the
// submitted ones: new pairs are inserted, missing ones deleted, changed durations updated.
type EditProject struct {
	projectRepo ports.ProjectRepository
}

func NewEditProject(projectRepo ports.ProjectRepository) *EditProject {
	return &EditProject{projectRepo: projectRepo}
}

func (uc *EditProject) Execute(ctx context.Context, input EditProjectInput) (*EditProjectResult, error) {
	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !input.Actor.owns(project.UserID) {
		return nil, domerrors.ErrForbidden
	}
	f, techs, procs, err := normalizeFields(input.Fields)
	if err != nil {
		return nil, err
	}
	diff := DiffChildren(project.Technologies, project.Processes, techs, procs)

	project.StartMonth = f.StartMonth
	project.EndMonth = f.EndMonth
	project.Industry = f.Industry
	project.Name = f.Name
	project.Summary = f.Summary
	project.Responsibilities = f.Responsibilities
	project.UpdatedAt = time.Now()
	if err := uc.projectRepo.Update(ctx, project, diff); err != nil {
		return nil, err
	}
	return &EditProjectResult{Project: project, Diff: diff}, nil
}
