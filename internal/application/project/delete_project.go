package project

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type DeleteProjectInput struct {
	Actor     Actor
	ProjectID domain.ProjectID
}

// DeleteProject removes a project and its children after checking ownership.
type DeleteProject struct {
	projectRepo ports.ProjectRepository
}

func NewDeleteProject(projectRepo ports.ProjectRepository) *DeleteProject {
	return &DeleteProject{projectRepo: projectRepo}
}

func (uc *DeleteProject) Execute(ctx context.Context, input DeleteProjectInput) error {
	project, err := uc.projectRepo.GetByID(ctx, input.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domerrors.ErrProjectNotFound
	}
	if !input.Actor.owns(project.UserID) {
		return domerrors.ErrForbidden
	}
	return uc.projectRepo.Delete(ctx, input.ProjectID)
}

// GetProject loads a project for its owner (or an admin).
type GetProject struct {
	projectRepo ports.ProjectRepository
}

func NewGetProject(projectRepo ports.ProjectRepository) *GetProject {
	return &GetProject{projectRepo: projectRepo}
}

func (uc *GetProject) Execute(ctx context.Context, actor Actor, id domain.ProjectID) (*domain.Project, error) {
	project, err := uc.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domerrors.ErrProjectNotFound
	}
	if !actor.owns(project.UserID) {
		return nil, domerrors.ErrForbidden
	}
	return project, nil
}
