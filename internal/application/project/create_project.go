package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

// Fields are the editable project fields plus the submitted children.
type Fields struct {
	StartMonth       string
	EndMonth         string
	Industry         string
	Name             string
	Summary          string
	Responsibilities string
	Technologies     []domain.Technology
	Processes        []string
}

// CreateProjectInput is the owner and the submitted form.
type CreateProjectInput struct {
	UserID domain.UserID
	Fields Fields
}

// CreateProjectResult returns the stored project.
type CreateProjectResult struct {
	Project *domain.Project
}

// CreateProject validates a submission and stores the project with its children.
type CreateProject struct {
	projectRepo ports.ProjectRepository
}

// NewCreateProject builds the use case.
func NewCreateProject(projectRepo ports.ProjectRepository) *CreateProject {
	return &CreateProject{projectRepo: projectRepo}
}

func (uc *CreateProject) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectResult, error) {
	f, techs, procs, err := normalizeFields(input.Fields)
	if err != nil {
		return nil, err
	}
	ts, ps := NewChildren(techs, procs)
	now := time.Now()
	project := &domain.Project{
		ID:               domain.NewProjectID(uuid.New()),
		UserID:           input.UserID,
		StartMonth:       f.StartMonth,
		EndMonth:         f.EndMonth,
		Industry:         f.Industry,
		Name:             f.Name,
		Summary:          f.Summary,
		Responsibilities: f.Responsibilities,
		Technologies:     ts,
		Processes:        ps,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return &CreateProjectResult{Project: project}, nil
}

func normalizeFields(f Fields) (Fields, []domain.Technology, []string, error) {
	f.StartMonth = strings.TrimSpace(f.StartMonth)
	f.EndMonth = strings.TrimSpace(f.EndMonth)
	f.Name = strings.TrimSpace(f.Name)
	f.Industry = strings.TrimSpace(f.Industry)
	if err := ValidateDetails(Details{StartMonth: f.StartMonth, EndMonth: f.EndMonth, Name: f.Name}); err != nil {
		return f, nil, nil, err
	}
	techs, err := NormalizeTechnologies(f.Technologies)
	if err != nil {
		return f, nil, nil, err
	}
	procs, err := NormalizeProcesses(f.Processes)
	if err != nil {
		return f, nil, nil, err
	}
	return f, techs, procs, nil
}
