package individual

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

type CreateInput struct {
	UserID       domain.UserID
	StartMonth   string
	EndMonth     string
	Name         string
	Summary      string
	Technologies []domain.Technology
	Processes    []string
}

type CreateResult struct {
	Development *domain.IndividualDevelopment
}

// Create stores a personal development with its technologies and processes.
type Create struct {
	repo ports.IndividualRepository
}

func NewCreate(repo ports.IndividualRepository) *Create {
	return &Create{repo: repo}
}

func (uc *Create) Execute(ctx context.Context, input CreateInput) (*CreateResult, error) {
	details := project.Details{
		StartMonth: strings.TrimSpace(input.StartMonth),
		EndMonth:   strings.TrimSpace(input.EndMonth),
		Name:       strings.TrimSpace(input.Name),
	}
	if err := project.ValidateDetails(details); err != nil {
		return nil, err
	}
	techs, err := project.NormalizeTechnologies(input.Technologies)
	if err != nil {
		return nil, err
	}
	procs, err := project.NormalizeProcesses(input.Processes)
	if err != nil {
		return nil, err
	}
	ts, ps := project.NewChildren(techs, procs)
	dev := &domain.IndividualDevelopment{
		ID:           domain.NewIndividualID(uuid.New()),
		UserID:       input.UserID,
		StartMonth:   details.StartMonth,
		EndMonth:     details.EndMonth,
		Name:         details.Name,
		Summary:      input.Summary,
		Technologies: ts,
		Processes:    ps,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(ctx, dev); err != nil {
		return nil, err
	}
	return &CreateResult{Development: dev}, nil
}
