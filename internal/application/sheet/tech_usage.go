package sheet

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

// Usage points at an entry by its 1-based position in the owner's list.
type Usage struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

type TechUsageResult struct {
	Projects     []Usage `json:"projects"`
	Developments []Usage `json:"developments"`
}

// TechUsage finds the user's projects and developments that used a technology.
type TechUsage struct {
	projects    ports.ProjectRepository
	individuals ports.IndividualRepository
}

func NewTechUsage(projects ports.ProjectRepository, individuals ports.IndividualRepository) *TechUsage {
	return &TechUsage{projects: projects, individuals: individuals}
}

func (uc *TechUsage) Execute(ctx context.Context, userID domain.UserID, techName string) (*TechUsageResult, error) {
	projects, err := uc.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	devs, err := uc.individuals.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &TechUsageResult{Projects: []Usage{}, Developments: []Usage{}}
	for i, p := range projects {
		if usesTech(p.Technologies, techName) {
			res.Projects = append(res.Projects, Usage{Number: i + 1, Name: p.Name})
		}
	}
	for i, d := range devs {
		if usesTech(d.Technologies, techName) {
			res.Developments = append(res.Developments, Usage{Number: i + 1, Name: d.Name})
		}
	}
	return res, nil
}

func usesTech(ts []domain.Technology, name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}
