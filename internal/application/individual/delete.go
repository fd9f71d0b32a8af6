package individual

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type DeleteInput struct {
	Actor project.Actor
	ID    domain.IndividualID
}

// Delete removes a personal development owned by the actor.
type Delete struct {
	repo ports.IndividualRepository
}

func NewDelete(repo ports.IndividualRepository) *Delete {
	return &Delete{repo: repo}
}

func (uc *Delete) Execute(ctx context.Context, input DeleteInput) error {
	dev, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return err
	}
	if dev == nil {
		return domerrors.ErrIndividualNotFound
	}
	if !input.Actor.IsAdmin && dev.UserID != input.Actor.UserID {
		return domerrors.ErrForbidden
	}
	return uc.repo.Delete(ctx, input.ID)
}
