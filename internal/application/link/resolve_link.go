package link

import (
	"context"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// ResolveLink returns the active link for a code. Malformed, unknown and deactivated
// codes all yield ErrLinkInvalid.
type ResolveLink struct {
	links ports.LinkRepository
}

func NewResolveLink(links ports.LinkRepository) *ResolveLink {
	return &ResolveLink{links: links}
}

func (uc *ResolveLink) Execute(ctx context.Context, code string) (*domain.Link, error) {
	if _, err := uuid.Parse(code); err != nil {
		return nil, domerrors.ErrLinkInvalid
	}
	link, err := uc.links.GetActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, domerrors.ErrLinkInvalid
	}
	return link, nil
}
