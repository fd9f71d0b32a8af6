package link

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

type InvalidateLinkInput struct {
	UserID domain.UserID
}

// InvalidateLink deactivates the user's link and purges inactive rows.
type InvalidateLink struct {
	links ports.LinkRepository
}

func NewInvalidateLink(links ports.LinkRepository) *InvalidateLink {
	return &InvalidateLink{links: links}
}

func (uc *InvalidateLink) Execute(ctx context.Context, input InvalidateLinkInput) error {
	return uc.links.Invalidate(ctx, input.UserID)
}
