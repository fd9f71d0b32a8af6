package link

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

type CreateLinkInput struct {
	UserID domain.UserID
}

type CreateLinkResult struct {
	Link *domain.Link
	URL  string
}

// CreateLink issues a fresh share link. Issuing deactivates the previous one, so at most
// one link per user is active after each call completes.
type CreateLink struct {
	links   ports.LinkRepository
	baseURL string
}

func NewCreateLink(links ports.LinkRepository, baseURL string) *CreateLink {
	return &CreateLink{links: links, baseURL: strings.TrimRight(baseURL, "/")}
}

func (uc *CreateLink) Execute(ctx context.Context, input CreateLinkInput) (*CreateLinkResult, error) {
	link := &domain.Link{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Code:      uuid.NewString(),
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.links.Issue(ctx, link); err != nil {
		return nil, err
	}
	return &CreateLinkResult{Link: link, URL: uc.URL(link.Code)}, nil
}

// URL returns the public sheet address for code.
func (uc *CreateLink) URL(code string) string {
	return uc.baseURL + "/view_sheet/" + code
}
