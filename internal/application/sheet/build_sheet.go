package sheet

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/link"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type BuildSheetInput struct {
	UserID domain.UserID
	// WithLink also loads the user's active share link (owner dashboard).
	WithLink bool
}

// BuildSheet loads a user's history and aggregates it into a skill sheet.
type BuildSheet struct {
	users       ports.UserRepository
	projects    ports.ProjectRepository
	individuals ports.IndividualRepository
	links       ports.LinkRepository
	baseURL     string
}

func NewBuildSheet(users ports.UserRepository, projects ports.ProjectRepository, individuals ports.IndividualRepository, links ports.LinkRepository, baseURL string) *BuildSheet {
	return &BuildSheet{
		users:       users,
		projects:    projects,
		individuals: individuals,
		links:       links,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

func (uc *BuildSheet) Execute(ctx context.Context, input BuildSheetInput) (*domain.SkillSheet, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	projects, err := uc.projects.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	devs, err := uc.individuals.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s := &domain.SkillSheet{
		User:         user,
		Projects:     projects,
		Individuals:  devs,
		Skills:       AggregateSkills(technologiesOf(projects, devs)...),
		ShareBaseURL: uc.baseURL + "/view_sheet/",
	}
	if input.WithLink {
		active, err := uc.links.GetActiveByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		s.ActiveLink = active
	}
	return s, nil
}

// BuildPublicSheet resolves a share link code and builds the owner's sheet.
type BuildPublicSheet struct {
	resolve *link.ResolveLink
	build   *BuildSheet
}

func NewBuildPublicSheet(resolve *link.ResolveLink, build *BuildSheet) *BuildPublicSheet {
	return &BuildPublicSheet{resolve: resolve, build: build}
}

func (uc *BuildPublicSheet) Execute(ctx context.Context, code string) (*domain.SkillSheet, error) {
	l, err := uc.resolve.Execute(ctx, code)
	if err != nil {
		return nil, err
	}
	s, err := uc.build.Execute(ctx, BuildSheetInput{UserID: l.UserID})
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			return nil, domerrors.ErrLinkInvalid
		}
		return nil, err
	}
	return s, nil
}

// ExportPDF renders the sheet behind a share link.
type ExportPDF struct {
	public   *BuildPublicSheet
	renderer ports.SheetRenderer
}

// ExportPDFResult carries the document and a filename derived from the owner.
type ExportPDFResult struct {
	Filename string
	Data     []byte
}

func NewExportPDF(public *BuildPublicSheet, renderer ports.SheetRenderer) *ExportPDF {
	return &ExportPDF{public: public, renderer: renderer}
}

func (uc *ExportPDF) Execute(ctx context.Context, code string) (*ExportPDFResult, error) {
	s, err := uc.public.Execute(ctx, code)
	if err != nil {
		return nil, err
	}
	data, err := uc.renderer.Render(s)
	if err != nil {
		return nil, err
	}
	return &ExportPDFResult{Filename: "skillsheet_" + s.User.Username + ".pdf", Data: data}, nil
}
