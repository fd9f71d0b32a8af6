package ports

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
)

// UserRepository defines persistence for accounts and profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update writes identity, flags and profile fields. The password hash is left alone.
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error
	SetActive(ctx context.Context, userID domain.UserID) error
	// Delete removes the user and everything they own in one transaction.
	Delete(ctx context.Context, userID domain.UserID) error
	Search(ctx context.Context, filter UserFilter, page Page) ([]UserSummary, int, error)
	ListUnconfirmedBefore(ctx context.Context, before time.Time) ([]domain.UserID, error)
}

// ProjectRepository defines persistence for projects with their technologies and processes.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error)
	// ListByUser returns projects ordered by start month, children loaded.
	ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error)
	// Update writes the project fields and applies diff in one transaction.
	Update(ctx context.Context, project *domain.Project, diff domain.ChildDiff) error
	Delete(ctx context.Context, id domain.ProjectID) error
	Search(ctx context.Context, filter ProjectFilter, page Page) ([]ProjectSummary, int, error)
}

// IndividualRepository defines persistence for personal developments.
type IndividualRepository interface {
	Create(ctx context.Context, dev *domain.IndividualDevelopment) error
	GetByID(ctx context.Context, id domain.IndividualID) (*domain.IndividualDevelopment, error)
	ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.IndividualDevelopment, error)
	Delete(ctx context.Context, id domain.IndividualID) error
}

// LinkRepository defines persistence for share links.
type LinkRepository interface {
	// Issue deactivates the user's active links and stores link as active, in one transaction.
	Issue(ctx context.Context, link *domain.Link) error
	GetActiveByCode(ctx context.Context, code string) (*domain.Link, error)
	GetActiveByUser(ctx context.Context, userID domain.UserID) (*domain.Link, error)
	// Invalidate deactivates the user's active link and deletes inactive rows.
	Invalidate(ctx context.Context, userID domain.UserID) error
}

// ContactRepository defines persistence for contact messages.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error)
	// List returns messages newest first.
	List(ctx context.Context) ([]*domain.Contact, error)
}

// MaxPage bounds page numbers so that offsets stay well inside int range.
const MaxPage = 100_000

// Page selects one page of a search. Page is 1-based.
type Page struct {
	Page    int
	PerPage int
}

// Offset returns the row offset of the page. Pages past MaxPage are read as MaxPage.
func (p Page) Offset() int {
	if p.Page < 1 || p.PerPage < 1 {
		return 0
	}
	return (min(p.Page, MaxPage) - 1) * p.PerPage
}

// UserFilter narrows the admin user search. Empty strings and nil pointers are ignored.
type UserFilter struct {
	UserID         string
	Username       string
	Email          string
	DisplayName    string
	Gender         string
	NearestStation string
	Education      string
	Age            *int
	Experience     *int
	LinkCode       string
	IsAdmin        *bool
}

// UserSummary is a user row with its latest active link code.
type UserSummary struct {
	User           domain.User
	ActiveLinkCode string
}

// ProjectFilter narrows the admin project search.
type ProjectFilter struct {
	ProjectID        string
	Name             string
	Industry         string
	Summary          string
	Responsibilities string
	StartFrom        string
	EndUntil         string
	Technology       string
	Process          string
}

// ProjectSummary is a project row with child names flattened.
type ProjectSummary struct {
	Project      domain.Project
	Technologies []string
	Processes    []string
}
