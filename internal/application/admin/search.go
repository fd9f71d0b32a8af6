package admin

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// PerPage is the fixed admin page size.
const PerPage = 10

// PageInfo describes where a result page sits in the full result set.
type PageInfo struct {
	Total       int
	Pages       int
	CurrentPage int
}

func pageInfo(total, page int) PageInfo {
	return PageInfo{Total: total, Pages: (total + PerPage - 1) / PerPage, CurrentPage: page}
}

func normalizePage(page int) int {
	return max(1, min(page, ports.MaxPage))
}

type UserPage struct {
	PageInfo
	Users []ports.UserSummary
}

// SearchUsers runs a filtered, paginated user search.
type SearchUsers struct {
	users ports.UserRepository
}

func NewSearchUsers(users ports.UserRepository) *SearchUsers {
	return &SearchUsers{users: users}
}

func (uc *SearchUsers) Execute(ctx context.Context, filter ports.UserFilter, page int) (*UserPage, error) {
	page = normalizePage(page)
	items, total, err := uc.users.Search(ctx, filter, ports.Page{Page: page, PerPage: PerPage})
	if err != nil {
		return nil, err
	}
	return &UserPage{PageInfo: pageInfo(total, page), Users: items}, nil
}

type ProjectPage struct {
	PageInfo
	Projects []ports.ProjectSummary
}

// SearchProjects runs a filtered, paginated project search.
type SearchProjects struct {
	projects ports.ProjectRepository
}

func NewSearchProjects(projects ports.ProjectRepository) *SearchProjects {
	return &SearchProjects{projects: projects}
}

func (uc *SearchProjects) Execute(ctx context.Context, filter ports.ProjectFilter, page int) (*ProjectPage, error) {
	page = normalizePage(page)
	items, total, err := uc.projects.Search(ctx, filter, ports.Page{Page: page, PerPage: PerPage})
	if err != nil {
		return nil, err
	}
	return &ProjectPage{PageInfo: pageInfo(total, page), Projects: items}, nil
}
