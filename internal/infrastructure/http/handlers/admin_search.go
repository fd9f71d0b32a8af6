package handlers

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/admin"
	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

func queryPage(q url.Values) int {
	n, err := strconv.Atoi(q.Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, ports.MaxPage)
}

func queryInt(q url.Values, key string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return nil
	}
	return &n
}

// queryBool honors only "true" and "false".
func queryBool(q url.Values, key string) *bool {
	switch q.Get(key) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

// linkCodeOf accepts a bare code or a full /view_sheet/ URL.
func linkCodeOf(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

func userFilterFromQuery(q url.Values) ports.UserFilter {
	return ports.UserFilter{
		UserID:         strings.TrimSpace(q.Get("user_id")),
		Username:       strings.TrimSpace(q.Get("username")),
		Email:          strings.TrimSpace(q.Get("email")),
		DisplayName:    strings.TrimSpace(q.Get("display_name")),
		Gender:         strings.TrimSpace(q.Get("gender")),
		NearestStation: strings.TrimSpace(q.Get("nearest_station")),
		Education:      strings.TrimSpace(q.Get("education")),
		Age:            queryInt(q, "age"),
		Experience:     queryInt(q, "experience_months"),
		LinkCode:       linkCodeOf(q.Get("latest_active_link_url")),
		IsAdmin:        queryBool(q, "is_admin"),
	}
}

func projectFilterFromQuery(q url.Values) ports.ProjectFilter {
	return ports.ProjectFilter{
		ProjectID:        strings.TrimSpace(q.Get("project_id")),
		Name:             strings.TrimSpace(q.Get("project_name")),
		Industry:         strings.TrimSpace(q.Get("industry")),
		Summary:          strings.TrimSpace(q.Get("project_summary")),
		Responsibilities: strings.TrimSpace(q.Get("responsibilities")),
		StartFrom:        strings.TrimSpace(q.Get("start_month")),
		EndUntil:         strings.TrimSpace(q.Get("end_month")),
		Technology:       strings.TrimSpace(q.Get("technologies")),
		Process:          strings.TrimSpace(q.Get("processes")),
	}
}

type adminUserJSON struct {
	ID                  string  `json:"id"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	DisplayName         *string `json:"display_name"`
	Age                 *int    `json:"age"`
	Gender              *string `json:"gender"`
	NearestStation      *string `json:"nearest_station"`
	ExperienceMonths    *int    `json:"experience_months"`
	Education           *string `json:"education"`
	IsAdmin             bool    `json:"is_admin"`
	IsActive            bool    `json:"is_active"`
	LatestActiveLinkURL string  `json:"latest_active_link_url"`
}

type adminUsersJSON struct {
	Users       []adminUserJSON `json:"users"`
	Total       int             `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
}

func usersJSON(p *admin.UserPage, shareURL func(string) string) adminUsersJSON {
	out := adminUsersJSON{Users: make([]adminUserJSON, 0, len(p.Users)), Total: p.Total, Pages: p.Pages, CurrentPage: p.CurrentPage}
	for _, s := range p.Users {
		u := s.User
		j := adminUserJSON{
			ID:               u.ID.String(),
			Username:         u.Username,
			Email:            u.Email,
			DisplayName:      u.Profile.DisplayName,
			Age:              u.Profile.Age,
			Gender:           u.Profile.Gender,
			NearestStation:   u.Profile.NearestStation,
			ExperienceMonths: u.Profile.ExperienceMonths,
			Education:        u.Profile.Education,
			IsAdmin:          u.IsAdmin,
			IsActive:         u.IsActive,
		}
		if s.ActiveLinkCode != "" {
			j.LatestActiveLinkURL = shareURL(s.ActiveLinkCode)
		}
		out.Users = append(out.Users, j)
	}
	return out
}

type adminProjectJSON struct {
	ID               string   `json:"id"`
	UserID           string   `json:"user_id"`
	ProjectName      string   `json:"project_name"`
	Industry         string   `json:"industry"`
	StartMonth       string   `json:"start_month"`
	EndMonth         string   `json:"end_month"`
	ProjectSummary   string   `json:"project_summary"`
	Responsibilities string   `json:"responsibilities"`
	Technologies     []string `json:"technologies"`
	Processes        []string `json:"processes"`
}

type adminProjectsJSON struct {
	Projects    []adminProjectJSON `json:"projects"`
	Total       int                `json:"total"`
	Pages       int                `json:"pages"`
	CurrentPage int                `json:"current_page"`
}

func projectsJSON(p *admin.ProjectPage) adminProjectsJSON {
	out := adminProjectsJSON{Projects: make([]adminProjectJSON, 0, len(p.Projects)), Total: p.Total, Pages: p.Pages, CurrentPage: p.CurrentPage}
	for _, s := range p.Projects {
		pr := s.Project
		techs, procs := s.Technologies, s.Processes
		if techs == nil {
			techs = []string{}
		}
		if procs == nil {
			procs = []string{}
		}
		out.Projects = append(out.Projects, adminProjectJSON{
			ID:               pr.ID.String(),
			UserID:           pr.UserID.String(),
			ProjectName:      pr.Name,
			Industry:         pr.Industry,
			StartMonth:       pr.StartMonth,
			EndMonth:         pr.EndMonth,
			ProjectSummary:   pr.Summary,
			Responsibilities: pr.Responsibilities,
			Technologies:     techs,
			Processes:        procs,
		})
	}
	return out
}

// pageLinks returns the page numbers for a pager.
func pageLinks(info admin.PageInfo) []int {
	out := make([]int, 0, info.Pages)
	for i := 1; i <= info.Pages; i++ {
		out = append(out, i)
	}
	return out
}
