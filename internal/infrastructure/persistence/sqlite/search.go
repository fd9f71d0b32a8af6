package sqlite

import (
	"context"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsFold adds a case-insensitive substring condition when value is non-empty.
func containsFold(q *gorm.DB, col, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	return q.Where("LOWER("+col+`) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(value))+"%")
}

func likeArg(value string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(value))) + "%"
}

func userFilter(q *gorm.DB, f ports.UserFilter) *gorm.DB {
	if v := strings.TrimSpace(f.UserID); v != "" {
		q = q.Where("users.id = ?", v)
	}
	q = containsFold(q, "users.username", f.Username)
	q = containsFold(q, "users.email", f.Email)
	q = containsFold(q, "users.display_name", f.DisplayName)
	q = containsFold(q, "users.gender", f.Gender)
	q = containsFold(q, "users.nearest_station", f.NearestStation)
	q = containsFold(q, "users.education", f.Education)
	if f.Age != nil {
		q = q.Where("users.age = ?", *f.Age)
	}
	if f.Experience != nil {
		q = q.Where("users.experience_months = ?", *f.Experience)
	}
	if strings.TrimSpace(f.LinkCode) != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM links l WHERE l.user_id = users.id AND l.is_active = ? AND LOWER(l.link_code) LIKE ? ESCAPE '\')`,
			true, likeArg(f.LinkCode))
	}
	if f.IsAdmin != nil {
		q = q.Where("users.is_admin = ?", *f.IsAdmin)
	}
	return q
}

func (r *UserRepository) Search(ctx context.Context, f ports.UserFilter, page ports.Page) ([]ports.UserSummary, int, error) {
	base := func() *gorm.DB { return userFilter(r.db.WithContext(ctx).Model(&userModel{}), f) }
	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []userModel
	if err := base().Order("users.created_at, users.id").Offset(page.Offset()).Limit(page.PerPage).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	codes := make(map[uuid.UUID]string, len(rows))
	if len(ids) > 0 {
		var links []linkModel
		if err := r.db.WithContext(ctx).Where("user_id IN ? AND is_active = ?", ids, true).Order("created_at").Find(&links).Error; err != nil {
			return nil, 0, err
		}
		for _, l := range links {
			codes[l.UserID] = l.LinkCode
		}
	}
	out := make([]ports.UserSummary, 0, len(rows))
	for _, m := range rows {
		out = append(out, ports.UserSummary{User: *modelToDomainUser(m), ActiveLinkCode: codes[m.ID]})
	}
	return out, int(total), nil
}

func projectFilter(q *gorm.DB, f ports.ProjectFilter) *gorm.DB {
	if v := strings.TrimSpace(f.ProjectID); v != "" {
		q = q.Where("projects.id = ?", v)
	}
	q = containsFold(q, "projects.name", f.Name)
	q = containsFold(q, "projects.industry", f.Industry)
	q = containsFold(q, "projects.summary", f.Summary)
	q = containsFold(q, "projects.responsibilities", f.Responsibilities)
	if v := strings.TrimSpace(f.StartFrom); v != "" {
		q = q.Where("projects.start_month >= ?", v)
	}
	if v := strings.TrimSpace(f.EndUntil); v != "" {
		q = q.Where("projects.end_month <= ?", v)
	}
	if strings.TrimSpace(f.Technology) != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM technologies t WHERE t.project_id = projects.id AND LOWER(t.name) LIKE ? ESCAPE '\')`, likeArg(f.Technology))
	}
	if strings.TrimSpace(f.Process) != "" {
		q = q.Where(`EXISTS (SELECT 1 FROM processes p WHERE p.project_id = projects.id AND LOWER(p.name) LIKE ? ESCAPE '\')`, likeArg(f.Process))
	}
	return q
}

func (r *ProjectRepository) Search(ctx context.Context, f ports.ProjectFilter, page ports.Page) ([]ports.ProjectSummary, int, error) {
	var total int64
	if err := projectFilter(r.db.WithContext(ctx).Model(&projectModel{}), f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []projectModel
	err := projectFilter(r.preloaded(ctx).Model(&projectModel{}), f).
		Order("projects.created_at, projects.id").Offset(page.Offset()).Limit(page.PerPage).Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	out := make([]ports.ProjectSummary, 0, len(rows))
	for _, m := range rows {
		p := modelToDomainProject(m)
		sum := ports.ProjectSummary{Project: *p}
		for _, t := range p.Technologies {
			sum.Technologies = append(sum.Technologies, t.Name)
		}
		for _, pr := range p.Processes {
			sum.Processes = append(sum.Processes, pr.Name)
		}
		out = append(out, sum)
	}
	return out, int(total), nil
}
