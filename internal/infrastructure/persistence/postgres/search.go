package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

// where accumulates AND-ed conditions with numbered placeholders. A "?" in a condition is
// replaced by the next $n.
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(w.args)), 1))
}

func (w *where) contains(col, value string) {
	if value = strings.TrimSpace(value); value != "" {
		w.add(col+` ILIKE ? ESCAPE '\'`, likePattern(value))
	}
}

func (w *where) equals(col string, value interface{}) {
	w.add(col+" = ?", value)
}

func (w *where) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// limit appends LIMIT/OFFSET placeholders and returns the suffix with the full argument list.
func (w *where) limit(page ports.Page) (string, []interface{}) {
	n := len(w.args)
	args := append(append([]interface{}{}, w.args...), page.PerPage, page.Offset())
	return " LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

const activeLinkCodeSQL = `COALESCE((SELECT l.link_code FROM links l WHERE l.user_id = u.id AND l.is_active
ORDER BY l.created_at DESC LIMIT 1), '')`

func userWhere(f ports.UserFilter) *where {
	w := &where{}
	if v := strings.TrimSpace(f.UserID); v != "" {
		w.equals("u.id::text", v)
	}
	w.contains("u.username", f.Username)
	w.contains("u.email", f.Email)
	w.contains("u.display_name", f.DisplayName)
	w.contains("u.gender", f.Gender)
	w.contains("u.nearest_station", f.NearestStation)
	w.contains("u.education", f.Education)
	if f.Age != nil {
		w.equals("u.age", *f.Age)
	}
	if f.Experience != nil {
		w.equals("u.experience_months", *f.Experience)
	}
	if v := strings.TrimSpace(f.LinkCode); v != "" {
		w.add(`EXISTS (SELECT 1 FROM links l WHERE l.user_id = u.id AND l.is_active AND l.link_code ILIKE ? ESCAPE '\')`, likePattern(v))
	}
	if f.IsAdmin != nil {
		w.equals("u.is_admin", *f.IsAdmin)
	}
	return w
}

func buildUserSearch(f ports.UserFilter, page ports.Page) (query string, args []interface{}, count string, countArgs []interface{}) {
	w := userWhere(f)
	suffix, args := w.limit(page)
	query = `SELECT u.id, u.username, u.email, u.password_hash, u.is_active, u.is_admin, u.display_name, u.age,
u.gender, u.nearest_station, u.experience_months, u.education, u.created_at, u.updated_at, ` + activeLinkCodeSQL + `
FROM users u` + w.clause() + ` ORDER BY u.created_at, u.id` + suffix
	count = `SELECT COUNT(*) FROM users u` + w.clause()
	return query, args, count, w.args
}

func searchUsers(ctx context.Context, pool *pgxpool.Pool, f ports.UserFilter, page ports.Page) ([]ports.UserSummary, int, error) {
	query, args, count, countArgs := buildUserSearch(f, page)
	var total int
	if err := pool.QueryRow(ctx, count, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []ports.UserSummary
	for rows.Next() {
		var u db.User
		var code string
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
			&u.DisplayName, &u.Age, &u.Gender, &u.NearestStation, &u.ExperienceMonths, &u.Education,
			&u.CreatedAt, &u.UpdatedAt, &code); err != nil {
			return nil, 0, err
		}
		out = append(out, ports.UserSummary{User: *dbUserToDomain(u), ActiveLinkCode: code})
	}
	return out, total, rows.Err()
}

func projectWhere(f ports.ProjectFilter) *where {
	w := &where{}
	if v := strings.TrimSpace(f.ProjectID); v != "" {
		w.equals("p.id::text", v)
	}
	w.contains("p.name", f.Name)
	w.contains("p.industry", f.Industry)
	w.contains("p.summary", f.Summary)
	w.contains("p.responsibilities", f.Responsibilities)
	if v := strings.TrimSpace(f.StartFrom); v != "" {
		w.add("p.start_month >= ?", v)
	}
	if v := strings.TrimSpace(f.EndUntil); v != "" {
		w.add("p.end_month <= ?", v)
	}
	if v := strings.TrimSpace(f.Technology); v != "" {
		w.add(`EXISTS (SELECT 1 FROM technologies t WHERE t.project_id = p.id AND t.name ILIKE ? ESCAPE '\')`, likePattern(v))
	}
	if v := strings.TrimSpace(f.Process); v != "" {
		w.add(`EXISTS (SELECT 1 FROM processes pr WHERE pr.project_id = p.id AND pr.name ILIKE ? ESCAPE '\')`, likePattern(v))
	}
	return w
}

func buildProjectSearch(f ports.ProjectFilter, page ports.Page) (query string, args []interface{}, count string, countArgs []interface{}) {
	w := projectWhere(f)
	suffix, args := w.limit(page)
	query = `SELECT p.id, p.user_id, p.start_month, p.end_month, p.industry, p.name, p.summary, p.responsibilities,
p.created_at, p.updated_at,
COALESCE((SELECT array_agg(t.name ORDER BY t.seq) FROM technologies t WHERE t.project_id = p.id), '{}'),
COALESCE((SELECT array_agg(pr.name ORDER BY pr.seq) FROM processes pr WHERE pr.project_id = p.id), '{}')
FROM projects p` + w.clause() + ` ORDER BY p.seq` + suffix
	count = `SELECT COUNT(*) FROM projects p` + w.clause()
	return query, args, count, w.args
}

func searchProjects(ctx context.Context, pool *pgxpool.Pool, f ports.ProjectFilter, page ports.Page) ([]ports.ProjectSummary, int, error) {
	query, args, count, countArgs := buildProjectSearch(f, page)
	var total int
	if err := pool.QueryRow(ctx, count, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []ports.ProjectSummary
	for rows.Next() {
		var p db.Project
		var techs, procs []string
		if err := rows.Scan(&p.ID, &p.UserID, &p.StartMonth, &p.EndMonth, &p.Industry, &p.Name, &p.Summary,
			&p.Responsibilities, &p.CreatedAt, &p.UpdatedAt, &techs, &procs); err != nil {
			return nil, 0, err
		}
		out = append(out, ports.ProjectSummary{
			Project:      *dbProjectToDomain(p),
			Technologies: techs,
			Processes:    procs,
		})
	}
	return out, total, rows.Err()
}
