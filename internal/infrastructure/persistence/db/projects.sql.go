package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const projectColumns = `id, user_id, start_month, end_month, industry, name, summary, responsibilities, created_at, updated_at`

const createProject = `-- name: CreateProject :exec
INSERT INTO projects (` + projectColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`

func (q *Queries) CreateProject(ctx context.Context, p Project) error {
	_, err := q.db.Exec(ctx, createProject,
		p.ID, p.UserID, p.StartMonth, p.EndMonth, p.Industry, p.Name, p.Summary, p.Responsibilities,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func scanProject(row rowScanner) (Project, error) {
	var p Project
	err := row.Scan(&p.ID, &p.UserID, &p.StartMonth, &p.EndMonth, &p.Industry, &p.Name, &p.Summary,
		&p.Responsibilities, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getProjectByID = `-- name: GetProjectByID :one
SELECT ` + projectColumns + ` FROM projects WHERE id = $1
`

func (q *Queries) GetProjectByID(ctx context.Context, id uuid.UUID) (Project, error) {
	return scanProject(q.db.QueryRow(ctx, getProjectByID, id))
}

const listProjectsByUser = `-- name: ListProjectsByUser :many
SELECT ` + projectColumns + ` FROM projects WHERE user_id = $1 ORDER BY start_month, seq
`

func (q *Queries) ListProjectsByUser(ctx context.Context, userID uuid.UUID) ([]Project, error) {
	rows, err := q.db.Query(ctx, listProjectsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const updateProject = `-- name: UpdateProject :exec
UPDATE projects SET start_month = $2, end_month = $3, industry = $4, name = $5, summary = $6,
responsibilities = $7, updated_at = $8
WHERE id = $1
`

func (q *Queries) UpdateProject(ctx context.Context, p Project) error {
	_, err := q.db.Exec(ctx, updateProject,
		p.ID, p.StartMonth, p.EndMonth, p.Industry, p.Name, p.Summary, p.Responsibilities, p.UpdatedAt,
	)
	return err
}

const deleteProject = `-- name: DeleteProject :exec
DELETE FROM projects WHERE id = $1
`

func (q *Queries) DeleteProject(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteProject, id)
	return err
}

const createTechnology = `-- name: CreateTechnology :exec
INSERT INTO technologies (id, project_id, category, name, duration_months) VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateTechnology(ctx context.Context, t Technology) error {
	_, err := q.db.Exec(ctx, createTechnology, t.ID, t.OwnerID, t.Category, t.Name, t.DurationMonths)
	return err
}

const updateTechnologyDuration = `-- name: UpdateTechnologyDuration :exec
UPDATE technologies SET duration_months = $2 WHERE id = $1
`

func (q *Queries) UpdateTechnologyDuration(ctx context.Context, id uuid.UUID, months int32) error {
	_, err := q.db.Exec(ctx, updateTechnologyDuration, id, months)
	return err
}

const deleteTechnology = `-- name: DeleteTechnology :exec
DELETE FROM technologies WHERE id = $1
`

func (q *Queries) DeleteTechnology(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteTechnology, id)
	return err
}

const listTechnologiesByProjects = `-- name: ListTechnologiesByProjects :many
SELECT id, project_id, category, name, duration_months FROM technologies
WHERE project_id = ANY($1::uuid[]) ORDER BY seq
`

func (q *Queries) ListTechnologiesByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]Technology, error) {
	return q.listTechnologies(ctx, listTechnologiesByProjects, projectIDs)
}

func (q *Queries) listTechnologies(ctx context.Context, query string, ownerIDs []uuid.UUID) ([]Technology, error) {
	rows, err := q.db.Query(ctx, query, uuidArray(ownerIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Technology
	for rows.Next() {
		var t Technology
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Category, &t.Name, &t.DurationMonths); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}

const createProcess = `-- name: CreateProcess :exec
INSERT INTO processes (id, project_id, name) VALUES ($1, $2, $3)
`

func (q *Queries) CreateProcess(ctx context.Context, p Process) error {
	_, err := q.db.Exec(ctx, createProcess, p.ID, p.OwnerID, p.Name)
	return err
}

const deleteProcess = `-- name: DeleteProcess :exec
DELETE FROM processes WHERE id = $1
`

func (q *Queries) DeleteProcess(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteProcess, id)
	return err
}

const listProcessesByProjects = `-- name: ListProcessesByProjects :many
SELECT id, project_id, name FROM processes WHERE project_id = ANY($1::uuid[]) ORDER BY seq
`

func (q *Queries) ListProcessesByProjects(ctx context.Context, projectIDs []uuid.UUID) ([]Process, error) {
	return q.listProcesses(ctx, listProcessesByProjects, projectIDs)
}

func (q *Queries) listProcesses(ctx context.Context, query string, ownerIDs []uuid.UUID) ([]Process, error) {
	rows, err := q.db.Query(ctx, query, uuidArray(ownerIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Process
	for rows.Next() {
		var p Process
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func uuidArray(ids []uuid.UUID) []pgtype.UUID {
	out := make([]pgtype.UUID, len(ids))
	for i, id := range ids {
		out[i] = pgtype.UUID{Bytes: id, Valid: true}
	}
	return out
}
