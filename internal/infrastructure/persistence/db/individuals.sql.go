package db

import (
	"context"

	"github.com/google/uuid"
)

const individualColumns = `id, user_id, start_month, end_month, name, summary, created_at`

const createIndividual = `-- name: CreateIndividual :exec
INSERT INTO individual_developments (` + individualColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (q *Queries) CreateIndividual(ctx context.Context, d IndividualDevelopment) error {
	_, err := q.db.Exec(ctx, createIndividual, d.ID, d.UserID, d.StartMonth, d.EndMonth, d.Name, d.Summary, d.CreatedAt)
	return err
}

func scanIndividual(row rowScanner) (IndividualDevelopment, error) {
	var d IndividualDevelopment
	err := row.Scan(&d.ID, &d.UserID, &d.StartMonth, &d.EndMonth, &d.Name, &d.Summary, &d.CreatedAt)
	return d, err
}

const getIndividualByID = `-- name: GetIndividualByID :one
SELECT ` + individualColumns + ` FROM individual_developments WHERE id = $1
`

func (q *Queries) GetIndividualByID(ctx context.Context, id uuid.UUID) (IndividualDevelopment, error) {
	return scanIndividual(q.db.QueryRow(ctx, getIndividualByID, id))
}

const listIndividualsByUser = `-- name: ListIndividualsByUser :many
SELECT ` + individualColumns + ` FROM individual_developments WHERE user_id = $1 ORDER BY seq
`

func (q *Queries) ListIndividualsByUser(ctx context.Context, userID uuid.UUID) ([]IndividualDevelopment, error) {
	rows, err := q.db.Query(ctx, listIndividualsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []IndividualDevelopment
	for rows.Next() {
		d, err := scanIndividual(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

const deleteIndividual = `-- name: DeleteIndividual :exec
DELETE FROM individual_developments WHERE id = $1
`

func (q *Queries) DeleteIndividual(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteIndividual, id)
	return err
}

const createIndividualTechnology = `-- name: CreateIndividualTechnology :exec
INSERT INTO individual_technologies (id, individual_id, category, name, duration_months) VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateIndividualTechnology(ctx context.Context, t Technology) error {
	_, err := q.db.Exec(ctx, createIndividualTechnology, t.ID, t.OwnerID, t.Category, t.Name, t.DurationMonths)
	return err
}

const createIndividualProcess = `-- name: CreateIndividualProcess :exec
INSERT INTO individual_processes (id, individual_id, name) VALUES ($1, $2, $3)
`

func (q *Queries) CreateIndividualProcess(ctx context.Context, p Process) error {
	_, err := q.db.Exec(ctx, createIndividualProcess, p.ID, p.OwnerID, p.Name)
	return err
}

const listIndividualTechnologies = `-- name: ListIndividualTechnologies :many
SELECT id, individual_id, category, name, duration_months FROM individual_technologies
WHERE individual_id = ANY($1::uuid[]) ORDER BY seq
`

func (q *Queries) ListIndividualTechnologies(ctx context.Context, individualIDs []uuid.UUID) ([]Technology, error) {
	return q.listTechnologies(ctx, listIndividualTechnologies, individualIDs)
}

const listIndividualProcesses = `-- name: ListIndividualProcesses :many
SELECT id, individual_id, name FROM individual_processes WHERE individual_id = ANY($1::uuid[]) ORDER BY seq
`

func (q *Queries) ListIndividualProcesses(ctx context.Context, individualIDs []uuid.UUID) ([]Process, error) {
	return q.listProcesses(ctx, listIndividualProcesses, individualIDs)
}
