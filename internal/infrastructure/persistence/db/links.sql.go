package db

import (
	"context"

	"github.com/google/uuid"
)

const createLink = `-- name: CreateLink :exec
INSERT INTO links (id, user_id, link_code, is_active, created_at) VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateLink(ctx context.Context, l Link) error {
	_, err := q.db.Exec(ctx, createLink, l.ID, l.UserID, l.LinkCode, l.IsActive, l.CreatedAt)
	return err
}

const deactivateUserLinks = `-- name: DeactivateUserLinks :exec
UPDATE links SET is_active = FALSE WHERE user_id = $1 AND is_active
`

func (q *Queries) DeactivateUserLinks(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deactivateUserLinks, userID)
	return err
}

const deleteInactiveUserLinks = `-- name: DeleteInactiveUserLinks :exec
DELETE FROM links WHERE user_id = $1 AND NOT is_active
`

func (q *Queries) DeleteInactiveUserLinks(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteInactiveUserLinks, userID)
	return err
}

func scanLink(row rowScanner) (Link, error) {
	var l Link
	err := row.Scan(&l.ID, &l.UserID, &l.LinkCode, &l.IsActive, &l.CreatedAt)
	return l, err
}

const getActiveLinkByCode = `-- name: GetActiveLinkByCode :one
SELECT id, user_id, link_code, is_active, created_at FROM links WHERE link_code = $1 AND is_active
`

func (q *Queries) GetActiveLinkByCode(ctx context.Context, code string) (Link, error) {
	return scanLink(q.db.QueryRow(ctx, getActiveLinkByCode, code))
}

const getActiveLinkByUser = `-- name: GetActiveLinkByUser :one
SELECT id, user_id, link_code, is_active, created_at FROM links
WHERE user_id = $1 AND is_active ORDER BY created_at DESC LIMIT 1
`

func (q *Queries) GetActiveLinkByUser(ctx context.Context, userID uuid.UUID) (Link, error) {
	return scanLink(q.db.QueryRow(ctx, getActiveLinkByUser, userID))
}
