package db

import (
	"context"

	"github.com/google/uuid"
)

const createContact = `-- name: CreateContact :exec
INSERT INTO contacts (id, name, email, message, created_at) VALUES ($1, $2, $3, $4, $5)
`

func (q *Queries) CreateContact(ctx context.Context, c Contact) error {
	_, err := q.db.Exec(ctx, createContact, c.ID, c.Name, c.Email, c.Message, c.CreatedAt)
	return err
}

const getContactByID = `-- name: GetContactByID :one
SELECT id, name, email, message, created_at FROM contacts WHERE id = $1
`

func (q *Queries) GetContactByID(ctx context.Context, id uuid.UUID) (Contact, error) {
	var c Contact
	err := q.db.QueryRow(ctx, getContactByID, id).Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt)
	return c, err
}

const listContacts = `-- name: ListContacts :many
SELECT id, name, email, message, created_at FROM contacts ORDER BY created_at DESC
`

func (q *Queries) ListContacts(ctx context.Context) ([]Contact, error) {
	rows, err := q.db.Query(ctx, listContacts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}
