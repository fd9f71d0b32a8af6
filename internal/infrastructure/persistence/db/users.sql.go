package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, username, email, password_hash, is_active, is_admin, display_name, age, gender,
nearest_station, experience_months, education, created_at, updated_at`

const createUser = `-- name: CreateUser :exec
INSERT INTO users (` + userColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`

func (q *Queries) CreateUser(ctx context.Context, u User) error {
	_, err := q.db.Exec(ctx, createUser,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsActive, u.IsAdmin,
		u.DisplayName, u.Age, u.Gender, u.NearestStation, u.ExperienceMonths, u.Education,
		u.CreatedAt, u.UpdatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsActive, &u.IsAdmin,
		&u.DisplayName, &u.Age, &u.Gender, &u.NearestStation, &u.ExperienceMonths, &u.Education,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

const getUserByID = `-- name: GetUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByEmail, email))
}

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT ` + userColumns + ` FROM users WHERE username = $1
`

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return scanUser(q.db.QueryRow(ctx, getUserByUsername, username))
}

const updateUser = `-- name: UpdateUser :exec
UPDATE users SET username = $2, email = $3, is_active = $4, is_admin = $5, display_name = $6, age = $7,
gender = $8, nearest_station = $9, experience_months = $10, education = $11, updated_at = $12
WHERE id = $1
`

// UpdateUser writes everything except the password hash and creation time.
func (q *Queries) UpdateUser(ctx context.Context, u User) error {
	_, err := q.db.Exec(ctx, updateUser,
		u.ID, u.Username, u.Email, u.IsActive, u.IsAdmin,
		u.DisplayName, u.Age, u.Gender, u.NearestStation, u.ExperienceMonths, u.Education,
		u.UpdatedAt,
	)
	return err
}

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
`

func (q *Queries) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := q.db.Exec(ctx, updateUserPassword, id, passwordHash)
	return err
}

const setUserActive = `-- name: SetUserActive :exec
UPDATE users SET is_active = TRUE, updated_at = NOW() WHERE id = $1
`

func (q *Queries) SetUserActive(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, setUserActive, id)
	return err
}

const deleteUser = `-- name: DeleteUser :exec
DELETE FROM users WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, deleteUser, id)
	return err
}

const listUnconfirmedUsersBefore = `-- name: ListUnconfirmedUsersBefore :many
SELECT id FROM users WHERE is_active = FALSE AND created_at < $1
`

func (q *Queries) ListUnconfirmedUsersBefore(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	rows, err := q.db.Query(ctx, listUnconfirmedUsersBefore, before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	return items, rows.Err()
}

// TextOf converts an optional string to a nullable column value.
func TextOf(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// Int4Of converts an optional int to a nullable column value.
func Int4Of(n *int) pgtype.Int4 {
	if n == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: int32(*n), Valid: true}
}

// StringPtr is the inverse of TextOf.
func StringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

// IntPtr is the inverse of Int4Of.
func IntPtr(n pgtype.Int4) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int32)
	return &v
}
