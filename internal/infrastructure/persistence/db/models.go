package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type User struct {
	ID               uuid.UUID
	Username         string
	Email            string
	PasswordHash     string
	IsActive         bool
	IsAdmin          bool
	DisplayName      pgtype.Text
	Age              pgtype.Int4
	Gender           pgtype.Text
	NearestStation   pgtype.Text
	ExperienceMonths pgtype.Int4
	Education        pgtype.Text
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Project struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	StartMonth       string
	EndMonth         string
	Industry         string
	Name             string
	Summary          string
	Responsibilities string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Technology is a row of technologies or individual_technologies; OwnerID is the parent.
type Technology struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Category       string
	Name           string
	DurationMonths int32
}

// Process is a row of processes or individual_processes.
type Process struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

type IndividualDevelopment struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	StartMonth string
	EndMonth   string
	Name       string
	Summary    string
	CreatedAt  time.Time
}

type Link struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	LinkCode  string
	IsActive  bool
	CreatedAt time.Time
}

type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
