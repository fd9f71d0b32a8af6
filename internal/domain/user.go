package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserID is a value object for user identity.
type UserID struct{ uuid.UUID }

// NewUserID creates a new UserID from uuid.
func NewUserID(id uuid.UUID) UserID { return UserID{UUID: id} }

// String returns the canonical string form.
func (u UserID) String() string { return u.UUID.String() }

// User is an account. IsActive is set once the email address is confirmed.
type User struct {
	ID           UserID
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	Profile      Profile
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Profile holds the fields printed at the top of a skill sheet. Nil means not specified.
type Profile struct {
	DisplayName      *string
	Age              *int
	Gender           *string
	NearestStation   *string
	ExperienceMonths *int
	Education        *string
}

// NotSpecified is shown in place of an empty profile field.
const NotSpecified = "Not specified"

// Name returns the display name, falling back to the placeholder.
func (p Profile) Name() string { return strOr(p.DisplayName) }

func (p Profile) AgeText() string {
	if p.Age == nil {
		return NotSpecified
	}
	return itoa(*p.Age)
}

func (p Profile) GenderText() string { return strOr(p.Gender) }

func (p Profile) StationText() string { return strOr(p.NearestStation) }

// ExperienceText formats the total experience as years and months.
func (p Profile) ExperienceText() string {
	if p.ExperienceMonths == nil {
		return NotSpecified
	}
	return FormatDuration(*p.ExperienceMonths)
}

func (p Profile) EducationText() string { return strOr(p.Education) }

func strOr(s *string) string {
	if s == nil || *s == "" {
		return NotSpecified
	}
	return *s
}
