package domain

import (
	"time"

	"github.com/google/uuid"
)

// Link grants read-only public access to one user's sheet while active.
type Link struct {
	ID        uuid.UUID
	UserID    UserID
	Code      string
	IsActive  bool
	CreatedAt time.Time
}
