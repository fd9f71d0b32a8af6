package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContactID identifies an inbound contact message.
type ContactID struct{ uuid.UUID }

func NewContactID(id uuid.UUID) ContactID { return ContactID{UUID: id} }

func (c ContactID) String() string { return c.UUID.String() }

// Contact is a message sent through the public contact form.
type Contact struct {
	ID        ContactID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}
