package domain

import (
	"time"

	"github.com/google/uuid"
)

// IndividualID identifies a personal development.
type IndividualID struct{ uuid.UUID }

func NewIndividualID(id uuid.UUID) IndividualID { return IndividualID{UUID: id} }

func (i IndividualID) String() string { return i.UUID.String() }

// IndividualDevelopment is a personal project, recorded like a Project but without client details.
type IndividualDevelopment struct {
	ID           IndividualID
	UserID       UserID
	StartMonth   string
	EndMonth     string
	Name         string
	Summary      string
	Technologies []Technology
	Processes    []Process
	CreatedAt    time.Time
}

func (d *IndividualDevelopment) Period() string { return d.StartMonth + " – " + d.EndMonth }
