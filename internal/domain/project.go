package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProjectID is a value object for project identity.
type ProjectID struct{ uuid.UUID }

// NewProjectID creates a new ProjectID from uuid.
func NewProjectID(id uuid.UUID) ProjectID { return ProjectID{UUID: id} }

// String returns the canonical string form.
func (p ProjectID) String() string { return p.UUID.String() }

// Project is a career entry. Technologies and Processes are loaded with it.
type Project struct {
	ID               ProjectID
	UserID           UserID
	StartMonth       string
	EndMonth         string
	Industry         string
	Name             string
	Summary          string
	Responsibilities string
	Technologies     []Technology
	Processes        []Process
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Period renders "start – end".
func (p *Project) Period() string { return p.StartMonth + " – " + p.EndMonth }

// ChildDiff is the set of row changes that turns the stored technologies and processes
// of an owner into the submitted ones.
type ChildDiff struct {
	InsertTechnologies []Technology
	UpdateTechnologies []Technology
	DeleteTechnologies []uuid.UUID
	InsertProcesses    []Process
	DeleteProcesses    []uuid.UUID
}

// Empty reports whether the diff changes nothing.
func (d ChildDiff) Empty() bool {
	return len(d.InsertTechnologies) == 0 && len(d.UpdateTechnologies) == 0 &&
		len(d.DeleteTechnologies) == 0 && len(d.InsertProcesses) == 0 && len(d.DeleteProcesses) == 0
}
