package domain

import "github.com/google/uuid"

// Development phases, in lifecycle order.
const (
	PhaseRequirements   = "Requirements definition"
	PhaseBasicDesign    = "Basic design"
	PhaseDetailedDesign = "Detailed design"
	PhaseImplementation = "Implementation"
	PhaseUnitTest       = "Unit testing"
	PhaseIntegration    = "Integration testing"
	PhaseAcceptance     = "Acceptance testing"
	PhaseOperation      = "Operation & maintenance"
)

// Phases lists every phase in display order.
var Phases = []string{
	PhaseRequirements,
	PhaseBasicDesign,
	PhaseDetailedDesign,
	PhaseImplementation,
	PhaseUnitTest,
	PhaseIntegration,
	PhaseAcceptance,
	PhaseOperation,
}

// ValidPhase reports whether name is one of Phases.
func ValidPhase(name string) bool {
	for _, p := range Phases {
		if p == name {
			return true
		}
	}
	return false
}

// Process is a phase the user covered on a project.
type Process struct {
	ID   uuid.UUID
	Name string
}

// ProcessNames returns the names of ps in order.
func ProcessNames(ps []Process) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
