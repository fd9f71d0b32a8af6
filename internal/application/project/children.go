package project

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// Details are the scalar fields shared by projects and individual developments.
type Details struct {
	StartMonth string
	EndMonth   string
	Name       string
}

// ValidateDetails checks the name and the month range.
func ValidateDetails(d Details) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name", domerrors.ErrMissingField)
	}
	if !domain.ValidMonth(d.StartMonth) || !domain.ValidMonth(d.EndMonth) {
		return domerrors.ErrInvalidMonth
	}
	if d.EndMonth < d.StartMonth {
		return fmt.Errorf("%w: end month is before start month", domerrors.ErrInvalidMonth)
	}
	return nil
}

type techKey struct {
	category domain.Category
	name     string
}

// NormalizeTechnologies trims names, drops blank entries and rejects unknown categories
// and repeated names within a category. Negative durations become 0.
func NormalizeTechnologies(in []domain.Technology) ([]domain.Technology, error) {
	seen := make(map[techKey]bool, len(in))
	out := make([]domain.Technology, 0, len(in))
	for _, t := range in {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		if !t.Category.Valid() {
			return nil, fmt.Errorf("%w: %s", domerrors.ErrInvalidCategory, t.Category)
		}
		k := techKey{t.Category, t.Name}
		if seen[k] {
			return nil, fmt.Errorf("%w: %s / %s", domerrors.ErrDuplicateTechnology, t.Category.Label(), t.Name)
		}
		seen[k] = true
		if t.DurationMonths < 0 {
			t.DurationMonths = 0
		}
		out = append(out, t)
	}
	return out, nil
}

// NormalizeProcesses drops blanks and repeats and rejects names outside domain.Phases.
func NormalizeProcesses(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		if !domain.ValidPhase(n) {
			return nil, fmt.Errorf("%w: %s", domerrors.ErrInvalidProcess, n)
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

// NewChildren assigns IDs to normalized technologies and processes.
func NewChildren(techs []domain.Technology, processes []string) ([]domain.Technology, []domain.Process) {
	ts := make([]domain.Technology, 0, len(techs))
	for _, t := range techs {
		t.ID = uuid.New()
		ts = append(ts, t)
	}
	ps := make([]domain.Process, 0, len(processes))
	for _, n := range processes {
		ps = append(ps, domain.Process{ID: uuid.New(), Name: n})
	}
	return ts, ps
}

// DiffChildren compares stored children with a normalized submission. A (category, name) pair
// present in both keeps its row and is updated when the duration changed.
func DiffChildren(curTechs []domain.Technology, curProcs []domain.Process, techs []domain.Technology, processes []string) domain.ChildDiff {
	var diff domain.ChildDiff

	existing := make(map[techKey]domain.Technology, len(curTechs))
	for _, t := range curTechs {
		existing[techKey{t.Category, t.Name}] = t
	}
	kept := make(map[uuid.UUID]bool, len(techs))
	for _, t := range techs {
		cur, ok := existing[techKey{t.Category, t.Name}]
		if !ok {
			t.ID = uuid.New()
			diff.InsertTechnologies = append(diff.InsertTechnologies, t)
			continue
		}
		kept[cur.ID] = true
		if cur.DurationMonths != t.DurationMonths {
			cur.DurationMonths = t.DurationMonths
			diff.UpdateTechnologies = append(diff.UpdateTechnologies, cur)
		}
	}
	for _, t := range curTechs {
		if !kept[t.ID] {
			diff.DeleteTechnologies = append(diff.DeleteTechnologies, t.ID)
		}
	}

	existingProcs := make(map[string]domain.Process, len(curProcs))
	for _, p := range curProcs {
		existingProcs[p.Name] = p
	}
	keptProcs := make(map[uuid.UUID]bool, len(processes))
	for _, n := range processes {
		if cur, ok := existingProcs[n]; ok {
			keptProcs[cur.ID] = true
			continue
		}
		diff.InsertProcesses = append(diff.InsertProcesses, domain.Process{ID: uuid.New(), Name: n})
	}
	for _, p := range curProcs {
		if !keptProcs[p.ID] {
			diff.DeleteProcesses = append(diff.DeleteProcesses, p.ID)
		}
	}
	return diff
}
