package sheet

import "github.com/amirhosseinghanipour/skillcanvas/internal/domain"

// AggregateSkills sums technology durations per (category, name) across every group.
// Categories and names keep first-encountered order; no category is empty.
func AggregateSkills(groups ...[]domain.Technology) []domain.CategorySkills {
	var out []domain.CategorySkills
	catIdx := make(map[domain.Category]int)
	nameIdx := make(map[domain.Category]map[string]int)
	for _, techs := range groups {
		for _, t := range techs {
			ci, ok := catIdx[t.Category]
			if !ok {
				ci = len(out)
				catIdx[t.Category] = ci
				nameIdx[t.Category] = make(map[string]int)
				out = append(out, domain.CategorySkills{Category: t.Category, Label: t.Category.Label()})
			}
			months := t.DurationMonths
			if months < 0 {
				months = 0
			}
			if si, ok := nameIdx[t.Category][t.Name]; ok {
				out[ci].Skills[si].DurationMonths += months
				continue
			}
			nameIdx[t.Category][t.Name] = len(out[ci].Skills)
			out[ci].Skills = append(out[ci].Skills, domain.SkillEntry{Name: t.Name, DurationMonths: months})
		}
	}
	return out
}

// technologiesOf flattens the technology lists of projects and developments.
func technologiesOf(projects []*domain.Project, devs []*domain.IndividualDevelopment) [][]domain.Technology {
	groups := make([][]domain.Technology, 0, len(projects)+len(devs))
	for _, p := range projects {
		groups = append(groups, p.Technologies)
	}
	for _, d := range devs {
		groups = append(groups, d.Technologies)
	}
	return groups
}
