package domain

// SkillEntry is the total time spent on one technology across a user's history.
type SkillEntry struct {
	Name           string
	DurationMonths int
}

// Duration formats DurationMonths.
func (s SkillEntry) Duration() string { return FormatDuration(s.DurationMonths) }

// CategorySkills groups skill entries under one category, in first-seen order.
type CategorySkills struct {
	Category Category
	Label    string
	Skills   []SkillEntry
}

// SkillSheet is everything needed to render a sheet as HTML or PDF.
type SkillSheet struct {
	User         *User
	Projects     []*Project
	Individuals  []*IndividualDevelopment
	Skills       []CategorySkills
	ActiveLink   *Link
	ShareBaseURL string
}
