package domain

import "github.com/google/uuid"

// Category is the closed set of technology kinds a project can record.
type Category string

const (
	CategoryOS            Category = "os"
	CategoryLanguage      Category = "language"
	CategoryFramework     Category = "framework"
	CategoryDatabase      Category = "database"
	CategoryContainerTech Category = "containertech"
	CategoryCICD          Category = "cicd"
	CategoryLogging       Category = "logging"
	CategoryTools         Category = "tools"
)

// Categories lists every category in form order.
var Categories = []Category{
	CategoryOS,
	CategoryLanguage,
	CategoryFramework,
	CategoryDatabase,
	CategoryContainerTech,
	CategoryCICD,
	CategoryLogging,
	CategoryTools,
}

var categoryLabels = map[Category]string{
	CategoryOS:            "OS",
	CategoryLanguage:      "Language",
	CategoryFramework:     "Framework",
	CategoryDatabase:      "Database",
	CategoryContainerTech: "Container technology",
	CategoryCICD:          "CI/CD",
	CategoryLogging:       "Logging",
	CategoryTools:         "Tools",
}

// Label returns the display label. Unknown keys are returned unchanged.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Technology is one (category, name, duration) record owned by a project or an individual development.
type Technology struct {
	ID             uuid.UUID
	Category       Category
	Name           string
	DurationMonths int
}
