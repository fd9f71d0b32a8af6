package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/project"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type registerForm struct {
	Username        string `form:"username" validate:"required,max=80"`
	Email           string `form:"email" validate:"required,email,max=254"`
	Password        string `form:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

type loginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type emailForm struct {
	Email string `form:"email" validate:"required,email,max=254"`
}

type resetForm struct {
	Password        string `form:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
}

// accountForm fields are optional; empty means unchanged.
type accountForm struct {
	Username string `form:"username" validate:"omitempty,max=80"`
	Email    string `form:"email" validate:"omitempty,email,max=254"`
	Password string `form:"password" validate:"omitempty,min=8,max=128"`
}

type contactForm struct {
	Name    string `form:"name" validate:"required,max=120"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Message string `form:"message" validate:"required,max=5000"`
}

type replyForm struct {
	Message string `form:"message" validate:"required,max=5000"`
}

type projectForm struct {
	StartMonth       string `form:"start_month" validate:"required"`
	EndMonth         string `form:"end_month" validate:"required"`
	Industry         string `form:"industry" validate:"max=200"`
	Name             string `form:"project_name" validate:"required,max=200"`
	Summary          string `form:"project_summary"`
	Responsibilities string `form:"responsibilities"`
}

type individualForm struct {
	StartMonth string `form:"start_month" validate:"required"`
	EndMonth   string `form:"end_month" validate:"required"`
	Name       string `form:"development_name" validate:"required,max=200"`
	Summary    string `form:"development_summary"`
}

// profileForm keeps numbers as text so blank inputs mean "not specified".
type profileForm struct {
	DisplayName      string `form:"display_name" validate:"max=120"`
	Age              string `form:"age"`
	Gender           string `form:"gender" validate:"max=40"`
	NearestStation   string `form:"nearest_station" validate:"max=120"`
	ExperienceMonths string `form:"experience_months"`
	Education        string `form:"education" validate:"max=200"`
}

func (f profileForm) profile() (domain.Profile, error) {
	age, err := optionalInt(f.Age)
	if err != nil {
		return domain.Profile{}, err
	}
	exp, err := optionalInt(f.ExperienceMonths)
	if err != nil {
		return domain.Profile{}, err
	}
	return domain.Profile{
		DisplayName:      optionalString(f.DisplayName),
		Age:              age,
		Gender:           optionalString(f.Gender),
		NearestStation:   optionalString(f.NearestStation),
		ExperienceMonths: exp,
		Education:        optionalString(f.Education),
	}, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, domerrors.ErrInvalidNumber
	}
	return &n, nil
}

// ParseTechnologyForm reads the dynamic rows <category>_<i> (name) and <category>_<i>_num
// (months) for every category, stopping at the first missing index. A blank duration is 0.
func ParseTechnologyForm(values url.Values) ([]domain.Technology, error) {
	var out []domain.Technology
	for _, c := range domain.Categories {
		for i := 0; ; i++ {
			key := fmt.Sprintf("%s_%d", c, i)
			if _, ok := values[key]; !ok {
				break
			}
			months := 0
			if raw := strings.TrimSpace(values.Get(key + "_num")); raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 0 {
					return nil, fmt.Errorf("%w: %s", domerrors.ErrInvalidNumber, key+"_num")
				}
				months = n
			}
			out = append(out, domain.Technology{Category: c, Name: values.Get(key), DurationMonths: months})
		}
	}
	return out, nil
}

// ParseProcessForm returns the checked process boxes in submission order.
func ParseProcessForm(values url.Values) []string {
	return values["process"]
}

func (f projectForm) fields(techs []domain.Technology, procs []string) project.Fields {
	return project.Fields{
		StartMonth:       f.StartMonth,
		EndMonth:         f.EndMonth,
		Industry:         f.Industry,
		Name:             f.Name,
		Summary:          f.Summary,
		Responsibilities: f.Responsibilities,
		Technologies:     techs,
		Processes:        procs,
	}
}

// techRow and categoryRows feed the dynamic rows of the project forms.
type techRow struct {
	Key    string
	Name   string
	Months int
}

type categoryRows struct {
	Category domain.Category
	Label    string
	Rows     []techRow
}

// technologyRows lays out stored technologies per category plus one blank row each.
func technologyRows(techs []domain.Technology) []categoryRows {
	out := make([]categoryRows, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		cr := categoryRows{Category: c, Label: c.Label()}
		for _, t := range techs {
			if t.Category == c {
				cr.Rows = append(cr.Rows, techRow{Key: fmt.Sprintf("%s_%d", c, len(cr.Rows)), Name: t.Name, Months: t.DurationMonths})
			}
		}
		cr.Rows = append(cr.Rows, techRow{Key: fmt.Sprintf("%s_%d", c, len(cr.Rows))})
		out = append(out, cr)
	}
	return out
}

// processChoice is one checkbox of the process list.
type processChoice struct {
	Name    string
	Checked bool
}

func processChoices(selected []domain.Process) []processChoice {
	on := make(map[string]bool, len(selected))
	for _, p := range selected {
		on[p.Name] = true
	}
	out := make([]processChoice, 0, len(domain.Phases))
	for _, name := range domain.Phases {
		out = append(out, processChoice{Name: name, Checked: on[name]})
	}
	return out
}
