package handlers

import (
	"errors"
	"net/url"
	"testing"

	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func TestParseTechnologyForm(t *testing.T) {
	values := url.Values{
		"language_0":     {"Go"},
		"language_0_num": {"12"},
		"language_1":     {"Python"},
		"language_1_num": {""},
		"language_3":     {"skipped after gap"},
		"database_0":     {"PostgreSQL"},
		"database_0_num": {"6"},
		"tools_0":        {""},
	}
	techs, err := ParseTechnologyForm(values)
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.Technology{
		{Category: domain.CategoryLanguage, Name: "Go", DurationMonths: 12},
		{Category: domain.CategoryLanguage, Name: "Python", DurationMonths: 0},
		{Category: domain.CategoryDatabase, Name: "PostgreSQL", DurationMonths: 6},
		{Category: domain.CategoryTools, Name: "", DurationMonths: 0},
	}
	if len(techs) != len(want) {
		t.Fatalf("got %+v", techs)
	}
	for i := range want {
		if techs[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, techs[i], want[i])
		}
	}
}

func TestParseTechnologyFormRejectsBadNumber(t *testing.T) {
	for _, v := range []string{"abc", "-1", "1.5"} {
		_, err := ParseTechnologyForm(url.Values{"os_0": {"Linux"}, "os_0_num": {v}})
		if !errors.Is(err, domerrors.ErrInvalidNumber) {
			t.Errorf("%q: got %v", v, err)
		}
	}
}

func TestParseProcessForm(t *testing.T) {
	got := ParseProcessForm(url.Values{"process": {domain.PhaseBasicDesign, domain.PhaseUnitTest}})
	if len(got) != 2 || got[1] != domain.PhaseUnitTest {
		t.Errorf("got %v", got)
	}
	if got := ParseProcessForm(url.Values{}); len(got) != 0 {
		t.Errorf("expected none, got %v", got)
	}
}

func TestProfileFormBlankIsNotSpecified(t *testing.T) {
	p, err := profileForm{DisplayName: "  Ann ", Age: "", ExperienceMonths: "30"}.profile()
	if err != nil {
		t.Fatal(err)
	}
	if p.Age != nil || p.Gender != nil {
		t.Error("blank fields should be nil")
	}
	if *p.DisplayName != "Ann" || *p.ExperienceMonths != 30 {
		t.Errorf("unexpected profile %+v", p)
	}
	if _, err := (profileForm{Age: "thirty"}).profile(); !errors.Is(err, domerrors.ErrInvalidNumber) {
		t.Errorf("got %v", err)
	}
}

func TestTechnologyRowsAddsBlankRow(t *testing.T) {
	rows := technologyRows([]domain.Technology{{Category: domain.CategoryLanguage, Name: "Go", DurationMonths: 3}})
	if len(rows) != len(domain.Categories) {
		t.Fatalf("got %d categories", len(rows))
	}
	lang := rows[1]
	if lang.Category != domain.CategoryLanguage || len(lang.Rows) != 2 {
		t.Fatalf("unexpected language rows %+v", lang)
	}
	if lang.Rows[0].Key != "language_0" || lang.Rows[1].Key != "language_1" || lang.Rows[1].Name != "" {
		t.Errorf("unexpected keys %+v", lang.Rows)
	}
}

func TestValidationMessage(t *testing.T) {
	err := validate.Struct(registerForm{Username: "ann", Email: "ann@example.com", Password: "longenough", ConfirmPassword: "different"})
	if got := validationMessage(err); got != "Passwords do not match." {
		t.Errorf("got %q", got)
	}
	err = validate.Struct(loginForm{})
	if got := validationMessage(err); got != "Username is required." {
		t.Errorf("got %q", got)
	}
}
