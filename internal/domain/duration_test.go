package domain

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		months int
		want   string
	}{
		{0, "0 months"},
		{1, "1 months"},
		{11, "11 months"},
		{12, "1 years 0 months"},
		{75, "6 years 3 months"},
		{-3, "0 months"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.months); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.months, got, c.want)
		}
	}
}

func TestValidMonth(t *testing.T) {
	for _, s := range []string{"2020-01", "1999-12"} {
		if !ValidMonth(s) {
			t.Errorf("ValidMonth(%q) = false", s)
		}
	}
	for _, s := range []string{"", "2020-13", "2020/01", "20-01", "2020-1x"} {
		if ValidMonth(s) {
			t.Errorf("ValidMonth(%q) = true", s)
		}
	}
}

func TestProfilePlaceholders(t *testing.T) {
	var p Profile
	if p.Name() != NotSpecified || p.AgeText() != NotSpecified || p.ExperienceText() != NotSpecified {
		t.Error("nil profile fields should render the placeholder")
	}
	age, exp := 30, 27
	name := "Taro"
	p = Profile{DisplayName: &name, Age: &age, ExperienceMonths: &exp}
	if p.Name() != "Taro" || p.AgeText() != "30" || p.ExperienceText() != "2 years 3 months" {
		t.Errorf("unexpected profile text: %q %q %q", p.Name(), p.AgeText(), p.ExperienceText())
	}
}

func TestCategory(t *testing.T) {
	if !CategoryCICD.Valid() || Category("gpu").Valid() {
		t.Error("Valid mismatch")
	}
	if CategoryCICD.Label() != "CI/CD" {
		t.Errorf("label = %q", CategoryCICD.Label())
	}
	if len(Categories) != 8 {
		t.Errorf("expected 8 categories, got %d", len(Categories))
	}
	if !ValidPhase(PhaseUnitTest) || ValidPhase("Coding") {
		t.Error("ValidPhase mismatch")
	}
}
