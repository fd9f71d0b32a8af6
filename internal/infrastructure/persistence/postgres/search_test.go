package postgres

import (
	"strings"
	"testing"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

func TestLikePatternEscapes(t *testing.T) {
	tests := []struct{ in, want string }{
		{"go", "%go%"},
		{"100%", `%100\%%`},
		{"a_b", `%a\_b%`},
		{`c:\`, `%c:\\%`},
	}
	for _, tt := range tests {
		if got := likePattern(tt.in); got != tt.want {
			t.Errorf("likePattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildUserSearch(t *testing.T) {
	age := 30
	no := false
	query, args, count, countArgs := buildUserSearch(ports.UserFilter{
		Username: "taro",
		Age:      &age,
		LinkCode: "abc",
		IsAdmin:  &no,
	}, ports.Page{Page: 2, PerPage: 10})

	for _, frag := range []string{"u.username ILIKE $1", "u.age = $2", "l.link_code ILIKE $3", "u.is_admin = $4", "LIMIT $5 OFFSET $6"} {
		if !strings.Contains(query, frag) {
			t.Errorf("query missing %q:\n%s", frag, query)
		}
	}
	if len(args) != 6 || args[4] != 10 || args[5] != 10 {
		t.Errorf("unexpected args %v", args)
	}
	if strings.Contains(count, "LIMIT") || len(countArgs) != 4 {
		t.Errorf("count query must not paginate: %s %v", count, countArgs)
	}
}

func TestBuildUserSearchNoFilters(t *testing.T) {
	query, args, count, _ := buildUserSearch(ports.UserFilter{}, ports.Page{Page: 1, PerPage: 10})
	if strings.Contains(query, "WHERE") || strings.Contains(count, "WHERE") {
		t.Errorf("empty filter should not produce WHERE: %s", query)
	}
	if len(args) != 2 || args[1] != 0 {
		t.Errorf("unexpected args %v", args)
	}
}

func TestBuildProjectSearch(t *testing.T) {
	query, args, _, countArgs := buildProjectSearch(ports.ProjectFilter{
		Industry:   "fin",
		StartFrom:  "2020-01",
		EndUntil:   "2021-12",
		Technology: "Go",
		Process:    "test",
	}, ports.Page{Page: 1, PerPage: 10})

	for _, frag := range []string{
		"p.industry ILIKE $1",
		"p.start_month >= $2",
		"p.end_month <= $3",
		"EXISTS (SELECT 1 FROM technologies t WHERE t.project_id = p.id AND t.name ILIKE $4",
		"EXISTS (SELECT 1 FROM processes pr WHERE pr.project_id = p.id AND pr.name ILIKE $5",
	} {
		if !strings.Contains(query, frag) {
			t.Errorf("query missing %q", frag)
		}
	}
	if len(countArgs) != 5 || len(args) != 7 {
		t.Errorf("args=%v countArgs=%v", args, countArgs)
	}
	if args[3] != "%Go%" {
		t.Errorf("technology arg = %v", args[3])
	}
}
