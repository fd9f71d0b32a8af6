package pdf

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestRenderWithoutProjects(t *testing.T) {
	sheet := &domain.SkillSheet{User: &domain.User{Username: "ann"}}
	out, err := NewRenderer(config.PDFConfig{}).Render(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not look like a PDF: %q", out[:min(len(out), 16)])
	}
	doc, err := NewRenderer(config.PDFConfig{}).draw(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.PageCount(); n != 1 {
		t.Errorf("pages = %d, want only the profile page", n)
	}
}

func TestRenderFullSheet(t *testing.T) {
	owner := domain.NewUserID(uuid.New())
	techs := []domain.Technology{
		{Category: domain.CategoryLanguage, Name: "Go", DurationMonths: 14},
		{Category: domain.CategoryDatabase, Name: "PostgreSQL", DurationMonths: 3},
	}
	sheet := &domain.SkillSheet{
		User: &domain.User{ID: owner, Username: "ann", Profile: domain.Profile{
			DisplayName:      strp("Ann Example"),
			Age:              intp(31),
			ExperienceMonths: intp(75),
		}},
		Projects: []*domain.Project{{
			UserID: owner, StartMonth: "2021-01", EndMonth: "2022-02", Industry: "Retail",
			Name: "Checkout", Summary: "Rewrote the checkout service.", Responsibilities: "Lead",
			Technologies: techs,
			Processes:    []domain.Process{{Name: domain.PhaseBasicDesign}, {Name: domain.PhaseImplementation}},
		}},
		Individuals: []*domain.IndividualDevelopment{{
			UserID: owner, StartMonth: "2023-01", EndMonth: "2023-03", Name: "CLI tool",
			Technologies: techs[:1],
		}},
		Skills: []domain.CategorySkills{{
			Category: domain.CategoryLanguage, Label: "Language",
			Skills: []domain.SkillEntry{{Name: "Go", DurationMonths: 17}},
		}},
	}
	out, err := NewRenderer(config.PDFConfig{}).Render(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("not a PDF")
	}
	doc, err := NewRenderer(config.PDFConfig{}).draw(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.PageCount(); n != 3 {
		t.Errorf("pages = %d, want profile + 1 project + 1 individual development", n)
	}
}

func TestRenderMissingFont(t *testing.T) {
	r := NewRenderer(config.PDFConfig{FontPath: filepath.Join(t.TempDir(), "missing.ttf")})
	out, err := r.Render(&domain.SkillSheet{User: &domain.User{}})
	if !errors.Is(err, domerrors.ErrFontUnavailable) {
		t.Fatalf("got %v, want ErrFontUnavailable", err)
	}
	if out != nil {
		t.Error("no bytes expected on failure")
	}
}

const sentence = "The checkout service was rewritten to cut p99 latency in half. "

func newTestWriter(t *testing.T) (*fpdf.Fpdf, *writer) {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	w, err := NewRenderer(config.PDFConfig{}).newWriter(doc)
	if err != nil {
		t.Fatal(err)
	}
	doc.AddPage()
	doc.SetFont(w.family, "", 10)
	return doc, w
}

func TestRowMovesToNextPageWhenItDoesNotFit(t *testing.T) {
	doc, w := newTestWriter(t)
	_, top, _, _ := doc.GetMargins()

	doc.SetY(40)
	w.row("Industry", "Retail")
	if got := doc.GetY(); got != 40+lineHeight {
		t.Fatalf("short row ended at %.1f, want %.1f", got, 40+lineHeight)
	}

	value := strings.Repeat(sentence, 20)
	lines := len(w.split(w.tr(value), valueWidth))
	doc.SetY(250)
	w.row("Summary", value)
	if doc.PageNo() != 2 {
		t.Fatalf("page = %d, want the row moved to page 2", doc.PageNo())
	}
	want := top + float64(lines)*lineHeight
	if got := doc.GetY(); got != want {
		t.Errorf("row ended at %.1f, want %.1f (%d lines from the top margin)", got, want, lines)
	}
	if doc.Err() {
		t.Fatal(doc.Error())
	}
}

func TestRowTallerThanPageContinues(t *testing.T) {
	doc, w := newTestWriter(t)
	w.row("Summary", strings.Repeat(sentence+"\n\n", 60))
	if doc.PageNo() < 3 {
		t.Fatalf("page = %d, want the value to span several pages", doc.PageNo())
	}
	_, top, _, _ := doc.GetMargins()
	if y := doc.GetY(); y <= top || y > w.breakAt() {
		t.Errorf("cursor at %.1f is outside the printable area", y)
	}
	if doc.Err() {
		t.Fatal(doc.Error())
	}
}

func TestRenderLongSummaryAddsPages(t *testing.T) {
	sheet := &domain.SkillSheet{
		User: &domain.User{Username: "ann"},
		Projects: []*domain.Project{{
			StartMonth: "2021-01", EndMonth: "2022-02", Name: "Checkout",
			Summary: strings.Repeat(sentence+"\n", 50), Responsibilities: "Lead",
		}},
	}
	doc, err := NewRenderer(config.PDFConfig{}).draw(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if n := doc.PageCount(); n < 3 {
		t.Errorf("pages = %d, want the project to overflow onto a second page", n)
	}
}

func TestRenderCoreFontRejectsUnencodableText(t *testing.T) {
	tests := []struct {
		name    string
		display string
		wantErr bool
	}{
		{"latin", "Zoë Müller", false},
		{"japanese", "山田 太郎", true},
		{"cyrillic", "Пётр", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := &domain.SkillSheet{User: &domain.User{Profile: domain.Profile{DisplayName: strp(tt.display)}}}
			out, err := NewRenderer(config.PDFConfig{}).Render(sheet)
			if tt.wantErr {
				if !errors.Is(err, domerrors.ErrFontUnavailable) {
					t.Fatalf("got %v, want ErrFontUnavailable", err)
				}
				if out != nil {
					t.Error("no bytes expected on failure")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
		})
	}
}
