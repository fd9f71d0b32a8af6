// Package pdf renders skill sheets with fpdf.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/config"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

const (
	labelWidth = 50.0
	valueWidth = 140.0
	lineHeight = 7.0
)

// Renderer draws an A4 skill sheet. With no font path the core Helvetica font is used.
type Renderer struct {
	fontPath string
	family   string
}

func NewRenderer(cfg config.PDFConfig) *Renderer {
	family := cfg.FontFamily
	if family == "" {
		family = "SheetFont"
	}
	return &Renderer{fontPath: cfg.FontPath, family: family}
}

// Render returns the whole document or an error, never partial output.
func (r *Renderer) Render(sheet *domain.SkillSheet) ([]byte, error) {
	doc, err := r.draw(sheet)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// draw lays out every page: the profile and skill history first, then one page per project
// and per individual development.
func (r *Renderer) draw(sheet *domain.SkillSheet) (doc *fpdf.Fpdf, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("render pdf: %v", rec)
		}
	}()

	doc = fpdf.New("P", "mm", "A4", "")
	w, err := r.newWriter(doc)
	if err != nil {
		return nil, err
	}
	w.profile(sheet)
	w.skills(sheet.Skills)
	for _, p := range sheet.Projects {
		w.project(p)
	}
	for _, d := range sheet.Individuals {
		w.individual(d)
	}
	if w.err != nil {
		return nil, w.err
	}
	if doc.Err() {
		return nil, fmt.Errorf("render pdf: %w", doc.Error())
	}
	return doc, nil
}

func (r *Renderer) newWriter(doc *fpdf.Fpdf) (*writer, error) {
	if r.fontPath == "" {
		w := &writer{doc: doc, family: "Helvetica"}
		cp1252 := doc.UnicodeTranslatorFromDescriptor("")
		w.tr = func(s string) string {
			if w.err == nil {
				if bad, ok := unencodable(s, cp1252); ok {
					w.err = fmt.Errorf("%w: %q needs a unicode font (set PDF_FONT_PATH)", domerrors.ErrFontUnavailable, bad)
				}
			}
			return cp1252(s)
		}
		w.split = func(s string, width float64) []string {
			var lines []string
			for _, l := range doc.SplitLines([]byte(s), width) {
				lines = append(lines, string(l))
			}
			return lines
		}
		return w, nil
	}
	font, err := os.ReadFile(r.fontPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrFontUnavailable, err)
	}
	doc.AddUTF8FontFromBytes(r.family, "", font)
	if doc.Err() {
		return nil, fmt.Errorf("%w: %v", domerrors.ErrFontUnavailable, doc.Error())
	}
	return &writer{
		doc:    doc,
		family: r.family,
		tr:     func(s string) string { return s },
		split:  doc.SplitText,
	}, nil
}

// unencodable returns the first rune of s that the core font translator turns into '.'.
func unencodable(s string, tr func(string) string) (rune, bool) {
	for _, c := range s {
		if c < utf8.RuneSelf || c == '.' {
			continue
		}
		if tr(string(c)) == "." {
			return c, true
		}
	}
	return 0, false
}

type writer struct {
	doc    *fpdf.Fpdf
	family string
	tr     func(string) string
	split  func(string, float64) []string
	err    error
}

func (w *writer) heading(text string, size float64) {
	w.doc.SetFont(w.family, "", size)
	w.doc.CellFormat(0, size*0.6, w.tr(text), "", 1, "L", false, 0, "")
	w.doc.Ln(2)
	w.doc.SetFont(w.family, "", 10)
}

// row draws a bordered label cell beside a wrapped value. A row that does not fit on the
// current page moves to the next one; a value taller than a page continues there under an
// empty label cell.
func (w *writer) row(label, value string) {
	lines := w.split(w.tr(strings.ReplaceAll(value, "\r", "")), valueWidth)
	if len(lines) == 0 {
		lines = []string{""}
	}
	label = w.tr(label)
	for len(lines) > 0 {
		n := w.linesLeft()
		if n < len(lines) && (n < 1 || w.fitsOnPage(len(lines))) {
			w.doc.AddPage()
			n = w.linesLeft()
		}
		n = max(1, min(n, len(lines)))
		w.block(label, lines[:n])
		lines, label = lines[n:], ""
	}
}

func (w *writer) block(label string, lines []string) {
	left, _, _, _ := w.doc.GetMargins()
	y := w.doc.GetY()
	h := float64(len(lines)) * lineHeight
	w.doc.SetXY(left, y)
	w.doc.CellFormat(labelWidth, h, label, "1", 0, "L", true, 0, "")
	w.doc.Rect(left+labelWidth, y, valueWidth, h, "D")
	for i, l := range lines {
		w.doc.SetXY(left+labelWidth, y+float64(i)*lineHeight)
		w.doc.CellFormat(valueWidth, lineHeight, l, "", 0, "L", false, 0, "")
	}
	w.doc.SetXY(left, y+h)
}

// linesLeft is how many value lines fit between the cursor and the page break.
func (w *writer) linesLeft() int {
	return int((w.breakAt()-w.doc.GetY())/lineHeight - 1e-9)
}

// fitsOnPage reports whether n lines fit on a fresh page.
func (w *writer) fitsOnPage(n int) bool {
	_, top, _, _ := w.doc.GetMargins()
	return float64(n)*lineHeight <= w.breakAt()-top
}

func (w *writer) breakAt() float64 {
	_, height := w.doc.GetPageSize()
	_, bottom := w.doc.GetAutoPageBreak()
	return height - bottom
}

func (w *writer) profile(sheet *domain.SkillSheet) {
	w.doc.AddPage()
	w.doc.SetFillColor(230, 236, 245)
	w.heading("Skill Sheet", 18)
	p := sheet.User.Profile
	w.row("Name", p.Name())
	w.row("Age", p.AgeText())
	w.row("Gender", p.GenderText())
	w.row("Nearest station", p.StationText())
	w.row("Experience", p.ExperienceText())
	w.row("Education", p.EducationText())
	w.doc.Ln(6)
}

func (w *writer) skills(groups []domain.CategorySkills) {
	if len(groups) == 0 {
		return
	}
	w.heading("Skill history", 14)
	for _, g := range groups {
		w.doc.CellFormat(0, lineHeight, w.tr(g.Label), "", 1, "L", false, 0, "")
		for _, s := range g.Skills {
			w.row(s.Name, s.Duration())
		}
		w.doc.Ln(3)
	}
}

func (w *writer) project(p *domain.Project) {
	w.doc.AddPage()
	w.heading(p.Name, 14)
	w.row("Project", p.Name)
	w.row("Industry", p.Industry)
	w.row("Period", p.Period())
	w.row("Summary", p.Summary)
	w.row("Responsibilities", p.Responsibilities)
	w.doc.Ln(4)
	w.technologies(p.Technologies)
	w.processes(p.Processes)
}

func (w *writer) individual(d *domain.IndividualDevelopment) {
	w.doc.AddPage()
	w.heading(d.Name, 14)
	w.row("Development", d.Name)
	w.row("Period", d.Period())
	w.row("Summary", d.Summary)
	w.doc.Ln(4)
	w.technologies(d.Technologies)
	w.processes(d.Processes)
}

func (w *writer) technologies(ts []domain.Technology) {
	if len(ts) == 0 {
		return
	}
	for _, t := range ts {
		w.row(t.Category.Label(), t.Name+"  ("+domain.FormatDuration(t.DurationMonths)+")")
	}
	w.doc.Ln(4)
}

func (w *writer) processes(ps []domain.Process) {
	if len(ps) == 0 {
		return
	}
	w.row("Processes", strings.Join(domain.ProcessNames(ps), ", "))
}

var _ ports.SheetRenderer = (*Renderer)(nil)
