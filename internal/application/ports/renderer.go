package ports

import "github.com/amirhosseinghanipour/skillcanvas/internal/domain"

// SheetRenderer produces a downloadable document for a skill sheet.
type SheetRenderer interface {
	Render(sheet *domain.SkillSheet) ([]byte, error)
}
