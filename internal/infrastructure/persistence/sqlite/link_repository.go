package sqlite

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"gorm.io/gorm"
)

type LinkRepository struct {
	db *gorm.DB
}

func NewLinkRepository(db *gorm.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// Issue deactivates the user's active links and stores link as the only active one.
func (r *LinkRepository) Issue(ctx context.Context, link *domain.Link) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&linkModel{}).Where("user_id = ? AND is_active = ?", link.UserID.UUID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		m := linkModel{ID: link.ID, UserID: link.UserID.UUID, LinkCode: link.Code, IsActive: link.IsActive, CreatedAt: link.CreatedAt}
		return tx.Create(&m).Error
	})
}

func (r *LinkRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Link, error) {
	return r.first(r.db.WithContext(ctx).Where("link_code = ? AND is_active = ?", code, true))
}

func (r *LinkRepository) GetActiveByUser(ctx context.Context, userID domain.UserID) (*domain.Link, error) {
	return r.first(r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID.UUID, true).Order("created_at DESC"))
}

func (r *LinkRepository) first(q *gorm.DB) (*domain.Link, error) {
	var m linkModel
	if err := q.First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Link{ID: m.ID, UserID: domain.NewUserID(m.UserID), Code: m.LinkCode, IsActive: m.IsActive, CreatedAt: m.CreatedAt}, nil
}

// Invalidate deactivates the active link, then purges every inactive row of the user.
func (r *LinkRepository) Invalidate(ctx context.Context, userID domain.UserID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&linkModel{}).Where("user_id = ?", userID.UUID).Update("is_active", false).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND is_active = ?", userID.UUID, false).Delete(&linkModel{}).Error
	})
}

var _ ports.LinkRepository = (*LinkRepository)(nil)
