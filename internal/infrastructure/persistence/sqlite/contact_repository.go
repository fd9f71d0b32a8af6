package sqlite

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"gorm.io/gorm"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	m := contactModel{ID: c.ID.UUID, Name: c.Name, Email: c.Email, Message: c.Message, CreatedAt: c.CreatedAt}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *ContactRepository) GetByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error) {
	var m contactModel
	if err := r.db.WithContext(ctx).Where("id = ?", id.UUID).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return modelToDomainContact(m), nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	var rows []contactModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Contact, 0, len(rows))
	for _, m := range rows {
		out = append(out, modelToDomainContact(m))
	}
	return out, nil
}

func modelToDomainContact(m contactModel) *domain.Contact {
	return &domain.Contact{ID: domain.NewContactID(m.ID), Name: m.Name, Email: m.Email, Message: m.Message, CreatedAt: m.CreatedAt}
}

var _ ports.ContactRepository = (*ContactRepository)(nil)
