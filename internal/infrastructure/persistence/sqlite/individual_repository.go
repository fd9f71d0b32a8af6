package sqlite

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"gorm.io/gorm"
)

type IndividualRepository struct {
	db *gorm.DB
}

func NewIndividualRepository(db *gorm.DB) *IndividualRepository {
	return &IndividualRepository{db: db}
}

func (r *IndividualRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Technologies", byPosition).Preload("Processes", byPosition)
}

func (r *IndividualRepository) Create(ctx context.Context, d *domain.IndividualDevelopment) error {
	m := individualModel{
		ID:         d.ID.UUID,
		UserID:     d.UserID.UUID,
		StartMonth: d.StartMonth,
		EndMonth:   d.EndMonth,
		Name:       d.Name,
		Summary:    d.Summary,
		CreatedAt:  d.CreatedAt,
	}
	for i, t := range d.Technologies {
		m.Technologies = append(m.Technologies, individualTechnologyModel{
			ID:             t.ID,
			IndividualID:   d.ID.UUID,
			Category:       string(t.Category),
			Name:           t.Name,
			DurationMonths: t.DurationMonths,
			Position:       i,
		})
	}
	for i, p := range d.Processes {
		m.Processes = append(m.Processes, individualProcessModel{ID: p.ID, IndividualID: d.ID.UUID, Name: p.Name, Position: i})
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *IndividualRepository) GetByID(ctx context.Context, id domain.IndividualID) (*domain.IndividualDevelopment, error) {
	var m individualModel
	if err := r.preloaded(ctx).Where("id = ?", id.UUID).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return modelToDomainIndividual(m), nil
}

func (r *IndividualRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.IndividualDevelopment, error) {
	var rows []individualModel
	if err := r.preloaded(ctx).Where("user_id = ?", userID.UUID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.IndividualDevelopment, 0, len(rows))
	for _, m := range rows {
		out = append(out, modelToDomainIndividual(m))
	}
	return out, nil
}

func (r *IndividualRepository) Delete(ctx context.Context, id domain.IndividualID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("individual_id = ?", id.UUID).Delete(&individualTechnologyModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("individual_id = ?", id.UUID).Delete(&individualProcessModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.UUID).Delete(&individualModel{}).Error
	})
}

func modelToDomainIndividual(m individualModel) *domain.IndividualDevelopment {
	d := &domain.IndividualDevelopment{
		ID:         domain.NewIndividualID(m.ID),
		UserID:     domain.NewUserID(m.UserID),
		StartMonth: m.StartMonth,
		EndMonth:   m.EndMonth,
		Name:       m.Name,
		Summary:    m.Summary,
		CreatedAt:  m.CreatedAt,
	}
	for _, t := range m.Technologies {
		d.Technologies = append(d.Technologies, domain.Technology{
			ID:             t.ID,
			Category:       domain.Category(t.Category),
			Name:           t.Name,
			DurationMonths: t.DurationMonths,
		})
	}
	for _, p := range m.Processes {
		d.Processes = append(d.Processes, domain.Process{ID: p.ID, Name: p.Name})
	}
	return d
}

var _ ports.IndividualRepository = (*IndividualRepository)(nil)
