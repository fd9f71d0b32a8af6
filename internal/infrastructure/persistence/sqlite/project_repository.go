package sqlite

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position") }

func (r *ProjectRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Technologies", byPosition).Preload("Processes", byPosition)
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	m := domainProjectToModel(p)
	m.Technologies = technologyModels(p.ID.UUID, p.Technologies, 0)
	m.Processes = processModels(p.ID.UUID, p.Processes, 0)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id domain.ProjectID) (*domain.Project, error) {
	var m projectModel
	if err := r.preloaded(ctx).Where("id = ?", id.UUID).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return modelToDomainProject(m), nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.Project, error) {
	var rows []projectModel
	if err := r.preloaded(ctx).Where("user_id = ?", userID.UUID).Order("start_month, created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(rows))
	for _, m := range rows {
		out = append(out, modelToDomainProject(m))
	}
	return out, nil
}

// Update writes the project fields and applies the child diff in one transaction.
func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project, diff domain.ChildDiff) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := domainProjectToModel(p)
		err := tx.Model(&projectModel{ID: m.ID}).Select(
			"StartMonth", "EndMonth", "Industry", "Name", "Summary", "Responsibilities", "UpdatedAt",
		).Updates(&m).Error
		if err != nil {
			return err
		}
		if len(diff.DeleteTechnologies) > 0 {
			if err := tx.Where("id IN ?", diff.DeleteTechnologies).Delete(&technologyModel{}).Error; err != nil {
				return err
			}
		}
		for _, t := range diff.UpdateTechnologies {
			if err := tx.Model(&technologyModel{ID: t.ID}).Update("duration_months", t.DurationMonths).Error; err != nil {
				return err
			}
		}
		if len(diff.DeleteProcesses) > 0 {
			if err := tx.Where("id IN ?", diff.DeleteProcesses).Delete(&processModel{}).Error; err != nil {
				return err
			}
		}
		if len(diff.InsertTechnologies) > 0 {
			next, err := nextPosition(tx, &technologyModel{}, "project_id", m.ID)
			if err != nil {
				return err
			}
			rows := technologyModels(m.ID, diff.InsertTechnologies, next)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		if len(diff.InsertProcesses) > 0 {
			next, err := nextPosition(tx, &processModel{}, "project_id", m.ID)
			if err != nil {
				return err
			}
			rows := processModels(m.ID, diff.InsertProcesses, next)
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func nextPosition(tx *gorm.DB, model interface{}, ownerCol string, ownerID uuid.UUID) (int, error) {
	var last int
	if err := tx.Model(model).Where(ownerCol+" = ?", ownerID).Select("COALESCE(MAX(position), -1)").Scan(&last).Error; err != nil {
		return 0, err
	}
	return last + 1, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id domain.ProjectID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id.UUID).Delete(&technologyModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id.UUID).Delete(&processModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id.UUID).Delete(&projectModel{}).Error
	})
}

func technologyModels(projectID uuid.UUID, ts []domain.Technology, start int) []technologyModel {
	out := make([]technologyModel, 0, len(ts))
	for i, t := range ts {
		out = append(out, technologyModel{
			ID:             t.ID,
			ProjectID:      projectID,
			Category:       string(t.Category),
			Name:           t.Name,
			DurationMonths: t.DurationMonths,
			Position:       start + i,
		})
	}
	return out
}

func processModels(projectID uuid.UUID, ps []domain.Process, start int) []processModel {
	out := make([]processModel, 0, len(ps))
	for i, p := range ps {
		out = append(out, processModel{ID: p.ID, ProjectID: projectID, Name: p.Name, Position: start + i})
	}
	return out
}

func domainProjectToModel(p *domain.Project) projectModel {
	return projectModel{
		ID:               p.ID.UUID,
		UserID:           p.UserID.UUID,
		StartMonth:       p.StartMonth,
		EndMonth:         p.EndMonth,
		Industry:         p.Industry,
		Name:             p.Name,
		Summary:          p.Summary,
		Responsibilities: p.Responsibilities,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func modelToDomainProject(m projectModel) *domain.Project {
	p := &domain.Project{
		ID:               domain.NewProjectID(m.ID),
		UserID:           domain.NewUserID(m.UserID),
		StartMonth:       m.StartMonth,
		EndMonth:         m.EndMonth,
		Industry:         m.Industry,
		Name:             m.Name,
		Summary:          m.Summary,
		Responsibilities: m.Responsibilities,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for _, t := range m.Technologies {
		p.Technologies = append(p.Technologies, domain.Technology{
			ID:             t.ID,
			Category:       domain.Category(t.Category),
			Name:           t.Name,
			DurationMonths: t.DurationMonths,
		})
	}
	for _, pr := range m.Processes {
		p.Processes = append(p.Processes, domain.Process{ID: pr.ID, Name: pr.Name})
	}
	return p
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
