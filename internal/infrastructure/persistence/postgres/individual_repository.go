package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IndividualRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewIndividualRepository(q *db.Queries, pool *pgxpool.Pool) *IndividualRepository {
	return &IndividualRepository{q: q, pool: pool}
}

func (r *IndividualRepository) Create(ctx context.Context, d *domain.IndividualDevelopment) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		err := q.CreateIndividual(ctx, db.IndividualDevelopment{
			ID:         d.ID.UUID,
			UserID:     d.UserID.UUID,
			StartMonth: d.StartMonth,
			EndMonth:   d.EndMonth,
			Name:       d.Name,
			Summary:    d.Summary,
			CreatedAt:  d.CreatedAt,
		})
		if err != nil {
			return err
		}
		for _, t := range d.Technologies {
			if err := q.CreateIndividualTechnology(ctx, techToDB(d.ID.UUID, t)); err != nil {
				return err
			}
		}
		for _, p := range d.Processes {
			if err := q.CreateIndividualProcess(ctx, db.Process{ID: p.ID, OwnerID: d.ID.UUID, Name: p.Name}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *IndividualRepository) GetByID(ctx context.Context, id domain.IndividualID) (*domain.IndividualDevelopment, error) {
	d, err := r.q.GetIndividualByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	list, err := r.withChildren(ctx, []db.IndividualDevelopment{d})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (r *IndividualRepository) ListByUser(ctx context.Context, userID domain.UserID) ([]*domain.IndividualDevelopment, error) {
	rows, err := r.q.ListIndividualsByUser(ctx, userID.UUID)
	if err != nil {
		return nil, err
	}
	return r.withChildren(ctx, rows)
}

func (r *IndividualRepository) withChildren(ctx context.Context, rows []db.IndividualDevelopment) ([]*domain.IndividualDevelopment, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, d := range rows {
		ids = append(ids, d.ID)
	}
	techs, procs, err := loadChildren(ctx, ids, r.q.ListIndividualTechnologies, r.q.ListIndividualProcesses)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.IndividualDevelopment, 0, len(rows))
	for _, d := range rows {
		out = append(out, &domain.IndividualDevelopment{
			ID:           domain.NewIndividualID(d.ID),
			UserID:       domain.NewUserID(d.UserID),
			StartMonth:   d.StartMonth,
			EndMonth:     d.EndMonth,
			Name:         d.Name,
			Summary:      d.Summary,
			Technologies: techs[d.ID],
			Processes:    procs[d.ID],
			CreatedAt:    d.CreatedAt,
		})
	}
	return out, nil
}

func (r *IndividualRepository) Delete(ctx context.Context, id domain.IndividualID) error {
	return r.q.DeleteIndividual(ctx, id.UUID)
}

// Ensure IndividualRepository implements ports.IndividualRepository.
var _ ports.IndividualRepository = (*IndividualRepository)(nil)
