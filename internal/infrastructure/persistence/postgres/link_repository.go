package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LinkRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewLinkRepository(q *db.Queries, pool *pgxpool.Pool) *LinkRepository {
	return &LinkRepository{q: q, pool: pool}
}

// Issue deactivates the user's active links and stores link as the only active one.
func (r *LinkRepository) Issue(ctx context.Context, link *domain.Link) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		if err := q.DeactivateUserLinks(ctx, link.UserID.UUID); err != nil {
			return err
		}
		return q.CreateLink(ctx, db.Link{
			ID:        link.ID,
			UserID:    link.UserID.UUID,
			LinkCode:  link.Code,
			IsActive:  link.IsActive,
			CreatedAt: link.CreatedAt,
		})
	})
}

func (r *LinkRepository) GetActiveByCode(ctx context.Context, code string) (*domain.Link, error) {
	return oneLink(r.q.GetActiveLinkByCode(ctx, code))
}

func (r *LinkRepository) GetActiveByUser(ctx context.Context, userID domain.UserID) (*domain.Link, error) {
	return oneLink(r.q.GetActiveLinkByUser(ctx, userID.UUID))
}

// Invalidate deactivates the active link, then purges every inactive row of the user.
func (r *LinkRepository) Invalidate(ctx context.Context, userID domain.UserID) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		if err := q.DeactivateUserLinks(ctx, userID.UUID); err != nil {
			return err
		}
		return q.DeleteInactiveUserLinks(ctx, userID.UUID)
	})
}

func oneLink(l db.Link, err error) (*domain.Link, error) {
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.Link{
		ID:        l.ID,
		UserID:    domain.NewUserID(l.UserID),
		Code:      l.LinkCode,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
	}, nil
}

// Ensure LinkRepository implements ports.LinkRepository.
var _ ports.LinkRepository = (*LinkRepository)(nil)
