package postgres

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
)

type ContactRepository struct {
	q *db.Queries
}

func NewContactRepository(q *db.Queries) *ContactRepository {
	return &ContactRepository{q: q}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return r.q.CreateContact(ctx, db.Contact{
		ID:        c.ID.UUID,
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	})
}

func (r *ContactRepository) GetByID(ctx context.Context, id domain.ContactID) (*domain.Contact, error) {
	c, err := r.q.GetContactByID(ctx, id.UUID)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return dbContactToDomain(c), nil
}

func (r *ContactRepository) List(ctx context.Context) ([]*domain.Contact, error) {
	rows, err := r.q.ListContacts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Contact, 0, len(rows))
	for _, c := range rows {
		out = append(out, dbContactToDomain(c))
	}
	return out, nil
}

func dbContactToDomain(c db.Contact) *domain.Contact {
	return &domain.Contact{
		ID:        domain.NewContactID(c.ID),
		Name:      c.Name,
		Email:     c.Email,
		Message:   c.Message,
		CreatedAt: c.CreatedAt,
	}
}

// Ensure ContactRepository implements ports.ContactRepository.
var _ ports.ContactRepository = (*ContactRepository)(nil)
