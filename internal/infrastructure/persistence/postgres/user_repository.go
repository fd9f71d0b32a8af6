package postgres

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"github.com/amirhosseinghanipour/skillcanvas/internal/infrastructure/persistence/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewUserRepository(q *db.Queries, pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{q: q, pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.q.CreateUser(ctx, domainUserToDB(user))
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.one(r.q.GetUserByID(ctx, userID.UUID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.one(r.q.GetUserByEmail(ctx, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.one(r.q.GetUserByUsername(ctx, username))
}

func (r *UserRepository) one(u db.User, err error) (*domain.User, error) {
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return dbUserToDomain(u), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.q.UpdateUser(ctx, domainUserToDB(user))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	return r.q.UpdateUserPassword(ctx, userID.UUID, passwordHash)
}

func (r *UserRepository) SetActive(ctx context.Context, userID domain.UserID) error {
	return r.q.SetUserActive(ctx, userID.UUID)
}

// Delete removes the user and everything they own in one transaction. The foreign keys cascade
// to technologies and processes.
func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) error {
	return runInTx(ctx, r.pool, func(q *db.Queries) error {
		projects, err := q.ListProjectsByUser(ctx, userID.UUID)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if err := q.DeleteProject(ctx, p.ID); err != nil {
				return err
			}
		}
		individuals, err := q.ListIndividualsByUser(ctx, userID.UUID)
		if err != nil {
			return err
		}
		for _, d := range individuals {
			if err := q.DeleteIndividual(ctx, d.ID); err != nil {
				return err
			}
		}
		if err := q.DeactivateUserLinks(ctx, userID.UUID); err != nil {
			return err
		}
		if err := q.DeleteInactiveUserLinks(ctx, userID.UUID); err != nil {
			return err
		}
		return q.DeleteUser(ctx, userID.UUID)
	})
}

func (r *UserRepository) ListUnconfirmedBefore(ctx context.Context, before time.Time) ([]domain.UserID, error) {
	ids, err := r.q.ListUnconfirmedUsersBefore(ctx, before)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserID, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.NewUserID(id))
	}
	return out, nil
}

func (r *UserRepository) Search(ctx context.Context, f ports.UserFilter, page ports.Page) ([]ports.UserSummary, int, error) {
	return searchUsers(ctx, r.pool, f, page)
}

func domainUserToDB(u *domain.User) db.User {
	p := u.Profile
	return db.User{
		ID:               u.ID.UUID,
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		IsActive:         u.IsActive,
		IsAdmin:          u.IsAdmin,
		DisplayName:      db.TextOf(p.DisplayName),
		Age:              db.Int4Of(p.Age),
		Gender:           db.TextOf(p.Gender),
		NearestStation:   db.TextOf(p.NearestStation),
		ExperienceMonths: db.Int4Of(p.ExperienceMonths),
		Education:        db.TextOf(p.Education),
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func dbUserToDomain(u db.User) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(u.ID),
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		IsAdmin:      u.IsAdmin,
		Profile: domain.Profile{
			DisplayName:      db.StringPtr(u.DisplayName),
			Age:              db.IntPtr(u.Age),
			Gender:           db.StringPtr(u.Gender),
			NearestStation:   db.StringPtr(u.NearestStation),
			ExperienceMonths: db.IntPtr(u.ExperienceMonths),
			Education:        db.StringPtr(u.Education),
		},
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Ensure UserRepository implements ports.UserRepository.
var _ ports.UserRepository = (*UserRepository)(nil)
