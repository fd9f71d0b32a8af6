package sqlite

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	m := domainUserToModel(user)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.first(ctx, "id = ?", userID.UUID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return modelToDomainUser(m), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	m := domainUserToModel(user)
	return r.db.WithContext(ctx).Model(&userModel{ID: m.ID}).Select(
		"Username", "Email", "IsActive", "IsAdmin", "DisplayName", "Age", "Gender",
		"NearestStation", "ExperienceMonths", "Education", "UpdatedAt",
	).Updates(&m).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID domain.UserID, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&userModel{ID: userID.UUID}).
		Updates(map[string]interface{}{"password_hash": passwordHash, "updated_at": time.Now()}).Error
}

func (r *UserRepository) SetActive(ctx context.Context, userID domain.UserID) error {
	return r.db.WithContext(ctx).Model(&userModel{ID: userID.UUID}).
		Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()}).Error
}

// Delete removes the user and everything they own in one transaction.
func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var projectIDs, individualIDs []string
		if err := tx.Model(&projectModel{}).Where("user_id = ?", userID.UUID).Pluck("id", &projectIDs).Error; err != nil {
			return err
		}
		if err := tx.Model(&individualModel{}).Where("user_id = ?", userID.UUID).Pluck("id", &individualIDs).Error; err != nil {
			return err
		}
		steps := []struct {
			model interface{}
			query string
			arg   interface{}
		}{
			{&technologyModel{}, "project_id IN ?", projectIDs},
			{&processModel{}, "project_id IN ?", projectIDs},
			{&projectModel{}, "user_id = ?", userID.UUID},
			{&individualTechnologyModel{}, "individual_id IN ?", individualIDs},
			{&individualProcessModel{}, "individual_id IN ?", individualIDs},
			{&individualModel{}, "user_id = ?", userID.UUID},
			{&linkModel{}, "user_id = ?", userID.UUID},
			{&userModel{}, "id = ?", userID.UUID},
		}
		for _, s := range steps {
			if ids, ok := s.arg.([]string); ok && len(ids) == 0 {
				continue
			}
			if err := tx.Where(s.query, s.arg).Delete(s.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *UserRepository) ListUnconfirmedBefore(ctx context.Context, before time.Time) ([]domain.UserID, error) {
	var rows []userModel
	err := r.db.WithContext(ctx).Select("id").Where("is_active = ? AND created_at < ?", false, before).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserID, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.NewUserID(m.ID))
	}
	return out, nil
}

func domainUserToModel(u *domain.User) userModel {
	p := u.Profile
	return userModel{
		ID:               u.ID.UUID,
		Username:         u.Username,
		Email:            u.Email,
		PasswordHash:     u.PasswordHash,
		IsActive:         u.IsActive,
		IsAdmin:          u.IsAdmin,
		DisplayName:      p.DisplayName,
		Age:              p.Age,
		Gender:           p.Gender,
		NearestStation:   p.NearestStation,
		ExperienceMonths: p.ExperienceMonths,
		Education:        p.Education,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func modelToDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:           domain.NewUserID(m.ID),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		IsAdmin:      m.IsAdmin,
		Profile: domain.Profile{
			DisplayName:      m.DisplayName,
			Age:              m.Age,
			Gender:           m.Gender,
			NearestStation:   m.NearestStation,
			ExperienceMonths: m.ExperienceMonths,
			Education:        m.Education,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)
