package account

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type UpdateProfileInput struct {
	UserID  domain.UserID
	Profile domain.Profile
}

type UpdateProfileResult struct {
	User *domain.User
}

// UpdateProfile replaces the sheet profile fields of a user.
type UpdateProfile struct {
	users ports.UserRepository
}

func NewUpdateProfile(users ports.UserRepository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	p := input.Profile
	if (p.Age != nil && *p.Age < 0) || (p.ExperienceMonths != nil && *p.ExperienceMonths < 0) {
		return nil, domerrors.ErrInvalidNumber
	}
	user.Profile = p
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return &UpdateProfileResult{User: user}, nil
}
