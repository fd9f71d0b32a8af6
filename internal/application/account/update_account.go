package account

import (
	"context"
	"strings"
	"time"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// UpdateAccountInput carries optional new credentials. Empty fields are left unchanged.
type UpdateAccountInput struct {
	UserID   domain.UserID
	Username string
	Email    string
	Password string
}

type UpdateAccountResult struct {
	User *domain.User
}

// UpdateAccount changes username, email or password of the signed-in user.
type UpdateAccount struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewUpdateAccount(users ports.UserRepository, hasher ports.PasswordHasher) *UpdateAccount {
	return &UpdateAccount{users: users, hasher: hasher}
}

func (uc *UpdateAccount) Execute(ctx context.Context, input UpdateAccountInput) (*UpdateAccountResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if name := strings.TrimSpace(input.Username); name != "" && name != user.Username {
		other, err := uc.users.GetByUsername(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domerrors.ErrUserExists
		}
		user.Username = name
	}
	if email := strings.TrimSpace(input.Email); email != "" && email != user.Email {
		other, err := uc.users.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domerrors.ErrEmailTaken
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if input.Password != "" {
		hash, err := uc.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		if err := uc.users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	return &UpdateAccountResult{User: user}, nil
}
