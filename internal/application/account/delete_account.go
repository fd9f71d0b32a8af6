package account

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type DeleteAccountInput struct {
	UserID domain.UserID
}

// DeleteAccount removes a user with their projects, developments and links.
type DeleteAccount struct {
	users ports.UserRepository
}

func NewDeleteAccount(users ports.UserRepository) *DeleteAccount {
	return &DeleteAccount{users: users}
}

func (uc *DeleteAccount) Execute(ctx context.Context, input DeleteAccountInput) error {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return domerrors.ErrUserNotFound
	}
	return uc.users.Delete(ctx, input.UserID)
}
