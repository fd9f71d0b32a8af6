package auth

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// ResetPasswordInput is the token from the reset link and the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordResult returns nothing on success.
type ResetPasswordResult struct{}

// ResetPassword validates the reset token, finds the user and updates the password.
type ResetPassword struct {
	signer   ports.ActionTokenSigner
	userRepo ports.UserRepository
	hasher   ports.PasswordHasher
}

// NewResetPassword builds the use case.
func NewResetPassword(signer ports.ActionTokenSigner, userRepo ports.UserRepository, hasher ports.PasswordHasher) *ResetPassword {
	return &ResetPassword{
		signer:   signer,
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// CheckToken reports whether token is still usable, so the form can be shown.
func (uc *ResetPassword) CheckToken(token string) error {
	if _, err := uc.signer.Validate(ports.PurposeResetPassword, token); err != nil {
		return domerrors.ErrInvalidToken
	}
	return nil
}

func (uc *ResetPassword) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordResult, error) {
	email, err := uc.signer.Validate(ports.PurposeResetPassword, input.Token)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	if input.NewPassword == "" {
		return nil, domerrors.ErrMissingField
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	newHash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return nil, err
	}
	return &ResetPasswordResult{}, nil
}
