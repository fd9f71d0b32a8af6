package auth

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

// VerifyEmailInput is the token from the confirmation link.
type VerifyEmailInput struct {
	Token string
}

// VerifyEmailResult reports whether the account had already been confirmed.
type VerifyEmailResult struct {
	AlreadyActive bool
}

// VerifyEmail validates the token and activates the account it names.
type VerifyEmail struct {
	signer   ports.ActionTokenSigner
	userRepo ports.UserRepository
}

// NewVerifyEmail builds the use case.
func NewVerifyEmail(signer ports.ActionTokenSigner, userRepo ports.UserRepository) *VerifyEmail {
	return &VerifyEmail{signer: signer, userRepo: userRepo}
}

func (uc *VerifyEmail) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailResult, error) {
	email, err := uc.signer.Validate(ports.PurposeConfirmEmail, input.Token)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrInvalidToken
	}
	if user.IsActive {
		return &VerifyEmailResult{AlreadyActive: true}, nil
	}
	if err := uc.userRepo.SetActive(ctx, user.ID); err != nil {
		return nil, err
	}
	return &VerifyEmailResult{}, nil
}
