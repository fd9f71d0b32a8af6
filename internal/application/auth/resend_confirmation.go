package auth

import (
	"context"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
)

// ResendConfirmationInput is the address the account was registered with.
type ResendConfirmationInput struct {
	Email string
}

// ResendConfirmationResult is empty; callers answer the same way whether or not a mail was sent.
type ResendConfirmationResult struct{}

// ResendConfirmation issues a fresh confirmation link for an account that is still inactive.
// Unknown and already confirmed addresses are ignored.
type ResendConfirmation struct {
	users    ports.UserRepository
	verifier *SendEmailVerification
}

func NewResendConfirmation(users ports.UserRepository, verifier *SendEmailVerification) *ResendConfirmation {
	return &ResendConfirmation{users: users, verifier: verifier}
}

func (uc *ResendConfirmation) Execute(ctx context.Context, input ResendConfirmationInput) (*ResendConfirmationResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsActive {
		return &ResendConfirmationResult{}, nil
	}
	if _, err := uc.verifier.Execute(ctx, SendEmailVerificationInput{Email: user.Email}); err != nil {
		return nil, err
	}
	return &ResendConfirmationResult{}, nil
}
