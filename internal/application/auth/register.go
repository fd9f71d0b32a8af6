package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool { return emailRegex.MatchString(email) }

type RegisterUserInput struct {
	Username string
	Email    string
	Password string
	// IsAdmin and Active are only set by the admin console and the create-admin command.
	IsAdmin bool
	Active  bool
}

type RegisterUserResult struct {
	User *domain.User
	// ConfirmationErr is set when the account was created but the confirmation email could
	// not be queued. The user can ask for a new one through ResendConfirmation.
	ConfirmationErr error
}

// RegisterUser creates an account. Unless Active is set, the account stays inactive until
// the emailed confirmation link is followed.
type RegisterUser struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	verifier *SendEmailVerification
}

// NewRegisterUser builds the use case. verifier may be nil to skip the confirmation email.
func NewRegisterUser(users ports.UserRepository, hasher ports.PasswordHasher, verifier *SendEmailVerification) *RegisterUser {
	return &RegisterUser{users: users, hasher: hasher, verifier: verifier}
}

func (uc *RegisterUser) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserResult, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		return nil, domerrors.ErrMissingField
	}
	if !ValidEmail(input.Email) {
		return nil, domerrors.ErrInvalidEmail
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	existing, err = uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrUserExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		IsActive:     input.Active,
		IsAdmin:      input.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	result := &RegisterUserResult{User: user}
	if !user.IsActive && uc.verifier != nil {
		if _, err := uc.verifier.Execute(ctx, SendEmailVerificationInput{Email: user.Email}); err != nil {
			result.ConfirmationErr = err
		}
	}
	return result, nil
}
