package auth

import (
	"context"
	"strings"

	"github.com/amirhosseinghanipour/skillcanvas/internal/application/ports"
	"github.com/amirhosseinghanipour/skillcanvas/internal/domain"
	domerrors "github.com/amirhosseinghanipour/skillcanvas/internal/domain/errors"
)

type LoginInput struct {
	Username string
	Password string
	// RequireAdmin rejects non-admin accounts (admin console login).
	RequireAdmin bool
}

type LoginResult struct {
	User *domain.User
	// RetryAfter is set when the account is locked out.
	RetryAfter int
}

// Login checks credentials. The session itself is created by the HTTP layer.
type Login struct {
	users   ports.UserRepository
	hasher  ports.PasswordHasher
	lockout ports.LoginLockoutStore
}

// NewLogin builds the use case. lockout may be nil.
func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, lockout ports.LoginLockoutStore) *Login {
	return &Login{users: users, hasher: hasher, lockout: lockout}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(input.Username)
	if uc.lockout != nil {
		if locked, retry := uc.lockout.IsLocked(ctx, username); locked {
			return &LoginResult{RetryAfter: retry}, domerrors.ErrAccountLocked
		}
	}
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		if uc.lockout != nil {
			uc.lockout.RecordFailure(ctx, username)
		}
		return nil, domerrors.ErrInvalidCredentials
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, username)
	}
	if !user.IsActive {
		return nil, domerrors.ErrAccountInactive
	}
	if input.RequireAdmin && !user.IsAdmin {
		return nil, domerrors.ErrNotAdmin
	}
	uc.upgradeHash(ctx, user, input.Password)
	return &LoginResult{User: user}, nil
}

// upgradeHash re-hashes the password when the hasher reports outdated parameters. Failures are
// ignored; the old hash keeps working.
func (uc *Login) upgradeHash(ctx context.Context, user *domain.User, password string) {
	rc, ok := uc.hasher.(ports.RehashChecker)
	if !ok || !rc.NeedsRehash(user.PasswordHash) {
		return
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return
	}
	if err := uc.users.UpdatePassword(ctx, user.ID, hash); err == nil {
		user.PasswordHash = hash
	}
}
