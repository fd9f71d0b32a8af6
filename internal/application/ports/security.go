package ports

import "time"

// PasswordHasher hashes and verifies passwords (Argon2id).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// RehashChecker is implemented by hashers that can tell when a stored hash was made with
// weaker parameters than the current ones.
type RehashChecker interface {
	NeedsRehash(hash string) bool
}

// Token purposes carried in signed action tokens.
const (
	PurposeConfirmEmail  = "confirm_email"
	PurposeResetPassword = "reset_password"
)

// ActionTokenSigner signs short-lived tokens that carry an email address for one purpose.
type ActionTokenSigner interface {
	Issue(purpose, subject string, ttl time.Duration) (string, error)
	// Validate returns the subject, or an error for a bad signature, expiry or purpose mismatch.
	Validate(purpose, token string) (string, error)
}
