package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/freightline/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for any username or password mismatch. The
// two cases are deliberately indistinguishable to the caller.
var ErrBadCredentials = errors.New("invalid username or password")

// CredentialChecker verifies the back-office login against the configured
// admin account. There is a single operator account; user management lives
// outside this system.
type CredentialChecker struct {
	username     string
	passwordHash string
}

// NewCredentialChecker creates a checker from the auth configuration
func NewCredentialChecker(cfg config.AuthConfig) *CredentialChecker {
	return &CredentialChecker{
		username:     cfg.AdminUser,
		passwordHash: cfg.PasswordHash,
	}
}

// Verify checks a username and password against the configured credentials
func (c *CredentialChecker) Verify(username, password string) error {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) != 1 {
		// Burn a bcrypt comparison anyway so the timing does not reveal
		// whether the username was right.
		_ = bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password))
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for the auth configuration
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
