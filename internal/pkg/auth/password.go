// internal/pkg/auth/password.go
package auth

import (
	"fmt"
	"strings"

	"github.com/your-org/bookverse-storefront/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredential verifies the locally configured admin login before the
// storefront falls back to the backend API. The credential pair comes
// from configuration as an email plus bcrypt hash, never a literal
// password.
type AdminCredential struct {
	email string
	name  string
	hash  string
}

// NewAdminCredential creates a verifier from configuration
func NewAdminCredential(cfg *config.Config) *AdminCredential {
	return &AdminCredential{
		email: strings.ToLower(cfg.Admin.Email),
		name:  cfg.Admin.Name,
		hash:  cfg.Admin.PasswordHash,
	}
}

// Verify checks an email/password pair against the configured admin
// credential. It returns the admin display name on a match. With no
// hash configured the admin path is disabled and Verify never matches.
func (a *AdminCredential) Verify(email, password string) (string, bool) {
	if a.hash == "" {
		return "", false
	}

	if strings.ToLower(strings.TrimSpace(email)) != a.email {
		return "", false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.hash), []byte(password)); err != nil {
		return "", false
	}

	return a.name, true
}

// HashPassword hashes a password using bcrypt. Used by the hash
// generation script and tests.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password must not be empty")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashed), nil
}
