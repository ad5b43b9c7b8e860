// internal/domain/session/service.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/pkg/notify"
)

var (
	// ErrValidation is returned when a signup field is missing
	ErrValidation = errors.New("session: missing required field")
	// ErrUnauthorized is returned when the backend rejects credentials
	ErrUnauthorized = errors.New("session: unauthorized")
)

// Authenticator delegates credential verification to the backend API
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*backend.User, error)
	Register(ctx context.Context, name, email, password string) (*backend.User, error)
}

// AdminVerifier checks the locally configured admin credential,
// returning the admin display name on a match
type AdminVerifier interface {
	Verify(email, password string) (string, bool)
}

// Guard tracks the single active identity for a session and answers
// authorization questions for the routing layer. At most one of user
// and admin is set at any time.
type Guard struct {
	store  store.Store
	sink   notify.Sink
	api    Authenticator
	admins AdminVerifier

	user  *User
	admin *Admin
}

// NewGuard creates a session guard, restoring any persisted identity.
// Corrupt persisted slots are logged and treated as absent.
func NewGuard(ctx context.Context, st store.Store, sink notify.Sink, api Authenticator, admins AdminVerifier) *Guard {
	g := &Guard{
		store:  st,
		sink:   sink,
		api:    api,
		admins: admins,
	}

	var user User
	if found, err := st.Load(ctx, store.UserAuthKey, &user); err != nil {
		logrus.WithError(err).Warn("Discarding unreadable persisted user identity")
	} else if found {
		g.user = &user
	}

	var admin Admin
	if found, err := st.Load(ctx, store.AdminAuthKey, &admin); err != nil {
		logrus.WithError(err).Warn("Discarding unreadable persisted admin identity")
	} else if found {
		g.admin = &admin
	}

	return g
}

// Login delegates credential verification to the backend. On success
// the returned user becomes the active identity and any admin identity
// is cleared. On failure nothing changes and the backend's message is
// surfaced to the user.
func (g *Guard) Login(ctx context.Context, email, password string) error {
	u, err := g.api.Login(ctx, email, password)
	if err != nil {
		message := rejectionMessage(err, "Login failed")
		g.sink.Notify(notify.Error, message)
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}

	if err := g.setUser(ctx, u); err != nil {
		return err
	}

	g.sink.Notify(notify.Success, "Login successful!")
	return nil
}

// Signup registers a new account. All three fields are required; on
// success it behaves like Login with the new user.
func (g *Guard) Signup(ctx context.Context, name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		g.sink.Notify(notify.Error, "All fields are required")
		return ErrValidation
	}

	u, err := g.api.Register(ctx, name, email, password)
	if err != nil {
		message := rejectionMessage(err, "Signup failed")
		g.sink.Notify(notify.Error, message)
		return fmt.Errorf("%w: %s", ErrUnauthorized, message)
	}

	if err := g.setUser(ctx, u); err != nil {
		return err
	}

	g.sink.Notify(notify.Success, "Signup successful!")
	return nil
}

// AdminLogin checks the local admin credential first; a mismatch falls
// through to a normal backend login. The local check never touches the
// network, so it cannot fail for network reasons.
func (g *Guard) AdminLogin(ctx context.Context, email, password string) error {
	name, ok := g.admins.Verify(email, password)
	if !ok {
		return g.Login(ctx, email, password)
	}

	admin := &Admin{Name: name, Email: strings.ToLower(strings.TrimSpace(email))}

	g.user = nil
	g.admin = admin

	if err := g.store.Delete(ctx, store.UserAuthKey); err != nil {
		return fmt.Errorf("failed to clear user identity: %w", err)
	}
	if err := g.store.Save(ctx, store.AdminAuthKey, admin); err != nil {
		return fmt.Errorf("failed to persist admin identity: %w", err)
	}

	g.sink.Notify(notify.Success, "Admin logged in!")
	return nil
}

// Logout clears both identities and both persisted slots
func (g *Guard) Logout(ctx context.Context) error {
	g.user = nil
	g.admin = nil

	if err := g.store.Delete(ctx, store.UserAuthKey); err != nil {
		return fmt.Errorf("failed to clear user identity: %w", err)
	}
	if err := g.store.Delete(ctx, store.AdminAuthKey); err != nil {
		return fmt.Errorf("failed to clear admin identity: %w", err)
	}

	g.sink.Notify(notify.Success, "Logged out!")
	return nil
}

// IsAuthenticated reports whether any identity is active
func (g *Guard) IsAuthenticated() bool {
	return g.user != nil || g.admin != nil
}

// IsAdmin reports whether the active identity may use the admin console
func (g *Guard) IsAdmin() bool {
	if g.admin != nil {
		return true
	}
	return g.user != nil && g.user.Role == "admin"
}

// CurrentUser returns the active user identity, or nil
func (g *Guard) CurrentUser() *User {
	return g.user
}

// CurrentAdmin returns the active admin identity, or nil
func (g *Guard) CurrentAdmin() *Admin {
	return g.admin
}

// setUser stores a backend user as the active identity, clearing any
// admin identity, and persists both slots
func (g *Guard) setUser(ctx context.Context, u *backend.User) error {
	user := &User{
		ID:    u.ID,
		Name:  u.Name,
		Email: strings.ToLower(u.Email),
		Role:  u.Role,
	}

	g.admin = nil
	g.user = user

	if err := g.store.Delete(ctx, store.AdminAuthKey); err != nil {
		return fmt.Errorf("failed to clear admin identity: %w", err)
	}
	if err := g.store.Save(ctx, store.UserAuthKey, user); err != nil {
		return fmt.Errorf("failed to persist user identity: %w", err)
	}

	return nil
}

// rejectionMessage extracts the backend's human-readable message,
// falling back when the failure was not an API rejection
func rejectionMessage(err error, fallback string) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
