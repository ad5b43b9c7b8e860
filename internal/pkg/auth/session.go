// internal/pkg/auth/session.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/bookverse-storefront/internal/config"
)

// SessionClaims represents the signed session cookie payload
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// SessionManager signs and verifies the session cookie. The cookie only
// carries an opaque session id; identity and cart state live in the
// persisted store under that id.
type SessionManager struct {
	config *config.Config
}

// NewSessionManager creates a new session manager
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		config: cfg,
	}
}

// NewSessionID generates a fresh session identifier
func (m *SessionManager) NewSessionID() string {
	return uuid.NewString()
}

// Issue signs a token for the given session id
func (m *SessionManager) Issue(sessionID string) (string, error) {
	now := time.Now().UTC()

	claims := &SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.config.Session.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.App.Name,
			Subject:   fmt.Sprintf("session:%s", sessionID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Session.Secret))
}

// Verify validates a signed token and returns the session id
func (m *SessionManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Session.Secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token claims")
	}

	if claims.SessionID == "" {
		return "", fmt.Errorf("session token missing session id")
	}

	return claims.SessionID, nil
}
