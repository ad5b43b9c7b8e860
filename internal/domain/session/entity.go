// internal/domain/session/entity.go
package session

import "strings"

// User is a shopper identity returned by the backend
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Admin is the console identity from the local admin login path
type Admin struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetDisplayName returns the user's name, falling back to email
func (u *User) GetDisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
