// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/config"
	"github.com/your-org/bookverse-storefront/internal/domain/session"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	config *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		config: cfg,
	}
}

// Login signs the session in. The local admin credential is checked
// first; anything else goes to the backend.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	guard := middleware.GuardFromContext(c)
	if err := guard.AdminLogin(c.Request.Context(), req.Email, req.Password); err != nil {
		status := http.StatusUnauthorized
		if !errors.Is(err, session.ErrUnauthorized) {
			status = http.StatusInternalServerError
		}
		respond(c, status, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    h.identity(guard),
	})
}

// Signup registers a new account and signs the session in
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	guard := middleware.GuardFromContext(c)
	if err := guard.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		status := http.StatusConflict
		switch {
		case errors.Is(err, session.ErrValidation):
			status = http.StatusBadRequest
		case !errors.Is(err, session.ErrUnauthorized):
			status = http.StatusInternalServerError
		}
		respond(c, status, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"message": "Signup successful",
		"data":    h.identity(guard),
	})
}

// Logout clears the session's identity
func (h *AuthHandler) Logout(c *gin.Context) {
	guard := middleware.GuardFromContext(c)
	if err := guard.Logout(c.Request.Context()); err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// Me returns the session's current identity state
func (h *AuthHandler) Me(c *gin.Context) {
	guard := middleware.GuardFromContext(c)
	respond(c, http.StatusOK, gin.H{
		"data": h.identity(guard),
	})
}

// identity flattens the guard's state for the wire
func (h *AuthHandler) identity(guard *session.Guard) gin.H {
	out := gin.H{
		"authenticated": guard.IsAuthenticated(),
		"admin":         guard.IsAdmin(),
	}

	if u := guard.CurrentUser(); u != nil {
		out["user"] = u
		out["display_name"] = u.GetDisplayName()
	}
	if a := guard.CurrentAdmin(); a != nil {
		out["admin_user"] = a
		out["display_name"] = a.Name
	}

	return out
}
