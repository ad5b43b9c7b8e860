// internal/interfaces/http/middleware/guard.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAuth blocks anonymous sessions. Must run after Session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		guard := GuardFromContext(c)
		if guard == nil || !guard.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RedirectIfAuthenticated keeps signed-in sessions off the login and
// signup endpoints; the storefront's login page is unreachable once
// signed in. Must run after Session.
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		guard := GuardFromContext(c)
		if guard != nil && guard.IsAuthenticated() {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Already signed in",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin blocks sessions without admin standing. Must run after
// Session.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		guard := GuardFromContext(c)
		if guard == nil || !guard.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		if !guard.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
