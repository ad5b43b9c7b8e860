// internal/interfaces/http/handlers/handlers.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
)

// respond writes a JSON response and attaches the notifications emitted
// while handling the request, so clients can toast them the way the
// storefront UI does.
func respond(c *gin.Context, status int, body gin.H) {
	if notes := middleware.NotificationsFromContext(c); len(notes) > 0 {
		body["notifications"] = notes
	}
	c.JSON(status, body)
}
