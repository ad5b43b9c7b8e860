// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/domain/admin"
)

// AdminHandler handles the admin console endpoints
type AdminHandler struct {
	admin *admin.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{
		admin: service,
	}
}

// Dashboard returns aggregated store statistics
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.admin.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// ListOrders returns all orders across the store
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.admin.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": orders,
	})
}

// ListUsers returns all registered users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": users,
	})
}

// ListBooks returns the catalog for management
func (h *AdminHandler) ListBooks(c *gin.Context) {
	books, err := h.admin.ListBooks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": books,
	})
}

// CreateBook adds a book to the catalog
func (h *AdminHandler) CreateBook(c *gin.Context) {
	var req backend.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	book, err := h.admin.CreateBook(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book created successfully",
		"data":    book,
	})
}

// UpdateBook updates a catalog book
func (h *AdminHandler) UpdateBook(c *gin.Context) {
	var req backend.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	req.ID = c.Param("id")
	book, err := h.admin.UpdateBook(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book updated successfully",
		"data":    book,
	})
}

// DeleteBook removes a catalog book
func (h *AdminHandler) DeleteBook(c *gin.Context) {
	if err := h.admin.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Book deleted successfully",
	})
}
