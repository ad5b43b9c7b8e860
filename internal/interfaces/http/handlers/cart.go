// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/domain/cart"
	"github.com/your-org/bookverse-storefront/internal/domain/catalog"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints. The cart engine is rebuilt from
// the session store on every request; the store is the source of truth.
type CartHandler struct {
	books *catalog.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(books *catalog.Service) *CartHandler {
	return &CartHandler{
		books: books,
	}
}

// engine restores this session's cart
func (h *CartHandler) engine(c *gin.Context) *cart.Engine {
	return cart.NewEngine(c.Request.Context(), middleware.StoreFromContext(c), middleware.SinkFromContext(c))
}

// GetCart returns the cart's items and derived totals
func (h *CartHandler) GetCart(c *gin.Context) {
	engine := h.engine(c)
	respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"items":  engine.Items(),
			"totals": engine.Totals(),
		},
	})
}

// AddItem adds one copy of a book to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		BookID string `json:"book_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	book, err := h.books.GetBook(c.Request.Context(), req.BookID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Book not found",
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	engine := h.engine(c)
	if err := engine.AddItem(c.Request.Context(), book.AsProduct()); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, cart.ErrInvalidItem) {
			status = http.StatusBadRequest
		}
		respond(c, status, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"items":  engine.Items(),
			"totals": engine.Totals(),
		},
	})
}

// UpdateQuantity sets an item's quantity. Zero or less removes it.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	engine := h.engine(c)
	if err := engine.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity); err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"items":  engine.Items(),
			"totals": engine.Totals(),
		},
	})
}

// RemoveItem removes an item from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	engine := h.engine(c)
	if err := engine.RemoveItem(c.Request.Context(), c.Param("id")); err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"items":  engine.Items(),
			"totals": engine.Totals(),
		},
	})
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	engine := h.engine(c)
	if err := engine.ClearCart(c.Request.Context()); err != nil {
		respond(c, http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"message": "Cart cleared",
	})
}

// ApplyCoupon applies a coupon code to this request's totals. The rate
// is not persisted; clients resubmit the code at checkout.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	engine := h.engine(c)
	if err := engine.ApplyCoupon(req.Code); err != nil {
		respond(c, http.StatusBadRequest, gin.H{
			"error":  err.Error(),
			"totals": engine.Totals(),
		})
		return
	}

	respond(c, http.StatusOK, gin.H{
		"data": gin.H{
			"items":  engine.Items(),
			"totals": engine.Totals(),
		},
	})
}
