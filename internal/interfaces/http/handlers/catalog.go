// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/bookverse-storefront/internal/domain/catalog"
	"github.com/your-org/bookverse-storefront/internal/interfaces/http/middleware"
)

// CatalogHandler handles book browsing endpoints
type CatalogHandler struct {
	books    *catalog.Service
	searcher *catalog.Searcher
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(books *catalog.Service, searcher *catalog.Searcher) *CatalogHandler {
	return &CatalogHandler{
		books:    books,
		searcher: searcher,
	}
}

// ListBooks returns the full catalog
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	books, err := h.books.ListBooks(c.Request.Context())
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

// GetBook returns one book by id
func (h *CatalogHandler) GetBook(c *gin.Context) {
	book, err := h.books.GetBook(c.Request.Context(), c.Param("id"))
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

	c.JSON(http.StatusOK, gin.H{
		"data": book,
	})
}

// SearchBooks runs a catalog search for this session. A response that
// was overtaken by a newer search from the same session comes back
// flagged stale with no data; the client drops it.
func (h *CatalogHandler) SearchBooks(c *gin.Context) {
	query := c.Query("q")
	sessionID := middleware.SessionIDFromContext(c)

	books, stale, err := h.searcher.Search(c.Request.Context(), sessionID, query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
		})
		return
	}

	if stale {
		c.JSON(http.StatusOK, gin.H{
			"stale": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  books,
		"stale": false,
	})
}
