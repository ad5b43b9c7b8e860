// internal/domain/catalog/entity.go
package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/domain/cart"
)

// Book is a catalog entry as the storefront presents it
type Book struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"img"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// AsProduct converts a book into the cart engine's input type
func (b *Book) AsProduct() cart.Product {
	return cart.Product{
		ID:    b.ID,
		Title: b.Title,
		Price: b.Price,
	}
}

// fromBackend maps the backend's wire shape onto the storefront's
func fromBackend(b backend.Book) Book {
	return Book{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Description: b.Description,
		Image:       b.Image,
		Price:       b.Price,
	}
}
