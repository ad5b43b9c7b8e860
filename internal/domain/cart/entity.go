// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the catalog item handed to AddItem
type Product struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// LineItem represents one product entry in the cart. Quantity is always
// at least 1 while the item is present; an update to zero removes it.
type LineItem struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"added_at"`
}

// Totals represents the monetary figures derived from the cart.
// Recomputed on every read, never stored.
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of unique items
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`    // Threshold markdown, before coupon
	CouponRate    decimal.Decimal `json:"coupon_rate"` // 0, 0.10 or 0.20
	Total         decimal.Decimal `json:"total"`       // Subtotal minus discount
	FinalTotal    decimal.Decimal `json:"final_total"` // Total after coupon
}

// Snapshot is the immutable cart state handed to the checkout flow.
// The live cart keeps its items until the order is confirmed.
type Snapshot struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	Totals    Totals     `json:"totals"`
	CreatedAt time.Time  `json:"created_at"`
}
