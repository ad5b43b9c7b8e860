// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/pkg/notify"
)

var (
	// ErrInvalidItem is returned when AddItem gets a product without an id
	ErrInvalidItem = errors.New("cart: invalid item")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart
	ErrEmptyCart = errors.New("cart: cart is empty")
	// ErrEmptyCoupon is returned when ApplyCoupon gets blank input
	ErrEmptyCoupon = errors.New("cart: empty coupon code")
	// ErrInvalidCoupon is returned for an unrecognized coupon code
	ErrInvalidCoupon = errors.New("cart: invalid coupon code")
)

// Orders above the threshold get a flat markdown, applied before any
// coupon. Strictly greater than: a 500 subtotal earns nothing.
var (
	discountThreshold = decimal.NewFromInt(500)
	discountAmount    = decimal.NewFromInt(50)
)

// couponRates maps normalized coupon codes to their percentage rate
var couponRates = map[string]decimal.Decimal{
	"BOOK10": decimal.NewFromFloat(0.10),
	"BOOK20": decimal.NewFromFloat(0.20),
}

// Engine owns the list of items a user intends to purchase and the
// monetary figures derived from it. One engine per session; mutations
// are serialized by the caller.
type Engine struct {
	store store.Store
	sink  notify.Sink

	items      []LineItem
	couponRate decimal.Decimal
}

// NewEngine creates a cart engine, restoring any persisted items.
// Corrupt persisted state is logged and treated as an empty cart; the
// coupon rate deliberately does not survive a reload.
func NewEngine(ctx context.Context, st store.Store, sink notify.Sink) *Engine {
	e := &Engine{
		store:      st,
		sink:       sink,
		couponRate: decimal.Zero,
	}

	var items []LineItem
	found, err := st.Load(ctx, store.CartItemsKey, &items)
	if err != nil {
		logrus.WithError(err).Warn("Discarding unreadable persisted cart")
	} else if found {
		e.items = items
	}

	return e
}

// Items returns a copy of the current line items in insertion order
func (e *Engine) Items() []LineItem {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	return items
}

// AddItem adds a product to the cart. A repeated product id increments
// the existing line's quantity instead of adding a second line.
func (e *Engine) AddItem(ctx context.Context, product Product) error {
	if product.ID == "" {
		e.sink.Notify(notify.Error, "Invalid book")
		return ErrInvalidItem
	}

	updated := false
	for i := range e.items {
		if e.items[i].ProductID == product.ID {
			e.items[i].Quantity++
			updated = true
			break
		}
	}

	if !updated {
		e.items = append(e.items, LineItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		})
	}

	if err := e.persist(ctx); err != nil {
		return err
	}

	if updated {
		e.sink.Notify(notify.Success, "Quantity updated!")
	} else {
		e.sink.Notify(notify.Success, "Added to cart!")
	}

	return nil
}

// RemoveItem deletes the matching line item. Removing an absent id is a
// no-op, not an error.
func (e *Engine) RemoveItem(ctx context.Context, productID string) error {
	for i := range e.items {
		if e.items[i].ProductID == productID {
			e.items = append(e.items[:i], e.items[i+1:]...)
			break
		}
	}

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.sink.Notify(notify.Success, "Removed from cart!")
	return nil
}

// UpdateQuantity sets the quantity for a line item. A quantity of zero
// or below behaves as RemoveItem. Silent: quantity steppers fire this
// on every click and a toast per click would be noise.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		for i := range e.items {
			if e.items[i].ProductID == productID {
				e.items = append(e.items[:i], e.items[i+1:]...)
				break
			}
		}
		return e.persist(ctx)
	}

	for i := range e.items {
		if e.items[i].ProductID == productID {
			e.items[i].Quantity = quantity
			break
		}
	}

	return e.persist(ctx)
}

// ClearCart empties the item list
func (e *Engine) ClearCart(ctx context.Context) error {
	e.items = nil

	if err := e.persist(ctx); err != nil {
		return err
	}

	e.sink.Notify(notify.Success, "Cart cleared!")
	return nil
}

// ApplyCoupon normalizes and matches a coupon code. Empty and
// unrecognized codes both reset the rate to zero, with distinct
// messages. The rate is session state, never persisted.
func (e *Engine) ApplyCoupon(code string) error {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	if normalized == "" {
		e.couponRate = decimal.Zero
		e.sink.Notify(notify.Warning, "Please enter a coupon code.")
		return ErrEmptyCoupon
	}

	rate, ok := couponRates[normalized]
	if !ok {
		e.couponRate = decimal.Zero
		e.sink.Notify(notify.Error, "Invalid coupon code.")
		return ErrInvalidCoupon
	}

	e.couponRate = rate
	percent := rate.Mul(decimal.NewFromInt(100))
	e.sink.Notify(notify.Success, fmt.Sprintf("Coupon applied! You got %s%% off.", percent.String()))
	return nil
}

// CouponRate returns the currently applied coupon rate
func (e *Engine) CouponRate() decimal.Decimal {
	return e.couponRate
}

// Totals derives the monetary figures from the current items and coupon
// rate. Pure with respect to engine state: no side effects, idempotent,
// independent of item order.
func (e *Engine) Totals() Totals {
	totals := Totals{
		ItemCount:  len(e.items),
		Subtotal:   decimal.Zero,
		CouponRate: e.couponRate,
		Discount:   decimal.Zero,
	}

	for _, item := range e.items {
		totals.TotalQuantity += item.Quantity
		totals.Subtotal = totals.Subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	if totals.Subtotal.GreaterThan(discountThreshold) {
		totals.Discount = discountAmount
	}

	totals.Total = totals.Subtotal.Sub(totals.Discount)
	totals.FinalTotal = totals.Total.Sub(totals.Total.Mul(e.couponRate))

	return totals
}

// BeginCheckout produces an immutable snapshot for the checkout flow.
// The live cart is not cleared here; that happens on order confirmation.
func (e *Engine) BeginCheckout() (*Snapshot, error) {
	if len(e.items) == 0 {
		e.sink.Notify(notify.Warning, "Your cart is empty.")
		return nil, ErrEmptyCart
	}

	return &Snapshot{
		ID:        uuid.NewString(),
		Items:     e.Items(),
		Totals:    e.Totals(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// persist mirrors the item list to the session store
func (e *Engine) persist(ctx context.Context) error {
	items := e.items
	if items == nil {
		items = []LineItem{}
	}

	if err := e.store.Save(ctx, store.CartItemsKey, items); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}
