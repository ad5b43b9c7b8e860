// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/domain/cart"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/pkg/notify"
)

// ErrValidation is returned when a checkout form field is missing
var ErrValidation = errors.New("checkout: missing required field")

// PaymentMethod selects how the simulated payment is taken
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// ShippingDetails is the step-one form. Every field is required.
type ShippingDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// PaymentDetails is the step-two form. Required fields depend on the
// chosen method; cash on delivery needs nothing further.
type PaymentDetails struct {
	Method     PaymentMethod `json:"method"`
	CardNumber string        `json:"card_number,omitempty"`
	Expiry     string        `json:"expiry,omitempty"`
	CVV        string        `json:"cvv,omitempty"`
	UPIID      string        `json:"upi_id,omitempty"`
}

// Order is a confirmed order. Totals are frozen from the checkout
// snapshot at placement time.
type Order struct {
	ID        string          `json:"id"`
	Items     []cart.LineItem `json:"items"`
	Totals    cart.Totals     `json:"totals"`
	Shipping  ShippingDetails `json:"shipping"`
	Payment   PaymentMethod   `json:"payment"`
	Status    string          `json:"status"`
	PlacedAt  time.Time       `json:"placed_at"`
	BackendID string          `json:"backend_id,omitempty"`
}

// OrderRecorder pushes a confirmed order to the backend so the admin
// console sees it
type OrderRecorder interface {
	CreateOrder(ctx context.Context, order *backend.Order) (*backend.Order, error)
}

// Service runs the staged checkout flow on top of cart snapshots.
// Payment is simulated; no gateway is involved.
type Service struct {
	store store.Store
	sink  notify.Sink
	api   OrderRecorder
}

// NewService creates a checkout service
func NewService(st store.Store, sink notify.Sink, api OrderRecorder) *Service {
	return &Service{
		store: st,
		sink:  sink,
		api:   api,
	}
}

// ValidateShipping checks the step-one form
func (s *Service) ValidateShipping(d ShippingDetails) error {
	if isBlank(d.Name) || isBlank(d.Email) || isBlank(d.Address) || isBlank(d.City) || isBlank(d.Zip) {
		s.sink.Notify(notify.Error, "Please fill all shipping fields.")
		return fmt.Errorf("%w: shipping details incomplete", ErrValidation)
	}
	return nil
}

// ValidatePayment checks the step-two form for the chosen method
func (s *Service) ValidatePayment(p PaymentDetails) error {
	switch p.Method {
	case PaymentCard:
		if isBlank(p.CardNumber) || isBlank(p.Expiry) || isBlank(p.CVV) {
			s.sink.Notify(notify.Error, "Please enter valid card details.")
			return fmt.Errorf("%w: card details incomplete", ErrValidation)
		}
	case PaymentUPI:
		if isBlank(p.UPIID) {
			s.sink.Notify(notify.Error, "Please enter your UPI ID.")
			return fmt.Errorf("%w: upi id missing", ErrValidation)
		}
	case PaymentCOD:
		// Nothing to collect
	default:
		s.sink.Notify(notify.Error, "Please choose a payment method.")
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, p.Method)
	}
	return nil
}

// PlaceOrder runs the final step: stage the cart, validate both forms,
// confirm the simulated payment, record the order, and only then clear
// the live cart. The order is also mirrored to the backend best-effort
// so the admin console picks it up.
func (s *Service) PlaceOrder(ctx context.Context, engine *cart.Engine, user string, shipping ShippingDetails, payment PaymentDetails) (*Order, error) {
	snap, err := engine.BeginCheckout()
	if err != nil {
		return nil, err
	}

	if err := s.ValidateShipping(shipping); err != nil {
		return nil, err
	}
	if err := s.ValidatePayment(payment); err != nil {
		return nil, err
	}

	order := &Order{
		ID:       uuid.NewString(),
		Items:    snap.Items,
		Totals:   snap.Totals,
		Shipping: shipping,
		Payment:  payment.Method,
		Status:   "Pending",
		PlacedAt: time.Now().UTC(),
	}

	if recorded, err := s.api.CreateOrder(ctx, toBackend(order, user)); err != nil {
		logrus.WithError(err).Warn("Order not mirrored to backend")
	} else if recorded != nil {
		order.BackendID = recorded.ID
	}

	if err := s.store.Save(ctx, store.LastOrderKey, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Confirmation clears the cart; staging alone never does
	if err := engine.ClearCart(ctx); err != nil {
		return nil, err
	}

	s.sink.Notify(notify.Success, "Order placed successfully!")
	return order, nil
}

// LastOrder returns the session's most recently placed order, if any
func (s *Service) LastOrder(ctx context.Context) (*Order, error) {
	var order Order
	found, err := s.store.Load(ctx, store.LastOrderKey, &order)
	if err != nil {
		return nil, fmt.Errorf("failed to load last order: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

// toBackend maps an order onto the backend's wire shape
func toBackend(o *Order, user string) *backend.Order {
	items := make([]backend.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = backend.OrderItem{
			BookID:    item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}

	return &backend.Order{
		User:      user,
		Items:     items,
		Total:     o.Totals.FinalTotal,
		Status:    o.Status,
		CreatedAt: o.PlacedAt,
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
