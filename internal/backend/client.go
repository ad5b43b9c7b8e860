// internal/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/bookverse-storefront/internal/config"
)

// Client talks to the external books/users/orders REST API. The
// storefront never owns this data; it is strictly a consumer.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend API client
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		http: &http.Client{
			Timeout: cfg.Backend.Timeout,
		},
	}
}

// APIError is a rejection from the backend. Message is the
// human-readable text from the error body and is surfaced to the user
// verbatim.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// User is the backend's user representation
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Book is the backend's catalog entry
type Book struct {
	ID          string          `json:"_id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Image       string          `json:"img"`
	Price       decimal.Decimal `json:"price"`
}

// OrderItem is a purchased line on an order
type OrderItem struct {
	BookID    string          `json:"book_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Order is the backend's order representation
type Order struct {
	ID        string          `json:"_id"`
	User      string          `json:"user"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type authResponse struct {
	User *User `json:"user"`
}

// Login verifies credentials with the backend
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/login", body, &resp); err != nil {
		return nil, err
	}

	if resp.User == nil {
		return nil, fmt.Errorf("login response missing user")
	}

	return resp.User, nil
}

// Register creates a new user account
func (c *Client) Register(ctx context.Context, name, email, password string) (*User, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     "user",
	}

	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/users/register", body, &resp); err != nil {
		return nil, err
	}

	if resp.User == nil {
		return nil, fmt.Errorf("register response missing user")
	}

	return resp.User, nil
}

// ListBooks fetches the full catalog
func (c *Client) ListBooks(ctx context.Context) ([]Book, error) {
	var books []Book
	if err := c.do(ctx, http.MethodGet, "/api/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook fetches a single book by id
func (c *Client) GetBook(ctx context.Context, id string) (*Book, error) {
	var book Book
	if err := c.do(ctx, http.MethodGet, "/api/books/"+url.PathEscape(id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// SearchBooks runs a substring search on the backend
func (c *Client) SearchBooks(ctx context.Context, query string) ([]Book, error) {
	var books []Book
	path := "/api/books/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, http.MethodGet, path, nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// CreateBook adds a book to the catalog (admin)
func (c *Client) CreateBook(ctx context.Context, book *Book) (*Book, error) {
	var created Book
	if err := c.do(ctx, http.MethodPost, "/api/books", book, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBook updates a catalog entry (admin)
func (c *Client) UpdateBook(ctx context.Context, book *Book) (*Book, error) {
	var updated Book
	if err := c.do(ctx, http.MethodPut, "/api/books/"+url.PathEscape(book.ID), book, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBook removes a catalog entry (admin)
func (c *Client) DeleteBook(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+url.PathEscape(id), nil, nil)
}

// ListUsers fetches registered users (admin)
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListOrders fetches all orders (admin)
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/orders", nil, &raw); err != nil {
		return nil, err
	}

	// The backend answers either a bare array or {"orders": [...]}
	var orders []Order
	if err := json.Unmarshal(raw, &orders); err == nil {
		return orders, nil
	}

	var wrapped struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unexpected orders response: %w", err)
	}

	return wrapped.Orders, nil
}

// CreateOrder records a placed order
func (c *Client) CreateOrder(ctx context.Context, order *Order) (*Order, error) {
	var created Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", order, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// do performs a JSON request and decodes the response into dest.
// Non-2xx responses become *APIError carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, body, dest interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}

	return nil
}

// decodeError extracts the {message} error body, falling back to a
// generic message when the body is empty or unparseable
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = fmt.Sprintf("backend returned %s", resp.Status)
	}

	return apiErr
}
