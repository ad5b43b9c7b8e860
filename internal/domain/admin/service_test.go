package admin

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookverse-storefront/internal/backend"
)

type fakeAdminAPI struct {
	books     []backend.Book
	users     []backend.User
	orders    []backend.Order
	booksErr  error
	usersErr  error
	ordersErr error
}

func (f *fakeAdminAPI) ListBooks(ctx context.Context) ([]backend.Book, error) {
	return f.books, f.booksErr
}

func (f *fakeAdminAPI) CreateBook(ctx context.Context, book *backend.Book) (*backend.Book, error) {
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	created := *book
	created.ID = "new"
	f.books = append(f.books, created)
	return &created, nil
}

func (f *fakeAdminAPI) UpdateBook(ctx context.Context, book *backend.Book) (*backend.Book, error) {
	return book, f.booksErr
}

func (f *fakeAdminAPI) DeleteBook(ctx context.Context, id string) error {
	return f.booksErr
}

func (f *fakeAdminAPI) ListUsers(ctx context.Context) ([]backend.User, error) {
	return f.users, f.usersErr
}

func (f *fakeAdminAPI) ListOrders(ctx context.Context) ([]backend.Order, error) {
	return f.orders, f.ordersErr
}

func TestListOrders_SampleFallback(t *testing.T) {
	svc := NewService(&fakeAdminAPI{ordersErr: assert.AnError})

	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "John Doe", orders[0].User)
	assert.Equal(t, "Delivered", orders[1].Status)
}

func TestDashboard_Aggregates(t *testing.T) {
	svc := NewService(&fakeAdminAPI{
		books: []backend.Book{{ID: "b1"}, {ID: "b2"}, {ID: "b3"}},
		users: []backend.User{{ID: "u1"}, {ID: "u2"}},
		orders: []backend.Order{
			{ID: "o1", Total: decimal.NewFromInt(300), Status: "Pending"},
			{ID: "o2", Total: decimal.NewFromInt(500), Status: "Delivered"},
			{ID: "o3", Total: decimal.NewFromInt(400), Status: "Delivered"},
		},
	})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalBooks)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, "1200", stats.TotalRevenue.String())
	assert.Equal(t, "400", stats.AvgOrderValue.String())
	assert.Equal(t, map[string]int{"Pending": 1, "Delivered": 2}, stats.OrdersByStatus)
}

func TestDashboard_PartialWhenCountsUnavailable(t *testing.T) {
	svc := NewService(&fakeAdminAPI{
		booksErr: assert.AnError,
		usersErr: assert.AnError,
		orders:   []backend.Order{{ID: "o1", Total: decimal.NewFromInt(250), Status: "Pending"}},
	})

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalBooks)
	assert.Zero(t, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, "250", stats.TotalRevenue.String())
}

func TestCreateBook(t *testing.T) {
	api := &fakeAdminAPI{}
	svc := NewService(api)

	created, err := svc.CreateBook(context.Background(), &backend.Book{Title: "New Arrival", Price: decimal.NewFromInt(199)})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)
	assert.Len(t, api.books, 1)
}
