package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/bookverse-storefront/internal/backend"
)

type fakeBooksAPI struct {
	books     []backend.Book
	err       error
	onSearch  func(query string)
	searchLog []string
}

func (f *fakeBooksAPI) ListBooks(ctx context.Context) ([]backend.Book, error) {
	return f.books, f.err
}

func (f *fakeBooksAPI) GetBook(ctx context.Context, id string) (*backend.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.books {
		if f.books[i].ID == id {
			return &f.books[i], nil
		}
	}
	return nil, &backend.APIError{Status: 404, Message: "book not found"}
}

func (f *fakeBooksAPI) SearchBooks(ctx context.Context, query string) ([]backend.Book, error) {
	f.searchLog = append(f.searchLog, query)
	if f.onSearch != nil {
		f.onSearch(query)
	}
	return f.books, f.err
}

func TestListBooks_FromBackend(t *testing.T) {
	api := &fakeBooksAPI{books: []backend.Book{
		{ID: "b1", Title: "Deep Work", Author: "Cal Newport", Price: decimal.NewFromInt(299)},
	}}

	books, err := NewService(api).ListBooks(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Deep Work", books[0].Title)
	assert.Equal(t, "299", books[0].Price.String())
}

func TestListBooks_SeedFallbackWhenBackendDown(t *testing.T) {
	api := &fakeBooksAPI{err: assert.AnError}

	books, err := NewService(api).ListBooks(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, books)
	assert.Equal(t, "It Ends With Us", books[0].Title)
}

func TestGetBook_NotFound(t *testing.T) {
	api := &fakeBooksAPI{}

	_, err := NewService(api).GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetBook_SeedFallbackWhenBackendDown(t *testing.T) {
	api := &fakeBooksAPI{err: assert.AnError}

	book, err := NewService(api).GetBook(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "Atomic Habits", book.Title)

	_, err = NewService(api).GetBook(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearcher_AppliesLatestResult(t *testing.T) {
	api := &fakeBooksAPI{books: []backend.Book{{ID: "b1", Title: "Harry Potter"}}}
	s := NewSearcher(api)

	books, stale, err := s.Search(context.Background(), "sess1", "harry")
	require.NoError(t, err)
	assert.False(t, stale)
	require.Len(t, books, 1)
}

func TestSearcher_SupersededResultDiscarded(t *testing.T) {
	var s *Searcher
	api := &fakeBooksAPI{books: []backend.Book{{ID: "b1", Title: "Harry Potter"}}}

	// The first search triggers a newer one for the same session while
	// its backend call is still in flight.
	fired := false
	api.onSearch = func(query string) {
		if !fired {
			fired = true
			s.begin("sess1")
		}
	}
	s = NewSearcher(api)

	books, stale, err := s.Search(context.Background(), "sess1", "har")
	require.NoError(t, err)
	assert.True(t, stale, "superseded search must be flagged stale")
	assert.Nil(t, books)
}

func TestSearcher_SessionsDoNotInterfere(t *testing.T) {
	api := &fakeBooksAPI{books: []backend.Book{{ID: "b1", Title: "Harry Potter"}}}
	s := NewSearcher(api)

	// Another session searching concurrently must not mark ours stale
	api.onSearch = func(query string) {
		api.onSearch = nil
		s.begin("other-session")
	}

	_, stale, err := s.Search(context.Background(), "sess1", "harry")
	require.NoError(t, err)
	assert.False(t, stale)
}

func TestSearcher_BlankQueryShortCircuits(t *testing.T) {
	api := &fakeBooksAPI{}
	s := NewSearcher(api)

	books, stale, err := s.Search(context.Background(), "sess1", "   ")
	require.NoError(t, err)
	assert.False(t, stale)
	assert.Empty(t, books)
	assert.Empty(t, api.searchLog, "blank query must not hit the backend")
}
