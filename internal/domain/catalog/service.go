// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/backend"
)

// ErrNotFound is returned when a book id matches nothing
var ErrNotFound = errors.New("catalog: book not found")

// BooksAPI is the slice of the backend the catalog consumes
type BooksAPI interface {
	ListBooks(ctx context.Context) ([]backend.Book, error)
	GetBook(ctx context.Context, id string) (*backend.Book, error)
	SearchBooks(ctx context.Context, query string) ([]backend.Book, error)
}

// Service handles catalog browsing. The backend owns the catalog; this
// service only fetches and falls back to the built-in seed list when
// the backend is unreachable.
type Service struct {
	api BooksAPI
}

// NewService creates a catalog service
func NewService(api BooksAPI) *Service {
	return &Service{api: api}
}

// ListBooks returns the catalog, seeded locally if the backend is down
func (s *Service) ListBooks(ctx context.Context) ([]Book, error) {
	raw, err := s.api.ListBooks(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Backend catalog unavailable, serving seed books")
		return append([]Book(nil), seedBooks...), nil
	}

	books := make([]Book, len(raw))
	for i, b := range raw {
		books[i] = fromBackend(b)
	}
	return books, nil
}

// GetBook returns a single book by id
func (s *Service) GetBook(ctx context.Context, id string) (*Book, error) {
	raw, err := s.api.GetBook(ctx, id)
	if err == nil {
		book := fromBackend(*raw)
		return &book, nil
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status == 404 {
		return nil, ErrNotFound
	}

	logrus.WithError(err).Warn("Backend catalog unavailable, checking seed books")
	for i := range seedBooks {
		if seedBooks[i].ID == id {
			book := seedBooks[i]
			return &book, nil
		}
	}

	return nil, ErrNotFound
}

// Searcher runs catalog searches where a newer query supersedes any
// still-in-flight older one: stale results are discarded, never applied.
// Sequence numbers are tracked per session so shoppers don't cancel
// each other.
type Searcher struct {
	api BooksAPI

	mu     sync.Mutex
	latest map[string]uint64
}

// NewSearcher creates a searcher
func NewSearcher(api BooksAPI) *Searcher {
	return &Searcher{
		api:    api,
		latest: make(map[string]uint64),
	}
}

// Search queries the backend. The returned stale flag is true when a
// newer search for the same session started while this one was in
// flight; callers must discard the results in that case.
func (s *Searcher) Search(ctx context.Context, sessionID, query string) ([]Book, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Book{}, false, nil
	}

	seq := s.begin(sessionID)

	raw, err := s.api.SearchBooks(ctx, query)
	if !s.isLatest(sessionID, seq) {
		// Superseded; the underlying call is abandoned, not aborted
		return nil, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("search failed: %w", err)
	}

	books := make([]Book, len(raw))
	for i, b := range raw {
		books[i] = fromBackend(b)
	}
	return books, false, nil
}

func (s *Searcher) begin(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[sessionID]++
	return s.latest[sessionID]
}

func (s *Searcher) isLatest(sessionID string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[sessionID] == seq
}
