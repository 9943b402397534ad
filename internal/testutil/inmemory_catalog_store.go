package testutil

import (
	"context"
	"sync"

	"github.com/flexprice/taxengine/internal/domain/catalog"
)

// InMemoryCatalogStore implements catalog.Repository for tests. It counts
// fetches so tests can assert the catalog is fetched at most once per
// computation context, and can inject a fetch error.
type InMemoryCatalogStore struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	err     error
	fetches int
}

// NewInMemoryCatalogStore creates a new in-memory catalog store
func NewInMemoryCatalogStore() *InMemoryCatalogStore {
	return &InMemoryCatalogStore{
		catalog: &catalog.Catalog{Plans: map[string]catalog.Product{}},
	}
}

// SetCatalog replaces the served catalog
func (s *InMemoryCatalogStore) SetCatalog(cat *catalog.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cat
}

// SetError makes every fetch fail with the given error
func (s *InMemoryCatalogStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Fetches returns how many times the catalog was fetched
func (s *InMemoryCatalogStore) Fetches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches
}

func (s *InMemoryCatalogStore) Current(ctx context.Context) (*catalog.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return s.catalog, nil
}
