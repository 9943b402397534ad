package testutil

import (
	"context"

	"github.com/flexprice/taxengine/internal/domain/tag"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/repository/inmemory"
)

// InMemoryTagStore implements tag.Repository for tests, with optional
// failure injection for tag creation.
type InMemoryTagStore struct {
	*inmemory.TagRepository

	// FailCreates makes every Create fail, to exercise the engine's
	// skip-and-retry behavior.
	FailCreates bool
}

// NewInMemoryTagStore creates a new in-memory tag store
func NewInMemoryTagStore(invoices *InMemoryInvoiceStore) *InMemoryTagStore {
	return &InMemoryTagStore{
		TagRepository: inmemory.NewTagRepository(invoices.InvoiceRepository),
	}
}

func (s *InMemoryTagStore) Create(ctx context.Context, t *tag.Tag) error {
	if s.FailCreates {
		return ierr.NewError("tag store unavailable").
			WithHint("Injected tag creation failure").
			Mark(ierr.ErrDatabase)
	}
	return s.TagRepository.Create(ctx, t)
}
