package testutil

import (
	"github.com/flexprice/taxengine/internal/repository/inmemory"
)

// InMemoryInvoiceStore implements invoice.Repository for tests
type InMemoryInvoiceStore struct {
	*inmemory.InvoiceRepository
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InvoiceRepository: inmemory.NewInvoiceRepository(),
	}
}
