package testutil

import (
	"github.com/flexprice/taxengine/internal/repository/inmemory"
)

// InMemoryAccountStore implements account.Repository for tests
type InMemoryAccountStore struct {
	*inmemory.AccountRepository
}

// NewInMemoryAccountStore creates a new in-memory account store
func NewInMemoryAccountStore() *InMemoryAccountStore {
	return &InMemoryAccountStore{
		AccountRepository: inmemory.NewAccountRepository(),
	}
}
