package inmemory

import (
	"context"
	"sync"

	"github.com/flexprice/taxengine/internal/domain/account"
	ierr "github.com/flexprice/taxengine/internal/errors"
)

// AccountRepository is an in-memory account.Repository. It backs the
// standalone server; production deployments inject their own store.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*account.Account
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*account.Account),
	}
}

var _ account.Repository = (*AccountRepository)(nil)

// Clear removes all accounts
func (r *AccountRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = make(map[string]*account.Account)
}

func (r *AccountRepository) Get(ctx context.Context, id string) (*account.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, ok := r.accounts[id]
	if !ok {
		return nil, ierr.NewError("account not found").
			WithHintf("Account %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	copied := *acc
	return &copied, nil
}

func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	if acc == nil || acc.ID == "" {
		return ierr.NewError("account is incomplete").
			WithHint("Account must carry an id").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[acc.ID]; exists {
		return ierr.NewError("account already exists").
			WithHintf("Account %s already exists", acc.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	copied := *acc
	r.accounts[acc.ID] = &copied
	return nil
}
