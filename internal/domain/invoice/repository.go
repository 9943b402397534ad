package invoice

import (
	"context"
)

type Repository interface {
	// Get returns the invoice with the given id, including its items.
	Get(ctx context.Context, id string) (*Invoice, error)
	// GetByAccount returns every invoice of the account, including items.
	GetByAccount(ctx context.Context, accountID string) ([]*Invoice, error)
	// GetByItem returns the invoice containing the given invoice item.
	GetByItem(ctx context.Context, itemID string) (*Invoice, error)
	// Create persists a new invoice with its items.
	Create(ctx context.Context, invoice *Invoice) error
	// AddItems appends items to an existing invoice. Existing items are
	// never mutated or removed.
	AddItems(ctx context.Context, invoiceID string, items []*InvoiceItem) error
}
