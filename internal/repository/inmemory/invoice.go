package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/flexprice/taxengine/internal/domain/invoice"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/samber/lo"
)

// InvoiceRepository is an in-memory invoice.Repository. Items are append
// only: existing items are never mutated or removed.
type InvoiceRepository struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{
		invoices: make(map[string]*invoice.Invoice),
	}
}

var _ invoice.Repository = (*InvoiceRepository)(nil)

// Clear removes all invoices
func (r *InvoiceRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = make(map[string]*invoice.Invoice)
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	copied := *inv
	copied.Items = lo.Map(inv.Items, func(item *invoice.InvoiceItem, _ int) *invoice.InvoiceItem {
		itemCopy := *item
		if item.LinkedItemID != nil {
			linked := *item.LinkedItemID
			itemCopy.LinkedItemID = &linked
		}
		return &itemCopy
	})
	return &copied
}

func (r *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (r *InvoiceRepository) GetByAccount(ctx context.Context, accountID string) ([]*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*invoice.Invoice
	for _, inv := range r.invoices {
		if inv.AccountID == accountID {
			result = append(result, copyInvoice(inv))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *InvoiceRepository) GetByItem(ctx context.Context, itemID string) (*invoice.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invoices {
		for _, item := range inv.Items {
			if item.ID == itemID {
				return copyInvoice(inv), nil
			}
		}
	}
	return nil, ierr.NewError("no invoice contains the item").
		WithHintf("No invoice contains item %s", itemID).
		Mark(ierr.ErrNotFound)
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil || inv.ID == "" {
		return ierr.NewError("invoice is incomplete").
			WithHint("Invoice must carry an id").
			Mark(ierr.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").
			WithHintf("Invoice %s already exists", inv.ID).
			Mark(ierr.ErrAlreadyExists)
	}
	if inv.Number == "" {
		inv.Number = types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_INVOICE)
	}
	r.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (r *InvoiceRepository) AddItems(ctx context.Context, invoiceID string, items []*invoice.InvoiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.invoices[invoiceID]
	if !ok {
		return ierr.NewError("invoice not found").
			WithHintf("Invoice %s was not found", invoiceID).
			Mark(ierr.ErrNotFound)
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		itemCopy := *item
		inv.Items = append(inv.Items, &itemCopy)
	}
	return nil
}
