package service

import (
	"context"
	"sort"
	"sync"

	"github.com/flexprice/taxengine/internal/config"
	"github.com/flexprice/taxengine/internal/domain/account"
	"github.com/flexprice/taxengine/internal/domain/catalog"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/shopspring/decimal"
)

// TaxComputationContext is the frozen snapshot one reconciliation run works
// from: the account, every invoice of the account including the one being
// created, the account-wide adjustment grouping, and a tax code directory
// scoped to that data. It is built once per call and read-only afterwards,
// so every decision of a run sees consistent state.
type TaxComputationContext struct {
	config            config.TaxConfig
	account           *account.Account
	allInvoices       []*invoice.Invoice
	adjustmentsByItem map[string][]*invoice.InvoiceItem
	directory         *TaxCodeDirectory
}

// Config returns the tax settings snapshot of this run.
func (c *TaxComputationContext) Config() config.TaxConfig {
	return c.config
}

// Account returns the account the invoices belong to.
func (c *TaxComputationContext) Account() *account.Account {
	return c.account
}

// AllInvoices returns every invoice of the account, historical invoices in
// ascending invoice date order and the invoice being created included.
func (c *TaxComputationContext) AllInvoices() []*invoice.Invoice {
	return c.allInvoices
}

// Directory returns the tax code directory scoped to this run.
func (c *TaxComputationContext) Directory() *TaxCodeDirectory {
	return c.directory
}

// AdjustedAmount returns an item's nominal amount plus all adjustments
// linked to it across the whole account.
func (c *TaxComputationContext) AdjustedAmount(item *invoice.InvoiceItem) decimal.Decimal {
	return amountWithAdjustments(item, c.adjustmentsByItem)
}

// LargestByAdjustedAmount returns the item with the largest adjusted amount.
// On equal amounts the first encountered item wins; callers rely on that
// tie-break being stable.
func (c *TaxComputationContext) LargestByAdjustedAmount(items []*invoice.InvoiceItem) *invoice.InvoiceItem {
	var largest *invoice.InvoiceItem
	var largestAmount decimal.Decimal
	for _, item := range items {
		amount := c.AdjustedAmount(item)
		if largest == nil || amount.GreaterThan(largestAmount) {
			largest = item
			largestAmount = amount
		}
	}
	return largest
}

// buildComputationContext gathers everything a reconciliation run needs in
// one pass: account, all invoices (with the new invoice included whether or
// not it has been persisted yet), the account-wide adjustment grouping, and
// a tax code directory over the account's tags with a lazily fetched
// catalog.
func (s *taxService) buildComputationContext(ctx context.Context, newInvoice *invoice.Invoice) (*TaxComputationContext, error) {
	acc, err := s.AccountRepo.Get(ctx, newInvoice.AccountID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.InvoiceRepo.GetByAccount(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(invoices, func(i, j int) bool {
		if invoices[i].InvoiceDate.Equal(invoices[j].InvoiceDate) {
			return invoices[i].ID < invoices[j].ID
		}
		return invoices[i].InvoiceDate.Before(invoices[j].InvoiceDate)
	})

	// The new invoice may not be persisted yet. Both cases are supported.
	found := false
	for i, inv := range invoices {
		if inv.ID == newInvoice.ID {
			invoices[i] = newInvoice
			found = true
			break
		}
	}
	if !found {
		invoices = append(invoices, newInvoice)
	}

	tags, err := s.TagRepo.ListByAccountItems(ctx, acc.ID)
	if err != nil {
		return nil, err
	}

	directory, err := NewTaxCodeDirectory(s.Config.Tax, tags, lazyCatalog(s.CatalogRepo))
	if err != nil {
		return nil, err
	}

	return &TaxComputationContext{
		config:            s.Config.Tax,
		account:           acc,
		allInvoices:       invoices,
		adjustmentsByItem: adjustmentsGroupedByAdjustedItem(invoices),
		directory:         directory,
	}, nil
}

// lazyCatalog memoizes the catalog fetch so it happens at most once per
// computation context.
func lazyCatalog(repo catalog.Repository) func(context.Context) (*catalog.Catalog, error) {
	var (
		once sync.Once
		cat  *catalog.Catalog
		err  error
	)
	return func(ctx context.Context) (*catalog.Catalog, error) {
		once.Do(func() {
			cat, err = repo.Current(ctx)
		})
		return cat, err
	}
}
