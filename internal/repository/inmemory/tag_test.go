package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedInvoice(t *testing.T, invoices *InvoiceRepository, invoiceID, accountID string, itemIDs ...string) {
	t.Helper()
	items := make([]*invoice.InvoiceItem, 0, len(itemIDs))
	for _, id := range itemIDs {
		items = append(items, &invoice.InvoiceItem{
			ID:        id,
			InvoiceID: invoiceID,
			Type:      types.InvoiceItemTypeTaxable,
			Amount:    decimal.RequireFromString("10.00"),
		})
	}
	require.NoError(t, invoices.Create(context.Background(), &invoice.Invoice{
		ID:          invoiceID,
		AccountID:   accountID,
		InvoiceDate: time.Now().UTC(),
		Currency:    "USD",
		Items:       items,
	}))
}

func TestTagCreateRejectsDuplicates(t *testing.T) {
	repo := NewTagRepository(NewInvoiceRepository())
	ctx := context.Background()

	first := &tag.Tag{ID: "tag_1", ObjectID: "item_1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_STD"}
	require.NoError(t, repo.Create(ctx, first))

	dup := &tag.Tag{ID: "tag_2", ObjectID: "item_1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_RED"}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, ierr.IsAlreadyExists(err))

	got, err := repo.Get(ctx, tag.TaxCodesFieldName, "item_1")
	require.NoError(t, err)
	assert.Equal(t, "VAT_STD", got.FieldValue)
}

func TestTagUpsertReplaces(t *testing.T) {
	repo := NewTagRepository(NewInvoiceRepository())
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &tag.Tag{ID: "tag_1", ObjectID: "item_1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_STD"}))
	require.NoError(t, repo.Upsert(ctx, &tag.Tag{ID: "tag_2", ObjectID: "item_1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_RED"}))

	got, err := repo.Get(ctx, tag.TaxCodesFieldName, "item_1")
	require.NoError(t, err)
	assert.Equal(t, "VAT_RED", got.FieldValue)
}

func TestTagGetNotFound(t *testing.T) {
	repo := NewTagRepository(NewInvoiceRepository())

	_, err := repo.Get(context.Background(), tag.TaxCodesFieldName, "item_missing")
	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
}

func TestListByAccountItemsScopesToAccount(t *testing.T) {
	invoices := NewInvoiceRepository()
	repo := NewTagRepository(invoices)
	ctx := context.Background()

	seedInvoice(t, invoices, "inv_a", "acct_a", "item_a1", "item_a2")
	seedInvoice(t, invoices, "inv_b", "acct_b", "item_b1")

	require.NoError(t, repo.Create(ctx, &tag.Tag{ID: "tag_1", ObjectID: "item_a1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_STD"}))
	require.NoError(t, repo.Create(ctx, &tag.Tag{ID: "tag_2", ObjectID: "item_b1", FieldName: tag.TaxCodesFieldName, FieldValue: "VAT_RED"}))

	tags, err := repo.ListByAccountItems(ctx, "acct_a")
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "item_a1", tags[0].ObjectID)
}
