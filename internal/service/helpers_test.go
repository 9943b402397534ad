package service

import (
	"testing"

	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/taxcode"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func linked(id string) *string {
	return &id
}

func TestComputeTaxAmount(t *testing.T) {
	code := &taxcode.TaxCode{Name: "VAT_STD", Rate: decimal.RequireFromString("0.20")}

	amount := computeTaxAmount(decimal.RequireFromString("100.00"), code, 2)
	assert.True(t, amount.Equal(decimal.RequireFromString("20")))

	// Ties round away from zero
	ny := &taxcode.TaxCode{Name: "SALES_NY", Rate: decimal.RequireFromString("0.0875")}
	amount = computeTaxAmount(decimal.RequireFromString("10.00"), ny, 2)
	assert.True(t, amount.Equal(decimal.RequireFromString("0.88")))

	amount = computeTaxAmount(decimal.RequireFromString("-10.00"), ny, 2)
	assert.True(t, amount.Equal(decimal.RequireFromString("-0.88")))

	// A nil code means no tax
	amount = computeTaxAmount(decimal.RequireFromString("100.00"), nil, 2)
	assert.True(t, amount.IsZero())
}

func TestAmountWithAdjustments(t *testing.T) {
	item := &invoice.InvoiceItem{
		ID:     "item_1",
		Type:   types.InvoiceItemTypeTaxable,
		Amount: decimal.RequireFromString("100.00"),
	}
	adjustments := map[string][]*invoice.InvoiceItem{
		"item_1": {
			{ID: "adj_1", Type: types.InvoiceItemTypeAdjustment, Amount: decimal.RequireFromString("-30.00"), LinkedItemID: linked("item_1")},
			{ID: "adj_2", Type: types.InvoiceItemTypeAdjustment, Amount: decimal.RequireFromString("5.00"), LinkedItemID: linked("item_1")},
		},
	}

	adjusted := amountWithAdjustments(item, adjustments)
	assert.True(t, adjusted.Equal(decimal.RequireFromString("75.00")))

	// No adjustments leaves the nominal amount untouched
	other := &invoice.InvoiceItem{ID: "item_2", Amount: decimal.RequireFromString("50.00")}
	assert.True(t, amountWithAdjustments(other, adjustments).Equal(decimal.RequireFromString("50.00")))
}

func TestTaxItemsGroupedByTaxedItem(t *testing.T) {
	inv := &invoice.Invoice{
		ID: "inv_1",
		Items: []*invoice.InvoiceItem{
			{ID: "item_1", Type: types.InvoiceItemTypeTaxable, Amount: decimal.RequireFromString("100")},
			{ID: "tax_1", Type: types.InvoiceItemTypeTax, Amount: decimal.RequireFromString("10"), LinkedItemID: linked("item_1")},
			{ID: "tax_2", Type: types.InvoiceItemTypeTax, Amount: decimal.RequireFromString("10"), LinkedItemID: linked("item_1")},
			{ID: "adj_1", Type: types.InvoiceItemTypeAdjustment, Amount: decimal.RequireFromString("-1"), LinkedItemID: linked("tax_1")},
		},
	}

	grouped := taxItemsGroupedByTaxedItem(inv)
	assert.Len(t, grouped, 1)
	assert.Len(t, grouped["item_1"], 2)
}

func TestAdjustmentsGroupedAcrossInvoices(t *testing.T) {
	invoices := []*invoice.Invoice{
		{
			ID: "inv_1",
			Items: []*invoice.InvoiceItem{
				{ID: "item_1", Type: types.InvoiceItemTypeTaxable, Amount: decimal.RequireFromString("100")},
			},
		},
		{
			ID: "inv_2",
			Items: []*invoice.InvoiceItem{
				{ID: "adj_1", Type: types.InvoiceItemTypeAdjustment, Amount: decimal.RequireFromString("-50"), LinkedItemID: linked("item_1")},
			},
		},
	}

	grouped := adjustmentsGroupedByAdjustedItem(invoices)
	assert.Len(t, grouped["item_1"], 1)
	assert.Equal(t, "adj_1", grouped["item_1"][0].ID)
}

func TestSumAdjustedAmounts(t *testing.T) {
	items := []*invoice.InvoiceItem{
		{ID: "tax_1", Amount: decimal.RequireFromString("5.00")},
		{ID: "tax_2", Amount: decimal.RequireFromString("7.00")},
	}
	identity := func(item *invoice.InvoiceItem) decimal.Decimal { return item.Amount }

	assert.True(t, sumAdjustedAmounts(items, identity).Equal(decimal.RequireFromString("12.00")))
	assert.True(t, sumAdjustedAmounts(nil, identity).IsZero())
}
