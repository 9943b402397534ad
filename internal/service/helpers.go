package service

import (
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/taxcode"
	"github.com/shopspring/decimal"
)

// amountWithAdjustments returns the adjusted amount of an item: its nominal
// amount plus the sum of every adjustment item linked to it, account-wide.
func amountWithAdjustments(item *invoice.InvoiceItem, adjustmentsByItem map[string][]*invoice.InvoiceItem) decimal.Decimal {
	amount := item.Amount
	for _, adj := range adjustmentsByItem[item.ID] {
		amount = amount.Add(adj.Amount)
	}
	return amount
}

// sumAdjustedAmounts sums the adjusted amounts of the given items.
func sumAdjustedAmounts(items []*invoice.InvoiceItem, adjustedAmount func(*invoice.InvoiceItem) decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(adjustedAmount(item))
	}
	return sum
}

// computeTaxAmount applies a tax code's rate to an amount, rounding to the
// given number of fractional digits with ties away from zero. A nil code
// means no tax.
func computeTaxAmount(amount decimal.Decimal, code *taxcode.TaxCode, precision int32) decimal.Decimal {
	if code == nil {
		return decimal.Zero
	}
	return amount.Mul(code.Rate).Round(precision)
}

// taxItemsGroupedByTaxedItem groups the tax items of one invoice by the id
// of the taxable item they tax.
func taxItemsGroupedByTaxedItem(inv *invoice.Invoice) map[string][]*invoice.InvoiceItem {
	grouped := make(map[string][]*invoice.InvoiceItem)
	for _, item := range inv.Items {
		if item.Type.IsTax() && item.LinkedItemID != nil {
			grouped[*item.LinkedItemID] = append(grouped[*item.LinkedItemID], item)
		}
	}
	return grouped
}

// adjustmentsGroupedByAdjustedItem groups the adjustment items found in the
// given invoices by the id of the item they adjust. Adjustments can live on
// any invoice of the account, including invoices issued after the adjusted
// item's own invoice.
func adjustmentsGroupedByAdjustedItem(invoices []*invoice.Invoice) map[string][]*invoice.InvoiceItem {
	grouped := make(map[string][]*invoice.InvoiceItem)
	for _, inv := range invoices {
		for _, item := range inv.Items {
			if item.Type.IsAdjustment() && item.LinkedItemID != nil {
				grouped[*item.LinkedItemID] = append(grouped[*item.LinkedItemID], item)
			}
		}
	}
	return grouped
}
