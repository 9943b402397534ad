package invoice

import (
	"time"

	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Invoice is an immutable-once-issued collection of invoice items belonging
// to one account. The invoice currently being created may not be persisted
// yet; the engine treats persisted and unpersisted invoices alike.
type Invoice struct {
	ID string `db:"id" json:"id"`
	// Number is the short human readable invoice number, e.g. IN-XYZ12A8Q.
	Number      string         `db:"number" json:"number"`
	AccountID   string         `db:"account_id" json:"account_id"`
	InvoiceDate time.Time      `db:"invoice_date" json:"invoice_date"`
	Currency    string         `db:"currency" json:"currency"`
	Items       []*InvoiceItem `json:"items"`

	types.BaseModel
}

// InvoiceItem is a single line on an invoice. Tax items link to the taxable
// item they tax; adjustment items link to the item they adjust (possibly in
// a different invoice of the same account).
type InvoiceItem struct {
	ID           string                `db:"id" json:"id"`
	InvoiceID    string                `db:"invoice_id" json:"invoice_id"`
	Type         types.InvoiceItemType `db:"type" json:"type"`
	Amount       decimal.Decimal       `db:"amount" json:"amount"`
	LinkedItemID *string               `db:"linked_item_id" json:"linked_item_id,omitempty"`
	Description  string                `db:"description" json:"description"`
	// PlanName is the catalog classifier used to look up configured
	// candidate tax codes for taxable items.
	PlanName string    `db:"plan_name" json:"plan_name"`
	Date     time.Time `db:"date" json:"date"`

	types.BaseModel
}

func (i *InvoiceItem) Validate() error {
	if err := i.Type.Validate(); err != nil {
		return err
	}
	if i.Type.IsTax() || i.Type.IsAdjustment() {
		if i.LinkedItemID == nil || *i.LinkedItemID == "" {
			return ierr.NewError("linked item id is required").
				WithHintf("%s items must reference the item they relate to", i.Type).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ItemByID returns the item with the given id, or nil.
func (inv *Invoice) ItemByID(itemID string) *InvoiceItem {
	item, _ := lo.Find(inv.Items, func(it *InvoiceItem) bool {
		return it.ID == itemID
	})
	return item
}

// TaxableItems returns the items of the invoice that may incur tax.
func (inv *Invoice) TaxableItems() []*InvoiceItem {
	return lo.Filter(inv.Items, func(it *InvoiceItem, _ int) bool {
		return it.Type.IsTaxable()
	})
}
