package types

import (
	"slices"

	ierr "github.com/flexprice/taxengine/internal/errors"
)

// InvoiceItemType classifies invoice items for tax purposes.
type InvoiceItemType string

const (
	// InvoiceItemTypeTaxable is a charge that may incur tax
	InvoiceItemTypeTaxable InvoiceItemType = "TAXABLE"
	// InvoiceItemTypeTax is tax charged against a specific taxable item
	InvoiceItemTypeTax InvoiceItemType = "TAX"
	// InvoiceItemTypeAdjustment corrects the effective amount of a linked item
	InvoiceItemTypeAdjustment InvoiceItemType = "ADJUSTMENT"
	// InvoiceItemTypeOther is everything the tax engine ignores
	InvoiceItemTypeOther InvoiceItemType = "OTHER"
)

func (t InvoiceItemType) String() string {
	return string(t)
}

func (t InvoiceItemType) Validate() error {
	allowedValues := []string{
		InvoiceItemTypeTaxable.String(),
		InvoiceItemTypeTax.String(),
		InvoiceItemTypeAdjustment.String(),
		InvoiceItemTypeOther.String(),
	}
	if !slices.Contains(allowedValues, string(t)) {
		return ierr.NewError("invalid invoice item type").
			WithHintf("Invoice item type must be one of %v", allowedValues).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTaxable returns true for items that may incur tax
func (t InvoiceItemType) IsTaxable() bool {
	return t == InvoiceItemTypeTaxable
}

// IsTax returns true for tax items
func (t InvoiceItemType) IsTax() bool {
	return t == InvoiceItemTypeTax
}

// IsAdjustment returns true for adjustment items
func (t InvoiceItemType) IsAdjustment() bool {
	return t == InvoiceItemTypeAdjustment
}
