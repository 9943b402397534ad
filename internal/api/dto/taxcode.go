package dto

import (
	ierr "github.com/flexprice/taxengine/internal/errors"
)

// TaxCodeRef designates a tax code by its (unique) name.
type TaxCodeRef struct {
	Name string `json:"name" validate:"required"`
}

// TaxCodesResponse describes the tax codes recorded on one invoice item.
type TaxCodesResponse struct {
	InvoiceID     string       `json:"invoice_id"`
	InvoiceItemID string       `json:"invoice_item_id"`
	TaxCodes      []TaxCodeRef `json:"tax_codes"`
}

// SetTaxCodesRequest replaces the tax codes recorded on one invoice item.
type SetTaxCodesRequest struct {
	TaxCodes []TaxCodeRef `json:"tax_codes" validate:"required"`
}

func (r SetTaxCodesRequest) Validate() error {
	if len(r.TaxCodes) == 0 {
		return ierr.NewError("tax_codes is required").
			WithHint("At least one tax code name is required").
			Mark(ierr.ErrValidation)
	}
	for _, code := range r.TaxCodes {
		if code.Name == "" {
			return ierr.NewError("tax code name cannot be empty").
				WithHint("Tax code names must be non-empty strings").
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
