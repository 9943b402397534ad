package service

import (
	"context"

	"github.com/flexprice/taxengine/internal/api/dto"
	"github.com/flexprice/taxengine/internal/domain/tag"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/samber/lo"
)

// InvoiceTaxCodeService exposes the tax codes recorded on invoice items for
// manual inspection and correction. It reads and writes the same tags the
// reconciliation engine reads; a manual change takes effect on the next
// reconciliation run of the account.
type InvoiceTaxCodeService interface {
	// ListInvoiceTaxCodes returns the tax codes of every tagged item of the
	// invoice.
	ListInvoiceTaxCodes(ctx context.Context, invoiceID string) ([]*dto.TaxCodesResponse, error)
	// GetInvoiceItemTaxCodes returns the tax codes of one invoice item, or
	// ErrNotFound when the item has none.
	GetInvoiceItemTaxCodes(ctx context.Context, itemID string) (*dto.TaxCodesResponse, error)
	// SetInvoiceItemTaxCodes replaces the tax codes of one invoice item.
	SetInvoiceItemTaxCodes(ctx context.Context, itemID string, req dto.SetTaxCodesRequest) (*dto.TaxCodesResponse, error)
}

type invoiceTaxCodeService struct {
	ServiceParams
}

// NewInvoiceTaxCodeService creates a new instance of InvoiceTaxCodeService
func NewInvoiceTaxCodeService(params ServiceParams) InvoiceTaxCodeService {
	return &invoiceTaxCodeService{
		ServiceParams: params,
	}
}

func (s *invoiceTaxCodeService) ListInvoiceTaxCodes(ctx context.Context, invoiceID string) ([]*dto.TaxCodesResponse, error) {
	if invoiceID == "" {
		return nil, ierr.NewError("invoice_id is required").
			WithHint("Invoice ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.TaxCodesResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		t, err := s.TagRepo.Get(ctx, tag.TaxCodesFieldName, item.ID)
		if err != nil {
			if ierr.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		if resp := toTaxCodesResponse(inv.ID, item.ID, t); resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, nil
}

func (s *invoiceTaxCodeService) GetInvoiceItemTaxCodes(ctx context.Context, itemID string) (*dto.TaxCodesResponse, error) {
	if itemID == "" {
		return nil, ierr.NewError("invoice_item_id is required").
			WithHint("Invoice item ID is required").
			Mark(ierr.ErrValidation)
	}

	inv, err := s.InvoiceRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	t, err := s.TagRepo.Get(ctx, tag.TaxCodesFieldName, itemID)
	if err != nil {
		return nil, err
	}

	resp := toTaxCodesResponse(inv.ID, itemID, t)
	if resp == nil {
		return nil, ierr.NewError("no tax codes on invoice item").
			WithHintf("Invoice item %s carries no tax codes", itemID).
			Mark(ierr.ErrNotFound)
	}
	return resp, nil
}

func (s *invoiceTaxCodeService) SetInvoiceItemTaxCodes(ctx context.Context, itemID string, req dto.SetTaxCodesRequest) (*dto.TaxCodesResponse, error) {
	if itemID == "" {
		return nil, ierr.NewError("invoice_item_id is required").
			WithHint("Invoice item ID is required").
			Mark(ierr.ErrValidation)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := s.InvoiceRepo.GetByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	names := lo.Map(req.TaxCodes, func(code dto.TaxCodeRef, _ int) string {
		return code.Name
	})
	t := &tag.Tag{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAG),
		ObjectID:   itemID,
		FieldName:  tag.TaxCodesFieldName,
		FieldValue: JoinTaxCodes(names),
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
	if err := s.TagRepo.Upsert(ctx, t); err != nil {
		s.Logger.Errorw("failed to save tax codes on invoice item",
			"error", err,
			"invoice_item_id", itemID,
			"invoice_id", inv.ID,
		)
		return nil, err
	}

	return toTaxCodesResponse(inv.ID, itemID, t), nil
}

func toTaxCodesResponse(invoiceID, itemID string, t *tag.Tag) *dto.TaxCodesResponse {
	names := SplitTaxCodes(t.FieldValue)
	if len(names) == 0 {
		return nil
	}
	return &dto.TaxCodesResponse{
		InvoiceID:     invoiceID,
		InvoiceItemID: itemID,
		TaxCodes: lo.Map(names, func(name string, _ int) dto.TaxCodeRef {
			return dto.TaxCodeRef{Name: name}
		}),
	}
}
