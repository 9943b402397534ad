package service

import (
	"context"
	"time"

	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	"github.com/flexprice/taxengine/internal/domain/taxcode"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/flexprice/taxengine/internal/types"
	"github.com/shopspring/decimal"
)

// TaxService reconciles the tax recorded on an account's invoices with the
// tax expected from configured tax codes.
//
// On each invoice creation it assigns missing tax codes to the taxable
// items of the new invoice, then walks every invoice of the account and
// proposes the minimal additive set of tax and adjustment items needed so
// that, per taxable item, the recorded tax matches the expected tax.
//
// Tax codes already recorded on items take precedence and are never
// overwritten. Historical invoices never receive new tax items: when a
// taxable item was never taxed at issue time, that decision stands. The
// whole process is idempotent: re-running it against unchanged state
// proposes nothing.
type TaxService interface {
	// AdditionalInvoiceItems returns the proposed tax and adjustment items
	// for the creation of newInvoice, in invoice-then-item order. The
	// caller persists them as part of the invoice creation transaction;
	// nothing besides tax code tags is written here.
	AdditionalInvoiceItems(ctx context.Context, newInvoice *invoice.Invoice) ([]*invoice.InvoiceItem, error)
}

type taxService struct {
	ServiceParams
}

// NewTaxService creates a new instance of TaxService
func NewTaxService(params ServiceParams) TaxService {
	return &taxService{
		ServiceParams: params,
	}
}

func (s *taxService) AdditionalInvoiceItems(ctx context.Context, newInvoice *invoice.Invoice) ([]*invoice.InvoiceItem, error) {
	if newInvoice == nil || newInvoice.ID == "" || newInvoice.AccountID == "" {
		return nil, ierr.NewError("invoice is incomplete").
			WithHint("The invoice being created must carry an id and an account id").
			Mark(ierr.ErrValidation)
	}

	taxCtx, err := s.buildComputationContext(ctx, newInvoice)
	if err != nil {
		return nil, err
	}

	resolver := s.instantiateResolver(taxCtx)

	newTaxCodes, err := s.addMissingTaxCodes(ctx, newInvoice, resolver, taxCtx)
	if err != nil {
		return nil, err
	}

	var additionalItems []*invoice.InvoiceItem
	for _, inv := range taxCtx.AllInvoices() {
		var newItems []*invoice.InvoiceItem
		if inv.ID == newInvoice.ID {
			newItems, err = s.computeItemsForNewInvoice(ctx, inv, taxCtx, newTaxCodes)
		} else {
			newItems, err = s.computeAdjustmentsForHistoricalInvoice(ctx, inv, taxCtx)
		}
		if err != nil {
			return nil, err
		}
		additionalItems = append(additionalItems, newItems...)
	}
	return additionalItems, nil
}

// instantiateResolver builds the configured tax resolver for this run.
// Instantiation failure is non-fatal: the run falls back to the null
// resolver and reconciliation degrades to "no tax" rather than aborting
// the invoice.
func (s *taxService) instantiateResolver(taxCtx *TaxComputationContext) TaxResolver {
	key := taxCtx.Config().Resolver
	if key == "" {
		key = ResolverNull
	}

	factory, ok := resolverFactory(key)
	if !ok {
		s.Logger.Errorw("unknown tax resolver, defaulting to null resolver",
			"resolver", key,
		)
		return &NullTaxResolver{}
	}

	resolver, err := factory(taxCtx)
	if err != nil {
		s.Logger.Errorw("cannot instantiate tax resolver, defaulting to null resolver",
			"error", err,
			"resolver", key,
		)
		return &NullTaxResolver{}
	}
	return resolver
}

// addMissingTaxCodes resolves and persists a tax code tag for each taxable
// item of the new invoice that has configured candidate codes and no tag
// yet. Items already carrying a tag are never touched, which makes code
// assignment monotonic and idempotent. A tag creation failure skips that
// item for this run only: it stays untagged and is retried on the next
// reconciliation of the same invoice.
func (s *taxService) addMissingTaxCodes(ctx context.Context, newInvoice *invoice.Invoice, resolver TaxResolver, taxCtx *TaxComputationContext) (map[string]*taxcode.TaxCode, error) {
	directory := taxCtx.Directory()

	configuredCodes, err := directory.ResolveCandidatesFromConfig(ctx, newInvoice)
	if err != nil {
		return nil, err
	}

	newTaxCodes := make(map[string]*taxcode.TaxCode)
	for _, item := range newInvoice.Items {
		if !item.Type.IsTaxable() {
			continue
		}
		candidates := configuredCodes[item.ID]
		if len(candidates) == 0 {
			continue
		}
		if directory.HasTag(item.ID) {
			// Don't override existing tax codes
			continue
		}

		applicableCode := resolver.ApplicableCodeForItem(candidates, item)
		if applicableCode == nil {
			continue
		}

		t := &tag.Tag{
			ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAG),
			ObjectID:   item.ID,
			FieldName:  tag.TaxCodesFieldName,
			FieldValue: JoinTaxCodes([]string{applicableCode.Name}),
			BaseModel:  types.GetDefaultBaseModel(ctx),
		}
		if err := s.TagRepo.Create(ctx, t); err != nil {
			s.Logger.Errorw("cannot record tax code on invoice item, skipping for this run",
				"error", err,
				"tax_code", applicableCode.Name,
				"invoice_item_id", item.ID,
				"invoice_id", newInvoice.ID,
			)
			continue
		}
		newTaxCodes[item.ID] = applicableCode
	}
	return newTaxCodes, nil
}

// computeItemsForNewInvoice computes tax items against taxable items of the
// invoice being created, or adjustments on its existing tax items that no
// longer match the expected tax amount.
func (s *taxService) computeItemsForNewInvoice(ctx context.Context, newInvoice *invoice.Invoice, taxCtx *TaxComputationContext, newTaxCodes map[string]*taxcode.TaxCode) ([]*invoice.InvoiceItem, error) {
	currentTaxItems := taxItemsGroupedByTaxedItem(newInvoice)
	existingTaxCodes := taxCtx.Directory().FindExistingTaxCodes(newInvoice)

	var newItems []*invoice.InvoiceItem
	for _, item := range newInvoice.Items {
		if !item.Type.IsTaxable() {
			continue
		}

		code := newTaxCodes[item.ID]
		if code == nil {
			if codes := existingTaxCodes[item.ID]; len(codes) > 0 {
				code = codes[0]
			}
		}

		adjustedAmount := taxCtx.AdjustedAmount(item)
		expectedTaxAmount := computeTaxAmount(adjustedAmount, code, taxCtx.Config().AmountPrecision)

		relatedTaxItems := currentTaxItems[item.ID]
		currentTaxAmount := sumAdjustedAmounts(relatedTaxItems, taxCtx.AdjustedAmount)

		description := s.taxItemDescription(code)

		switch currentTaxAmount.Cmp(expectedTaxAmount) {
		case -1:
			missingTaxAmount := expectedTaxAmount.Sub(currentTaxAmount)
			if len(relatedTaxItems) == 0 {
				// A taxable item that has never been taxed may still get
				// its tax here because it belongs to the invoice being
				// created.
				taxItem, err := s.buildTaxItem(ctx, item, newInvoice.InvoiceDate, missingTaxAmount, description)
				if err != nil {
					return nil, err
				}
				if taxItem != nil {
					newItems = append(newItems, taxItem)
				}
			} else {
				largestTaxItem := taxCtx.LargestByAdjustedAmount(relatedTaxItems)
				adjItem, err := s.buildAdjustmentForTaxItem(ctx, largestTaxItem, newInvoice.InvoiceDate, missingTaxAmount, description)
				if err != nil {
					return nil, err
				}
				if adjItem != nil {
					newItems = append(newItems, adjItem)
				}
			}
		case 1:
			if len(relatedTaxItems) == 0 {
				// Over-adjusted into a negative expected tax with no
				// recorded tax item to correct. Nothing to adjust.
				break
			}
			negativeAdjAmount := expectedTaxAmount.Sub(currentTaxAmount)
			largestTaxItem := taxCtx.LargestByAdjustedAmount(relatedTaxItems)
			adjItem, err := s.buildAdjustmentForTaxItem(ctx, largestTaxItem, newInvoice.InvoiceDate, negativeAdjAmount, description)
			if err != nil {
				return nil, err
			}
			if adjItem != nil {
				newItems = append(newItems, adjItem)
			}
		}
	}
	return newItems, nil
}

// computeAdjustmentsForHistoricalInvoice adjusts existing tax items of a
// historical invoice whose related taxable items have been adjusted since.
// No new tax item is ever added to a historical invoice: a taxable item
// that was never taxed when its invoice was issued stays untaxed, whatever
// tax codes are configured or tagged today.
func (s *taxService) computeAdjustmentsForHistoricalInvoice(ctx context.Context, oldInvoice *invoice.Invoice, taxCtx *TaxComputationContext) ([]*invoice.InvoiceItem, error) {
	currentTaxItems := taxItemsGroupedByTaxedItem(oldInvoice)
	existingTaxCodes := taxCtx.Directory().FindExistingTaxCodes(oldInvoice)

	var newItems []*invoice.InvoiceItem
	for _, item := range oldInvoice.Items {
		if !item.Type.IsTaxable() {
			continue
		}

		relatedTaxItems := currentTaxItems[item.ID]
		if len(relatedTaxItems) == 0 {
			continue
		}

		var code *taxcode.TaxCode
		if codes := existingTaxCodes[item.ID]; len(codes) > 0 {
			code = codes[0]
		}

		adjustedAmount := taxCtx.AdjustedAmount(item)
		expectedTaxAmount := computeTaxAmount(adjustedAmount, code, taxCtx.Config().AmountPrecision)
		currentTaxAmount := sumAdjustedAmounts(relatedTaxItems, taxCtx.AdjustedAmount)

		if currentTaxAmount.Cmp(expectedTaxAmount) != 0 {
			adjustmentAmount := expectedTaxAmount.Sub(currentTaxAmount)
			largestTaxItem := taxCtx.LargestByAdjustedAmount(relatedTaxItems)

			adjItem, err := s.buildAdjustmentForTaxItem(ctx, largestTaxItem, oldInvoice.InvoiceDate, adjustmentAmount, s.taxItemDescription(code))
			if err != nil {
				return nil, err
			}
			if adjItem != nil {
				newItems = append(newItems, adjItem)
			}
		}
	}
	return newItems, nil
}

func (s *taxService) taxItemDescription(code *taxcode.TaxCode) string {
	if code != nil && code.TaxItemDescription != "" {
		return code.TaxItemDescription
	}
	return s.Config.Tax.DefaultItemDescription
}

// buildTaxItem creates a tax item for a taxable item on the same invoice,
// or nil when the amount is zero.
func (s *taxService) buildTaxItem(ctx context.Context, taxableItem *invoice.InvoiceItem, date time.Time, taxAmount decimal.Decimal, description string) (*invoice.InvoiceItem, error) {
	if !taxableItem.Type.IsTaxable() {
		return nil, ierr.NewError("cannot tax a non taxable item").
			WithHintf("Item %s is of type %s, not taxable", taxableItem.ID, taxableItem.Type).
			Mark(ierr.ErrInvalidOperation)
	}
	if taxAmount.IsZero() {
		return nil, nil
	}

	linkedItemID := taxableItem.ID
	return &invoice.InvoiceItem{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:    taxableItem.InvoiceID,
		Type:         types.InvoiceItemTypeTax,
		Amount:       taxAmount,
		LinkedItemID: &linkedItemID,
		Description:  description,
		Date:         date,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}, nil
}

// buildAdjustmentForTaxItem creates an adjustment for a tax item, or nil
// when the amount is zero. The adjustment lives on the same invoice as the
// tax item it adjusts but is dated at the invoice whose creation triggered
// it.
func (s *taxService) buildAdjustmentForTaxItem(ctx context.Context, taxItemToAdjust *invoice.InvoiceItem, date time.Time, adjustmentAmount decimal.Decimal, description string) (*invoice.InvoiceItem, error) {
	if !taxItemToAdjust.Type.IsTax() {
		return nil, ierr.NewError("cannot adjust a non tax item").
			WithHintf("Item %s is of type %s, not a tax item", taxItemToAdjust.ID, taxItemToAdjust.Type).
			Mark(ierr.ErrInvalidOperation)
	}
	if adjustmentAmount.IsZero() {
		return nil, nil
	}

	linkedItemID := taxItemToAdjust.ID
	return &invoice.InvoiceItem{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:    taxItemToAdjust.InvoiceID,
		Type:         types.InvoiceItemTypeAdjustment,
		Amount:       adjustmentAmount,
		LinkedItemID: &linkedItemID,
		Description:  description,
		Date:         date,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}, nil
}
