package service

import (
	"sync"

	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/taxcode"
	ierr "github.com/flexprice/taxengine/internal/errors"
)

// TaxResolver picks the single applicable tax code for a taxable item among
// its candidate codes. Implementations are instantiated once per
// computation with the computation context as their sole input, so country
// or regime specific logic can consult account, invoice and configuration
// state. Returning nil means no tax applies.
type TaxResolver interface {
	ApplicableCodeForItem(candidates []*taxcode.TaxCode, item *invoice.InvoiceItem) *taxcode.TaxCode
}

// ResolverFactory builds a TaxResolver for one computation context.
type ResolverFactory func(*TaxComputationContext) (TaxResolver, error)

// ResolverNull is the registry key of the fail-safe resolver.
const ResolverNull = "null"

var (
	resolverMu       sync.RWMutex
	resolverRegistry = map[string]ResolverFactory{}
)

// RegisterResolver registers a resolver factory under a configuration key.
// Deployments register their regime-specific resolvers at startup and
// select one with the tax.resolver configuration value.
func RegisterResolver(key string, factory ResolverFactory) error {
	resolverMu.Lock()
	defer resolverMu.Unlock()

	if _, exists := resolverRegistry[key]; exists {
		return ierr.NewError("resolver already registered").
			WithHintf("A tax resolver is already registered under key %s", key).
			Mark(ierr.ErrAlreadyExists)
	}
	resolverRegistry[key] = factory
	return nil
}

func resolverFactory(key string) (ResolverFactory, bool) {
	resolverMu.RLock()
	defer resolverMu.RUnlock()
	factory, ok := resolverRegistry[key]
	return factory, ok
}

// NullTaxResolver is the fail-safe resolver: it never resolves a tax code,
// so reconciliation degrades to "no tax" instead of aborting.
type NullTaxResolver struct{}

// NewNullTaxResolver builds the null resolver. The context is accepted for
// factory signature uniformity and ignored.
func NewNullTaxResolver(_ *TaxComputationContext) (TaxResolver, error) {
	return &NullTaxResolver{}, nil
}

func (r *NullTaxResolver) ApplicableCodeForItem(_ []*taxcode.TaxCode, _ *invoice.InvoiceItem) *taxcode.TaxCode {
	return nil
}

// FixedRateTaxResolver picks the first candidate code. It suits deployments
// with a single code per product where no regime-specific choice is needed.
type FixedRateTaxResolver struct{}

// ResolverFixedRate is the registry key of the first-candidate resolver.
const ResolverFixedRate = "fixed_rate"

// NewFixedRateTaxResolver builds the first-candidate resolver.
func NewFixedRateTaxResolver(_ *TaxComputationContext) (TaxResolver, error) {
	return &FixedRateTaxResolver{}, nil
}

func (r *FixedRateTaxResolver) ApplicableCodeForItem(candidates []*taxcode.TaxCode, _ *invoice.InvoiceItem) *taxcode.TaxCode {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

func init() {
	// Built-in resolvers. Registration cannot collide at init time.
	_ = RegisterResolver(ResolverNull, NewNullTaxResolver)
	_ = RegisterResolver(ResolverFixedRate, NewFixedRateTaxResolver)
}
