package service

import (
	"context"
	"strings"

	"github.com/flexprice/taxengine/internal/config"
	"github.com/flexprice/taxengine/internal/domain/catalog"
	"github.com/flexprice/taxengine/internal/domain/invoice"
	"github.com/flexprice/taxengine/internal/domain/tag"
	"github.com/flexprice/taxengine/internal/domain/taxcode"
	"github.com/samber/lo"
)

// TaxCodesSeparator joins tax code names in a tag value. Stable: changing
// it breaks every persisted tag.
const TaxCodesSeparator = ","

// TaxCodeDirectory maps configured classifiers to candidate tax codes and
// parses the tax codes recorded against invoice items as tags. One
// directory is scoped to one computation context: its tag snapshot is
// frozen and its catalog is fetched lazily, at most once.
type TaxCodeDirectory struct {
	codes      map[string]*taxcode.TaxCode
	products   map[string][]string
	tagsByItem map[string]*tag.Tag
	getCatalog func(context.Context) (*catalog.Catalog, error)
}

// NewTaxCodeDirectory builds a directory over the configured tax codes and
// the given tag snapshot.
func NewTaxCodeDirectory(cfg config.TaxConfig, tags []*tag.Tag, getCatalog func(context.Context) (*catalog.Catalog, error)) (*TaxCodeDirectory, error) {
	codes, err := taxcode.FromConfigList(cfg.Codes)
	if err != nil {
		return nil, err
	}

	tagsByItem := make(map[string]*tag.Tag, len(tags))
	for _, t := range tags {
		if t.FieldName == tag.TaxCodesFieldName {
			tagsByItem[t.ObjectID] = t
		}
	}

	return &TaxCodeDirectory{
		codes:      codes,
		products:   cfg.Products,
		tagsByItem: tagsByItem,
		getCatalog: getCatalog,
	}, nil
}

// CodeByName returns the configured tax code with the given name.
func (d *TaxCodeDirectory) CodeByName(name string) (*taxcode.TaxCode, bool) {
	code, ok := d.codes[name]
	return code, ok
}

// HasTag reports whether the given invoice item already carries a tax codes
// tag, whatever its value.
func (d *TaxCodeDirectory) HasTag(itemID string) bool {
	_, ok := d.tagsByItem[itemID]
	return ok
}

// ResolveCandidatesFromConfig returns, for each taxable item of the
// invoice, the configured candidate tax codes for the item's product.
// Items whose plan is not in the catalog, or whose product has no
// configured codes, are absent from the result. The catalog is fetched on
// first use and cached for the directory's lifetime.
func (d *TaxCodeDirectory) ResolveCandidatesFromConfig(ctx context.Context, inv *invoice.Invoice) (map[string][]*taxcode.TaxCode, error) {
	candidates := make(map[string][]*taxcode.TaxCode)

	var cat *catalog.Catalog
	for _, item := range inv.Items {
		if !item.Type.IsTaxable() || item.PlanName == "" {
			continue
		}

		if cat == nil {
			var err error
			cat, err = d.getCatalog(ctx)
			if err != nil {
				return nil, err
			}
		}

		product, ok := cat.ProductForPlan(item.PlanName)
		if !ok {
			continue
		}
		codes := d.codesByName(d.products[product.Name])
		if len(codes) > 0 {
			candidates[item.ID] = codes
		}
	}
	return candidates, nil
}

// FindExistingTaxCodes returns, for each item of the invoice that carries a
// tax codes tag, the named tax codes parsed from its value in tag order.
// Names not present in the configuration are skipped silently: that is
// configuration drift, not an error.
func (d *TaxCodeDirectory) FindExistingTaxCodes(inv *invoice.Invoice) map[string][]*taxcode.TaxCode {
	existing := make(map[string][]*taxcode.TaxCode)
	for _, item := range inv.Items {
		t, ok := d.tagsByItem[item.ID]
		if !ok {
			continue
		}
		codes := d.codesByName(SplitTaxCodes(t.FieldValue))
		if len(codes) > 0 {
			existing[item.ID] = codes
		}
	}
	return existing
}

func (d *TaxCodeDirectory) codesByName(names []string) []*taxcode.TaxCode {
	return lo.FilterMap(names, func(name string, _ int) (*taxcode.TaxCode, bool) {
		code, ok := d.codes[name]
		return code, ok
	})
}

// SplitTaxCodes parses a tag value into tax code names, discarding empty
// tokens and preserving order.
func SplitTaxCodes(value string) []string {
	parts := strings.Split(value, TaxCodesSeparator)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// JoinTaxCodes serializes tax code names into a tag value.
func JoinTaxCodes(names []string) string {
	return strings.Join(names, TaxCodesSeparator)
}
