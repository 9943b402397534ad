package taxcode

import (
	"github.com/flexprice/taxengine/internal/config"
	ierr "github.com/flexprice/taxengine/internal/errors"
	"github.com/shopspring/decimal"
)

// TaxCode defines one named tax: a rate expressed as a decimal fraction and
// the description used for tax items created from it. Tax codes come from
// configuration and are immutable.
type TaxCode struct {
	Name               string          `json:"name"`
	Rate               decimal.Decimal `json:"rate"`
	TaxItemDescription string          `json:"tax_item_description"`
}

// FromConfig converts one configured tax code definition.
func FromConfig(c config.TaxCodeConfig) (*TaxCode, error) {
	rate, err := decimal.NewFromString(c.Rate)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Tax code %s has an invalid rate %q", c.Name, c.Rate).
			Mark(ierr.ErrValidation)
	}
	return &TaxCode{
		Name:               c.Name,
		Rate:               rate,
		TaxItemDescription: c.ItemDescription,
	}, nil
}

// FromConfigList converts all configured tax code definitions into a lookup
// by name.
func FromConfigList(cfgs []config.TaxCodeConfig) (map[string]*TaxCode, error) {
	codes := make(map[string]*TaxCode, len(cfgs))
	for _, c := range cfgs {
		code, err := FromConfig(c)
		if err != nil {
			return nil, err
		}
		if _, exists := codes[code.Name]; exists {
			return nil, ierr.NewError("duplicate tax code name").
				WithHintf("Tax code %s is defined more than once", code.Name).
				Mark(ierr.ErrValidation)
		}
		codes[code.Name] = code
	}
	return codes, nil
}
