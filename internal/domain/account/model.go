package account

import (
	"github.com/flexprice/taxengine/internal/types"
)

// Account is the billing account that owns a set of invoices.
type Account struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Currency  string `db:"currency" json:"currency"`
	Country   string `db:"country" json:"country"`
	VATNumber string `db:"vat_number" json:"vat_number"`

	types.BaseModel
}
