package tag

import (
	"github.com/flexprice/taxengine/internal/types"
)

// TaxCodesFieldName is the fixed field name under which resolved tax code
// names are recorded against an invoice item. Stable: changing it orphans
// every persisted tag.
const TaxCodesFieldName = "taxCodes"

// Tag is a named custom field attached to an invoice item. The tax engine
// uses at most one tag per item to persist the resolved tax code names as a
// comma-joined list; once written it is never overwritten by the engine.
type Tag struct {
	ID         string `db:"id" json:"id"`
	ObjectID   string `db:"object_id" json:"object_id"`
	FieldName  string `db:"field_name" json:"field_name"`
	FieldValue string `db:"field_value" json:"field_value"`

	types.BaseModel
}
