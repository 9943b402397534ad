package tag

import (
	"context"
)

type Repository interface {
	// Get returns the tag with the given field name on the given object,
	// or ErrNotFound.
	Get(ctx context.Context, fieldName, objectID string) (*Tag, error)
	// Create persists a new tag. Creating a second tag with the same field
	// name and object id fails with ErrAlreadyExists.
	Create(ctx context.Context, tag *Tag) error
	// Upsert replaces the value of the tag, creating it when absent. Used
	// by the manual tax code resource surface, never by the engine.
	Upsert(ctx context.Context, tag *Tag) error
	// ListByAccountItems returns every tag attached to invoice items of the
	// given account.
	ListByAccountItems(ctx context.Context, accountID string) ([]*Tag, error)
}
