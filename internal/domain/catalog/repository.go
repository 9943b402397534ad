package catalog

import (
	"context"
)

type Repository interface {
	// Current returns the current catalog.
	Current(ctx context.Context) (*Catalog, error)
}
