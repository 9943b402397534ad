package repository

import (
	"context"

	"github.com/flexprice/taxengine/internal/cache"
	"github.com/flexprice/taxengine/internal/config"
	"github.com/flexprice/taxengine/internal/domain/catalog"
)

// configCatalogRepository serves the catalog from configuration. Entries are
// cached; the cache TTL is the reload boundary for catalog changes.
type configCatalogRepository struct {
	cfg   *config.Configuration
	cache cache.Cache
}

// NewConfigCatalogRepository builds a catalog repository backed by the
// catalog section of the configuration.
func NewConfigCatalogRepository(cfg *config.Configuration, c cache.Cache) catalog.Repository {
	return &configCatalogRepository{
		cfg:   cfg,
		cache: c,
	}
}

func (r *configCatalogRepository) Current(ctx context.Context) (*catalog.Catalog, error) {
	key := cache.GenerateKey(cache.PrefixCatalog, "current")
	if cached, found := r.cache.Get(ctx, key); found {
		if cat, ok := cached.(*catalog.Catalog); ok {
			return cat, nil
		}
	}

	plans := make(map[string]catalog.Product, len(r.cfg.Catalog.Plans))
	for planName, productName := range r.cfg.Catalog.Plans {
		plans[planName] = catalog.Product{Name: productName}
	}
	cat := &catalog.Catalog{Plans: plans}

	r.cache.Set(ctx, key, cat, cache.DefaultExpiration)
	return cat, nil
}
