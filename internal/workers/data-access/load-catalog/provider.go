// internal/workers/data-access/load-catalog/provider.go
package loadcatalog

import (
	"context"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/patrickmn/go-cache"
)

// Provider caches catalogs per shop in memory. Cached slices are shared;
// the pipeline never mutates products.
type Provider struct {
	source Source
	cache  *cache.Cache
	logger logger.Logger
}

func NewProvider(source Source, ttl time.Duration, log logger.Logger) *Provider {
	return &Provider{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		logger: log,
	}
}

// LoadCatalog returns the cached or freshly fetched catalog.
func (p *Provider) LoadCatalog(ctx context.Context, shopID string) ([]models.Product, error) {
	products, _, err := p.load(ctx, shopID, false)
	return products, err
}

func (p *Provider) load(ctx context.Context, shopID string, refresh bool) ([]models.Product, bool, error) {
	if !refresh {
		if cached, found := p.cache.Get(shopID); found {
			return cached.([]models.Product), true, nil
		}
	}

	start := time.Now()
	products, err := p.source.Fetch(ctx, shopID)
	if err != nil {
		return nil, false, err
	}
	products = models.SanitizeCatalog(products)

	p.cache.Set(shopID, products, cache.DefaultExpiration)
	p.logger.Debug("catalog loaded", map[string]interface{}{
		"shopId":     shopID,
		"source":     p.source.Name(),
		"products":   len(products),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return products, false, nil
}

// Invalidate drops a shop's cached catalog.
func (p *Provider) Invalidate(shopID string) {
	p.cache.Delete(shopID)
}
