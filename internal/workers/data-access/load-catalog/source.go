// internal/workers/data-access/load-catalog/source.go
package loadcatalog

import (
	"context"

	"sales-workers/internal/models"
)

// Source fetches a shop's products from a backing store.
type Source interface {
	Name() string
	Fetch(ctx context.Context, shopID string) ([]models.Product, error)
}
