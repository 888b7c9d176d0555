// internal/workers/data-access/load-catalog/models.go
package loadcatalog

import "sales-workers/internal/models"

type Input struct {
	ShopID string `json:"shopId"`
	// Refresh bypasses the cache.
	Refresh bool `json:"refresh,omitempty"`
}

type Output struct {
	ShopID   string           `json:"shopId"`
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
	Source   string           `json:"source"`
	Cached   bool             `json:"cached"`
}
