// internal/workers/sales/process-turn/collaborators.go
package processturn

import (
	"context"

	"sales-workers/internal/models"
)

// CatalogProvider loads the products of a shop.
type CatalogProvider interface {
	LoadCatalog(ctx context.Context, shopID string) ([]models.Product, error)
}

// AliasStore holds the aliases learned for a shop.
type AliasStore interface {
	Load(ctx context.Context, shopID string) (map[string][]string, error)
	Save(ctx context.Context, shopID, alias string, terms []string) error
}

type TurnRecorder interface {
	Record(ctx context.Context, record models.TurnRecord) error
}

type AIRequestPublisher interface {
	Publish(ctx context.Context, request models.AIRequest) error
}

type PlanResolver interface {
	ResolvePlan(ctx context.Context, shopID string) (models.Plan, error)
}
