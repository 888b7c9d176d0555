// internal/workers/infrastructure/resolve-plan/models.go
package resolveplan

import "sales-workers/internal/models"

type Input struct {
	ShopID string `json:"shopId"`
}

type Output struct {
	Plan               models.Plan `json:"plan"`
	MaxRecommendations int         `json:"maxRecommendations"`
	Source             string      `json:"source"`
}

const (
	SourceCache    = "cache"
	SourceDatabase = "database"
	SourceDefault  = "default"
)
