// internal/workers/sales/process-turn/models.go
package processturn

import (
	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"
	resolvealiases "sales-workers/internal/workers/sales/resolve-aliases"
)

// Request is one utterance with everything needed to answer it.
type Request struct {
	Text                string
	CurrentIntent       models.Intent
	Catalog             []models.Product
	Plan                models.Plan
	PreviousRecommended []models.Product
	Context             *models.ConversationContext

	// StaticAliases replaces the embedded alias table when set.
	StaticAliases resolvealiases.Table
	// ShopAliases are the aliases persisted for the shop. They are merged
	// with the context's dynamic aliases for this turn only.
	ShopAliases map[string][]string

	Options Options
}

// Options are tuning values; zero values fall back to the stage defaults.
type Options struct {
	PlanLimits          models.PlanLimitsOverride
	HighBudgetThreshold float64
	LowBudgetThreshold  float64
	KeywordCap          int
	AboveBudget         int
	SnippetLength       int
}

type Input struct {
	ShopID              string                      `json:"shopId"`
	ConversationID      string                      `json:"conversationId,omitempty"`
	Text                string                      `json:"text"`
	CurrentIntent       models.Intent               `json:"currentIntent,omitempty"`
	Plan                models.Plan                 `json:"plan,omitempty"`
	PreviousRecommended []models.Product            `json:"previousRecommended,omitempty"`
	Context             *models.ConversationContext `json:"context,omitempty"`
	// Catalog skips the catalog provider when given inline.
	Catalog []models.Product `json:"catalog,omitempty"`
}

type Output struct {
	TurnID         string `json:"turnId"`
	ShopID         string `json:"shopId"`
	ConversationID string `json:"conversationId,omitempty"`
	models.TurnResult
}

type ServiceDependencies struct {
	Logger    logger.Logger
	Catalog   CatalogProvider
	Aliases   AliasStore
	Plans     PlanResolver
	Recorder  TurnRecorder
	Publisher AIRequestPublisher
}
