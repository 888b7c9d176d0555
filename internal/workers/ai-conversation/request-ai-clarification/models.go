// internal/workers/ai-conversation/request-ai-clarification/models.go
package requestaiclarification

import (
	"context"

	"sales-workers/internal/models"
)

type Input struct {
	ShopID         string            `json:"shopId"`
	ConversationID string            `json:"conversationId,omitempty"`
	AiTrigger      *models.AiTrigger `json:"aiTrigger"`
}

type Output struct {
	Clarification  string              `json:"clarification,omitempty"`
	LearnedAliases map[string][]string `json:"learnedAliases,omitempty"`
	Skipped        bool                `json:"skipped"`
}

// clarifyResponse is the body returned by POST /api/ai/clarify.
type clarifyResponse struct {
	Clarification string              `json:"clarification"`
	Aliases       map[string][]string `json:"aliases"`
}

// AliasSaver persists mappings returned by the clarification service.
type AliasSaver interface {
	Save(ctx context.Context, shopID, alias string, terms []string) error
}
