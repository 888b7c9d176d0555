// internal/models/records.go
package models

import "time"

// TurnRecord is the persisted summary of one processed turn.
type TurnRecord struct {
	ID             string    `json:"id"`
	ShopID         string    `json:"shopId"`
	ConversationID string    `json:"conversationId,omitempty"`
	Text           string    `json:"text"`
	Intent         Intent    `json:"intent"`
	Action         string    `json:"action"`
	AIReason       string    `json:"aiReason,omitempty"`
	RecommendedIDs []string  `json:"recommended"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewTurnRecord summarizes a turn result for the turn log.
func NewTurnRecord(id, shopID, conversationID, text string, result TurnResult, at time.Time) TurnRecord {
	rec := TurnRecord{
		ID:             id,
		ShopID:         shopID,
		ConversationID: conversationID,
		Text:           text,
		Intent:         result.Intent,
		Action:         string(result.SalesDecision.PrimaryAction),
		RecommendedIDs: ProductIDs(result.Recommended),
		CreatedAt:      at.UTC(),
	}
	if result.AiTrigger != nil && result.AiTrigger.NeedsAiHelp {
		rec.AIReason = string(result.AiTrigger.Reason)
	}
	if rec.RecommendedIDs == nil {
		rec.RecommendedIDs = []string{}
	}
	return rec
}

// AIRequest is published when a turn needs outside help with vocabulary.
type AIRequest struct {
	ShopID         string          `json:"shopId"`
	ConversationID string          `json:"conversationId,omitempty"`
	Reason         AiTriggerReason `json:"reason"`
	UnknownTerms   []string        `json:"unknownTerms,omitempty"`
	CodeTerm       string          `json:"codeTerm,omitempty"`
	QueryForAi     string          `json:"queryForAi,omitempty"`
}

// NewAIRequest returns nil when the trigger does not ask for help.
func NewAIRequest(shopID, conversationID string, trigger *AiTrigger) *AIRequest {
	if trigger == nil || !trigger.NeedsAiHelp {
		return nil
	}
	return &AIRequest{
		ShopID:         shopID,
		ConversationID: conversationID,
		Reason:         trigger.Reason,
		UnknownTerms:   trigger.UnknownTerms,
		CodeTerm:       trigger.CodeTerm,
		QueryForAi:     trigger.QueryForAi,
	}
}
