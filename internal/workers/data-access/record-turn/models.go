// internal/workers/data-access/record-turn/models.go
package recordturn

import "sales-workers/internal/models"

type Input struct {
	TurnID         string        `json:"turnId,omitempty"`
	ShopID         string        `json:"shopId"`
	ConversationID string        `json:"conversationId,omitempty"`
	Text           string        `json:"text"`
	Intent         models.Intent `json:"intent"`
	Action         string        `json:"action"`
	AIReason       string        `json:"aiReason,omitempty"`
	Recommended    []string      `json:"recommended,omitempty"`
}

type Output struct {
	TurnID   string `json:"turnId"`
	Recorded bool   `json:"recorded"`
}
