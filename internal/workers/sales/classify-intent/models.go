// internal/workers/sales/classify-intent/models.go
package classifyintent

import "sales-workers/internal/models"

type Input struct {
	Text          string        `json:"text"`
	CurrentIntent models.Intent `json:"currentIntent"`
}

type Output struct {
	Intent          models.Intent          `json:"intent"`
	ExplanationMode models.ExplanationMode `json:"explanationMode,omitempty"`
	MostExpensive   bool                   `json:"mostExpensive"`
	Cheapest        bool                   `json:"cheapest"`
}
