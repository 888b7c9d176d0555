// internal/workers/sales/decide-sales-policy/models.go
package decidesalespolicy

import "sales-workers/internal/models"

type Signals struct {
	Text              string                 `json:"text"`
	Intent            models.Intent          `json:"intent"`
	Recommended       []models.Product       `json:"recommended"`
	Budget            models.ParsedBudget    `json:"budget"`
	PriceRangeNoMatch bool                   `json:"priceRangeNoMatch"`
	PriceRangeInfo    *models.PriceRangeInfo `json:"priceRangeInfo,omitempty"`
	UnknownTerms      []string               `json:"unknownTerms,omitempty"`
	Category          string                 `json:"category,omitempty"`
	// CategoryFromContext marks a category carried over from an earlier
	// turn rather than named in this one.
	CategoryFromContext bool `json:"categoryFromContext,omitempty"`
	Cheapest            bool `json:"cheapest,omitempty"`
}

type Input struct {
	Signals
}

type Output struct {
	Decision models.SalesDecision `json:"salesDecision"`
}
