// internal/workers/sales/rank-candidates/models.go
package rankcandidates

import "sales-workers/internal/models"

// Params is everything the ranker needs for one turn.
type Params struct {
	Text     string
	Intent   models.Intent
	Catalog  []models.Product
	Category string
	Query    models.ParsedQuery
	Index    models.AttributeIndex
	// Terms are the core query terms plus the catalog words aliases
	// resolved to.
	Terms         []string
	Budget        models.ParsedBudget
	Limit         int
	KeywordCap    int
	AboveBudget   int
	MostExpensive bool
	Cheapest      bool
}

// Step records what one filter stage did to the candidate set.
type Step struct {
	Name    string `json:"name"`
	Before  int    `json:"before"`
	After   int    `json:"after"`
	Skipped bool   `json:"skipped,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type Result struct {
	Products          []models.Product       `json:"products"`
	PriceRangeNoMatch bool                   `json:"priceRangeNoMatch"`
	PriceRangeInfo    *models.PriceRangeInfo `json:"priceRangeInfo,omitempty"`
	// CandidateCount is the size of the set before the budget stage.
	CandidateCount int    `json:"candidateCount"`
	Steps          []Step `json:"steps"`
}

type Input struct {
	Text          string                `json:"text"`
	Intent        models.Intent         `json:"intent"`
	Catalog       []models.Product      `json:"catalog"`
	Category      string                `json:"category,omitempty"`
	Query         models.ParsedQuery    `json:"query"`
	Index         models.AttributeIndex `json:"index"`
	Terms         []string              `json:"terms"`
	Budget        models.ParsedBudget   `json:"budget"`
	Plan          models.Plan           `json:"plan"`
	MostExpensive bool                  `json:"mostExpensive,omitempty"`
	Cheapest      bool                  `json:"cheapest,omitempty"`
}

type Output struct {
	Result
}
