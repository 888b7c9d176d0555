// internal/workers/sales/decide-ai-trigger/models.go
package decideaitrigger

import "sales-workers/internal/models"

// Signals are the facts of one turn the decision looks at.
type Signals struct {
	Text        string              `json:"text"`
	CatalogSize int                 `json:"catalogSize"`
	Budget      models.ParsedBudget `json:"budget"`
	// HasNumber is set when the utterance contains any digit run.
	HasNumber  bool `json:"hasNumber"`
	BudgetOnly bool `json:"budgetOnly"`

	Category          string   `json:"category,omitempty"`
	MatchedCategories []string `json:"matchedCategories,omitempty"`

	CodeTerm        string `json:"codeTerm,omitempty"`
	CodeInCatalog   bool   `json:"codeInCatalog"`
	CodeExplained   bool   `json:"codeExplained"`
	KeywordsMatched bool   `json:"keywordsMatched"`

	UnknownTerms      []string `json:"unknownTerms,omitempty"`
	RecommendedCount  int      `json:"recommendedCount"`
	PriceRangeNoMatch bool     `json:"priceRangeNoMatch"`

	HighBudgetThreshold float64 `json:"highBudgetThreshold,omitempty"`
	LowBudgetThreshold  float64 `json:"lowBudgetThreshold,omitempty"`
}

// Outcome is NoTrigger or Triggered.
type Outcome string

const (
	NoTrigger Outcome = "no_trigger"
	Triggered Outcome = "triggered"
)

// Decision is the result of the first matching rule.
type Decision struct {
	Outcome Outcome           `json:"outcome"`
	Rule    string            `json:"rule,omitempty"`
	Trigger *models.AiTrigger `json:"aiTrigger,omitempty"`
	// ClearRecommendations drops products that only matched by accident,
	// e.g. for an unknown product code.
	ClearRecommendations bool `json:"clearRecommendations,omitempty"`
	// AskForBudget asks the shopper for a concrete amount instead.
	AskForBudget bool `json:"askForBudget,omitempty"`
}

type Input struct {
	Signals
}

type Output struct {
	Decision
}
