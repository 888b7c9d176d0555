// internal/workers/sales/compose-reply/models.go
package composereply

import "sales-workers/internal/models"

// Scenario names the template a reply was rendered from.
type Scenario string

const (
	ScenarioEmptyCatalog    Scenario = "empty_catalog"
	ScenarioGreeting        Scenario = "greeting"
	ScenarioOffTopic        Scenario = "off_topic"
	ScenarioDelivery        Scenario = "delivery"
	ScenarioReturns         Scenario = "returns"
	ScenarioPriceRange      Scenario = "price_range_no_match"
	ScenarioAboveBudget     Scenario = "above_budget"
	ScenarioMissingCategory Scenario = "missing_category"
	ScenarioUnknownCode     Scenario = "unknown_code"
	ScenarioAskBudget       Scenario = "ask_budget"
	ScenarioObjection       Scenario = "objection"
	ScenarioClarification   Scenario = "clarification"
	ScenarioExplanation     Scenario = "explanation"
	ScenarioMostExpensive   Scenario = "most_expensive"
	ScenarioNoResults       Scenario = "no_results"
	ScenarioBudgetOnly      Scenario = "budget_only"
	ScenarioCategoryOnly    Scenario = "category_only"
	ScenarioPremium         Scenario = "premium"
	ScenarioBargain         Scenario = "bargain"
	ScenarioGift            Scenario = "gift"
	ScenarioSingle          Scenario = "single"
	ScenarioFew             Scenario = "few"
	ScenarioMany            Scenario = "many"
)

// Params is everything the composer may mention. Zero values mean "not
// applicable".
type Params struct {
	Text        string           `json:"text"`
	Intent      models.Intent    `json:"intent"`
	Recommended []models.Product `json:"recommended"`
	Category    string           `json:"category,omitempty"`

	Budget         models.ParsedBudget `json:"budget"`
	AttributeTerms []string            `json:"attributeTerms,omitempty"`

	ExplanationMode models.ExplanationMode `json:"explanationMode,omitempty"`
	MostExpensive   bool                   `json:"mostExpensive,omitempty"`

	AiTrigger    *models.AiTrigger `json:"aiTrigger,omitempty"`
	AskForBudget bool              `json:"askForBudget,omitempty"`

	PriceRangeNoMatch   bool                   `json:"priceRangeNoMatch,omitempty"`
	PriceRangeInfo      *models.PriceRangeInfo `json:"priceRangeInfo,omitempty"`
	MissingCategoryHint string                 `json:"missingCategoryHint,omitempty"`

	SalesDecision models.SalesDecision `json:"salesDecision"`

	EmptyCatalog bool `json:"emptyCatalog,omitempty"`
	Greeting     bool `json:"greeting,omitempty"`
	OffTopic     bool `json:"offTopic,omitempty"`

	ReplyMode  models.ReplyMode       `json:"replyMode,omitempty"`
	StoreFacts map[string]interface{} `json:"storeFacts,omitempty"`

	// SnippetLength defaults to 140 runes.
	SnippetLength int `json:"-"`
}

type Reply struct {
	Text     string   `json:"replyText"`
	Scenario Scenario `json:"scenario"`
}

type Input struct {
	Params
}

type Output struct {
	Reply
}
