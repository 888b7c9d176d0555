package decideaitrigger

import (
	"context"
	"testing"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		signals        Signals
		validateOutput func(t *testing.T, d Decision)
	}{
		{
			name:    "empty catalog",
			signals: Signals{Text: "Hallo"},
			validateOutput: func(t *testing.T, d Decision) {
				require.NotNil(t, d.Trigger)
				assert.Equal(t, models.ReasonEmptyCatalog, d.Trigger.Reason)
			},
		},
		{
			name: "budget smalltalk is answered by rules",
			signals: Signals{Text: "Ich habe ein kleines Budget.", CatalogSize: 10,
				Budget: models.ParsedBudget{HasBudgetWord: true, IsAmbiguous: true}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, NoTrigger, d.Outcome)
				assert.Equal(t, "budget_smalltalk", d.Rule)
				assert.True(t, d.AskForBudget)
				assert.Nil(t, d.Trigger)
			},
		},
		{
			name: "budget word without amount",
			signals: Signals{Text: "Was geht mit meinem Budget?", CatalogSize: 10,
				Budget: models.ParsedBudget{HasBudgetWord: true, IsAmbiguous: true}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, "budget_without_amount", d.Rule)
				assert.True(t, d.AskForBudget)
			},
		},
		{
			name:    "unknown product code",
			signals: Signals{Text: "Habt ihr XY9000Z?", CatalogSize: 10, CodeTerm: "xy9000z", UnknownTerms: []string{"xy9000z"}, RecommendedCount: 4},
			validateOutput: func(t *testing.T, d Decision) {
				require.NotNil(t, d.Trigger)
				assert.Equal(t, models.ReasonUnknownProductCodeOnly, d.Trigger.Reason)
				assert.Equal(t, "xy9000z", d.Trigger.CodeTerm)
				assert.Empty(t, d.Trigger.UnknownTerms)
				assert.True(t, d.ClearRecommendations)
				assert.Equal(t, "Habt ihr XY9000Z?", d.Trigger.QueryForAi)
			},
		},
		{
			name:    "code explained by alias",
			signals: Signals{CatalogSize: 10, CodeTerm: "abcdfg", CodeExplained: true, RecommendedCount: 2},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, NoTrigger, d.Outcome)
			},
		},
		{
			name:    "category word is no code",
			signals: Signals{CatalogSize: 10, CodeTerm: "snowboards", Category: "snowboard", RecommendedCount: 2},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, NoTrigger, d.Outcome)
			},
		},
		{
			name: "code in budget query",
			signals: Signals{CatalogSize: 10, CodeTerm: "ab12", HasNumber: true, RecommendedCount: 2,
				Budget: models.ParsedBudget{HasBudgetWord: true, MaxPrice: models.Float(50)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, "unknown_term_with_budget", d.Rule)
				require.NotNil(t, d.Trigger)
				assert.Equal(t, "ab12", d.Trigger.CodeTerm)
				assert.False(t, d.ClearRecommendations)
			},
		},
		{
			name: "filler words with budget are not unknown",
			signals: Signals{Text: "Ich habe nur 5 Euro", CatalogSize: 10, UnknownTerms: []string{"ich", "habe", "nur"}, RecommendedCount: 3, HasNumber: true,
				Budget: models.ParsedBudget{HasBudgetWord: true, MaxPrice: models.Float(5)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.NotEqual(t, "unknown_term_with_budget", d.Rule)
				assert.Nil(t, d.Trigger)
			},
		},
		{
			name:    "no results with unknown keywords",
			signals: Signals{CatalogSize: 10, UnknownTerms: []string{"ich", "quixotik"}},
			validateOutput: func(t *testing.T, d Decision) {
				require.NotNil(t, d.Trigger)
				assert.Equal(t, models.ReasonNoResultsWithUnknownKeywords, d.Trigger.Reason)
				assert.Equal(t, []string{"quixotik"}, d.Trigger.UnknownTerms)
			},
		},
		{
			name:    "low confidence with results",
			signals: Signals{CatalogSize: 10, UnknownTerms: []string{"quixotik"}, RecommendedCount: 3},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, models.ReasonLowConfidenceUnknownTerms, d.Trigger.Reason)
			},
		},
		{
			name:    "low confidence wins over many unknown terms",
			signals: Signals{CatalogSize: 10, UnknownTerms: []string{"aaa", "bbb", "ccc"}, RecommendedCount: 2},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, models.ReasonLowConfidenceUnknownTerms, d.Trigger.Reason)
				assert.Len(t, d.Trigger.UnknownTerms, 3)
			},
		},
		{
			name: "low confidence wins over unknown term with budget",
			signals: Signals{CatalogSize: 10, UnknownTerms: []string{"quixotik"}, RecommendedCount: 3, HasNumber: true,
				Budget: models.ParsedBudget{MaxPrice: models.Float(50)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, models.ReasonLowConfidenceUnknownTerms, d.Trigger.Reason)
			},
		},
		{
			name: "high budget with results stays rule based",
			signals: Signals{CatalogSize: 10, UnknownTerms: []string{"aaa", "bbb", "ccc"}, RecommendedCount: 3, HasNumber: true,
				Budget: models.ParsedBudget{MaxPrice: models.Float(1500)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, NoTrigger, d.Outcome)
				assert.Empty(t, d.Rule)
			},
		},
		{
			name:    "price range no match",
			signals: Signals{CatalogSize: 10, PriceRangeNoMatch: true, HasNumber: true, Budget: models.ParsedBudget{MinPrice: models.Float(5000)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, models.ReasonPriceRangeNoMatch, d.Trigger.Reason)
			},
		},
		{
			name:    "budget only with small budget and nothing found",
			signals: Signals{CatalogSize: 10, BudgetOnly: true, HasNumber: true, Budget: models.ParsedBudget{MaxPrice: models.Float(3), HasBudgetWord: true}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, models.ReasonBudgetOnlyLowBudget, d.Trigger.Reason)
			},
		},
		{
			name: "very low budget answered with pricier products",
			signals: Signals{CatalogSize: 10, BudgetOnly: true, HasNumber: true, RecommendedCount: 3, PriceRangeNoMatch: true,
				Budget: models.ParsedBudget{MaxPrice: models.Float(10)}},
			validateOutput: func(t *testing.T, d Decision) {
				require.NotNil(t, d.Trigger)
				assert.Equal(t, models.ReasonBudgetOnlyLowBudget, d.Trigger.Reason)
			},
		},
		{
			name: "moderate budget without match is a price range problem",
			signals: Signals{CatalogSize: 10, BudgetOnly: true, HasNumber: true, RecommendedCount: 3, PriceRangeNoMatch: true,
				Budget: models.ParsedBudget{MaxPrice: models.Float(900)}},
			validateOutput: func(t *testing.T, d Decision) {
				require.NotNil(t, d.Trigger)
				assert.Equal(t, models.ReasonPriceRangeNoMatch, d.Trigger.Reason)
			},
		},
		{
			name: "very low budget with category is no budget only query",
			signals: Signals{CatalogSize: 10, BudgetOnly: true, HasNumber: true, PriceRangeNoMatch: true, RecommendedCount: 2,
				Category: "snowboard", Budget: models.ParsedBudget{MaxPrice: models.Float(10)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, "price_range_no_match", d.Rule)
			},
		},
		{
			name:    "budget only with results",
			signals: Signals{CatalogSize: 10, BudgetOnly: true, HasNumber: true, RecommendedCount: 2, Budget: models.ParsedBudget{MaxPrice: models.Float(50)}},
			validateOutput: func(t *testing.T, d Decision) {
				assert.Equal(t, NoTrigger, d.Outcome)
				assert.Empty(t, d.Rule)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.signals)
			tt.validateOutput(t, d)
			if d.Trigger != nil {
				assert.True(t, d.Trigger.Reason.Valid())
				assert.Equal(t, Triggered, d.Outcome)
			}
		})
	}
}

func TestRuleNames_Ordered(t *testing.T) {
	assert.Equal(t, []string{
		"empty_catalog",
		"budget_smalltalk",
		"budget_without_amount",
		"unknown_product_code",
		"no_results_with_unknown_keywords",
		"low_confidence_unknown_terms",
		"many_unknown_terms",
		"unknown_term_with_budget",
		"price_range_no_match",
		"budget_only_low_budget",
	}, RuleNames())
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second, HighBudgetThreshold: 100}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Signals: Signals{
		CatalogSize: 5, UnknownTerms: []string{"quixotik"}, RecommendedCount: 1, HasNumber: true,
		Budget: models.ParsedBudget{MaxPrice: models.Float(150)},
	}})
	require.NoError(t, err)
	assert.Equal(t, NoTrigger, out.Outcome)
}

func TestHandler_Execute_LowBudgetThreshold(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second, HighBudgetThreshold: 1000, LowBudgetThreshold: 50}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Signals: Signals{
		CatalogSize: 5, BudgetOnly: true, HasNumber: true, RecommendedCount: 2, PriceRangeNoMatch: true,
		Budget: models.ParsedBudget{MaxPrice: models.Float(40)},
	}})
	require.NoError(t, err)
	require.NotNil(t, out.Trigger)
	assert.Equal(t, models.ReasonBudgetOnlyLowBudget, out.Trigger.Reason)
}
