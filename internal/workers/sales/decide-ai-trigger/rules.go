// internal/workers/sales/decide-ai-trigger/rules.go
package decideaitrigger

import (
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

// Rule returns a decision when it applies. Rules run in order and the first
// one that applies wins.
type Rule struct {
	Name  string
	Apply func(s *Signals, unknown []string) (Decision, bool)
}

var rules = []Rule{
	{Name: "empty_catalog", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if s.CatalogSize > 0 {
			return Decision{}, false
		}
		return triggered(models.ReasonEmptyCatalog, s, nil), true
	}},
	{Name: "budget_smalltalk", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if s.HasNumber || !textnorm.ContainsAny(s.Text, lexicon.BudgetSmalltalk) {
			return Decision{}, false
		}
		return Decision{Outcome: NoTrigger, AskForBudget: true}, true
	}},
	{Name: "budget_without_amount", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if !s.Budget.IsAmbiguous || !s.Budget.HasBudgetWord || s.HasNumber || s.Category != "" {
			return Decision{}, false
		}
		return Decision{Outcome: NoTrigger, AskForBudget: true}, true
	}},
	{Name: "unknown_product_code", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if s.CodeTerm == "" || s.CodeInCatalog || s.CodeExplained || s.BudgetOnly || s.Budget.HasBudgetWord {
			return Decision{}, false
		}
		if isCategoryCode(s.CodeTerm, s.Category, s.MatchedCategories) {
			return Decision{}, false
		}
		d := triggered(models.ReasonUnknownProductCodeOnly, s, nil)
		d.Trigger.CodeTerm = s.CodeTerm
		d.ClearRecommendations = !s.KeywordsMatched
		return d, true
	}},
	{Name: "no_results_with_unknown_keywords", Apply: func(s *Signals, unknown []string) (Decision, bool) {
		if s.RecommendedCount > 0 || len(unknown) == 0 {
			return Decision{}, false
		}
		return triggered(models.ReasonNoResultsWithUnknownKeywords, s, unknown), true
	}},
	{Name: "low_confidence_unknown_terms", Apply: func(s *Signals, unknown []string) (Decision, bool) {
		if len(unknown) == 0 || s.RecommendedCount == 0 || confidentHighBudget(s) {
			return Decision{}, false
		}
		return triggered(models.ReasonLowConfidenceUnknownTerms, s, unknown), true
	}},
	{Name: "many_unknown_terms", Apply: func(s *Signals, unknown []string) (Decision, bool) {
		if len(unknown) < manyUnknownTerms || confidentHighBudget(s) {
			return Decision{}, false
		}
		return triggered(models.ReasonManyUnknownTerms, s, unknown), true
	}},
	{Name: "unknown_term_with_budget", Apply: func(s *Signals, unknown []string) (Decision, bool) {
		if len(unknown) == 0 && !unresolvedCode(s) {
			return Decision{}, false
		}
		if !s.Budget.HasWindow() && !s.Budget.HasBudgetWord {
			return Decision{}, false
		}
		if confidentHighBudget(s) {
			return Decision{}, false
		}
		d := triggered(models.ReasonUnknownTermWithBudget, s, unknown)
		if unresolvedCode(s) {
			d.Trigger.CodeTerm = s.CodeTerm
		}
		return d, true
	}},
	{Name: "price_range_no_match", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if !s.PriceRangeNoMatch || veryLowBudgetOnly(s) {
			return Decision{}, false
		}
		return triggered(models.ReasonPriceRangeNoMatch, s, nil), true
	}},
	{Name: "budget_only_low_budget", Apply: func(s *Signals, _ []string) (Decision, bool) {
		if !veryLowBudgetOnly(s) || (s.RecommendedCount > 0 && !s.PriceRangeNoMatch) {
			return Decision{}, false
		}
		return triggered(models.ReasonBudgetOnlyLowBudget, s, nil), true
	}},
}

const manyUnknownTerms = 3

func triggered(reason models.AiTriggerReason, s *Signals, unknown []string) Decision {
	return Decision{
		Outcome: Triggered,
		Trigger: &models.AiTrigger{
			NeedsAiHelp:  true,
			Reason:       reason,
			UnknownTerms: unknown,
			QueryForAi:   textnorm.NormalizeUserInput(s.Text),
		},
	}
}

func highBudget(s *Signals) bool {
	threshold := s.HighBudgetThreshold
	if threshold <= 0 {
		threshold = 1000
	}
	return s.Budget.MaxPrice != nil && *s.Budget.MaxPrice >= threshold
}

// confidentHighBudget is a very high budget that already found products.
// Such turns are answered without AI even when some words stayed unknown.
func confidentHighBudget(s *Signals) bool {
	return highBudget(s) && s.RecommendedCount > 0
}

// veryLowBudgetOnly is a plain upper budget below the low threshold with no
// product words and no category, e.g. "Was hast du unter 10 Euro?".
func veryLowBudgetOnly(s *Signals) bool {
	if !s.BudgetOnly || s.Budget.MaxPrice == nil || s.Budget.IsAmbiguous || s.Category != "" {
		return false
	}
	threshold := s.LowBudgetThreshold
	if threshold <= 0 {
		threshold = 20
	}
	return *s.Budget.MaxPrice < threshold
}

// unresolvedCode is a product code that neither the catalog nor an alias
// explains.
func unresolvedCode(s *Signals) bool {
	if s.CodeTerm == "" || s.CodeInCatalog || s.CodeExplained {
		return false
	}
	return !isCategoryCode(s.CodeTerm, s.Category, s.MatchedCategories)
}

// isCategoryCode is true for words like "snowboards" next to the category
// "snowboard".
func isCategoryCode(code, category string, matched []string) bool {
	for _, c := range append([]string{category}, matched...) {
		c = textnorm.Normalize(c)
		if c != "" && (strings.Contains(code, c) || strings.Contains(c, code)) {
			return true
		}
	}
	return false
}

var unknownStopwords = func() map[string]bool {
	set := make(map[string]bool)
	for _, list := range [][]string{lexicon.UnknownAIStopwords, lexicon.BudgetStopwords} {
		for _, w := range list {
			set[w] = true
		}
	}
	return set
}()

// filterUnknown drops trivial words and budget vocabulary.
func filterUnknown(terms []string) []string {
	var out []string
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if textnorm.RuneLen(t) <= 1 || unknownStopwords[t] {
			continue
		}
		out = append(out, t)
	}
	return textnorm.Unique(out)
}
