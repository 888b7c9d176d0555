// internal/workers/sales/resolve-category/rules.go
package resolvecategory

import (
	"regexp"
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
)

var budgetAmountPattern = regexp.MustCompile(`\d+\s*(euro|eur|€)|(^|\s)(unter|über|ueber|bis|ab|zwischen|von|maximal|mindestens|höchstens)\s*\d+`)

// signals are the per-turn facts override rules look at.
type signals struct {
	normalized   string
	padded       string
	counts       map[string]int
	previous     string
	candidates   []string
	hasBudgetNum bool
}

func (s *signals) hasProducts(slug string) bool {
	return s.counts[slug] > 0
}

func (s *signals) contains(sub string) bool {
	return strings.Contains(s.normalized, sub)
}

func (s *signals) word(phrase string) bool {
	return strings.Contains(s.padded, " "+textnorm.Normalize(phrase)+" ")
}

func (s *signals) anyWord(phrases []string) bool {
	for _, p := range phrases {
		if s.word(p) {
			return true
		}
	}
	return false
}

func (s *signals) firstExisting(slugs ...string) string {
	for _, slug := range slugs {
		if s.hasProducts(slug) {
			return slug
		}
	}
	return ""
}

// OverrideRule forces a category when Match returns a slug. Rules run in
// order and the first one whose target has products wins.
type OverrideRule struct {
	Name  string
	Match func(s *signals) string
}

var strongCategoryHints = []struct {
	slug     string
	keywords []string
}{
	{"snowboard", []string{"snowboard", "snowboards"}},
	{"haushalt", []string{"haushalt", "wasserkocher", "electric kettle", "kettle"}},
	{"elektronik", []string{"elektronik", "electronics", "smartphone", "phone", "handy", "tv", "fernseher"}},
	{"mode", []string{"mode", "fashion", "kleidung", "bekleidung", "jeans", "hose", "t shirt"}},
}

var overrideRules = []OverrideRule{
	{Name: "board_with_budget", Match: func(s *signals) string {
		if s.contains("board") && s.hasBudgetNum && !s.contains("snowboard") {
			return "snowboard"
		}
		return ""
	}},
	{Name: "premium_model_highest_price", Match: func(s *signals) string {
		if s.contains("premium") && s.contains("modell") &&
			(s.word("höchsten preis") || s.word("höchste preis") || s.contains("teuerste")) {
			return "snowboard"
		}
		return ""
	}},
	{Name: "smartphone_family", Match: func(s *signals) string {
		if s.anyWord(lexicon.SmartphoneWords) || (s.contains("phone") && !s.contains("handyvertrag")) {
			return "elektronik"
		}
		return ""
	}},
	{Name: "perfume_family", Match: func(s *signals) string {
		if s.anyWord(lexicon.PerfumeSynonyms) || s.anyWord([]string{"duft", "eau de parfum", "eau de toilette"}) {
			return s.firstExisting("perfume", "parfum", "parfüm", "duft")
		}
		return ""
	}},
	{Name: "strong_category_hint", Match: func(s *signals) string {
		for _, hint := range strongCategoryHints {
			if hint.slug == "mode" && s.anyWord(lexicon.ModeFalseFriends) {
				continue
			}
			if s.anyWord(hint.keywords) && s.hasProducts(hint.slug) {
				return hint.slug
			}
		}
		return ""
	}},
	{Name: "mode_context_electronics", Match: func(s *signals) string {
		if s.previous == "mode" && (s.anyWord(lexicon.ElectronicsWords) || s.anyWord([]string{"headphones"})) {
			return "elektronik"
		}
		return ""
	}},
	{Name: "electronics_context_sticky", Match: func(s *signals) string {
		if s.previous != "elektronik" {
			return ""
		}
		if len(s.candidates) == 0 || (len(s.candidates) == 1 && s.candidates[0] == "mode") {
			return "elektronik"
		}
		return ""
	}},
	{Name: "household_context_sticky", Match: func(s *signals) string {
		if s.previous == "haushalt" && len(s.candidates) == 0 {
			return "haushalt"
		}
		return ""
	}},
	{Name: "pet_family", Match: func(s *signals) string {
		if s.anyWord(lexicon.PetWords) || s.contains("geschenk für hund") || s.contains("geschenk für katze") {
			return s.firstExisting("tierbedarf", "haustier", "haustiere", "pets")
		}
		return ""
	}},
	{Name: "garden_articles", Match: func(s *signals) string {
		if s.contains("gartenartikel") || s.word("garten artikel") {
			return "garten"
		}
		return ""
	}},
}
