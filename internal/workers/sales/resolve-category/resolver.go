// internal/workers/sales/resolve-category/resolver.go
package resolvecategory

import (
	"sort"
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

// Resolve picks the effective category for a turn. Only categories with at
// least one product are ever returned, spelled the way the catalog spells
// them.
func Resolve(text, previousCategory string, catalog []models.Product) Result {
	normalized := textnorm.Normalize(text)
	s := &signals{
		normalized:   normalized,
		padded:       " " + normalized + " ",
		counts:       models.CategoryCounts(catalog),
		previous:     models.CategoryKey(previousCategory),
		hasBudgetNum: budgetAmountPattern.MatchString(strings.ToLower(text)),
	}
	return withCatalogNames(resolveKeys(s), models.CategoryNames(catalog))
}

// withCatalogNames swaps category keys for the catalog's own spelling. The
// missing-category hint names no catalog category and stays as it is.
func withCatalogNames(r Result, names map[string]string) Result {
	name := func(key string) string {
		if n, ok := names[key]; ok {
			return n
		}
		return key
	}
	if r.EffectiveCategorySlug != "" {
		r.EffectiveCategorySlug = name(r.EffectiveCategorySlug)
	}
	for i, c := range r.MatchedCategories {
		r.MatchedCategories[i] = name(c)
	}
	return r
}

// resolveKeys works on category keys throughout.
func resolveKeys(s *signals) Result {

	found, hints := collectCandidates(s)
	s.candidates = found

	withProducts := make([]string, 0, len(found))
	for _, c := range found {
		if s.hasProducts(c) {
			withProducts = append(withProducts, c)
		}
	}

	result := Result{MatchedCategories: withProducts}

	for _, rule := range overrideRules {
		slug := rule.Match(s)
		if slug == "" || !s.hasProducts(slug) {
			continue
		}
		result.EffectiveCategorySlug = slug
		result.AppliedRule = rule.Name
		result.TriggerWord = slug
		if !containsString(result.MatchedCategories, slug) {
			result.MatchedCategories = append([]string{slug}, result.MatchedCategories...)
		}
		return result
	}

	if len(withProducts) > 0 {
		result.EffectiveCategorySlug = pickBest(withProducts, s)
		result.TriggerWord = hints[result.EffectiveCategorySlug]
		if result.TriggerWord == "" {
			result.TriggerWord = result.EffectiveCategorySlug
		}
		return result
	}

	if len(found) > 0 {
		result.MissingCategoryHint = found[0]
	}

	if s.previous != "" && s.hasProducts(s.previous) {
		result.EffectiveCategorySlug = s.previous
		result.AppliedRule = "context"
	}

	return result
}

// collectCandidates gathers category candidates in order: the
// "kategorie X" phrase or literal category names, keyword hints, typo
// matches and the "-board" suffix. hints maps a candidate to the word that
// produced it.
func collectCandidates(s *signals) ([]string, map[string]string) {
	var found []string
	hints := make(map[string]string)
	add := func(slug, word string) {
		if slug == "" || containsString(found, slug) {
			return
		}
		found = append(found, slug)
		hints[slug] = word
	}

	categories := sortedCategories(s.counts)
	tokens := strings.Fields(s.normalized)

	if word := categoryPhraseWord(tokens); word != "" {
		matched := false
		for _, c := range categories {
			if strings.Contains(c, word) {
				add(c, word)
				matched = true
			}
		}
		if !matched {
			add(word, word)
		}
	} else {
		for _, c := range categories {
			if textnorm.RuneLen(c) >= 3 && strings.Contains(s.padded, " "+c+" ") {
				add(c, c)
			}
		}
	}

	modeBlocked := s.anyWord(lexicon.ModeFalseFriends)
	for _, entry := range lexicon.CategoryKeywords {
		if entry.Slug == "mode" && modeBlocked {
			continue
		}
		for _, kw := range entry.Words {
			if s.word(kw) {
				add(entry.Slug, kw)
				break
			}
		}
	}

	if len(found) > 0 {
		return found, hints
	}

	for _, tok := range tokens {
		if textnorm.RuneLen(tok) < 4 {
			continue
		}
		limit := 1
		if textnorm.RuneLen(tok) >= 8 {
			limit = 2
		}
		for _, c := range categories {
			if tok != c && textnorm.Levenshtein(tok, c) <= limit {
				add(c, tok)
			}
		}
	}

	if len(found) > 0 {
		return found, hints
	}

	for _, tok := range tokens {
		if !strings.HasSuffix(tok, "board") && !strings.HasSuffix(tok, "boards") {
			continue
		}
		for _, c := range categories {
			if strings.Contains(c, "board") {
				add(c, tok)
			}
		}
	}

	return found, hints
}

// categoryPhraseWord returns X in "kategorie X".
func categoryPhraseWord(tokens []string) string {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i] == "kategorie" || tokens[i] == "kategorien" {
			return tokens[i+1]
		}
	}
	return ""
}

// pickBest prefers the category with most products; ties go to a category
// whose name occurs in the query, then to the earlier candidate.
func pickBest(candidates []string, s *signals) string {
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch {
		case s.counts[c] > s.counts[best]:
			best = c
		case s.counts[c] == s.counts[best] && !s.contains(best) && s.contains(c):
			best = c
		}
	}
	return best
}

func sortedCategories(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func containsString(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
