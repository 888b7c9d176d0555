// internal/workers/sales/resolve-aliases/resolver.go
package resolvealiases

import (
	"strings"

	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

const defaultFuzzyMatches = 3

// Resolve explains query tokens that are not catalog vocabulary. Each token
// tries the alias table, then fuzzy matching, then substring containment;
// only the first tier that yields catalog words is used for that token.
func Resolve(tokens []string, vocabulary models.Vocabulary, table Table) Result {
	return resolve(tokens, vocabulary, table, defaultFuzzyMatches)
}

func resolve(tokens []string, vocabulary models.Vocabulary, table Table, maxFuzzy int) Result {
	result := Result{
		Resolved: make(map[string][]string),
		Tiers:    make(map[string]Tier),
	}

	known := vocabulary.Sorted()
	seen := make(map[string]bool)

	for _, raw := range tokens {
		token := textnorm.AliasKey(raw)
		if textnorm.RuneLen(token) < 3 || textnorm.IsNumeric(token) || seen[token] {
			continue
		}
		seen[token] = true
		if vocabulary[token] {
			continue
		}

		result.UnknownTerms = append(result.UnknownTerms, token)

		tier, terms := resolveToken(token, known, vocabulary, table, maxFuzzy)
		result.Tiers[token] = tier
		if len(terms) > 0 {
			result.Resolved[token] = terms
			result.ResolvedTerms = append(result.ResolvedTerms, terms...)
		}
		if tier == TierAlias {
			result.AliasUsed = true
		}
		if tier != TierAlias && tier != TierFuzzy {
			result.Unresolved = append(result.Unresolved, token)
		}
	}

	result.ResolvedTerms = textnorm.Unique(result.ResolvedTerms)
	return result
}

func resolveToken(token string, known []string, vocabulary models.Vocabulary, table Table, maxFuzzy int) (Tier, []string) {
	var aliased []string
	for _, target := range table.Lookup(token) {
		if vocabulary[target] {
			aliased = append(aliased, target)
		}
	}
	if len(aliased) > 0 {
		return TierAlias, aliased
	}

	if fuzzy := fuzzyMatches(token, known, maxFuzzy); len(fuzzy) > 0 {
		return TierFuzzy, fuzzy
	}

	if sub := substringMatches(token, known); len(sub) > 0 {
		return TierSubstring, sub
	}

	return TierNone, nil
}

// fuzzyMatches accepts words that contain or are contained in the token
// with at most two runes of length difference, and one-edit typos for
// tokens of five runes or more.
func fuzzyMatches(token string, known []string, limit int) []string {
	tokenLen := textnorm.RuneLen(token)
	var out []string
	for _, word := range known {
		if len(out) >= limit {
			break
		}
		wordLen := textnorm.RuneLen(word)
		if wordLen < 3 {
			continue
		}

		diff := tokenLen - wordLen
		if diff < 0 {
			diff = -diff
		}
		contains := strings.Contains(word, token) || strings.Contains(token, word)

		switch {
		case diff <= 2 && contains:
			out = append(out, word)
		case tokenLen >= 5 && diff <= 1 && textnorm.Levenshtein(token, word) <= 1:
			out = append(out, word)
		}
	}
	return out
}

func substringMatches(token string, known []string) []string {
	if textnorm.RuneLen(token) < 4 {
		return nil
	}
	var out []string
	for _, word := range known {
		if textnorm.RuneLen(word) < 3 {
			continue
		}
		if strings.Contains(word, token) || strings.Contains(token, word) {
			out = append(out, word)
		}
	}
	return out
}
