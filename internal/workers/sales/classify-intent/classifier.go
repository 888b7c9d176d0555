// internal/workers/sales/classify-intent/classifier.go
package classifyintent

import (
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

// prefixMinLen is the keyword length from which inflected forms match by prefix.
const prefixMinLen = 6

var showMePrefixes = []string{"zeige mir ", "zeig mir ", "show me "}

type intentRule struct {
	intent models.Intent
	match  func(tokens []string, normalized string) bool
}

var intentRules = []intentRule{
	{models.IntentPremium, func(tokens []string, _ string) bool { return matchesKeyword(tokens, lexicon.PremiumWords) }},
	{models.IntentBargain, func(tokens []string, _ string) bool { return matchesKeyword(tokens, lexicon.BargainWords) }},
	{models.IntentGift, func(tokens []string, _ string) bool { return matchesKeyword(tokens, lexicon.GiftWords) }},
	{models.IntentBundle, func(tokens []string, _ string) bool { return matchesExact(tokens, lexicon.BundleWords) }},
	{models.IntentExplore, func(_ []string, normalized string) bool { return textnorm.ContainsAnyWord(normalized, lexicon.ExploreWords) }},
}

// Classify returns the first intent whose keywords occur in text. Without a
// match the current intent is kept.
func Classify(text string, current models.Intent) models.Intent {
	normalized := textnorm.Normalize(text)
	tokens := strings.Fields(normalized)

	intent := current.OrDefault()
	for _, rule := range intentRules {
		if rule.match(tokens, normalized) {
			intent = rule.intent
			break
		}
	}

	if intent == models.IntentExplore && isShortShowMeRequest(normalized) {
		return models.IntentQuickBuy
	}
	return intent
}

// isShortShowMeRequest reports a "zeige mir X" style request naming one to
// four content words.
func isShortShowMeRequest(normalized string) bool {
	var rest string
	for _, prefix := range showMePrefixes {
		if strings.HasPrefix(normalized, prefix) {
			rest = strings.TrimPrefix(normalized, prefix)
			break
		}
	}
	if rest == "" {
		return false
	}

	intentWords := toSet(lexicon.IntentWords)
	count := 0
	for _, tok := range strings.Fields(rest) {
		if textnorm.RuneLen(tok) < 3 || intentWords[tok] || textnorm.IsNumeric(tok) {
			continue
		}
		count++
	}
	return count >= 1 && count <= 4
}

// DetectExplanationMode recognizes questions about a product's ingredients,
// usage, care or materials.
func DetectExplanationMode(text string) models.ExplanationMode {
	for _, mode := range lexicon.ExplanationOrder {
		if textnorm.ContainsAny(text, lexicon.ExplanationKeywords[mode]) {
			return models.ExplanationMode(mode)
		}
	}
	return models.ExplanationNone
}

// AsksForMostExpensive reports phrases like "das teuerste Produkt".
func AsksForMostExpensive(text string) bool {
	return textnorm.ContainsAnyWord(text, lexicon.MostExpensivePhrases)
}

// AsksForCheapest reports superlatives like "die günstigste Jacke".
func AsksForCheapest(text string) bool {
	return textnorm.ContainsAnyWord(text, lexicon.CheapestPhrases)
}

func matchesKeyword(tokens []string, keywords []string) bool {
	for _, kw := range keywords {
		kw = textnorm.Normalize(kw)
		for _, tok := range tokens {
			if tok == kw || (textnorm.RuneLen(kw) >= prefixMinLen && strings.HasPrefix(tok, kw)) {
				return true
			}
		}
	}
	return false
}

func matchesExact(tokens []string, keywords []string) bool {
	set := toSet(keywords)
	for _, tok := range tokens {
		if set[tok] {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[textnorm.Normalize(w)] = true
	}
	return set
}
