// internal/workers/sales/rank-candidates/scoring.go
package rankcandidates

import (
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
	ea "sales-workers/internal/workers/sales/extract-attributes"
)

const (
	titleWeight       = 5
	tagWeight         = 4
	categoryWeight    = 3
	descriptionWeight = 2

	attributeTermWeight = 2
	structuredWeight    = 3
	structuredBonus     = 2

	moldCleanerBoost = 3
	moldWipePenalty  = 1
)

type productText struct {
	title       string
	description string
	category    string
	tags        string
	blob        string
}

func textOf(p models.Product) productText {
	t := productText{
		title:       textnorm.Normalize(p.Title),
		description: textnorm.Normalize(p.Description),
		category:    textnorm.Normalize(p.Category),
		tags:        textnorm.Normalize(strings.Join(p.Tags, " ")),
	}
	t.blob = strings.Join([]string{t.title, t.description, t.category, t.tags}, " ")
	return t
}

// ScoreProduct weighs each word by the best field it occurs in and adds one
// point when a 4 to 6 rune prefix of a longer word occurs anywhere.
func ScoreProduct(p models.Product, words []string) int {
	return scoreText(textOf(p), words)
}

func scoreText(t productText, words []string) int {
	score := 0
	for _, word := range words {
		if word == "" {
			continue
		}
		switch {
		case strings.Contains(t.title, word):
			score += titleWeight
		case strings.Contains(t.tags, word):
			score += tagWeight
		case strings.Contains(t.category, word):
			score += categoryWeight
		case strings.Contains(t.description, word):
			score += descriptionWeight
		}

		runes := []rune(word)
		if len(runes) < 5 {
			continue
		}
		for n := 4; n <= min(6, len(runes)); n++ {
			if strings.Contains(t.blob, string(runes[:n])) {
				score++
				break
			}
		}
	}
	return score
}

type scored struct {
	product        models.Product
	score          int
	attributeScore int
}

// scoreCandidate combines keyword, free-text attribute and structured facet
// scores. Products without any core word score zero.
func scoreCandidate(p models.Product, words []string, params Params, moldQuery bool) scored {
	t := textOf(p)

	if !containsAny(t.blob, words) {
		return scored{product: p}
	}

	attributeScore := 0
	for _, term := range params.Query.AttributeTerms {
		if strings.Contains(t.blob, textnorm.Normalize(term)) {
			attributeScore++
		}
	}

	attrs := params.Index.PerProduct[p.ID]
	structured := ea.MatchingFacetCount(attrs, params.Query.AttributeFilters) * structuredBonus

	total := scoreText(t, words) + attributeScore*attributeTermWeight + structured*structuredWeight
	if moldQuery {
		total += moldAdjustment(t, attrs)
	}

	return scored{product: p, score: total, attributeScore: attributeScore}
}

// moldAdjustment prefers cleaners and sprays over wipes for mold queries.
func moldAdjustment(t productText, attrs models.Attributes) int {
	if !containsAny(t.title+" "+t.description, normalizedMold) {
		return 0
	}
	adj := 0
	if contains(attrs[models.FacetFamily], "cleaner") || containsAny(t.title, normalizedMoldCleaner) {
		adj += moldCleanerBoost
	}
	if contains(attrs[models.FacetFamily], "wipes") || containsAny(t.title, normalizedMoldWipe) {
		adj -= moldWipePenalty
	}
	return adj
}

var (
	normalizedMold        = normalizeAll(lexicon.MoldKeywords)
	normalizedMoldCleaner = normalizeAll(lexicon.MoldCleanerKeywords)
	normalizedMoldWipe    = normalizeAll(lexicon.MoldWipeKeywords)
	normalizedPerfume     = normalizeAll(lexicon.PerfumeSynonyms)
)

// IsPerfumeProduct reports whether title, description, category or tags
// name a perfume.
func IsPerfumeProduct(p models.Product) bool {
	return containsAny(textOf(p).blob, normalizedPerfume)
}

func isMoldQuery(text string) bool {
	return containsAny(textnorm.Normalize(text), normalizedMold)
}

func mentionsPerfume(text string) bool {
	return textnorm.ContainsAnyWord(text, lexicon.PerfumeSynonyms)
}

func normalizeAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if n := textnorm.Normalize(w); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
