// internal/workers/sales/extract-attributes/extractor.go
package extractattributes

import (
	"sort"
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

// ProductText joins the searchable fields of a product.
func ProductText(p models.Product) string {
	return strings.Join([]string{p.Title, p.Description, p.Category, strings.Join(p.Tags, " ")}, " ")
}

// DetectProductAttributes returns the facets found in a product's text.
func DetectProductAttributes(p models.Product) models.Attributes {
	return detect(textnorm.Normalize(ProductText(p)), false)
}

// BuildIndex detects facets for every product and summarizes them into a
// vocabulary ordered by usage.
func BuildIndex(catalog []models.Product, maxExamples int) models.AttributeIndex {
	index := models.AttributeIndex{
		PerProduct: make(map[string]models.Attributes, len(catalog)),
	}

	type usage struct {
		values   map[string]bool
		examples []string
		count    int
	}
	byFacet := make(map[string]*usage)

	for _, p := range catalog {
		attrs := DetectProductAttributes(p)
		index.PerProduct[p.ID] = attrs

		for facet, values := range attrs {
			u, ok := byFacet[facet]
			if !ok {
				u = &usage{values: make(map[string]bool)}
				byFacet[facet] = u
			}
			u.count++
			for _, v := range values {
				u.values[v] = true
			}
			if len(u.examples) < maxExamples && p.Title != "" {
				u.examples = append(u.examples, p.Title)
			}
		}
	}

	for facet, u := range byFacet {
		values := make([]string, 0, len(u.values))
		for v := range u.values {
			values = append(values, v)
		}
		sort.Strings(values)

		index.Vocabulary = append(index.Vocabulary, models.AttributeVocabularyEntry{
			Key:           facet,
			Values:        values,
			ExampleTitles: u.examples,
			UsageCount:    u.count,
		})
	}

	sort.Slice(index.Vocabulary, func(i, j int) bool {
		if index.Vocabulary[i].UsageCount != index.Vocabulary[j].UsageCount {
			return index.Vocabulary[i].UsageCount > index.Vocabulary[j].UsageCount
		}
		return index.Vocabulary[i].Key < index.Vocabulary[j].Key
	})

	return index
}

// ParseQuery splits a query into core terms, attribute terms and facet
// filters. Perfume spellings collapse to "parfum".
func ParseQuery(text string) models.ParsedQuery {
	normalized := textnorm.Normalize(text)

	phraseTokens := make(map[string]bool)
	for _, phrase := range lexicon.AttributePhrases {
		if textnorm.ContainsWord(normalized, phrase) {
			for _, tok := range strings.Fields(textnorm.Normalize(phrase)) {
				phraseTokens[tok] = true
			}
		}
	}

	stop := wordSet(lexicon.QueryStopwords)
	attributeWords := wordSet(lexicon.AttributeKeywords)
	intentWords := wordSet(lexicon.IntentWords)
	budgetWords := wordSet(lexicon.BudgetStopwords)
	perfume := wordSet(lexicon.PerfumeSynonyms)

	query := models.ParsedQuery{
		AttributeFilters: detect(normalized, true),
	}

	for _, tok := range strings.Fields(normalized) {
		switch {
		case stop[tok]:
			continue
		case attributeWords[tok] || phraseTokens[tok]:
			query.AttributeTerms = append(query.AttributeTerms, tok)
		case textnorm.RuneLen(tok) < 3 || intentWords[tok] || budgetWords[tok] || textnorm.IsNumeric(tok):
			continue
		case perfume[tok]:
			query.CoreTerms = append(query.CoreTerms, "parfum")
		default:
			query.CoreTerms = append(query.CoreTerms, tok)
		}
	}

	query.CoreTerms = textnorm.Unique(query.CoreTerms)
	query.AttributeTerms = textnorm.Unique(query.AttributeTerms)
	return query
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[textnorm.Normalize(w)] = true
	}
	return set
}
