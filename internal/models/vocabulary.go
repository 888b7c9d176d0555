// internal/models/vocabulary.go
package models

import (
	"sort"

	"sales-workers/internal/common/textnorm"
)

// Vocabulary is the set of alias keys that occur anywhere in a catalog.
type Vocabulary map[string]bool

// CatalogVocabulary collects words of at least three runes from titles,
// descriptions, tags and categories.
func CatalogVocabulary(products []Product) Vocabulary {
	v := make(Vocabulary)
	add := func(text string) {
		for _, tok := range textnorm.ContentTokens(text, 3) {
			if key := textnorm.AliasKey(tok); key != "" {
				v[key] = true
			}
		}
	}

	for _, p := range products {
		add(p.Title)
		add(p.Description)
		add(p.Category)
		for _, tag := range p.Tags {
			add(tag)
		}
		if key := textnorm.AliasKey(p.Category); textnorm.RuneLen(key) >= 3 {
			v[key] = true
		}
	}

	return v
}

func (v Vocabulary) Has(word string) bool {
	return v[textnorm.AliasKey(word)]
}

// Sorted returns the words in lexical order.
func (v Vocabulary) Sorted() []string {
	out := make([]string, 0, len(v))
	for w := range v {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
