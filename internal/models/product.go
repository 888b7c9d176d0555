// internal/models/product.go
package models

import (
	"fmt"
	"math"
	"strings"

	"sales-workers/internal/common/textnorm"
)

// Product is a catalog entry. The sales pipeline never mutates products.
type Product struct {
	ID              string   `json:"id" db:"id" yaml:"id"`
	Title           string   `json:"title" db:"title" yaml:"title"`
	Description     string   `json:"description" db:"description" yaml:"description"`
	Price           float64  `json:"price" db:"price" yaml:"price"`
	Category        string   `json:"category" db:"category" yaml:"category"`
	Tags            []string `json:"tags" db:"tags" yaml:"tags"`
	Rating          float64  `json:"rating,omitempty" db:"rating" yaml:"rating"`
	PopularityScore float64  `json:"popularityScore,omitempty" db:"popularity_score" yaml:"popularityScore"`
}

// SanitizeCatalog repairs malformed records: negative or NaN prices become 0,
// missing ids are derived from the position, later duplicates are dropped
// and tags are trimmed and de-duplicated.
func SanitizeCatalog(products []Product) []Product {
	out := make([]Product, 0, len(products))
	seen := make(map[string]bool, len(products))

	for i, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			p.ID = fmt.Sprintf("p-%d", i)
		}
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true

		if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price < 0 {
			p.Price = 0
		}
		p.Title = strings.TrimSpace(p.Title)
		p.Category = strings.TrimSpace(p.Category)

		if len(p.Tags) > 0 {
			tags := make([]string, 0, len(p.Tags))
			seenTags := make(map[string]bool, len(p.Tags))
			for _, tag := range p.Tags {
				tag = strings.TrimSpace(tag)
				if tag == "" || seenTags[strings.ToLower(tag)] {
					continue
				}
				seenTags[strings.ToLower(tag)] = true
				tags = append(tags, tag)
			}
			p.Tags = tags
		}

		out = append(out, p)
	}

	return out
}

// CategoryKey is the comparable form of a category name. "Home-Garden" and
// "home garden" share a key.
func CategoryKey(category string) string {
	return textnorm.Normalize(category)
}

// CategoryCounts returns the number of products per category key.
func CategoryCounts(products []Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		if key := CategoryKey(p.Category); key != "" {
			counts[key]++
		}
	}
	return counts
}

// CategoryNames maps each category key to the spelling the catalog uses.
// The first product wins when spellings differ.
func CategoryNames(products []Product) map[string]string {
	names := make(map[string]string)
	for _, p := range products {
		key := CategoryKey(p.Category)
		if key == "" {
			continue
		}
		if _, ok := names[key]; !ok {
			names[key] = strings.TrimSpace(p.Category)
		}
	}
	return names
}

// ProductIDs returns the ids of products in order.
func ProductIDs(products []Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}
