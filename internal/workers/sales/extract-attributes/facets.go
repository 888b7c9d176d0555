// internal/workers/sales/extract-attributes/facets.go
package extractattributes

import (
	"strings"

	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

type facetValue struct {
	value       string
	keywords    []string
	queryOnly   []string
	productOnly bool
}

type facetRule struct {
	facet  string
	values []facetValue
}

const (
	PetDog     = "dog"
	PetCat     = "cat"
	PetGeneric = "pet"
)

var facetRules = normalizeRules([]facetRule{
	{facet: models.FacetSkinType, values: []facetValue{
		{value: "dry", keywords: []string{"trockenhaut", "trockene haut", "trockener haut", "dry skin"}},
		{value: "sensitive", keywords: []string{"empfindlich", "empfindliche", "empfindlicher", "empfindliches", "empfindliche haut", "sensible haut", "sensitive skin"}},
		{value: "oily", keywords: []string{"fettig", "fettige", "fettiger", "fettige haut", "oily skin"}},
		{value: "combination", keywords: []string{"mischhaut"}},
		{value: "mature", keywords: []string{"reife haut", "reif", "mature skin", "anti aging"}},
	}},
	{facet: models.FacetAudience, values: []facetValue{
		{value: "men", keywords: []string{"herren", "männer", "men"}},
		{value: "women", keywords: []string{"damen", "frauen", "women"}},
		{value: "kids", keywords: []string{"kinder", "kids", "children", "jungs", "mädchen"}},
		{value: "baby", keywords: []string{"baby", "babys"}},
		{value: "unisex", keywords: []string{"unisex", "für alle"}},
	}},
	{facet: models.FacetPet, values: []facetValue{
		{value: PetDog, keywords: []string{"hund", "hunde", "dog", "dogs", "welpe", "welpen", "puppy"}},
		{value: PetCat, keywords: []string{"katze", "katzen", "cat", "cats", "kitten"}},
		{value: PetGeneric, keywords: []string{"haustier", "haustiere", "pet", "pets", "für tiere"}},
	}},
	{facet: models.FacetRoom, values: []facetValue{
		{value: "bathroom", keywords: []string{"bad", "badezimmer", "bathroom", "bath"}},
		{value: "kitchen", keywords: []string{"küche", "kueche", "kitchen"}},
		{value: "living_room", keywords: []string{"wohnzimmer", "living room"}},
		{value: "bedroom", keywords: []string{"schlafzimmer", "bedroom"}},
	}},
	{facet: models.FacetFamily, values: []facetValue{
		{value: "shower_gel", keywords: []string{"duschgel", "shower gel"}},
		{value: "shampoo", keywords: []string{"shampoo"}},
		{value: "hoodie", keywords: []string{"hoodie", "hoodies"}},
		{value: "cleaner", keywords: []string{"reiniger", "cleaner", "reinigungs", "cleaning"},
			queryOnly: []string{"schmutz", "verschmutzung", "verschmutzt", "fleck", "flecken", "kalk"}},
		{value: "wipes", keywords: []string{"tücher", "tuecher", "tuch", "wipes"}},
		{value: "spray", keywords: []string{"spray"}},
		{value: "cream", keywords: []string{"creme", "cream", "lotion"}},
		{value: "oil", keywords: []string{"öl", "oil"}},
		{value: "soap", keywords: []string{"seife", "soap"}},
		{value: "bowl", keywords: []string{"napf", "fressnapf", "futternapf"}, productOnly: true},
	}},
})

func normalizeRules(rules []facetRule) []facetRule {
	for i := range rules {
		for j := range rules[i].values {
			v := &rules[i].values[j]
			v.keywords = normalizeAll(v.keywords)
			v.queryOnly = normalizeAll(v.queryOnly)
		}
	}
	return rules
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

// detect finds facet values in already normalized text. Query detection
// adds query-only keywords and skips product-only values.
func detect(normalized string, forQuery bool) models.Attributes {
	padded := " " + normalized + " "
	found := func(keywords []string) bool {
		for _, kw := range keywords {
			if containsPadded(padded, kw) {
				return true
			}
		}
		return false
	}

	attrs := models.Attributes{}
	for _, rule := range facetRules {
		for _, v := range rule.values {
			if forQuery && v.productOnly {
				continue
			}
			hit := found(v.keywords) || (forQuery && found(v.queryOnly))
			if !hit {
				continue
			}
			if rule.facet == models.FacetPet && v.value == PetGeneric && len(attrs[models.FacetPet]) > 0 {
				continue
			}
			attrs[rule.facet] = append(attrs[rule.facet], v.value)
		}
	}
	return attrs
}

func containsPadded(padded, phrase string) bool {
	return phrase != "" && strings.Contains(padded, " "+phrase+" ")
}

// valuesMatch compares facet values. Pet values are species aware: a
// generic pet matches dogs and cats and the other way around.
func valuesMatch(facet string, wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if w == h {
				return true
			}
			if facet == models.FacetPet && (w == PetGeneric || h == PetGeneric) {
				return true
			}
		}
	}
	return false
}

// MatchesFilters reports whether product attributes satisfy every active
// facet of the query filters.
func MatchesFilters(product, filters models.Attributes) bool {
	for facet, wanted := range filters {
		if len(wanted) == 0 {
			continue
		}
		if !valuesMatch(facet, wanted, product[facet]) {
			return false
		}
	}
	return true
}

// MatchingFacetCount counts the active query facets a product satisfies.
func MatchingFacetCount(product, filters models.Attributes) int {
	count := 0
	for facet, wanted := range filters {
		if len(wanted) > 0 && valuesMatch(facet, wanted, product[facet]) {
			count++
		}
	}
	return count
}
