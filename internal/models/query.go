// internal/models/query.go
package models

// Facet names used by the attribute index and query filters.
const (
	FacetSkinType = "skin_type"
	FacetAudience = "audience"
	FacetPet      = "pet"
	FacetRoom     = "room"
	FacetFamily   = "family"
)

// Attributes maps a facet to its detected values.
type Attributes map[string][]string

// ParsedQuery is the structured reading of a product query.
type ParsedQuery struct {
	CoreTerms        []string   `json:"coreTerms"`
	AttributeTerms   []string   `json:"attributeTerms"`
	AttributeFilters Attributes `json:"attributeFilters"`
}

// HasFilters reports whether at least one facet carries a value.
func (q ParsedQuery) HasFilters() bool {
	for _, v := range q.AttributeFilters {
		if len(v) > 0 {
			return true
		}
	}
	return false
}

type AttributeVocabularyEntry struct {
	Key           string   `json:"key"`
	Values        []string `json:"values"`
	ExampleTitles []string `json:"exampleTitles"`
	UsageCount    int      `json:"usageCount"`
}

// AttributeIndex is rebuilt from the whole catalog on every turn.
type AttributeIndex struct {
	PerProduct map[string]Attributes      `json:"perProduct"`
	Vocabulary []AttributeVocabularyEntry `json:"vocabulary"`
}
