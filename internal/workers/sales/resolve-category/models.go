// internal/workers/sales/resolve-category/models.go
package resolvecategory

import "sales-workers/internal/models"

type Input struct {
	Text             string           `json:"text"`
	PreviousCategory string           `json:"previousCategory,omitempty"`
	Catalog          []models.Product `json:"catalog"`
}

// Result is the category decision for one turn. EffectiveCategorySlug is
// empty when no category applies.
type Result struct {
	EffectiveCategorySlug string   `json:"effectiveCategorySlug,omitempty"`
	MatchedCategories     []string `json:"matchedCategories"`
	MissingCategoryHint   string   `json:"missingCategoryHint,omitempty"`
	TriggerWord           string   `json:"triggerWord,omitempty"`
	AppliedRule           string   `json:"appliedRule,omitempty"`
}

type Output struct {
	Result
}
