// internal/workers/sales/resolve-aliases/models.go
package resolvealiases

import "sales-workers/internal/models"

// Tier names how an unknown token was explained.
type Tier string

const (
	TierAlias     Tier = "alias"
	TierFuzzy     Tier = "fuzzy"
	TierSubstring Tier = "substring"
	TierNone      Tier = "none"
)

// Result describes how the unknown query tokens map onto catalog words.
// UnknownTerms lists every token missing from the vocabulary; Unresolved
// keeps those that neither the alias table nor the fuzzy tier explained.
type Result struct {
	AliasUsed     bool                `json:"aliasUsed"`
	Resolved      map[string][]string `json:"resolved"`
	Tiers         map[string]Tier     `json:"tiers"`
	UnknownTerms  []string            `json:"unknownTerms"`
	Unresolved    []string            `json:"unresolved"`
	ResolvedTerms []string            `json:"resolvedTerms"`
}

type Input struct {
	Tokens         []string            `json:"tokens"`
	Catalog        []models.Product    `json:"catalog"`
	DynamicAliases map[string][]string `json:"dynamicAliases,omitempty"`
}

type Output struct {
	Result
}
