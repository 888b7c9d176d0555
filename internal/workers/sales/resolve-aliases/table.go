// internal/workers/sales/resolve-aliases/table.go
package resolvealiases

import (
	_ "embed"
	"fmt"
	"sort"

	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var staticAliasesYAML []byte

// Table maps an alias key to catalog words. A Table is built per request
// and never shared between shops.
type Table map[string][]string

// LoadStatic parses the embedded shop-independent alias table.
func LoadStatic() (Table, error) {
	return ParseTable(staticAliasesYAML)
}

// ParseTable reads a YAML mapping of alias to terms.
func ParseTable(data []byte) (Table, error) {
	raw := make(map[string][]string)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse alias table: %w", err)
	}
	return Table(raw), nil
}

// NewTable merges the static table with the aliases learned for the shop.
// Keys are normalized with textnorm.AliasKey and targets missing from the
// vocabulary are dropped. Dynamic terms come first.
func NewTable(static, dynamic map[string][]string, vocabulary models.Vocabulary) Table {
	merged := make(map[string][]string)
	for _, src := range []map[string][]string{dynamic, static} {
		for alias, terms := range src {
			key := textnorm.AliasKey(alias)
			if key == "" {
				continue
			}
			for _, term := range terms {
				t := textnorm.AliasKey(term)
				if t == "" || !vocabulary[t] {
					continue
				}
				merged[key] = append(merged[key], t)
			}
		}
	}

	out := make(Table, len(merged))
	for key, terms := range merged {
		if terms = textnorm.Unique(terms); len(terms) > 0 {
			out[key] = terms
		}
	}
	return out
}

// Lookup returns the targets for a word, normalized the same way as keys.
func (t Table) Lookup(word string) []string {
	return t[textnorm.AliasKey(word)]
}

// Keys returns the aliases in lexical order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
