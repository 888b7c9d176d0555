package resolvealiases

import (
	"context"
	"testing"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestCatalog() []models.Product {
	return []models.Product{
		{ID: "t1", Title: "Edelstahl Napfset für Hunde", Category: "tierbedarf", Tags: []string{"napf", "näpfe"}, Price: 19},
		{ID: "f1", Title: "Eau de Perfume Rose", Category: "perfume", Price: 49},
		{ID: "e1", Title: "Smartphone Alpha", Category: "elektronik", Price: 399},
	}
}

func createTestTable(t *testing.T, vocabulary models.Vocabulary, dynamic map[string][]string) Table {
	static, err := LoadStatic()
	require.NoError(t, err)
	return NewTable(static, dynamic, vocabulary)
}

// ==========================
// Table
// ==========================

func TestLoadStatic(t *testing.T) {
	static, err := LoadStatic()
	require.NoError(t, err)
	assert.Contains(t, static["fressnapf"], "napf")
	assert.NotEmpty(t, static.Keys())
}

func TestParseTable_Invalid(t *testing.T) {
	_, err := ParseTable([]byte("fressnapf: [napf"))
	assert.Error(t, err)
}

func TestNewTable_DropsUnknownTargets(t *testing.T) {
	vocabulary := models.CatalogVocabulary(createTestCatalog())
	table := createTestTable(t, vocabulary, map[string][]string{
		"Wau-Wau": {"Hunde", "unbekannt"},
		"nichts":  {"unbekannt"},
	})

	assert.Equal(t, []string{"hunde"}, table.Lookup("wauwau"))
	assert.Nil(t, table.Lookup("nichts"))
	assert.ElementsMatch(t, []string{"napf", "näpfe", "napfset", "hunde"}, table.Lookup("Fressnapf"))
	assert.Equal(t, []string{"smartphone"}, table.Lookup("Handy"))
	assert.Nil(t, table.Lookup("kopfhörer"))
}

func TestNewTable_DynamicTermsFirst(t *testing.T) {
	vocabulary := models.CatalogVocabulary(createTestCatalog())
	table := createTestTable(t, vocabulary, map[string][]string{"napf": {"edelstahl"}})

	terms := table.Lookup("napf")
	require.NotEmpty(t, terms)
	assert.Equal(t, "edelstahl", terms[0])
	assert.Contains(t, terms, "hunde")
}

// ==========================
// Resolve
// ==========================

func TestResolve(t *testing.T) {
	vocabulary := models.CatalogVocabulary(createTestCatalog())
	table := createTestTable(t, vocabulary, nil)

	tests := []struct {
		name           string
		tokens         []string
		validateOutput func(t *testing.T, r Result)
	}{
		{
			name:   "alias tier",
			tokens: []string{"Fressnapf"},
			validateOutput: func(t *testing.T, r Result) {
				assert.True(t, r.AliasUsed)
				assert.Equal(t, TierAlias, r.Tiers["fressnapf"])
				assert.ElementsMatch(t, []string{"napf", "näpfe", "napfset", "hunde"}, r.Resolved["fressnapf"])
				assert.Equal(t, []string{"fressnapf"}, r.UnknownTerms)
				assert.Empty(t, r.Unresolved)
			},
		},
		{
			name:   "known word is not unknown",
			tokens: []string{"hunde", "napfset"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.UnknownTerms)
				assert.False(t, r.AliasUsed)
			},
		},
		{
			name:   "fuzzy containment",
			tokens: []string{"smartphon"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, TierFuzzy, r.Tiers["smartphon"])
				assert.Equal(t, []string{"smartphone"}, r.Resolved["smartphon"])
				assert.Empty(t, r.Unresolved)
			},
		},
		{
			name:   "fuzzy typo",
			tokens: []string{"perfune"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []string{"perfume"}, r.Resolved["perfune"])
			},
		},
		{
			name:   "fuzzy yields several words",
			tokens: []string{"napfe"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []string{"napf", "näpfe"}, r.Resolved["napfe"])
			},
		},
		{
			name:   "substring tier stays unresolved",
			tokens: []string{"edelstahlnapf"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, TierSubstring, r.Tiers["edelstahlnapf"])
				assert.Equal(t, []string{"edelstahl", "napf"}, r.Resolved["edelstahlnapf"])
				assert.Equal(t, []string{"edelstahlnapf"}, r.Unresolved)
			},
		},
		{
			name:   "unknown code",
			tokens: []string{"XY9000Z"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, TierNone, r.Tiers["xy9000z"])
				assert.Equal(t, []string{"xy9000z"}, r.Unresolved)
				assert.Empty(t, r.ResolvedTerms)
			},
		},
		{
			name:   "short and numeric tokens skipped",
			tokens: []string{"ab", "300", "zu"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.UnknownTerms)
			},
		},
		{
			name:   "duplicates counted once",
			tokens: []string{"fressnapf", "Fressnapf"},
			validateOutput: func(t *testing.T, r Result) {
				assert.Len(t, r.UnknownTerms, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateOutput(t, Resolve(tt.tokens, vocabulary, table))
		})
	}
}

func TestResolve_EmptyVocabulary(t *testing.T) {
	r := Resolve([]string{"fressnapf"}, models.Vocabulary{}, Table{"fressnapf": {"napf"}})
	assert.False(t, r.AliasUsed)
	assert.Equal(t, []string{"fressnapf"}, r.Unresolved)
}

func TestHandler_Execute(t *testing.T) {
	h, err := NewHandler(&Config{Timeout: time.Second, MaxFuzzyMatches: 1}, logger.NewTestLogger(t))
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), &Input{
		Tokens:  []string{"fressnapf", "napfe"},
		Catalog: createTestCatalog(),
	})
	require.NoError(t, err)
	assert.True(t, out.AliasUsed)
	assert.Equal(t, []string{"napf"}, out.Resolved["napfe"])
}
