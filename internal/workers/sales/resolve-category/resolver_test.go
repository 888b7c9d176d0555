package resolvecategory

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
		{ID: "s1", Title: "Snowboard Freeride", Category: "snowboard", Price: 250},
		{ID: "s2", Title: "Snowboard Pro", Category: "snowboard", Price: 900},
		{ID: "e1", Title: "Smartphone Alpha 128GB", Category: "elektronik", Price: 399},
		{ID: "m1", Title: "Hoodie Classic", Category: "mode", Price: 49},
		{ID: "m2", Title: "Jeans Slim", Category: "mode", Price: 79},
		{ID: "h1", Title: "Wasserkocher Steel", Category: "haushalt", Price: 29},
		{ID: "t1", Title: "Fressnapf Edelstahl", Category: "tierbedarf", Price: 12},
		{ID: "g1", Title: "Gartenschere", Category: "Garten", Price: 19},
		{ID: "f1", Title: "Eau de Parfum Rose", Category: "perfume", Price: 59},
		{ID: "k1", Title: "Tagescreme", Category: "kosmetik", Price: 15},
		{ID: "k2", Title: "Nachtcreme", Category: "kosmetik", Price: 18},
	}
}

func TestResolve(t *testing.T) {
	catalog := createTestCatalog()

	tests := []struct {
		name           string
		text           string
		previous       string
		validateOutput func(t *testing.T, r Result)
	}{
		{
			name: "literal category",
			text: "Zeige mir Snowboards unter 300 Euro",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "snowboard", r.EffectiveCategorySlug)
			},
		},
		{
			name: "modern does not hit mode",
			text: "etwas Modernes für die Wohnung",
			validateOutput: func(t *testing.T, r Result) {
				assert.NotEqual(t, "mode", r.EffectiveCategorySlug)
			},
		},
		{
			name: "board with budget becomes snowboard",
			text: "ein Board bis 300 €",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "snowboard", r.EffectiveCategorySlug)
				assert.Equal(t, "board_with_budget", r.AppliedRule)
			},
		},
		{
			name: "smartphone family beats mode context",
			text: "Ich suche ein Handy",
			previous: "mode",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "elektronik", r.EffectiveCategorySlug)
				assert.Equal(t, "smartphone_family", r.AppliedRule)
			},
		},
		{
			name: "perfume family",
			text: "Hast du ein schönes Parfüm?",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "perfume", r.EffectiveCategorySlug)
			},
		},
		{
			name: "pet family",
			text: "etwas für meinen Hund",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "tierbedarf", r.EffectiveCategorySlug)
			},
		},
		{
			name: "garden articles",
			text: "Gartenartikel bitte",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "Garten", r.EffectiveCategorySlug)
				assert.Equal(t, "garden_articles", r.AppliedRule)
			},
		},
		{
			name: "electronics context is sticky without a new signal",
			text: "und was Modernes?",
			previous: "elektronik",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "elektronik", r.EffectiveCategorySlug)
				assert.Equal(t, "electronics_context_sticky", r.AppliedRule)
			},
		},
		{
			name: "previous context kept without new signal",
			text: "Zeig mir Premium",
			previous: "kosmetik",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "kosmetik", r.EffectiveCategorySlug)
				assert.Equal(t, "context", r.AppliedRule)
			},
		},
		{
			name: "new signal replaces context",
			text: "Zeig mir Kosmetik",
			previous: "mode",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "kosmetik", r.EffectiveCategorySlug)
			},
		},
		{
			name: "missing category hint",
			text: "Hast du Bindungen?",
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.EffectiveCategorySlug)
				assert.Equal(t, "bindungen", r.MissingCategoryHint)
				assert.Empty(t, r.MatchedCategories)
			},
		},
		{
			name: "missing category keeps context",
			text: "Hast du Bindungen?",
			previous: "snowboard",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "snowboard", r.EffectiveCategorySlug)
				assert.Equal(t, "bindungen", r.MissingCategoryHint)
			},
		},
		{
			name: "typo corrected",
			text: "zeig mir kosmetk",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "kosmetik", r.EffectiveCategorySlug)
			},
		},
		{
			name: "kategorie phrase",
			text: "alles aus der Kategorie Garten",
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, "Garten", r.EffectiveCategorySlug)
			},
		},
		{
			name: "nothing",
			text: "Hallo",
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.EffectiveCategorySlug)
				assert.Empty(t, r.MissingCategoryHint)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.text, tt.previous, catalog)
			tt.validateOutput(t, r)

			if r.EffectiveCategorySlug != "" {
				assert.Greater(t, models.CategoryCounts(catalog)[models.CategoryKey(r.EffectiveCategorySlug)], 0)
				assert.Contains(t, categoryValues(catalog), r.EffectiveCategorySlug)
			}
		})
	}
}

func categoryValues(catalog []models.Product) []string {
	var out []string
	for _, p := range catalog {
		out = append(out, p.Category)
	}
	return out
}

func TestResolve_KeepsCatalogSpelling(t *testing.T) {
	catalog := []models.Product{
		{ID: "hg1", Title: "Rasensprenger", Category: "Home-Garden", Price: 25},
		{ID: "sb1", Title: "Freeride Board", Category: "Snowboard", Price: 300},
	}

	tests := []struct {
		text     string
		previous string
		expected string
	}{
		{text: "Zeig mir home garden", expected: "Home-Garden"},
		{text: "Zeige mir Snowboards", expected: "Snowboard"},
		{text: "Und unter 500 Euro?", previous: "home garden", expected: "Home-Garden"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := Resolve(tt.text, tt.previous, catalog)
			assert.Equal(t, tt.expected, r.EffectiveCategorySlug)
			for _, c := range r.MatchedCategories {
				assert.Contains(t, categoryValues(catalog), c)
			}
		})
	}
}

func TestResolve_EmptyCategoryNeverEffective(t *testing.T) {
	catalog := []models.Product{{ID: "1", Title: "Tagescreme", Category: "kosmetik", Price: 10}}

	r := Resolve("Zeige mir Snowboards", "snowboard", catalog)
	assert.Empty(t, r.EffectiveCategorySlug)
	assert.Equal(t, "snowboard", r.MissingCategoryHint)
}

func TestPickBest_TiePrefersNameInQuery(t *testing.T) {
	s := &signals{
		normalized: "pflege oder kosmetik",
		counts:     map[string]int{"pflege": 2, "kosmetik": 2},
	}
	assert.Equal(t, "pflege", pickBest([]string{"pflege", "kosmetik"}, s))

	s.normalized = "kosmetik"
	assert.Equal(t, "kosmetik", pickBest([]string{"pflege", "kosmetik"}, s))
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Text: "Wasserkocher", Catalog: createTestCatalog()})
	require.NoError(t, err)
	assert.Equal(t, "haushalt", out.EffectiveCategorySlug)
}
