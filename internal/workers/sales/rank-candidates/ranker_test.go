package rankcandidates

import (
	"context"
	"testing"
	"time"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"
	ea "sales-workers/internal/workers/sales/extract-attributes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestCatalog() []models.Product {
	return []models.Product{
		{ID: "s1", Title: "Snowboard Freeride", Category: "snowboard", Price: 250, Tags: []string{"powder"}},
		{ID: "s2", Title: "Snowboard Allmountain", Category: "snowboard", Price: 180},
		{ID: "s3", Title: "Snowboard Pro Carbon", Category: "snowboard", Price: 900},
		{ID: "s4", Title: "Snowboard Kids", Category: "snowboard", Price: 120},
		{ID: "e1", Title: "Smartphone Alpha", Category: "elektronik", Price: 399},
		{ID: "h1", Title: "Schimmelentferner Spray", Description: "Entfernt Schimmel im Bad", Category: "haushalt", Price: 9},
		{ID: "h2", Title: "Schimmel Tücher", Description: "Gegen Schimmel", Category: "haushalt", Price: 5},
		{ID: "h3", Title: "Wasserkocher", Category: "haushalt", Price: 29},
		{ID: "f1", Title: "Eau de Parfum Rose", Category: "perfume", Price: 59},
		{ID: "t1", Title: "Hundenapf Edelstahl für Hunde", Category: "tierbedarf", Price: 15},
		{ID: "t2", Title: "Kratzbaum für Katzen", Category: "tierbedarf", Price: 89},
	}
}

func budget(min, max *float64) models.ParsedBudget {
	return models.ParsedBudget{MinPrice: min, MaxPrice: max, HasBudgetWord: true}
}

func prices(products []models.Product) []float64 {
	out := make([]float64, 0, len(products))
	for _, p := range products {
		out = append(out, p.Price)
	}
	return out
}

// ==========================
// Rank
// ==========================

func TestRank(t *testing.T) {
	catalog := createTestCatalog()

	tests := []struct {
		name           string
		params         Params
		validateOutput func(t *testing.T, r Result)
	}{
		{
			name: "snowboards under 300",
			params: Params{Text: "Zeige mir Snowboards unter 300 Euro", Intent: models.IntentQuickBuy, Catalog: catalog,
				Category: "snowboard", Budget: budget(nil, models.Float(300)), Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []float64{250, 180, 120}, prices(r.Products))
				assert.False(t, r.PriceRangeNoMatch)
				assert.Nil(t, r.PriceRangeInfo)
			},
		},
		{
			name: "lower bound sorts cheapest first",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard",
				Budget: budget(models.Float(200), nil), Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []float64{250, 900}, prices(r.Products))
			},
		},
		{
			name: "nothing within budget offers cheapest above",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard",
				Budget: budget(nil, models.Float(100)), Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []float64{120, 180, 250}, prices(r.Products))
				assert.True(t, r.PriceRangeNoMatch)
				require.NotNil(t, r.PriceRangeInfo)
				assert.True(t, r.PriceRangeInfo.FallbackAboveBudget)
				assert.Equal(t, 120.0, *r.PriceRangeInfo.NearestAbovePrice)
				assert.Equal(t, "Snowboard Kids", r.PriceRangeInfo.NearestAboveTitle)
				assert.Equal(t, 900.0, *r.PriceRangeInfo.CategoryMaxPrice)
			},
		},
		{
			name: "above budget fallback bounded by plan",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard",
				Budget: budget(nil, models.Float(100)), Limit: 2},
			validateOutput: func(t *testing.T, r Result) {
				assert.Len(t, r.Products, 2)
			},
		},
		{
			name: "no product inside or above budget",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard",
				Budget: budget(models.Float(1000), nil), Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.Products)
				assert.True(t, r.PriceRangeNoMatch)
				require.NotNil(t, r.PriceRangeInfo)
				assert.Equal(t, 900.0, *r.PriceRangeInfo.NearestBelowPrice)
				assert.Equal(t, 4, r.CandidateCount)
			},
		},
		{
			name: "ambiguous budget does not filter",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard",
				Budget: models.ParsedBudget{MaxPrice: models.Float(3), IsAmbiguous: true}, Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Len(t, r.Products, 4)
			},
		},
		{
			name:   "explore sorts by title and respects plan limit",
			params: Params{Intent: models.IntentExplore, Catalog: catalog, Limit: 2},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 2)
				assert.Equal(t, "Eau de Parfum Rose", r.Products[0].Title)
				assert.Equal(t, "Hundenapf Edelstahl für Hunde", r.Products[1].Title)
			},
		},
		{
			name:   "empty category is skipped",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "bindungen", Limit: 20},
			validateOutput: func(t *testing.T, r Result) {
				assert.Len(t, r.Products, len(catalog))
				require.NotEmpty(t, r.Steps)
				assert.True(t, r.Steps[0].Skipped)
			},
		},
		{
			name:   "premium keeps upper price segment",
			params: Params{Intent: models.IntentPremium, Catalog: catalog, Category: "snowboard", Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Equal(t, []float64{900}, prices(r.Products))
			},
		},
		{
			name: "most expensive collapses to one",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "snowboard", Limit: 4,
				MostExpensive: true},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 1)
				assert.Equal(t, "s3", r.Products[0].ID)
			},
		},
		{
			name:   "cheapest collapses to one",
			params: Params{Intent: models.IntentBargain, Catalog: catalog, Category: "snowboard", Limit: 4, Cheapest: true},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 1)
				assert.Equal(t, "s4", r.Products[0].ID)
			},
		},
		{
			name: "mold query prefers cleaners",
			params: Params{Text: "Ich brauche etwas gegen Schimmel", Intent: models.IntentBundle, Catalog: catalog,
				Terms: []string{"schimmel"}, Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 2)
				assert.Equal(t, "h1", r.Products[0].ID)
				assert.Equal(t, "h2", r.Products[1].ID)
			},
		},
		{
			name:   "unmatched keywords keep candidates",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Category: "haushalt", Terms: []string{"xyz123"}, Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Len(t, r.Products, 3)
			},
		},
		{
			name:   "perfume query restricts to perfume products",
			params: Params{Text: "Hast du ein Parfüm?", Intent: models.IntentQuickBuy, Catalog: catalog, Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 1)
				assert.Equal(t, "f1", r.Products[0].ID)
			},
		},
		{
			name: "perfume stage keeps earlier narrowing",
			params: Params{
				Text:     "Hast du Parfum für Männer?",
				Intent:   models.IntentQuickBuy,
				Limit:    4,
				Category: "herren",
				Catalog: []models.Product{
					{ID: "f1", Title: "Eau de Parfum Rose", Category: "damen", Price: 59},
					{ID: "f2", Title: "Eau de Parfum Wood", Category: "herren", Price: 25},
					{ID: "f3", Title: "Parfum Ocean", Category: "herren", Price: 79},
					{ID: "d1", Title: "Duschgel Sport", Category: "herren", Price: 5},
				},
			},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 2)
				assert.ElementsMatch(t, []string{"f2", "f3"}, models.ProductIDs(r.Products))
				for _, p := range r.Products {
					assert.Equal(t, "herren", p.Category)
				}
			},
		},
		{
			name: "pet facet keeps matching species",
			params: Params{Intent: models.IntentQuickBuy, Catalog: catalog, Limit: 4,
				Query: models.ParsedQuery{AttributeFilters: models.Attributes{models.FacetPet: {ea.PetCat}}},
				Index: ea.BuildIndex(catalog, 3)},
			validateOutput: func(t *testing.T, r Result) {
				require.Len(t, r.Products, 1)
				assert.Equal(t, "t2", r.Products[0].ID)
			},
		},
		{
			name:   "empty catalog",
			params: Params{Intent: models.IntentQuickBuy, Limit: 4},
			validateOutput: func(t *testing.T, r Result) {
				assert.Empty(t, r.Products)
				assert.False(t, r.PriceRangeNoMatch)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rank(tt.params)
			tt.validateOutput(t, r)
			assert.LessOrEqual(t, len(r.Products), max(tt.params.Limit, 1))
			if tt.params.Budget.HasWindow() && !r.PriceRangeNoMatch {
				for _, p := range r.Products {
					assert.True(t, tt.params.Budget.Contains(p.Price), "%s at %.2f outside budget", p.ID, p.Price)
				}
			}
		})
	}
}

func TestRank_BudgetWindowHolds(t *testing.T) {
	catalog := createTestCatalog()
	windows := []models.ParsedBudget{
		budget(nil, models.Float(50)),
		budget(models.Float(20), models.Float(300)),
		budget(models.Float(100), nil),
	}

	for _, b := range windows {
		r := Rank(Params{Intent: models.IntentQuickBuy, Catalog: catalog, Budget: b, Limit: 6})
		if r.PriceRangeInfo != nil && r.PriceRangeInfo.FallbackAboveBudget {
			continue
		}
		for _, p := range r.Products {
			assert.True(t, b.Contains(p.Price), "%s at %.2f outside %s", p.Title, p.Price, b.Describe())
		}
	}
}

// ==========================
// Scoring
// ==========================

func TestScoreProduct(t *testing.T) {
	p := models.Product{Title: "Snowboard Freeride", Tags: []string{"powder"}, Category: "snowboard", Description: "für Tiefschnee"}

	assert.Equal(t, 6, ScoreProduct(p, []string{"freeride"}))
	assert.Equal(t, 5, ScoreProduct(p, []string{"powder"}))
	assert.Equal(t, 2, ScoreProduct(p, []string{"tief"}))
	assert.Equal(t, 0, ScoreProduct(p, []string{"bord"}))
	assert.Equal(t, 0, ScoreProduct(p, nil))
}

func TestIsPerfumeProduct(t *testing.T) {
	assert.True(t, IsPerfumeProduct(models.Product{Title: "Eau de Parfum"}))
	assert.True(t, IsPerfumeProduct(models.Product{Title: "Rose", Category: "Perfume"}))
	assert.False(t, IsPerfumeProduct(models.Product{Title: "Duschgel"}))
}

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(&Config{Timeout: time.Second, KeywordCandidateCap: 20, AboveBudgetFallbackCount: 3}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		Intent:   models.IntentQuickBuy,
		Catalog:  createTestCatalog(),
		Category: "snowboard",
		Plan:     models.PlanStarter,
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{120, 180}, prices(out.Products))
}
