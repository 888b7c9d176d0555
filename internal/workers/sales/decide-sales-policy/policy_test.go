package decidesalespolicy

import (
	"context"
	"testing"

	"sales-workers/internal/common/logger"
	"sales-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProducts() []models.Product {
	return []models.Product{
		{ID: "sb-3", Title: "Freeride Snowboard", Category: "snowboard", Price: 420},
		{ID: "sb-1", Title: "Kinder Snowboard", Category: "snowboard", Price: 120},
		{ID: "sb-2", Title: "Allround Snowboard", Category: "snowboard", Price: 250},
	}
}

// ==========================
// Decide
// ==========================

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		signals        Signals
		expectedAction models.SalesAction
		validateOutput func(t *testing.T, d models.SalesDecision)
	}{
		{
			name:           "delivery question",
			signals:        Signals{Text: "Wann kommt die Lieferung an?", Recommended: createTestProducts()},
			expectedAction: models.ActionShowDeliveryInfo,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteDeliveryQuestion}, d.Notes)
				assert.Equal(t, models.CTANone, d.CTA)
			},
		},
		{
			name:           "return question",
			signals:        Signals{Text: "Kann ich das Board zurückschicken, wenn es nicht passt?"},
			expectedAction: models.ActionShowReturnsInfo,
		},
		{
			name:           "price objection",
			signals:        Signals{Text: "Der Preis ist mir zu hoch.", Recommended: createTestProducts()},
			expectedAction: models.ActionHandleObjection,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.True(t, d.HasNote(models.NotePriceObjection))
				assert.Contains(t, d.ClarificationQuestion, "günstigere Alternativen")
			},
		},
		{
			name:           "objection beats budget mismatch",
			signals:        Signals{Text: "zu teuer, gibt es was unter 50 Euro", Budget: models.ParsedBudget{MaxPrice: models.Float(50)}, PriceRangeNoMatch: true},
			expectedAction: models.ActionHandleObjection,
		},
		{
			name:           "objection noted next to delivery question",
			signals:        Signals{Text: "Zu teuer, und wann kommt die Lieferung?"},
			expectedAction: models.ActionShowDeliveryInfo,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteDeliveryQuestion, models.NotePriceObjection}, d.Notes)
			},
		},
		{
			name: "budget mismatch",
			signals: Signals{
				Text:              "Snowboard bis 50 Euro",
				Budget:            models.ParsedBudget{MaxPrice: models.Float(50)},
				PriceRangeNoMatch: true,
			},
			expectedAction: models.ActionExplainBudgetMismatch,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteBudgetMismatch, models.NoteUpsellOpportunity}, d.Notes)
				assert.Equal(t, models.CTAContinueQuestion, d.CTA)
				assert.Equal(t, "In deinem Budget bis ca. 50 € ist aktuell nichts Passendes verfügbar. Darf ich dir auch Modelle leicht darüber zeigen?", d.ClarificationQuestion)
			},
		},
		{
			name: "fallback above budget counts as mismatch",
			signals: Signals{
				Text:           "Snowboard bis 100 Euro",
				Recommended:    createTestProducts(),
				Budget:         models.ParsedBudget{MaxPrice: models.Float(100)},
				PriceRangeInfo: &models.PriceRangeInfo{FallbackAboveBudget: true},
			},
			expectedAction: models.ActionExplainBudgetMismatch,
		},
		{
			name:           "buy intent with results",
			signals:        Signals{Text: "Ich nehme das Allround Snowboard", Recommended: createTestProducts()},
			expectedAction: models.ActionOfferCrossSell,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, models.CTAAddToCart, d.CTA)
				assert.True(t, d.HasNote(models.NoteCrossSellOpportunity))
			},
		},
		{
			name:           "buy intent without results",
			signals:        Signals{Text: "Ich will was kaufen"},
			expectedAction: models.ActionShowProducts,
		},
		{
			name: "low budget with results",
			signals: Signals{
				Text:        "Snowboards unter 300 Euro",
				Recommended: createTestProducts(),
				Budget:      models.ParsedBudget{MaxPrice: models.Float(300)},
			},
			expectedAction: models.ActionShowProducts,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteLowBudget, models.NoteUpsellOpportunity}, d.Notes)
				assert.Equal(t, models.CTAAddToCart, d.CTA)
				assert.Equal(t, []string{"sb-2", "sb-3"}, d.UpsellProductIDs)
			},
		},
		{
			name:           "cheapest flag",
			signals:        Signals{Text: "das billigste bitte", Recommended: createTestProducts()[:1], Cheapest: true},
			expectedAction: models.ActionShowProducts,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.True(t, d.HasNote(models.NoteLowBudget))
				assert.Empty(t, d.UpsellProductIDs)
			},
		},
		{
			name:           "ambiguous board",
			signals:        Signals{Text: "Ich will ein Board."},
			expectedAction: models.ActionAskClarification,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteAmbiguousCategoryTerm}, d.Notes)
				assert.Contains(t, d.ClarificationQuestion, "Snowboard, ein Skateboard oder ein Surfboard")
				assert.Equal(t, models.CTAContinueQuestion, d.CTA)
			},
		},
		{
			name:           "qualified board",
			signals:        Signals{Text: "ein Snow Board", Recommended: createTestProducts()},
			expectedAction: models.ActionShowProducts,
		},
		{
			name:           "vague lifestyle request",
			signals:        Signals{Text: "Irgendwas Cooles für Zuhause", UnknownTerms: []string{"zuhause"}},
			expectedAction: models.ActionAskClarification,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Equal(t, []models.SalesNote{models.NoteVagueRequest}, d.Notes)
				assert.Contains(t, d.ClarificationQuestion, "Magst du genauer beschreiben")
			},
		},
		{
			name:           "vague request with a named category",
			signals:        Signals{Text: "was Cooles im Garten", UnknownTerms: []string{"cooles"}, Category: "garten"},
			expectedAction: models.ActionShowProducts,
		},
		{
			name:           "vague request with context category",
			signals:        Signals{Text: "keine Ahnung, was cooles", Category: "garten", CategoryFromContext: true},
			expectedAction: models.ActionAskClarification,
		},
		{
			name:           "default",
			signals:        Signals{Text: "Zeig mir Snowboards", Recommended: createTestProducts()},
			expectedAction: models.ActionShowProducts,
			validateOutput: func(t *testing.T, d models.SalesDecision) {
				assert.Empty(t, d.Notes)
				assert.NotNil(t, d.Notes)
				assert.Equal(t, models.CTANone, d.CTA)
				assert.Empty(t, d.ClarificationQuestion)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.signals)
			assert.Equal(t, tt.expectedAction, d.PrimaryAction)
			if tt.validateOutput != nil {
				tt.validateOutput(t, d)
			}
		})
	}
}

func TestDecide_MinOnlyMismatchQuestion(t *testing.T) {
	d := Decide(Signals{
		Text:              "Snowboard über 2000 Euro",
		Budget:            models.ParsedBudget{MinPrice: models.Float(2000)},
		PriceRangeNoMatch: true,
	})

	assert.Equal(t, models.ActionExplainBudgetMismatch, d.PrimaryAction)
	assert.Contains(t, d.ClarificationQuestion, "Ab ca. 2000 €")
}

func TestDecide_AmbiguousBudgetIsNoMismatch(t *testing.T) {
	d := Decide(Signals{
		Text:              "Zeig mir Snowboards",
		Recommended:       createTestProducts(),
		Budget:            models.ParsedBudget{MaxPrice: models.Float(50), IsAmbiguous: true},
		PriceRangeNoMatch: true,
	})

	assert.Equal(t, models.ActionShowProducts, d.PrimaryAction)
}

// ==========================
// Handler
// ==========================

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Signals: Signals{Text: "Ist mir zu teuer"}})
	require.NoError(t, err)
	assert.Equal(t, models.ActionHandleObjection, out.Decision.PrimaryAction)
}
