// internal/workers/sales/decide-sales-policy/policy.go
package decidesalespolicy

import (
	"regexp"
	"sort"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

const (
	questionAmbiguousBoard = "Meinst du ein Snowboard, ein Skateboard oder ein Surfboard? Dann kann ich dir gezielt etwas empfehlen."
	questionVague          = "Ich habe auf Anhieb nichts Passendes gefunden. Magst du genauer beschreiben, was du suchst (z. B. Marke, Größe, Einsatz)?"
	questionObjection      = "Okay, der Preis ist dir wichtig. Soll ich dir günstigere Alternativen oder ein besseres Preis-Leistungs-Verhältnis zeigen?"
)

var (
	whatIfNot    = regexp.MustCompile(`was ist .*wenn .*(nicht|passt)`)
	cheapBudget  = regexp.MustCompile(`(^|\s)(unter|bis|maximal|max)\s+\d+`)
	cheapWord    = regexp.MustCompile(`(^|\s)(günstig|günstige|günstigste|günstigsten|billig|billigste|billigsten|preiswert|preiswerteste)(\s|$)`)
	genericBoard = regexp.MustCompile(`(^|\s)boards?(\s|$)`)
)

// Decide picks the primary sales action. Service questions come first; a
// price objection is always noted but never hides a service question.
func Decide(s Signals) models.SalesDecision {
	normalized := textnorm.Normalize(s.Text)
	hasResults := len(s.Recommended) > 0

	var d models.SalesDecision
	set := func(action models.SalesAction, notes ...models.SalesNote) {
		if d.PrimaryAction == "" {
			d.PrimaryAction = action
		}
		d.Notes = append(d.Notes, notes...)
	}

	switch {
	case textnorm.ContainsAny(normalized, lexicon.DeliveryPhrases):
		set(models.ActionShowDeliveryInfo, models.NoteDeliveryQuestion)
	case textnorm.ContainsAny(normalized, lexicon.ReturnPhrases) || whatIfNot.MatchString(normalized):
		set(models.ActionShowReturnsInfo, models.NoteReturnQuestion)
	}

	if textnorm.ContainsAny(normalized, lexicon.PriceObjectionPhrases) {
		set(models.ActionHandleObjection, models.NotePriceObjection)
	}

	if d.PrimaryAction == "" {
		switch {
		case budgetMismatch(s):
			set(models.ActionExplainBudgetMismatch, models.NoteBudgetMismatch, models.NoteUpsellOpportunity)
		case hasResults && textnorm.ContainsAny(normalized, lexicon.BuyIntentPhrases):
			set(models.ActionOfferCrossSell, models.NoteBuyIntent, models.NoteCrossSellOpportunity)
		case hasResults && (s.Cheapest || cheapWord.MatchString(normalized) || cheapBudget.MatchString(normalized)):
			set(models.ActionShowProducts, models.NoteLowBudget, models.NoteUpsellOpportunity)
		case ambiguousBoard(normalized):
			set(models.ActionAskClarification, models.NoteAmbiguousCategoryTerm)
		case vague(normalized, s):
			set(models.ActionAskClarification, models.NoteVagueRequest)
		default:
			set(models.ActionShowProducts)
		}
	}

	if d.Notes == nil {
		d.Notes = []models.SalesNote{}
	}
	d.CTA = cta(d)
	d.ClarificationQuestion = clarification(d, s)
	d.UpsellProductIDs = upsell(d, s.Recommended)
	return d
}

func budgetMismatch(s Signals) bool {
	if !s.Budget.HasWindow() {
		return false
	}
	return s.PriceRangeNoMatch || (s.PriceRangeInfo != nil && s.PriceRangeInfo.FallbackAboveBudget)
}

func ambiguousBoard(normalized string) bool {
	if !genericBoard.MatchString(normalized) {
		return false
	}
	return !textnorm.ContainsAny(normalized, lexicon.BoardQualifiers)
}

// vague is a lifestyle wish ("was Cooles") with nothing concrete to go on.
func vague(normalized string, s Signals) bool {
	if !textnorm.ContainsAnyWord(normalized, lexicon.VagueLifestyleWords) {
		return false
	}
	uncertain := textnorm.ContainsAny(normalized, lexicon.VagueUncertainty)
	if !uncertain && len(s.UnknownTerms) == 0 {
		return false
	}
	weakCategory := s.Category == "" || s.CategoryFromContext
	return !s.Budget.HasWindow() && weakCategory
}

func cta(d models.SalesDecision) models.CTA {
	switch {
	case d.PrimaryAction == models.ActionShowProducts && d.HasNote(models.NoteUpsellOpportunity):
		return models.CTAAddToCart
	case d.PrimaryAction == models.ActionOfferCrossSell:
		return models.CTAAddToCart
	case d.PrimaryAction == models.ActionAskClarification, d.PrimaryAction == models.ActionExplainBudgetMismatch:
		return models.CTAContinueQuestion
	}
	return models.CTANone
}

func clarification(d models.SalesDecision, s Signals) string {
	switch {
	case d.PrimaryAction == models.ActionAskClarification && d.HasNote(models.NoteAmbiguousCategoryTerm):
		return questionAmbiguousBoard
	case d.PrimaryAction == models.ActionAskClarification:
		return questionVague
	case d.PrimaryAction == models.ActionHandleObjection:
		return questionObjection
	case d.PrimaryAction == models.ActionExplainBudgetMismatch && s.Budget.MaxPrice != nil:
		return "In deinem Budget bis ca. " + models.FormatEuro(*s.Budget.MaxPrice) +
			" ist aktuell nichts Passendes verfügbar. Darf ich dir auch Modelle leicht darüber zeigen?"
	case d.PrimaryAction == models.ActionExplainBudgetMismatch && s.Budget.MinPrice != nil:
		return "Ab ca. " + models.FormatEuro(*s.Budget.MinPrice) +
			" habe ich aktuell nichts Passendes. Soll ich dir die besten Modelle darunter zeigen?"
	}
	return ""
}

// upsell offers the second and third cheapest products next to a low
// budget pick.
func upsell(d models.SalesDecision, recommended []models.Product) []string {
	if d.PrimaryAction != models.ActionShowProducts || !d.HasNote(models.NoteUpsellOpportunity) || len(recommended) < 2 {
		return nil
	}
	sorted := append([]models.Product(nil), recommended...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	end := min(3, len(sorted))
	return models.ProductIDs(sorted[1:end])
}
