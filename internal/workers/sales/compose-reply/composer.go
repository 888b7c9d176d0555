// internal/workers/sales/compose-reply/composer.go
package composereply

import (
	"fmt"
	"regexp"
	"strings"

	"sales-workers/internal/models"
)

// fallbackText is used whenever every template produced nothing.
const fallbackText = "Ich helfe dir gern beim Finden des passenden Produkts. Sag mir einfach, wonach du suchst, zum Beispiel eine Produktart, einen Anlass oder dein Budget."

var brandName = regexp.MustCompile(`(?i)\befro\b`)

// Compose renders the reply text for one turn. The result is never empty.
func Compose(p Params) string {
	return Build(p).Text
}

// Build selects the scenario and renders it, then appends the AI suffix
// and, in operator mode, a diagnostics line.
func Build(p Params) Reply {
	if p.SnippetLength <= 0 {
		p.SnippetLength = 140
	}

	scenario, text := render(p)

	if suffix := aiSuffix(p); suffix != "" {
		text = strings.TrimSpace(text) + "\n\n" + suffix
	}

	text = strings.TrimSpace(brandName.ReplaceAllString(text, "dein Shop-Assistent"))
	if text == "" {
		text = fallbackText
	}

	if p.ReplyMode == models.ReplyModeOperator {
		text += "\n\n" + diagnostics(p, scenario)
	}

	return Reply{Text: text, Scenario: scenario}
}

func render(p Params) (Scenario, string) {
	action := p.SalesDecision.PrimaryAction
	facts := DecodeStoreFacts(p.StoreFacts)

	switch {
	case p.EmptyCatalog:
		return ScenarioEmptyCatalog, emptyCatalogText
	case p.OffTopic:
		return ScenarioOffTopic, offTopicText
	case p.Greeting:
		return ScenarioGreeting, greetingText
	case action == models.ActionShowDeliveryInfo:
		return ScenarioDelivery, serviceText(facts.shippingAnswer(), deliveryText, p.Recommended)
	case action == models.ActionShowReturnsInfo:
		return ScenarioReturns, serviceText(facts.returnsAnswer(), returnsText, p.Recommended)
	case p.PriceRangeInfo != nil && p.PriceRangeInfo.FallbackAboveBudget && len(p.Recommended) > 0:
		return ScenarioAboveBudget, aboveBudgetText(p)
	case p.PriceRangeNoMatch:
		return ScenarioPriceRange, priceRangeText(p)
	case p.MissingCategoryHint != "":
		return ScenarioMissingCategory, missingCategoryText(p)
	case p.AiTrigger != nil && p.AiTrigger.Reason == models.ReasonUnknownProductCodeOnly:
		return ScenarioUnknownCode, unknownCodeText(p.AiTrigger)
	case action == models.ActionHandleObjection:
		return ScenarioObjection, withProducts(p.SalesDecision.ClarificationQuestion, p)
	case p.AskForBudget:
		return ScenarioAskBudget, askBudgetText(p)
	case action == models.ActionAskClarification && p.SalesDecision.ClarificationQuestion != "":
		return ScenarioClarification, p.SalesDecision.ClarificationQuestion
	}

	scenario, text := productText(p)
	return scenario, text + salesHint(p)
}

// productText covers the turns that simply present the recommendations.
func productText(p Params) (Scenario, string) {
	count := len(p.Recommended)
	hasBudget := p.Budget.HasWindow()
	hasCategory := p.Category != ""

	switch {
	case count == 0:
		return ScenarioNoResults, noResultsText
	case p.ExplanationMode != models.ExplanationNone:
		return ScenarioExplanation, explanationText(p)
	case p.MostExpensive:
		return ScenarioMostExpensive, mostExpensiveText(p.Recommended)
	case hasBudget && !hasCategory:
		return ScenarioBudgetOnly, budgetOnlyText(p.Budget)
	case p.Intent == models.IntentPremium:
		return ScenarioPremium, premiumText(p)
	case p.Intent == models.IntentBargain:
		return ScenarioBargain, bargainText(p)
	case p.Intent == models.IntentGift:
		return ScenarioGift, giftText(p.Recommended)
	case hasCategory && !hasBudget && count > 2:
		return ScenarioCategoryOnly, categoryOnlyText(p.Category)
	case count == 1:
		return ScenarioSingle, singleText(p)
	case count == 2:
		return ScenarioFew, fewText(p)
	default:
		return ScenarioMany, manyText(p)
	}
}

func withProducts(lead string, p Params) string {
	if len(p.Recommended) == 0 {
		return lead
	}
	return lead + "\n\n" + productLines(p.Recommended, true)
}

func serviceText(fromFacts, generic string, recommended []models.Product) string {
	text := fromFacts
	if text == "" {
		text = generic
	}
	if len(recommended) > 0 {
		text += "\n\nDie passenden Produkte siehst du weiterhin unten."
	}
	return text
}

// salesHint adds the closing nudge for cross-sell and upsell decisions.
func salesHint(p Params) string {
	d := p.SalesDecision
	switch {
	case len(p.Recommended) == 0:
		return ""
	case d.PrimaryAction == models.ActionOfferCrossSell:
		return "\n\n" + crossSellText
	case d.PrimaryAction == models.ActionShowProducts && d.HasNote(models.NoteUpsellOpportunity) && len(d.UpsellProductIDs) > 0:
		return "\n\n" + upsellText
	}
	return ""
}

func aiSuffix(p Params) string {
	t := p.AiTrigger
	if t == nil || !t.NeedsAiHelp {
		return ""
	}
	switch t.Reason {
	case models.ReasonUnknownProductCodeOnly, models.ReasonEmptyCatalog, models.ReasonPriceRangeNoMatch, models.ReasonBudgetOnlyLowBudget:
		return ""
	}

	terms := strings.Join(t.UnknownTerms, ", ")
	hasProducts := len(p.Recommended) > 0

	switch {
	case t.Reason == models.ReasonNoResultsWithUnknownKeywords && terms != "":
		return fmt.Sprintf("Ich finde zu folgendem Begriff nichts im Katalog: %s. %s", terms, askDetails)
	case t.Reason == models.ReasonNoResultsWithUnknownKeywords:
		return "Ich habe zu deiner Beschreibung keine passenden Produkte gefunden. " + askDetails
	case hasProducts && terms != "":
		return fmt.Sprintf("Einige deiner Begriffe kann ich im Katalog nicht zuordnen: %s. %s", terms, roughMatch)
	case hasProducts:
		return roughMatch
	case terms != "":
		return fmt.Sprintf("Einige deiner Begriffe kann ich im Katalog nicht zuordnen: %s. %s", terms, askDetailsShort)
	}
	return askDetailsShort
}

// diagnostics is a one-line summary for shop operators.
func diagnostics(p Params, scenario Scenario) string {
	aiReason := "-"
	if p.AiTrigger != nil && p.AiTrigger.NeedsAiHelp {
		aiReason = string(p.AiTrigger.Reason)
	}
	category := p.Category
	if category == "" {
		category = "-"
	}
	budget := p.Budget.Describe()
	if budget == "" {
		budget = "-"
	}
	return fmt.Sprintf("[Diagnose] szenario=%s intent=%s kategorie=%s budget=%s produkte=%d aktion=%s ai=%s",
		scenario, p.Intent.OrDefault(), category, budget, len(p.Recommended), orDash(string(p.SalesDecision.PrimaryAction)), aiReason)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
