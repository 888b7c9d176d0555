// internal/workers/sales/compose-reply/templates.go
package composereply

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"sales-workers/internal/models"
)

const (
	emptyCatalogText = "In diesem Shop sind im Moment noch keine Produkte hinterlegt, deshalb kann ich dir leider noch nichts empfehlen. Schau gern später noch einmal vorbei."
	offTopicText     = "Dabei kann ich dir leider nicht weiterhelfen. Ich bin hier, um dich beim Einkaufen in diesem Shop zu beraten. Sag mir einfach, wonach du suchst, zum Beispiel eine Produktart oder ein Budget."
	greetingText     = "Hallo! Schön, dass du da bist. Wonach suchst du heute? Nenn mir gern eine Produktart, einen Anlass oder dein Budget."

	deliveryText = "Die genauen Lieferzeiten und Versandkosten findest du im Shop auf der Seite zu Versand und Lieferung. Wenn du mir sagst, welches Produkt dich interessiert, helfe ich dir gern bei der Auswahl."
	returnsText  = "Alle Infos zu Rückgabe, Umtausch und Garantie findest du im Shop auf der Seite zu Retouren und Gewährleistung. Wenn du unsicher bist, ob ein Produkt passt, beschreib mir kurz deinen Einsatzzweck."

	noResultsText = "Zu deiner aktuellen Anfrage habe ich in diesem Shop leider keine passenden Produkte gefunden. " +
		"Das liegt oft daran, dass die Kategorie noch zu allgemein oder dein Wunsch sehr speziell ist. " +
		"Beschreib mir gern etwas genauer, was du suchst (zum Beispiel Produktart, Einsatzzweck und grober Preisrahmen), " +
		"oder nenn mir eine andere Kategorie oder ein Budget, dann suche ich erneut für dich."

	crossSellText = "Gute Wahl! Soll ich dir das Produkt direkt in den Warenkorb legen? Passendes Zubehör zeige ich dir gern dazu."
	upsellText    = "Wenn du etwas mehr ausgeben möchtest, habe ich auch Varianten mit mehr Ausstattung für dich. Sag einfach Bescheid."

	askDetails      = "Damit ich dir wirklich passende Produkte vorschlagen kann, brauche ich noch ein, zwei Details von dir. Sag mir bitte kurz: Produktart und grober Preisrahmen."
	askDetailsShort = "Damit ich dir wirklich passende Produkte vorschlagen kann, brauche ich noch ein, zwei Details (Produktart und grober Preisrahmen)."
	roughMatch      = "Die Vorschläge unten passen grob zu deiner Anfrage. Wenn du mir sagst, was dir am wichtigsten ist (Preis, Marke, Feature), suche ich dir 1 bis 2 Top-Empfehlungen heraus."
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

func formatPrice(v float64) string {
	return models.FormatEuro(v)
}

// productLines renders a numbered list, optionally with prices.
func productLines(products []models.Product, withPrice bool) string {
	lines := make([]string, 0, len(products))
	for i, p := range products {
		line := fmt.Sprintf("%d. %s", i+1, p.Title)
		if withPrice {
			line += " (" + formatPrice(p.Price) + ")"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func attributeHint(terms []string) string {
	if len(terms) == 0 {
		return ""
	}
	return " Ich habe auf folgende Kriterien geachtet: " + strings.Join(terms, ", ") + "."
}

// requestedRange describes the window the way the shopper phrased it.
func requestedRange(info *models.PriceRangeInfo, budget models.ParsedBudget) string {
	lo, hi := budget.MinPrice, budget.MaxPrice
	if info != nil && (info.UserMinPrice != nil || info.UserMaxPrice != nil) {
		lo, hi = info.UserMinPrice, info.UserMaxPrice
	}
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("zwischen %s und %s", formatPrice(*lo), formatPrice(*hi))
	case hi != nil:
		return "unter " + formatPrice(*hi)
	case lo != nil:
		return "über " + formatPrice(*lo)
	}
	return "deinem gewünschten Preisbereich"
}

func priceRangeText(p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Im Bereich %s habe ich in diesem Shop leider keine passenden Produkte gefunden.", requestedRange(p.PriceRangeInfo, p.Budget))
	if info := p.PriceRangeInfo; info != nil && info.NearestBelowPrice != nil && info.NearestBelowTitle != "" {
		fmt.Fprintf(&b, " Am nächsten dran ist „%s“ für %s.", info.NearestBelowTitle, formatPrice(*info.NearestBelowPrice))
	}
	b.WriteString(" Wenn du dein Budget ein wenig anpassen kannst, finde ich bestimmt eine gute Auswahl für dich.")
	return b.String()
}

func aboveBudgetText(p Params) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Im Bereich %s habe ich leider nichts Passendes gefunden.", requestedRange(p.PriceRangeInfo, p.Budget))
	if info := p.PriceRangeInfo; info.NearestAbovePrice != nil && info.NearestAboveTitle != "" {
		fmt.Fprintf(&b, " Am nächsten an deinem Budget liegt „%s“ für %s.", info.NearestAboveTitle, formatPrice(*info.NearestAbovePrice))
	}
	b.WriteString(" Hier sind die günstigsten Alternativen knapp darüber:\n\n")
	b.WriteString(productLines(p.Recommended, true))
	return b.String()
}

func missingCategoryText(p Params) string {
	hint := p.MissingCategoryHint
	alternative := "Produkte"
	if len(p.Recommended) > 0 && p.Recommended[0].Category != "" {
		alternative = p.Recommended[0].Category
	}
	if strings.Contains(strings.ToLower(hint), "pflege") {
		for _, prod := range p.Recommended {
			if strings.Contains(strings.ToLower(prod.Category), "kosmetik") {
				alternative = prod.Category
				break
			}
		}
	}

	text := fmt.Sprintf("In diesem Shop finde ich nur %s, aber keine %s. Ich zeige dir die %s.", alternative, hint, strings.ToLower(alternative))
	if p.ReplyMode == models.ReplyModeOperator {
		text += fmt.Sprintf("\n\nHinweis für den Shop-Betreiber: Im Katalog gibt es aktuell keine %s. Wenn du %s verkaufen möchtest, lege bitte entsprechende Produkte oder Kategorien an.", hint, hint)
	}
	if len(p.Recommended) == 0 {
		return text
	}
	_, base := productText(p)
	return text + "\n\n" + base
}

func unknownCodeText(t *models.AiTrigger) string {
	label := "diesen Code"
	switch {
	case t.CodeTerm != "":
		label = "„" + t.CodeTerm + "“"
	case len(t.UnknownTerms) > 0:
		label = "„" + t.UnknownTerms[0] + "“"
	}
	return fmt.Sprintf("Ich konnte den Code %s in diesem Shop nicht finden.\n\n"+
		"Sag mir bitte, was für ein Produkt du suchst, zum Beispiel eine Kategorie, eine Marke oder ein Einsatzgebiet. "+
		"Dann zeige ich dir gezielt passende Produkte.", label)
}

// askBudgetText asks for the missing pieces of a budget mention without an
// amount.
func askBudgetText(p Params) string {
	if p.Category != "" {
		return fmt.Sprintf("Alles klar, du achtest auf den Preis. Mit welchem Betrag ungefähr möchtest du im Bereich %s rechnen?", p.Category)
	}
	return "Du hast erwähnt, dass dein Budget eher klein ist. Damit ich dir wirklich passende Produkte empfehlen kann:\n\n" +
		"• Für welche Art von Produkt suchst du etwas?\n" +
		"• Und ungefähr mit welchem Betrag möchtest du rechnen?"
}

func explanationText(p Params) string {
	first := p.Recommended[0]
	excerpt := snippet(first.Description, p.SnippetLength)
	category := first.Category
	if category == "" {
		category = "diesem Bereich"
	}
	facts := fmt.Sprintf("Kategorie: %s, Preis: %s.", category, formatPrice(first.Price))

	var lead, official string
	switch p.ExplanationMode {
	case models.ExplanationIngredients:
		lead = fmt.Sprintf("Du fragst nach den Inhaltsstoffen von „%s“.", first.Title)
		official = "Die vollständige, verbindliche Zutatenliste findest du auf der Produktseite im Shop."
	case models.ExplanationMaterials:
		lead = fmt.Sprintf("Du möchtest mehr über das Material von „%s“ wissen.", first.Title)
		official = "Exakte Materialangaben stehen auf der Produktseite unter den Produktdetails."
	case models.ExplanationUsage:
		lead = fmt.Sprintf("Du möchtest wissen, wie man „%s“ am besten verwendet.", first.Title)
		official = "Weitere Details und Sicherheitshinweise findest du auf der Produktseite bzw. auf der Verpackung."
	default:
		lead = fmt.Sprintf("Du fragst nach Pflege- oder Waschhinweisen für „%s“.", first.Title)
		official = "Bitte richte dich immer nach den offiziellen Angaben auf dem Etikett bzw. auf der Produktseite."
	}

	if excerpt == "" {
		return lead + "\n\n" + facts + "\n" + official
	}
	return lead + "\n\nAus der Beschreibung:\n" + excerpt + "\n\n" + official
}

// snippet strips markup and cuts at a word boundary.
func snippet(description string, maxLen int) string {
	text := html.UnescapeString(htmlTag.ReplaceAllString(description, " "))
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i >= 40 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "…"
}

func mostExpensiveText(recommended []models.Product) string {
	top := recommended[0]
	for _, p := range recommended[1:] {
		if p.Price > top.Price {
			top = p
		}
	}
	return fmt.Sprintf("Du legst Wert auf das Beste, deshalb habe ich dir das teuerste passende Produkt herausgesucht: „%s“ für %s. "+
		"Wenn du möchtest, zeige ich dir auch eine etwas günstigere Alternative, die trotzdem hochwertig ist.", top.Title, formatPrice(top.Price))
}

func budgetOnlyText(budget models.ParsedBudget) string {
	return fmt.Sprintf("Mit deinem Budget %s habe ich dir unten passende Produkte eingeblendet.\n\n"+
		"Wenn du mir noch sagst, für welchen Bereich (z. B. Haushalt, Pflege, Tierbedarf), kann ich die Auswahl weiter eingrenzen.", budget.Describe())
}

func categoryOnlyText(category string) string {
	return fmt.Sprintf("Ich habe dir unten eine Auswahl aus dem Bereich %s eingeblendet.\n\n"+
		"Möchtest du eher etwas Günstiges für den Alltag oder lieber etwas Hochwertiges?", category)
}

func premiumText(p Params) string {
	hint := attributeHint(p.AttributeTerms)
	if hint == "" {
		hint = " Ich habe Produkte ausgewählt, bei denen Qualität im Vordergrund steht."
	}
	first := p.Recommended[0]
	if len(p.Recommended) == 1 {
		return fmt.Sprintf("Du legst Wert auf hohe Qualität, deshalb habe ich dir eine Premium-Variante ausgesucht: %s.%s "+
			"Wenn du möchtest, zeige ich dir auch eine etwas günstigere Alternative.", first.Title, hint)
	}
	return fmt.Sprintf("Du legst Wert auf hohe Qualität, deshalb habe ich dir %d Premium-Optionen ausgesucht.%s Ein besonders starkes Match ist %s.\n\n%s",
		len(p.Recommended), hint, first.Title, productLines(p.Recommended, false))
}

func bargainText(p Params) string {
	hint := attributeHint(p.AttributeTerms)
	if hint == "" {
		hint = " Ich habe auf ein gutes Preis-Leistungs-Verhältnis geachtet."
	}
	what := "eine besonders preiswerte Option"
	if n := len(p.Recommended); n > 1 {
		what = fmt.Sprintf("%d preisbewusste Optionen", n)
	}
	return fmt.Sprintf("Du möchtest ein gutes Angebot, deshalb habe ich dir %s herausgesucht.%s\n\n%s\n\n"+
		"Sag mir gern, ob dir der niedrigste Preis oder das beste Preis-Leistungs-Verhältnis wichtiger ist.",
		what, hint, productLines(p.Recommended, true))
}

func giftText(recommended []models.Product) string {
	what := "eine passende Idee"
	if n := len(recommended); n > 1 {
		what = fmt.Sprintf("%d passende Geschenkideen", n)
	}
	return fmt.Sprintf("Du suchst ein Geschenk, sehr schön. Ich habe dir %s herausgesucht.\n\n%s\n\n"+
		"Wenn du mir sagst, für wen das Geschenk ist und in welchem Preisrahmen du bleiben möchtest, kann ich noch gezielter empfehlen.",
		what, productLines(recommended, false))
}

func singleText(p Params) string {
	return fmt.Sprintf("Ich habe ein Produkt gefunden, das sehr gut zu deiner Anfrage passt: %s für %s.%s "+
		"Wenn du möchtest, zeige ich dir noch eine Alternative im ähnlichen Preisbereich.",
		p.Recommended[0].Title, formatPrice(p.Recommended[0].Price), attributeHint(p.AttributeTerms))
}

func fewText(p Params) string {
	return fmt.Sprintf("Ich habe dir zwei passende Optionen herausgesucht.%s\n\n%s\n\n"+
		"Wenn du mir sagst, ob dir eher der Preis, die Marke oder bestimmte Features wichtig sind, spreche ich dir eine klare Empfehlung aus.",
		attributeHint(p.AttributeTerms), productLines(p.Recommended, true))
}

func manyText(p Params) string {
	lead := fmt.Sprintf("Ich habe dir %d passende Produkte herausgesucht, damit du in Ruhe vergleichen kannst.", len(p.Recommended))
	if p.Budget.HasWindow() {
		lead = fmt.Sprintf("Ich habe dir %d passende Produkte %s herausgesucht.", len(p.Recommended), p.Budget.Describe())
	}
	return fmt.Sprintf("%s%s\n\n%s\n\n"+
		"Wenn du mir sagst, was dir besonders wichtig ist, grenze ich die Liste weiter ein.",
		lead, attributeHint(p.AttributeTerms), productLines(p.Recommended, true))
}
