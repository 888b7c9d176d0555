// internal/workers/sales/process-turn/turn.go
package processturn

import (
	"regexp"
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
	classifyintent "sales-workers/internal/workers/sales/classify-intent"
	composereply "sales-workers/internal/workers/sales/compose-reply"
	decideaitrigger "sales-workers/internal/workers/sales/decide-ai-trigger"
	decidesalespolicy "sales-workers/internal/workers/sales/decide-sales-policy"
	detectproductcode "sales-workers/internal/workers/sales/detect-product-code"
	ea "sales-workers/internal/workers/sales/extract-attributes"
	parsebudget "sales-workers/internal/workers/sales/parse-budget"
	rankcandidates "sales-workers/internal/workers/sales/rank-candidates"
	resolvealiases "sales-workers/internal/workers/sales/resolve-aliases"
	resolvecategory "sales-workers/internal/workers/sales/resolve-category"
)

const maxExampleTitles = 3

var digitPattern = regexp.MustCompile(`\d`)

var greetingTokens = func() map[string]bool {
	set := make(map[string]bool)
	for _, g := range lexicon.Greetings {
		for _, tok := range textnorm.Tokenize(g) {
			set[tok] = true
		}
	}
	return set
}()

// ProcessTurn answers one utterance. It does no I/O and returns the same
// result for the same request.
func ProcessTurn(req Request) models.TurnResult {
	var trace models.Trace

	text := textnorm.NormalizeUserInput(req.Text)
	catalog := models.SanitizeCatalog(req.Catalog)
	limit := req.Options.PlanLimits.Limit(req.Plan)
	trace.Add("normalize", "input prepared", map[string]interface{}{
		"normalized":  textnorm.Normalize(text),
		"catalogSize": len(catalog),
		"limit":       limit,
	})

	budget := parsebudget.Parse(text)
	trace.Add("budget", "budget parsed", map[string]interface{}{
		"window":    budget.Describe(),
		"ambiguous": budget.IsAmbiguous,
		"notes":     budget.Notes,
	})

	intent := classifyintent.Classify(text, req.CurrentIntent)
	explanation := classifyintent.DetectExplanationMode(text)
	mostExpensive := classifyintent.AsksForMostExpensive(text)
	cheapest := classifyintent.AsksForCheapest(text)
	trace.Add("intent", "intent classified", map[string]interface{}{
		"intent":          intent,
		"explanationMode": explanation,
		"mostExpensive":   mostExpensive,
		"cheapest":        cheapest,
	})

	if len(catalog) == 0 {
		return emptyCatalogTurn(req, text, intent, budget, trace)
	}

	category := resolvecategory.Resolve(text, req.Context.ActiveCategory(), catalog)
	trace.Add("category", "category resolved", map[string]interface{}{
		"category":     category.EffectiveCategorySlug,
		"matched":      category.MatchedCategories,
		"rule":         category.AppliedRule,
		"missingHint":  category.MissingCategoryHint,
		"triggerWord":  category.TriggerWord,
		"fromPrevious": category.AppliedRule == "context",
	})

	query := ea.ParseQuery(text)
	index := ea.BuildIndex(catalog, maxExampleTitles)
	trace.Add("attributes", "query parsed", map[string]interface{}{
		"coreTerms":      query.CoreTerms,
		"attributeTerms": query.AttributeTerms,
		"filters":        query.AttributeFilters,
	})

	code := detectproductcode.Detect(text, catalog)
	if code.Found() {
		trace.Add("code", "product code detected", map[string]interface{}{
			"code":    code.CodeTerm,
			"shape":   code.Shape,
			"catalog": code.ExistsInCatalog,
		})
	}

	vocabulary := models.CatalogVocabulary(catalog)
	active := activeCategory(category.EffectiveCategorySlug, catalog)

	switch {
	case isGreeting(text, query, category, budget, code):
		trace.Add("guard", "greeting without product signal", nil)
		return serviceTurn(req, text, intent, budget, nil, active, trace, guardGreeting)
	case isOffTopic(text, query, vocabulary, category, budget, code):
		trace.Add("guard", "off-topic request", nil)
		previous := req.PreviousRecommended
		if len(previous) > limit {
			previous = previous[:limit]
		}
		return serviceTurn(req, text, intent, budget, previous, active, trace, guardOffTopic)
	}

	table := aliasTable(req, vocabulary, &trace)
	aliases := resolvealiases.Resolve(query.CoreTerms, vocabulary, table)
	trace.Add("aliases", "aliases resolved", map[string]interface{}{
		"unknownTerms":  aliases.UnknownTerms,
		"resolvedTerms": aliases.ResolvedTerms,
		"unresolved":    aliases.Unresolved,
		"aliasUsed":     aliases.AliasUsed,
	})

	terms := textnorm.Unique(append(append([]string(nil), query.CoreTerms...), aliases.ResolvedTerms...))

	ranked := rankcandidates.Rank(rankcandidates.Params{
		Text:          text,
		Intent:        intent,
		Catalog:       catalog,
		Category:      category.EffectiveCategorySlug,
		Query:         query,
		Index:         index,
		Terms:         terms,
		Budget:        budget,
		Limit:         limit,
		KeywordCap:    req.Options.KeywordCap,
		AboveBudget:   req.Options.AboveBudget,
		MostExpensive: mostExpensive,
		Cheapest:      cheapest,
	})
	keywordsMatched := false
	for _, step := range ranked.Steps {
		trace.Add("rank", step.Name, map[string]interface{}{
			"before":  step.Before,
			"after":   step.After,
			"skipped": step.Skipped,
			"reason":  step.Reason,
		})
		if step.Name == "keywords" && !step.Skipped {
			keywordsMatched = true
		}
	}
	recommended := ranked.Products

	unknown := withoutCategoryWords(aliases.Unresolved, category)
	namedCategory := category.EffectiveCategorySlug != "" && category.AppliedRule != "context"
	codeTier := aliases.Tiers[textnorm.AliasKey(code.CodeTerm)]

	ai := decideaitrigger.Decide(decideaitrigger.Signals{
		Text:                text,
		CatalogSize:         len(catalog),
		Budget:              budget,
		HasNumber:           digitPattern.MatchString(text),
		BudgetOnly:          budget.HasWindow() && len(query.CoreTerms) == 0 && !namedCategory,
		Category:            category.EffectiveCategorySlug,
		MatchedCategories:   category.MatchedCategories,
		CodeTerm:            code.CodeTerm,
		CodeInCatalog:       code.ExistsInCatalog,
		CodeExplained:       codeTier == resolvealiases.TierAlias || codeTier == resolvealiases.TierFuzzy,
		KeywordsMatched:     keywordsMatched,
		UnknownTerms:        unknown,
		RecommendedCount:    len(recommended),
		PriceRangeNoMatch:   ranked.PriceRangeNoMatch,
		HighBudgetThreshold: req.Options.HighBudgetThreshold,
		LowBudgetThreshold:  req.Options.LowBudgetThreshold,
	})
	if ai.ClearRecommendations {
		recommended = nil
	}
	aiFields := map[string]interface{}{
		"outcome":      ai.Outcome,
		"rule":         ai.Rule,
		"askForBudget": ai.AskForBudget,
		"cleared":      ai.ClearRecommendations,
	}
	if ai.Trigger != nil {
		aiFields["reason"] = ai.Trigger.Reason
	}
	trace.Add("ai", "ai trigger decided", aiFields)

	sales := decidesalespolicy.Decide(decidesalespolicy.Signals{
		Text:                text,
		Intent:              intent,
		Recommended:         recommended,
		Budget:              budget,
		PriceRangeNoMatch:   ranked.PriceRangeNoMatch,
		PriceRangeInfo:      ranked.PriceRangeInfo,
		UnknownTerms:        unknown,
		Category:            category.EffectiveCategorySlug,
		CategoryFromContext: category.AppliedRule == "context",
		Cheapest:            cheapest,
	})
	trace.Add("policy", "sales policy decided", map[string]interface{}{
		"action": sales.PrimaryAction,
		"notes":  sales.Notes,
		"cta":    sales.CTA,
	})

	reply := composereply.Build(composereply.Params{
		Text:                text,
		Intent:              intent,
		Recommended:         recommended,
		Category:            category.EffectiveCategorySlug,
		Budget:              budget,
		AttributeTerms:      query.AttributeTerms,
		ExplanationMode:     explanation,
		MostExpensive:       mostExpensive,
		AiTrigger:           ai.Trigger,
		AskForBudget:        ai.AskForBudget,
		PriceRangeNoMatch:   ranked.PriceRangeNoMatch,
		PriceRangeInfo:      ranked.PriceRangeInfo,
		MissingCategoryHint: category.MissingCategoryHint,
		SalesDecision:       sales,
		ReplyMode:           req.Context.Mode(),
		StoreFacts:          storeFacts(req.Context),
		SnippetLength:       req.Options.SnippetLength,
	})
	trace.Add("reply", "reply composed", map[string]interface{}{
		"scenario": reply.Scenario,
	})

	return models.TurnResult{
		Intent:              intent,
		Recommended:         nonNil(recommended),
		ReplyText:           reply.Text,
		NextContext:         nextContext(req.Context, active, budget),
		AiTrigger:           ai.Trigger,
		PriceRangeNoMatch:   ranked.PriceRangeNoMatch,
		PriceRangeInfo:      ranked.PriceRangeInfo,
		MissingCategoryHint: category.MissingCategoryHint,
		ExplanationMode:     explanation,
		SalesDecision:       sales,
		Trace:               trace,
	}
}

func emptyCatalogTurn(req Request, text string, intent models.Intent, budget models.ParsedBudget, trace models.Trace) models.TurnResult {
	ai := decideaitrigger.Decide(decideaitrigger.Signals{Text: text, Budget: budget})
	trace.Add("ai", "empty catalog", map[string]interface{}{"rule": ai.Rule})

	sales := models.SalesDecision{
		PrimaryAction: models.ActionShowProducts,
		Notes:         []models.SalesNote{},
		CTA:           models.CTANone,
	}
	reply := composereply.Build(composereply.Params{
		Text:          text,
		Intent:        intent,
		AiTrigger:     ai.Trigger,
		SalesDecision: sales,
		EmptyCatalog:  true,
		ReplyMode:     req.Context.Mode(),
		StoreFacts:    storeFacts(req.Context),
	})

	return models.TurnResult{
		Intent:        intent,
		Recommended:   []models.Product{},
		ReplyText:     reply.Text,
		NextContext:   nextContext(req.Context, "", budget),
		AiTrigger:     ai.Trigger,
		SalesDecision: sales,
		Trace:         trace,
	}
}

type guard int

const (
	guardGreeting guard = iota
	guardOffTopic
)

// serviceTurn answers greetings and off-topic messages without searching.
func serviceTurn(req Request, text string, intent models.Intent, budget models.ParsedBudget, recommended []models.Product, active string, trace models.Trace, g guard) models.TurnResult {
	sales := decidesalespolicy.Decide(decidesalespolicy.Signals{
		Text:        text,
		Intent:      intent,
		Recommended: recommended,
		Budget:      budget,
	})

	reply := composereply.Build(composereply.Params{
		Text:          text,
		Intent:        intent,
		Recommended:   recommended,
		SalesDecision: sales,
		Greeting:      g == guardGreeting,
		OffTopic:      g == guardOffTopic,
		ReplyMode:     req.Context.Mode(),
		StoreFacts:    storeFacts(req.Context),
	})
	trace.Add("reply", "reply composed", map[string]interface{}{"scenario": reply.Scenario})

	return models.TurnResult{
		Intent:        intent,
		Recommended:   nonNil(recommended),
		ReplyText:     reply.Text,
		NextContext:   nextContext(req.Context, active, budget),
		SalesDecision: sales,
		Trace:         trace,
	}
}

// isGreeting is true for hellos and thanks that carry no product signal.
func isGreeting(text string, query models.ParsedQuery, category resolvecategory.Result, budget models.ParsedBudget, code detectproductcode.Result) bool {
	if !textnorm.ContainsAnyWord(text, lexicon.Greetings) {
		return false
	}
	if len(query.AttributeTerms) > 0 || budget.HasWindow() || len(category.MatchedCategories) > 0 || code.Found() {
		return false
	}
	for _, term := range query.CoreTerms {
		if !greetingTokens[term] {
			return false
		}
	}
	return true
}

// isOffTopic is true when an off-topic keyword appears and nothing in the
// message points at the catalog.
func isOffTopic(text string, query models.ParsedQuery, vocabulary models.Vocabulary, category resolvecategory.Result, budget models.ParsedBudget, code detectproductcode.Result) bool {
	if !textnorm.ContainsAnyWord(text, lexicon.OffTopicKeywords) {
		return false
	}
	if budget.HasWindow() || len(category.MatchedCategories) > 0 || code.Found() || query.HasFilters() {
		return false
	}
	for _, term := range query.CoreTerms {
		if vocabulary.Has(term) {
			return false
		}
	}
	return true
}

func aliasTable(req Request, vocabulary models.Vocabulary, trace *models.Trace) resolvealiases.Table {
	static := req.StaticAliases
	if static == nil {
		loaded, err := resolvealiases.LoadStatic()
		if err != nil {
			trace.Add("aliases", "static alias table unavailable", map[string]interface{}{"error": err.Error()})
		}
		static = loaded
	}

	dynamic := make(map[string][]string)
	for _, src := range []map[string][]string{req.ShopAliases, req.Context.Aliases()} {
		for alias, terms := range src {
			dynamic[alias] = append(dynamic[alias], terms...)
		}
	}
	return resolvealiases.NewTable(static, dynamic, vocabulary)
}

// withoutCategoryWords drops unresolved terms that are spellings of a
// matched category, e.g. "snowboards" next to "snowboard".
func withoutCategoryWords(terms []string, category resolvecategory.Result) []string {
	categories := append([]string{category.EffectiveCategorySlug}, category.MatchedCategories...)
	var out []string
	for _, term := range terms {
		if !nearCategory(term, categories) {
			out = append(out, term)
		}
	}
	return out
}

func nearCategory(term string, categories []string) bool {
	for _, c := range categories {
		c = textnorm.AliasKey(c)
		if textnorm.RuneLen(c) < 4 {
			continue
		}
		if strings.Contains(term, c) || strings.Contains(c, term) {
			return true
		}
	}
	return false
}

// activeCategory keeps a category only while the catalog still has
// products in it.
func activeCategory(slug string, catalog []models.Product) string {
	if slug == "" {
		return ""
	}
	if models.CategoryCounts(catalog)[models.CategoryKey(slug)] == 0 {
		return ""
	}
	return slug
}

func nextContext(prev *models.ConversationContext, category string, budget models.ParsedBudget) *models.ConversationContext {
	next := &models.ConversationContext{
		BudgetParse: &budget,
		ReplyMode:   prev.Mode(),
		StoreFacts:  storeFacts(prev),
	}
	if category != "" {
		next.ActiveCategorySlug = models.String(category)
	}
	if aliases := prev.Aliases(); len(aliases) > 0 {
		next.DynamicAliases = make(map[string][]string, len(aliases))
		for k, v := range aliases {
			next.DynamicAliases[k] = append([]string(nil), v...)
		}
	}
	return next
}

func storeFacts(c *models.ConversationContext) map[string]interface{} {
	if c == nil {
		return nil
	}
	return c.StoreFacts
}

func nonNil(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
