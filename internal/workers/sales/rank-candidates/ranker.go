// internal/workers/sales/rank-candidates/ranker.go
package rankcandidates

import (
	"math"
	"sort"
	"strings"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
	ea "sales-workers/internal/workers/sales/extract-attributes"
)

const premiumPercentile = 0.75

// Rank filters and orders the catalog for one turn. Category, attribute and
// keyword stages are soft: a stage that would leave nothing is skipped.
// Only the budget stage may end with zero products.
func Rank(params Params) Result {
	params = withDefaults(params)

	var result Result
	pool := append([]models.Product(nil), params.Catalog...)

	pool = result.soft("category", pool, categoryFilter(pool, params.Category), params.Category == "", "no category")
	pool = result.soft("attributes", pool, attributeFilter(pool, params), !params.Query.HasFilters(), "no facets")
	pool = keywordStage(&result, pool, params)

	if mentionsPerfume(params.Text) {
		var perfumes []models.Product
		for _, p := range pool {
			if IsPerfumeProduct(p) {
				perfumes = append(perfumes, p)
			}
		}
		pool = result.soft("perfume", pool, perfumes, false, "no perfume products")
	}

	if params.Intent == models.IntentPremium && !params.Budget.HasWindow() && !params.MostExpensive {
		pool = result.soft("premium", pool, premiumSegment(pool), false, "no prices")
	}

	result.CandidateCount = len(pool)

	fallbackAbove := false
	if params.Budget.HasWindow() {
		pool, fallbackAbove = budgetStage(&result, pool, params)
	}

	order(pool, params, fallbackAbove)

	switch {
	case fallbackAbove:
	case params.Cheapest && len(pool) > 1:
		sortByPrice(pool, true)
		pool = pool[:1]
	case params.MostExpensive && !params.Budget.HasWindow() && len(pool) > 1:
		sortByPrice(pool, false)
		pool = pool[:1]
	}

	if len(pool) > params.Limit {
		pool = pool[:params.Limit]
	}
	result.Products = pool
	return result
}

func withDefaults(p Params) Params {
	if p.Limit <= 0 {
		p.Limit = models.DefaultPlanLimit
	}
	if p.KeywordCap <= 0 {
		p.KeywordCap = 20
	}
	if p.AboveBudget <= 0 {
		p.AboveBudget = 3
	}
	p.Intent = p.Intent.OrDefault()
	return p
}

// soft applies a filtered set unless the stage is skipped or would empty
// the pool.
func (r *Result) soft(name string, pool, filtered []models.Product, skip bool, skipReason string) []models.Product {
	step := Step{Name: name, Before: len(pool)}
	switch {
	case skip:
		step.Skipped, step.Reason, step.After = true, skipReason, len(pool)
	case len(filtered) == 0:
		step.Skipped, step.Reason, step.After = true, "would empty candidates", len(pool)
	default:
		step.After = len(filtered)
		pool = filtered
	}
	r.Steps = append(r.Steps, step)
	return pool
}

func categoryFilter(pool []models.Product, category string) []models.Product {
	key := models.CategoryKey(category)
	if key == "" {
		return nil
	}
	var out []models.Product
	for _, p := range pool {
		if models.CategoryKey(p.Category) == key {
			out = append(out, p)
		}
	}
	return out
}

func attributeFilter(pool []models.Product, params Params) []models.Product {
	var out []models.Product
	for _, p := range pool {
		if ea.MatchesFilters(params.Index.PerProduct[p.ID], params.Query.AttributeFilters) {
			out = append(out, p)
		}
	}
	return out
}

func keywordStage(r *Result, pool []models.Product, params Params) []models.Product {
	words := keywordTerms(params.Terms)
	if len(words) == 0 {
		return r.soft("keywords", pool, nil, true, "no keyword terms")
	}
	if isGenericPremium(params, words) {
		return r.soft("keywords", pool, nil, true, "generic premium query")
	}

	moldQuery := isMoldQuery(params.Text)
	var hits []scored
	for _, p := range pool {
		if s := scoreCandidate(p, words, params, moldQuery); s.score > 0 {
			hits = append(hits, s)
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.attributeScore != b.attributeScore {
			return a.attributeScore > b.attributeScore
		}
		if a.score != b.score {
			return a.score > b.score
		}
		switch params.Intent {
		case models.IntentPremium:
			return a.product.Price > b.product.Price
		case models.IntentBargain:
			return a.product.Price < b.product.Price
		}
		return false
	})
	if len(hits) > params.KeywordCap {
		hits = hits[:params.KeywordCap]
	}

	filtered := make([]models.Product, 0, len(hits))
	for _, h := range hits {
		filtered = append(filtered, h.product)
	}
	return r.soft("keywords", pool, filtered, false, "")
}

func keywordTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if n := textnorm.Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return textnorm.Unique(out)
}

// isGenericPremium is a premium request like "zeig mir premium" with no
// category and no attributes. Keyword matching would only find products
// that happen to say "premium".
func isGenericPremium(params Params, words []string) bool {
	if params.Intent != models.IntentPremium || params.Category != "" || len(params.Query.AttributeTerms) > 0 {
		return false
	}
	for _, w := range words {
		for _, token := range lexicon.PremiumTokens {
			if w == token {
				return true
			}
		}
	}
	return false
}

// premiumSegment keeps products priced at or above the 75th percentile.
func premiumSegment(pool []models.Product) []models.Product {
	var prices []float64
	for _, p := range pool {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
	}
	if len(prices) == 0 {
		return nil
	}
	sort.Float64s(prices)
	idx := int(math.Floor(float64(len(prices)) * premiumPercentile))
	threshold := prices[min(idx, len(prices)-1)]

	var out []models.Product
	for _, p := range pool {
		if p.Price >= threshold {
			out = append(out, p)
		}
	}
	return out
}

// budgetStage partitions the pool around the budget window. When nothing
// fits the window is flagged as unmatched and the cheapest products above it
// are offered instead; when there are none either, the result is empty.
func budgetStage(r *Result, pool []models.Product, params Params) ([]models.Product, bool) {
	b := params.Budget
	var within, above, below []models.Product
	for _, p := range pool {
		switch {
		case b.Contains(p.Price):
			within = append(within, p)
		case b.MaxPrice != nil && p.Price > *b.MaxPrice:
			above = append(above, p)
		default:
			below = append(below, p)
		}
	}

	step := Step{Name: "budget", Before: len(pool)}
	defer func() { r.Steps = append(r.Steps, step) }()

	if len(within) > 0 {
		step.After = len(within)
		return within, false
	}

	info := &models.PriceRangeInfo{UserMinPrice: b.MinPrice, UserMaxPrice: b.MaxPrice}
	if lo, hi, ok := priceBounds(pool); ok {
		info.CategoryMinPrice, info.CategoryMaxPrice = models.Float(lo), models.Float(hi)
	}
	if len(below) > 0 {
		sortByPrice(below, false)
		info.NearestBelowPrice = models.Float(below[0].Price)
		info.NearestBelowTitle = below[0].Title
	}
	r.PriceRangeInfo = info

	if len(above) == 0 {
		r.PriceRangeNoMatch = true
		step.Reason = "no product inside or above budget"
		return nil, false
	}

	r.PriceRangeNoMatch = true
	sortByPrice(above, true)
	info.NearestAbovePrice = models.Float(above[0].Price)
	info.NearestAboveTitle = above[0].Title
	info.FallbackAboveBudget = true

	n := min(params.AboveBudget, params.Limit, len(above))
	step.After, step.Reason = n, "cheapest above budget"
	return above[:n], true
}

func priceBounds(pool []models.Product) (float64, float64, bool) {
	if len(pool) == 0 {
		return 0, 0, false
	}
	lo, hi := pool[0].Price, pool[0].Price
	for _, p := range pool[1:] {
		lo = math.Min(lo, p.Price)
		hi = math.Max(hi, p.Price)
	}
	return lo, hi, true
}

// order sorts in place. A budget window decides the direction on its own:
// a lower bound shows the cheapest first, an upper bound or range the most
// expensive first. Without a window the intent decides.
func order(pool []models.Product, params Params, fallbackAbove bool) {
	switch {
	case fallbackAbove:
		sortByPrice(pool, true)
	case params.Budget.HasWindow():
		sortByPrice(pool, params.Budget.MinOnly())
	case params.Intent == models.IntentPremium:
		sortByPrice(pool, false)
	case params.Intent == models.IntentBargain, params.Intent == models.IntentGift, params.Intent == models.IntentQuickBuy:
		sortByPrice(pool, true)
	case params.Intent == models.IntentExplore:
		sort.SliceStable(pool, func(i, j int) bool {
			return strings.ToLower(pool[i].Title) < strings.ToLower(pool[j].Title)
		})
	}
}

func sortByPrice(pool []models.Product, ascending bool) {
	sort.SliceStable(pool, func(i, j int) bool {
		if ascending {
			return pool[i].Price < pool[j].Price
		}
		return pool[i].Price > pool[j].Price
	})
}
