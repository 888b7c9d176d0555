// internal/workers/sales/parse-budget/parser.go
package parsebudget

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

var (
	numberPattern    = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	gluedUnitPattern = regexp.MustCompile(`^\d+(?:[.,]\d+)?(` + strings.Join(lexicon.GluedUnitSuffixes, "|") + `)$`)
)

// Parse reads an optional price window from text. It is pure and returns
// the same result for the same text.
func Parse(text string) models.ParsedBudget {
	normalized := " " + textnorm.Normalize(text) + " "
	has := func(phrases []string) bool {
		for _, p := range phrases {
			if np := textnorm.Normalize(p); np != "" && strings.Contains(normalized, " "+np+" ") {
				return true
			}
		}
		return false
	}

	hasBudgetWord := has(lexicon.BudgetWords)
	hasCurrency := has(lexicon.Currency)
	hasUnder := has(lexicon.UnderPhrases)
	hasOver := has(lexicon.OverPhrases)
	hasBetween := has(lexicon.BetweenWords)
	hasCheap := has(lexicon.CheapWords)
	hasSmallBudget := has(lexicon.SmallBudgetPhrases)

	numbers, ignored := extractNumbers(text)

	result := models.ParsedBudget{
		HasBudgetWord: hasBudgetWord || hasCurrency || hasUnder || hasOver || hasBetween,
	}
	for _, n := range ignored {
		result.Notes = append(result.Notes, fmt.Sprintf("ignored %s (unit context)", formatNumber(n)))
	}

	decide(&result, numbers, hasBudgetWord, hasCurrency, hasUnder, hasOver, hasBetween, hasCheap, hasSmallBudget)
	correctDirection(&result, normalized)

	return result
}

func decide(result *models.ParsedBudget, numbers []float64, hasBudgetWord, hasCurrency, hasUnder, hasOver, hasBetween, hasCheap, hasSmallBudget bool) {
	if len(numbers) == 0 {
		if hasBudgetWord || hasCurrency || hasCheap || hasSmallBudget {
			result.IsAmbiguous = true
			result.Notes = append(result.Notes, "price context without a number")
		} else {
			result.Notes = append(result.Notes, "no budget context")
		}
		return
	}

	anyContext := hasCurrency || hasBudgetWord || hasUnder || hasOver || hasBetween
	if allAtMost(numbers, 5) && !anyContext {
		result.IsAmbiguous = true
		result.Notes = append(result.Notes, "only small numbers without price context")
		return
	}

	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)
	largest := sorted[len(sorted)-1]

	switch {
	case hasBetween && len(numbers) >= 2:
		result.MinPrice = models.Float(sorted[0])
		result.MaxPrice = models.Float(largest)
		result.Notes = append(result.Notes, "range from 'zwischen'")

	case hasUnder:
		result.MaxPrice = models.Float(largest)
		result.Notes = append(result.Notes, "upper bound from 'unter'")

	case hasOver:
		result.MinPrice = models.Float(largest)
		result.Notes = append(result.Notes, "lower bound from 'über'")

	case len(numbers) == 1 && (hasCurrency || hasBudgetWord):
		if numbers[0] <= 5 && !hasCurrency {
			result.IsAmbiguous = true
			result.Notes = append(result.Notes, "single small number with a vague budget word")
			return
		}
		result.MaxPrice = models.Float(numbers[0])
		result.Notes = append(result.Notes, "single amount read as upper bound")

	case len(numbers) == 2 && (hasCurrency || hasBudgetWord):
		result.MinPrice = models.Float(sorted[0])
		result.MaxPrice = models.Float(sorted[1])
		result.Notes = append(result.Notes, "two amounts read as range")

	case hasCurrency || hasBudgetWord:
		result.MaxPrice = models.Float(largest)
		result.Notes = append(result.Notes, "several amounts, largest read as upper bound")

	default:
		result.IsAmbiguous = true
		result.Notes = append(result.Notes, "numbers without price context")
	}
}

// correctDirection moves a lone bound to the side named by an explicit
// "über" or "unter" in the text.
func correctDirection(result *models.ParsedBudget, normalized string) {
	contains := func(words []string) bool {
		for _, w := range words {
			if strings.Contains(normalized, " "+w+" ") {
				return true
			}
		}
		return false
	}

	explicitOver := contains(lexicon.ExplicitOver)
	explicitUnder := contains(lexicon.ExplicitUnder)

	if explicitOver && !explicitUnder && result.MinPrice == nil && result.MaxPrice != nil {
		result.MinPrice, result.MaxPrice = result.MaxPrice, nil
		result.Notes = append(result.Notes, "moved upper bound to lower bound")
	}
	if explicitUnder && !explicitOver && result.MaxPrice == nil && result.MinPrice != nil {
		result.MaxPrice, result.MinPrice = result.MinPrice, nil
		result.Notes = append(result.Notes, "moved lower bound to upper bound")
	}
}

// extractNumbers returns the first number of every token, skipping numbers
// tied to a unit word within two tokens after or directly before.
func extractNumbers(text string) ([]float64, []float64) {
	tokens := numberTokens(text)
	units := make(map[string]bool, len(lexicon.UnitWords))
	for _, u := range lexicon.UnitWords {
		units[u] = true
	}

	var numbers, ignored []float64

	for i, tok := range tokens {
		match := numberPattern.FindString(tok)
		if match == "" {
			continue
		}
		value, ok := parseNumber(match)
		if !ok {
			continue
		}

		if gluedUnitPattern.MatchString(tok) || nearUnit(tokens, i, units) {
			ignored = append(ignored, value)
			continue
		}

		numbers = append(numbers, value)
	}

	return numbers, ignored
}

func nearUnit(tokens []string, i int, units map[string]bool) bool {
	for j := i + 1; j < len(tokens) && j <= i+2; j++ {
		if units[tokens[j]] {
			return true
		}
	}
	return i > 0 && units[tokens[i-1]]
}

// numberTokens lowercases text and splits it while keeping decimal commas
// and dots between digits.
func numberTokens(text string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == ',' || r == '.':
			b.WriteRune(r)
		case r == '€':
			b.WriteString(" € ")
		default:
			b.WriteByte(' ')
		}
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// parseNumber accepts "49", "49,90", "49.9" and "1.000" (thousands).
func parseNumber(s string) (float64, bool) {
	if idx := strings.IndexAny(s, ".,"); idx >= 0 {
		intPart, frac := s[:idx], s[idx+1:]
		if s[idx] == '.' && len(frac) == 3 {
			s = intPart + frac
		} else {
			s = intPart + "." + frac
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func allAtMost(values []float64, limit float64) bool {
	for _, v := range values {
		if v > limit {
			return false
		}
	}
	return true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
