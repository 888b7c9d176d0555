// internal/workers/sales/detect-product-code/detector.go
package detectproductcode

import (
	"regexp"
	"strings"
	"unicode"

	"sales-workers/internal/common/lexicon"
	"sales-workers/internal/common/textnorm"
	"sales-workers/internal/models"
)

const (
	minCodeLen = 4
	maxCodeLen = 20
	// minWordCodeLen applies to pure-letter codes like "ABCDFG".
	minWordCodeLen = 6
)

var (
	numericRange = regexp.MustCompile(`^\d+[-_]\d+$`)

	// quantities like "128gb" or "500ml" are sizes, not codes
	quantity = regexp.MustCompile(`^\d+(` + strings.Join(append([]string{"euro", "eur"}, lexicon.GluedUnitSuffixes...), "|") + `)$`)
)

var (
	nonCodeTerms  = toSet(lexicon.NonCodeTerms)
	codeStopwords = toSet(lexicon.CodeStopwords)
	knownWords    = buildKnownWords()
)

// Detect looks for a single product-code-like term and checks whether the
// catalog mentions it.
func Detect(text string, catalog []models.Product) Result {
	vocabulary := models.CatalogVocabulary(catalog)

	code, shape := shapedCode(text)
	if code == "" {
		code, shape = lonelyWord(text, vocabulary)
	}
	if code == "" {
		return Result{}
	}

	return Result{
		CodeTerm:        code,
		Shape:           shape,
		ExistsInCatalog: InCatalog(code, catalog),
	}
}

// LooksLikeCode reports whether a single raw token has the form of a code:
// letters mixed with digits, or an upper-case term joined by "-" or "_".
func LooksLikeCode(raw string) bool {
	_, ok := classify(raw)
	return ok
}

func classify(raw string) (Shape, bool) {
	token := strings.Trim(raw, "-_")
	lower := strings.ToLower(token)
	if len(lower) < minCodeLen || len(lower) > maxCodeLen {
		return "", false
	}
	if textnorm.IsNumeric(lower) || numericRange.MatchString(lower) || quantity.MatchString(lower) || nonCodeTerms[lower] {
		return "", false
	}

	var letters, digits, delimiters, other int
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		case r == '-' || r == '_':
			delimiters++
		default:
			other++
		}
	}
	if other > 0 || letters == 0 {
		return "", false
	}

	if digits > 0 {
		return ShapeMixed, true
	}
	if delimiters > 0 && token == strings.ToUpper(token) {
		return ShapeDelimited, true
	}
	return "", false
}

// shapedCode returns the code when exactly one token has a code shape.
func shapedCode(text string) (string, Shape) {
	var found []string
	var shape Shape
	for _, tok := range rawTokens(text) {
		if s, ok := classify(tok); ok {
			found = append(found, strings.ToLower(strings.Trim(tok, "-_")))
			shape = s
		}
	}
	found = textnorm.Unique(found)
	if len(found) != 1 {
		return "", ""
	}
	return found[0], shape
}

// lonelyWord handles codes without digits: the utterance must reduce to one
// unknown pure-letter word once stop-words are removed.
func lonelyWord(text string, vocabulary models.Vocabulary) (string, Shape) {
	var rest []string
	for _, tok := range textnorm.ContentTokens(text, 3) {
		if codeStopwords[tok] || nonCodeTerms[tok] || textnorm.IsNumeric(tok) {
			continue
		}
		rest = append(rest, tok)
	}
	if len(rest) != 1 {
		return "", ""
	}

	word := rest[0]
	if len(word) < minWordCodeLen || len(word) > maxCodeLen {
		return "", ""
	}
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return "", ""
		}
	}
	if vocabulary.Has(word) || knownWords[word] {
		return "", ""
	}
	return word, ShapeWord
}

// InCatalog reports whether any product mentions the code in its id, title,
// description, tags or category.
func InCatalog(code string, catalog []models.Product) bool {
	code = strings.ToLower(code)
	if code == "" {
		return false
	}
	for _, p := range catalog {
		fields := []string{p.ID, p.Title, p.Description, p.Category, strings.Join(p.Tags, " ")}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), code) {
				return true
			}
		}
	}
	return false
}

func rawTokens(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_')
	})
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func buildKnownWords() map[string]bool {
	lists := [][]string{
		lexicon.IntentWords, lexicon.QueryStopwords, lexicon.BudgetWords, lexicon.CheapWords,
		lexicon.PremiumWords, lexicon.BargainWords, lexicon.GiftWords, lexicon.BundleWords,
		lexicon.PerfumeSynonyms, lexicon.CoreProductKeywords, lexicon.ProductHints,
		lexicon.OffTopicKeywords, lexicon.Greetings, lexicon.UnknownAIStopwords,
		lexicon.ModeFalseFriends, lexicon.PetWords, lexicon.ElectronicsWords, lexicon.MoldKeywords,
		lexicon.AttributeKeywords, lexicon.VagueLifestyleWords,
	}
	for _, entry := range lexicon.CategoryKeywords {
		lists = append(lists, entry.Words, []string{entry.Slug})
	}

	set := make(map[string]bool)
	for _, list := range lists {
		for _, w := range list {
			for _, tok := range textnorm.Tokenize(w) {
				set[tok] = true
			}
		}
	}
	return set
}
