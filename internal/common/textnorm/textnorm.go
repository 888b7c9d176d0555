// internal/common/textnorm/textnorm.go
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUserInput applies NFKC, maps the dotless i, drops control
// characters and collapses whitespace. Case is preserved for display.
func NormalizeUserInput(raw string) string {
	if raw == "" {
		return ""
	}

	text := norm.NFKC.String(raw)
	text = strings.ReplaceAll(text, "ı", "i")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\u200b' || r == '\u200c' || r == '\u200d' || r == '\ufeff':
			continue
		case unicode.IsControl(r) && !unicode.IsSpace(r):
			continue
		}
		b.WriteRune(r)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize lowercases the text and replaces every rune that is not a
// letter or a digit with a space. Diacritics are kept and the euro sign
// becomes a token of its own. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = norm.NFC.String(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			continue
		case r == '€':
			b.WriteString(" € ")
			continue
		}
		b.WriteByte(' ')
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes the text and splits it on spaces, so "50€" yields
// "50" and "€".
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

// ContentTokens returns tokens with at least minLen runes.
func ContentTokens(text string, minLen int) []string {
	var out []string
	for _, tok := range Tokenize(text) {
		if RuneLen(tok) >= minLen {
			out = append(out, tok)
		}
	}
	return out
}

// AliasKey builds the lookup key used by alias tables: lowercase with only
// ASCII letters, digits and German umlauts kept.
func AliasKey(key string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(key)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == 'ä' || r == 'ö' || r == 'ü' || r == 'ß' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ContainsWord reports whether phrase occurs in text on token boundaries.
// Both arguments are normalized first.
func ContainsWord(text, phrase string) bool {
	t := Normalize(text)
	p := Normalize(phrase)
	if t == "" || p == "" {
		return false
	}
	return strings.Contains(" "+t+" ", " "+p+" ")
}

// ContainsAnyWord reports whether any phrase occurs on token boundaries.
func ContainsAnyWord(text string, phrases []string) bool {
	t := " " + Normalize(text) + " "
	for _, p := range phrases {
		np := Normalize(p)
		if np != "" && strings.Contains(t, " "+np+" ") {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any needle occurs as a plain substring of the
// normalized text. Needles are normalized the same way.
func ContainsAny(text string, needles []string) bool {
	return FirstMatch(text, needles) != ""
}

// FirstMatch returns the first needle contained in text, or "".
func FirstMatch(text string, needles []string) string {
	t := Normalize(text)
	if t == "" {
		return ""
	}
	for _, n := range needles {
		nn := Normalize(n)
		if nn != "" && strings.Contains(t, nn) {
			return n
		}
	}
	return ""
}

func RuneLen(s string) int {
	return len([]rune(s))
}

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// IsNumeric reports whether s consists only of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Unique returns values in first-seen order without duplicates or empties.
func Unique(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
