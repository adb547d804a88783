package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped during tokenization; they carry no matching signal.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "of": {}, "and": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
}

// diacriticFolder strips combining marks after NFD decomposition.
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases text, folds diacritics, collapses punctuation and
// symbol runs into single spaces, and trims the result.
func Normalize(text string) string {
	folded, _, err := transform.String(diacriticFolder, text)
	if err != nil {
		folded = text
	}
	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize normalizes text and splits it into tokens, dropping stop words.
func Tokenize(text string) []string {
	fields := strings.Fields(Normalize(text))
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenSet returns the unique tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// MatchScore scores how well a candidate title matches a query, in [0, 1].
// recall = |overlap| / |query tokens|, precision = |overlap| / |candidate
// tokens|, score = 0.65*recall + 0.35*precision. Either side empty scores 0.
func MatchScore(query, candidate string) float64 {
	queryTokens := TokenSet(query)
	candidateTokens := TokenSet(candidate)
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}
	overlap := 0
	for tok := range queryTokens {
		if _, ok := candidateTokens[tok]; ok {
			overlap++
		}
	}
	recall := float64(overlap) / float64(len(queryTokens))
	precision := float64(overlap) / float64(len(candidateTokens))
	return 0.65*recall + 0.35*precision
}

// ExactOrSubstring reports whether the normalized forms are equal or one
// contains the other.
func ExactOrSubstring(query, candidate string) bool {
	q := Normalize(query)
	c := Normalize(candidate)
	if q == "" || c == "" {
		return false
	}
	return q == c || strings.Contains(q, c) || strings.Contains(c, q)
}
