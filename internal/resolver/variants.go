package resolver

import (
	"strings"

	"rankle/internal/classify"
	"rankle/internal/textutil"
)

// Food labels as players type them rarely match encyclopedia titles, so a
// small alias table and topic-context suffixes rewrite them before search.
var foodAliases = map[string]string{
	"extra cheese": "Cheese",
	"extra sauce":  "Sauce",
	"veggies":      "Vegetables",
}

// CanonicalQuery rewrites a label into the query the providers see.
// Non-food labels pass through unchanged.
func CanonicalQuery(topicName, label string, cat classify.Category) string {
	if cat != classify.Food || strings.TrimSpace(label) == "" {
		return label
	}
	query := label
	if alias, ok := foodAliases[strings.ToLower(strings.TrimSpace(label))]; ok {
		query = alias
	}
	query = strings.TrimSpace(strings.TrimPrefix(strings.ToLower(query), "extra "))
	if query == "" {
		query = label
	}

	// A bare ingredient gains its serving context from the topic name:
	// "Cheese" under a burger topic searches as "Cheese burger".
	topicTokens := textutil.TokenSet(topicName)
	queryTokens := textutil.TokenSet(query)
	for _, context := range []string{"burger", "tea"} {
		if !topicHasToken(topicTokens, context) {
			continue
		}
		if _, already := queryTokens[context]; already {
			continue
		}
		query = query + " " + context
		break
	}
	runes := []rune(query)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}

// topicHasToken matches a topic token in singular or plural form, so "Best
// Burgers" carries the burger context just like "Burger Fixings".
func topicHasToken(tokens map[string]struct{}, word string) bool {
	if _, ok := tokens[word]; ok {
		return true
	}
	_, ok := tokens[word+"s"]
	return ok
}

// Per-category query suffix used for duplicate retries and stock searches,
// narrowing an ambiguous label toward the topic's subject.
var categoryContext = map[classify.Category]string{
	classify.Movie:  "movie",
	classify.TV:     "tv series",
	classify.Person: "portrait",
	classify.Group:  "band",
	classify.Team:   "team",
	classify.Brand:  "product",
	classify.Game:   "video game",
	classify.Book:   "book cover",
	classify.Album:  "album cover",
	classify.Song:   "song",
}

// Variants returns alternate queries to retry when the first result
// duplicates an image already on the board. Suffixed queries steer
// providers toward different artwork for the same subject.
func Variants(query, topicName string, cat classify.Category) []string {
	var variants []string
	if suffix, ok := categoryContext[cat]; ok && !strings.Contains(strings.ToLower(query), suffix) {
		variants = append(variants, query+" "+suffix)
	}

	// The topic's leading noun is a second source of context.
	tokens := textutil.Tokenize(topicName)
	if len(tokens) > 0 {
		candidate := query + " " + tokens[len(tokens)-1]
		if len(variants) == 0 || variants[0] != candidate {
			variants = append(variants, candidate)
		}
	}
	return variants
}
