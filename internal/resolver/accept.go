package resolver

import (
	"strings"

	"rankle/internal/classify"
	"rankle/internal/textutil"
)

// Candidate is one provider's proposed image for a label.
type Candidate struct {
	Provider string
	URL      string
	Thumb    string
	Title    string
	Desc     string
	IsLogo   bool
	TypeOK   bool
}

// Animal tokens in an image URL for non-animal subjects signal a stock or
// Commons mismatch ("Cheese" resolving to a cheetah photo).
var animalURLWords = []string{
	"cat", "dog", "bird", "fish", "horse", "bear", "lion", "tiger",
	"monkey", "puppy", "kitten", "zebra", "giraffe", "elephant",
	"spider", "snake", "wolf", "fox", "rabbit",
}

var vehicleURLWords = []string{
	"car", "truck", "boat", "ship", "plane", "airplane", "motorcycle",
	"bus", "train", "tractor", "van", "yacht",
}

var foodSubtypeWords = []string{
	"cheese", "pepper", "mushroom", "onion", "sausage", "pepperoni",
	"bacon", "pineapple", "olive", "tomato", "basil", "ham", "anchovy",
	"garlic", "spinach", "chicken", "beef", "pork", "sauce", "bread",
	"tea", "burger", "pizza", "noodle", "rice", "soup", "salad",
	"dessert", "cake", "chocolate", "fruit", "vegetable", "dish",
	"food", "drink", "beverage", "cuisine", "ingredient", "topping",
}

var deviceTypeWords = []string{
	"watch", "smartwatch", "phone", "smartphone", "tablet", "console",
	"headphones", "earbuds", "laptop", "camera", "tracker", "wearable",
	"device", "speaker",
}

var animalExcludedCategories = map[classify.Category]struct{}{
	classify.Food: {}, classify.Device: {}, classify.Movie: {},
	classify.TV: {}, classify.Group: {}, classify.Person: {},
}

var vehicleExcludedCategories = map[classify.Category]struct{}{
	classify.Food: {}, classify.Team: {}, classify.Brand: {},
	classify.Place: {}, classify.Device: {},
}

// Food topics named after one of these subtypes pin the gate to that word:
// under a burger topic the candidate's title or description must name a
// burger, not just any food.
var foodTopicSubtypes = []string{"burger", "pizza", "tea"}

// foodTopicSubtype returns the subtype word the topic names, matching both
// singular and plural topic tokens, or "" when the topic names none.
func foodTopicSubtype(topicName string) string {
	tokens := textutil.TokenSet(topicName)
	for _, subtype := range foodTopicSubtypes {
		if topicHasToken(tokens, subtype) {
			return subtype
		}
	}
	return ""
}

// accept is the gate every settled candidate passes before it can win a
// race. It rejects obvious subject mismatches; anything it lets through is
// displayed, so it errs toward rejecting.
func accept(c Candidate, cat classify.Category, topicName, label string) bool {
	if c.URL == "" {
		return false
	}
	if _, excluded := animalExcludedCategories[cat]; excluded && urlContainsAny(c.URL, animalURLWords) {
		return false
	}
	if _, excluded := vehicleExcludedCategories[cat]; excluded && urlContainsAny(c.URL, vehicleURLWords) {
		return false
	}

	switch cat {
	case classify.Food:
		if !c.TypeOK || !sharesToken(label, c.Title) {
			return false
		}
		if subtype := foodTopicSubtype(topicName); subtype != "" {
			return textContainsAny(c.Title+" "+c.Desc, []string{subtype})
		}
		return textContainsAny(c.Title+" "+c.Desc, foodSubtypeWords)
	case classify.Place, classify.Team, classify.Brand:
		return c.TypeOK
	case classify.Device:
		return textContainsAny(c.Title+" "+c.Desc, deviceTypeWords) && sharesToken(label, c.Title)
	default:
		return true
	}
}

// urlContainsAny tokenizes the URL path on non-alphanumerics so "cat" does
// not match "catalog".
func urlContainsAny(rawURL string, words []string) bool {
	tokens := textutil.TokenSet(rawURL)
	for _, word := range words {
		if _, ok := tokens[word]; ok {
			return true
		}
	}
	return false
}

func textContainsAny(text string, words []string) bool {
	tokens := textutil.TokenSet(text)
	for _, word := range words {
		if _, ok := tokens[word]; ok {
			return true
		}
	}
	return false
}

// sharesToken reports whether the candidate title overlaps the label by at
// least one token. An empty title counts as corroborated, providers like
// stock photo APIs echo no title at all.
func sharesToken(label, title string) bool {
	if strings.TrimSpace(title) == "" {
		return true
	}
	labelTokens := textutil.TokenSet(label)
	for token := range textutil.TokenSet(title) {
		if _, ok := labelTokens[token]; ok {
			return true
		}
	}
	return false
}
