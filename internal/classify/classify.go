package classify

import (
	"strings"

	"rankle/internal/textutil"
)

// Category is the coarse entity type inferred from topic and label text. It
// selects the resolver pipeline and the acceptance rules for a candidate.
type Category int

const (
	Generic Category = iota
	Movie
	TV
	Person
	Group
	Team
	Brand
	Place
	Food
	Device
	Game
	Book
	Album
	Song
)

var categoryNames = map[Category]string{
	Generic: "generic",
	Movie:   "movie",
	TV:      "tv",
	Person:  "person",
	Group:   "group",
	Team:    "team",
	Brand:   "brand",
	Place:   "place",
	Food:    "food",
	Device:  "device",
	Game:    "game",
	Book:    "book",
	Album:   "album",
	Song:    "song",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "generic"
}

// ParseCategory maps a category name back to its Category. Unknown names
// parse as Generic.
func ParseCategory(name string) Category {
	name = strings.ToLower(strings.TrimSpace(name))
	for cat, catName := range categoryNames {
		if catName == name {
			return cat
		}
	}
	return Generic
}

// rule is one ordered classification rule. Topic keywords are the stronger
// signal and are checked before label keywords.
type rule struct {
	category   Category
	topicWords []string
	labelWords []string
	labelTest  func(label string) bool
}

// Marker lists are matched against the space-padded lowercase label, so each
// entry carries its own padding to enforce word boundaries.
var groupLabelMarkers = []string{" band ", " boyz ", " boys ", " girls ", " crew ", " quartet ", " trio "}

var teamNameMarkers = []string{
	" lakers ", " celtics ", " warriors ", " bulls ", " knicks ",
	" yankees ", " dodgers ", " red sox ", " mets ", " cubs ",
	" cowboys ", " patriots ", " packers ", " steelers ", " eagles ", " chiefs ",
	" united ", " city fc ", " fc barcelona ", " real madrid ", " arsenal ", " chelsea ",
	" liverpool ", " juventus ", " bayern ", " ajax ",
	" maple leafs ", " canadiens ", " all blacks ",
}

var corporateSuffixes = []string{
	" inc ", " inc. ", " ltd ", " ltd. ", " corp ", " corp. ",
	" llc ", " co ", " co. ", " gmbh ", " plc ",
}

var deviceBrandMarkers = []string{
	" apple ", " samsung ", " google ", " sony ", " fitbit ", " garmin ",
	" xiaomi ", " huawei ", " amazfit ", " polar ", " withings ", " oura ",
}

var placeLabelWords = []string{
	"city", "park", "mountain", "mount", "lake", "museum", "beach",
	"island", "falls", "canyon", "tower", "bridge", "temple", "palace",
	"castle", "cathedral", "square", "valley", "desert", "river", "bay",
}

var foodLabelWords = []string{
	"pizza", "burger", "taco", "sushi", "pasta", "sandwich", "curry",
	"ramen", "noodle", "donut", "doughnut", "cheese", "tea", "coffee",
	"chocolate", "cake", "fries", "salad", "soup", "steak", "bbq",
	"pancake", "waffle", "dumpling", "burrito", "kebab", "pie",
}

// rules are evaluated in order; the first match wins. Order matters: media
// and people checks run before the broader team/brand/place/food buckets so
// a topic like "Movies about Food" still classifies as movie.
var rules = []rule{
	{category: Group, topicWords: []string{"band", "bands", "groups", "boy bands", "girl groups", "k pop", "kpop"},
		labelTest: labelHasAny(groupLabelMarkers)},
	{category: Person, topicWords: []string{"actor", "actors", "actress", "people", "artists", "singers", "singer", "person", "celebrities", "comedians", "athletes"}},
	{category: Movie, topicWords: []string{"movie", "movies", "film", "films"}, labelWords: []string{"(film)", "film)"}},
	{category: TV, topicWords: []string{"tv", "show", "shows", "series", "anime", "sitcom", "sitcoms", "drama", "dramas", "cartoons"}, labelWords: []string{"(tv series)", "tv series)"}},
	{category: Game, topicWords: []string{"games", "video games", "gaming"}, labelWords: []string{"(video game)"}},
	{category: Book, topicWords: []string{"books", "novels"}, labelWords: []string{"(novel)", "(book)"}},
	{category: Album, topicWords: []string{"albums"}, labelWords: []string{"(album)"}},
	{category: Song, topicWords: []string{"songs", "tracks"}, labelWords: []string{"(song)"}},
	{category: Team, topicWords: []string{"teams", "sports", "football", "soccer", "basketball", "baseball", "hockey", "nfl", "nba", "mlb", "nhl", "clubs", "franchises"},
		labelTest: labelHasAny(teamNameMarkers)},
	{category: Brand, topicWords: []string{"brand", "brands", "company", "companies"},
		labelTest: labelHasAny(corporateSuffixes)},
	{category: Device, topicWords: []string{"gadgets", "devices", "wearables", "smartwatches", "phones", "headphones", "tech"},
		labelTest: labelHasAny(deviceBrandMarkers)},
	{category: Place, topicWords: []string{"places", "cities", "destinations", "landmarks", "parks", "mountains", "lakes", "museums", "countries", "islands", "beaches"},
		labelTest: labelTokenAny(placeLabelWords)},
	{category: Food, topicWords: []string{"food", "foods", "dishes", "snacks", "desserts", "toppings", "cuisine", "cuisines", "drinks", "pizza", "burger", "burgers", "taco", "tacos", "sushi", "tea", "teas", "coffee", "breakfast", "candy"},
		labelTest: labelTokenAny(foodLabelWords)},
}

// Classify maps a (topic name, item label) pair to a Category. The topic
// name is consulted before the label because it is the stronger signal; the
// first matching rule wins and the default is Generic.
func Classify(topicName, label string) Category {
	topic := " " + textutil.Normalize(topicName) + " "
	labelLower := " " + strings.ToLower(strings.TrimSpace(label)) + " "

	for _, r := range rules {
		if containsAnyWord(topic, r.topicWords) {
			return r.category
		}
	}
	for _, r := range rules {
		if containsAnyWord(labelLower, r.labelWords) {
			return r.category
		}
		if r.labelTest != nil && r.labelTest(labelLower) {
			return r.category
		}
	}
	return Generic
}

func containsAnyWord(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, " "+w+" ") {
			return true
		}
	}
	return false
}

func labelHasAny(markers []string) func(string) bool {
	return func(label string) bool {
		for _, m := range markers {
			if strings.Contains(label, m) {
				return true
			}
		}
		return false
	}
}

func labelTokenAny(words []string) func(string) bool {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return func(label string) bool {
		for _, tok := range textutil.Tokenize(label) {
			if _, ok := set[tok]; ok {
				return true
			}
		}
		return false
	}
}

var faceTopicWords = []string{
	"actor", "actors", "actress", "people", "artists", "singers",
	"celebrities", "characters", "heroes", "villains", "athletes",
}

var faceLabelTokens = map[string]struct{}{
	"man": {}, "woman": {}, "boy": {}, "girl": {}, "hero": {},
	"captain": {}, "doctor": {}, "king": {}, "queen": {},
	"prince": {}, "princess": {}, "lord": {}, "lady": {},
}

// PrefersFace reports whether the item should be rendered with face-aware
// framing: person entities, people-flavored topics, or labels naming a
// character or gendered noun.
func PrefersFace(topicName, label string, cat Category) bool {
	if cat == Person {
		return true
	}
	topic := " " + textutil.Normalize(topicName) + " "
	if containsAnyWord(topic, faceTopicWords) {
		return true
	}
	for _, tok := range textutil.Tokenize(label) {
		if _, ok := faceLabelTokens[tok]; ok {
			return true
		}
	}
	return false
}
