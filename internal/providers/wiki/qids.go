package wiki

import "rankle/internal/classify"

// Instance-of (P31) class whitelists per category. An entity counts as the
// right kind of thing when any of its classes appears in the category's set.
// Categories without a set skip the check.
var instanceClasses = map[classify.Category]map[string]struct{}{
	classify.Team: {
		"Q12973014": {}, // sports team
		"Q847017":   {}, // sports club
		"Q476028":   {}, // association football club
		"Q13393265": {}, // basketball team
		"Q650711":   {}, // ice hockey team
		"Q18558301": {}, // baseball team
	},
	classify.Brand: {
		"Q431289": {}, // brand
		"Q4830453": {}, // business
		"Q6881511": {}, // enterprise
		"Q891723":  {}, // public company
		"Q658255":  {}, // subsidiary
		"Q786820":  {}, // automobile manufacturer
	},
	classify.Place: {
		"Q515":     {}, // city
		"Q1549591": {}, // big city
		"Q5119":    {}, // capital
		"Q6256":    {}, // country
		"Q8502":    {}, // mountain
		"Q23397":   {}, // lake
		"Q4022":    {}, // river
		"Q23442":   {}, // island
		"Q33506":   {}, // museum
		"Q22698":   {}, // park
		"Q570116":  {}, // tourist attraction
	},
	classify.Food: {
		"Q2095":     {}, // food
		"Q746549":   {}, // dish
		"Q40050":    {}, // drink
		"Q25403900": {}, // food ingredient
	},
	classify.Device: {
		"Q811701":  {}, // model series
		"Q2424752": {}, // product
		"Q3966":    {}, // computer hardware
		"Q1183543": {}, // device
	},
}

// P31MatchesClass reports whether any of the entity's instance-of IDs fits
// the category. Empty ID lists fail closed for whitelisted categories: an
// untyped entity is not evidence the label means what the topic implies.
func P31MatchesClass(ids []string, cat classify.Category) bool {
	allowed, checked := instanceClasses[cat]
	if !checked {
		return true
	}
	for _, id := range ids {
		if _, ok := allowed[id]; ok {
			return true
		}
	}
	return false
}
