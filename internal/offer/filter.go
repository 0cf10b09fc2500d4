package offer

import "strings"

// CategoryAll is the sentinel category selection meaning "no category
// constraint".
const CategoryAll = "All Offers"

// countryValues maps a lowercased country selection coming from the
// client to the value stored on offers. Selections without a mapping
// disable the country stage entirely.
var countryValues = map[string]string{
	"qatar":        "Qatar",
	"uae":          "UAE",
	"saudi arabia": "Saudi Arabia",
	"bahrain":      "Bahrain",
	"kuwait":       "Kuwait",
	"oman":         "Oman",
}

// Criteria is the multi-select filter state. An empty set in any field
// means that field places no constraint at all.
type Criteria struct {
	Cuisines   []string
	Locations  []string
	OfferTypes []string
}

type Query struct {
	Country  string
	Category string
	Criteria Criteria
	Search   string
}

// NameLookup resolves a restaurant id to its lowercase name, returning
// "" for unknown ids so that free-text search never matches them.
type NameLookup func(id int) string

// Filter narrows offers through the stages of the browse pipeline:
// country, category, cuisine, location, offer type and free-text
// search. Stages compose with AND; within a multi-select field the
// selected values compose with OR. Input order is preserved and the
// input slice is never mutated.
func Filter(offers []Offer, q Query, lookup NameLookup) []Offer {
	result := offers

	if stored, ok := countryValues[strings.ToLower(strings.TrimSpace(q.Country))]; ok {
		result = keep(result, func(o Offer) bool {
			return o.Country == stored
		})
	}

	if q.Category != "" && q.Category != CategoryAll {
		result = keep(result, func(o Offer) bool {
			return o.Category == q.Category
		})
	}

	if len(q.Criteria.Cuisines) > 0 {
		selected := toSet(q.Criteria.Cuisines)
		result = keep(result, func(o Offer) bool {
			return selected[o.Cuisine]
		})
	}

	if len(q.Criteria.Locations) > 0 {
		locations := q.Criteria.Locations
		result = keep(result, func(o Offer) bool {
			for _, loc := range locations {
				if strings.Contains(o.Location, loc) {
					return true
				}
			}
			return false
		})
	}

	if len(q.Criteria.OfferTypes) > 0 {
		selected := toSet(q.Criteria.OfferTypes)
		result = keep(result, func(o Offer) bool {
			return selected[o.OfferType]
		})
	}

	if search := strings.ToLower(strings.TrimSpace(q.Search)); search != "" {
		result = keep(result, func(o Offer) bool {
			if strings.Contains(strings.ToLower(o.Title), search) {
				return true
			}
			if strings.Contains(strings.ToLower(o.Description), search) {
				return true
			}
			if lookup == nil {
				return false
			}
			name := lookup(o.RestaurantID.Int())
			return name != "" && strings.Contains(name, search)
		})
	}

	return result
}

func keep(offers []Offer, predicate func(Offer) bool) []Offer {
	filtered := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if predicate(o) {
			filtered = append(filtered, o)
		}
	}

	return filtered
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}

	return set
}
