package planner

import (
	"sort"
	"strings"

	"github.com/motherroad/motherroad/internal/catalog"
)

// route66StatePreference disambiguates city names that appear in more than
// one state along the route. These are historical judgment calls about which
// city a traveler conventionally means (Springfield, IL is the route's
// Springfield; Springfield, MO exists too), preserved as an explicit table
// rather than inferred from data.
var route66StatePreference = map[string]string{
	"chicago":        "IL",
	"springfield":    "IL",
	"st louis":       "MO",
	"joplin":         "MO",
	"tulsa":          "OK",
	"oklahoma city":  "OK",
	"amarillo":       "TX",
	"albuquerque":    "NM",
	"gallup":         "NM",
	"flagstaff":      "AZ",
	"kingman":        "AZ",
	"barstow":        "CA",
	"san bernardino": "CA",
	"santa monica":   "CA",
}

// maxSuggestions bounds the suggestion list on a failed lookup.
const maxSuggestions = 5

// Resolution is the result of resolving a city query.
type Resolution struct {
	// Stop is the matched destination city.
	Stop catalog.Stop

	// LowConfidence is set when an ambiguous query was settled by catalog
	// order rather than an exact match or a preference entry.
	LowConfidence bool
}

// ResolveCity maps a free-text query ("Chicago", "St. Louis, MO") to exactly
// one destination city from the candidates. Matching is case-insensitive and
// punctuation-normalized, first hit wins:
//
//  1. exact match on the canonical "City, State" form
//  2. exact match on the raw stop name
//  3. comma queries: city and state components both match exactly
//  4. city-name-only match, with the Route 66 preference table breaking ties
//  5. substring fallback (either string contains the other)
//
// On failure the returned *Error carries up to five suggested names.
func ResolveCity(query string, candidates []catalog.Stop) (Resolution, error) {
	normQuery := normalizeCityQuery(query)
	if normQuery == "" || len(candidates) == 0 {
		return Resolution{}, notFoundError(query, candidates)
	}

	// Step 1: canonical "City, State" form.
	for _, c := range candidates {
		if normalizeCityQuery(c.DisplayName()) == normQuery {
			return Resolution{Stop: c}, nil
		}
	}

	// Step 2: raw name field.
	for _, c := range candidates {
		if normalizeCityQuery(c.Name) == normQuery {
			return Resolution{Stop: c}, nil
		}
	}

	// Step 3: split "city, state" queries and require both parts to match.
	if city, state, ok := splitCityState(normQuery); ok {
		for _, c := range candidates {
			if normalizeCityQuery(c.CityName) == city && strings.EqualFold(c.State, state) {
				return Resolution{Stop: c}, nil
			}
		}
	}

	// Step 4: city name only.
	cityPart := normQuery
	if city, _, ok := splitCityState(normQuery); ok {
		cityPart = city
	}
	var byCity []catalog.Stop
	for _, c := range candidates {
		if normalizeCityQuery(c.CityName) == cityPart {
			byCity = append(byCity, c)
		}
	}
	switch {
	case len(byCity) == 1:
		return Resolution{Stop: byCity[0]}, nil
	case len(byCity) > 1:
		if preferred, ok := route66StatePreference[cityPart]; ok {
			for _, c := range byCity {
				if strings.EqualFold(c.State, preferred) {
					return Resolution{Stop: c}, nil
				}
			}
		}
		// No preference entry: catalog order is deterministic, flag it.
		return Resolution{Stop: byCity[0], LowConfidence: true}, nil
	}

	// Step 5: substring fallback in either direction.
	for _, c := range candidates {
		name := normalizeCityQuery(c.CityName)
		if name == "" {
			name = normalizeCityQuery(c.Name)
		}
		if strings.Contains(name, cityPart) || strings.Contains(cityPart, name) {
			return Resolution{Stop: c, LowConfidence: true}, nil
		}
	}

	return Resolution{}, notFoundError(query, candidates)
}

// normalizeCityQuery lowercases, strips punctuation other than the
// city/state comma, and collapses whitespace. "St. Louis ,MO" and
// "st louis, mo" normalize identically.
func normalizeCityQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ',':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '-':
			b.WriteRune(' ')
		}
		// Periods, apostrophes and other punctuation are dropped.
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(b.String(), ",", " , ")), " ")
}

// splitCityState splits a normalized query at its comma.
func splitCityState(norm string) (city, state string, ok bool) {
	parts := strings.SplitN(norm, " , ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	city = strings.TrimSpace(parts[0])
	state = strings.ToUpper(strings.TrimSpace(parts[1]))
	if city == "" || state == "" {
		return "", "", false
	}
	return city, state, true
}

// notFoundError builds a CityNotFound error with suggestions drawn from the
// candidates closest to the query by shared prefix length, then catalog order.
func notFoundError(query string, candidates []catalog.Stop) *Error {
	norm := normalizeCityQuery(query)

	type scored struct {
		name  string
		score int
		order int
	}
	seen := make(map[string]bool, len(candidates))
	suggestions := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		name := c.DisplayName()
		if seen[name] {
			continue
		}
		seen[name] = true
		suggestions = append(suggestions, scored{
			name:  name,
			score: sharedPrefixLen(normalizeCityQuery(name), norm),
			order: i,
		})
	}
	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].score != suggestions[j].score {
			return suggestions[i].score > suggestions[j].score
		}
		return suggestions[i].order < suggestions[j].order
	})

	names := make([]string, 0, maxSuggestions)
	for _, s := range suggestions {
		if len(names) == maxSuggestions {
			break
		}
		names = append(names, s.name)
	}

	return &Error{
		Code:        "CITY_NOT_FOUND",
		Message:     "no destination city matches " + quote(query),
		Suggestions: names,
		Err:         ErrCityNotFound,
	}
}

// quote wraps a user-supplied query for error messages.
func quote(s string) string {
	return `"` + s + `"`
}

func sharedPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}
