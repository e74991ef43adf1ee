package airlines

import (
	"sort"
	"strings"
)

type Airport struct {
	Code string
	City string
}

// SuggestAirports returns reference-table airports whose code or city
// contains the keyword, ordered by code for stable output.
func SuggestAirports(keyword string) []Airport {
	needle := strings.ToUpper(strings.TrimSpace(keyword))
	if needle == "" {
		return nil
	}

	var matches []Airport
	for code, city := range airportCities {
		if strings.Contains(code, needle) || strings.Contains(strings.ToUpper(city), needle) {
			matches = append(matches, Airport{Code: code, City: city})
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Code < matches[j].Code })
	return matches
}
