package flight

import (
	"regexp"
	"strings"
)

var iataPattern = regexp.MustCompile(`\(([A-Z]{3})\)`)

// ExtractIATACode pulls the code out of free-text airport strings like
// "New York (JFK)". Plain input is uppercased and truncated to three
// characters; the ANYWHERE sentinel passes through untouched.
func ExtractIATACode(airport string) string {
	if airport == DestinationAnywhere {
		return airport
	}
	if match := iataPattern.FindStringSubmatch(airport); match != nil {
		return match[1]
	}
	code := strings.ToUpper(strings.TrimSpace(airport))
	if len(code) > 3 {
		code = code[:3]
	}
	return code
}
