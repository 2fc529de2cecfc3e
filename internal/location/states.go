// Package location decides whether a posting's location rules admit the candidate's home state.
package location

import (
	"regexp"
	"sort"
	"strings"
)

// usStates holds the two-letter codes of the 50 states plus DC
var usStates = map[string]bool{
	"AL": true, "AK": true, "AZ": true, "AR": true, "CA": true, "CO": true, "CT": true, "DE": true, "FL": true, "GA": true,
	"HI": true, "ID": true, "IL": true, "IN": true, "IA": true, "KS": true, "KY": true, "LA": true, "ME": true, "MD": true,
	"MA": true, "MI": true, "MN": true, "MS": true, "MO": true, "MT": true, "NE": true, "NV": true, "NH": true, "NJ": true,
	"NM": true, "NY": true, "NC": true, "ND": true, "OH": true, "OK": true, "OR": true, "PA": true, "RI": true, "SC": true,
	"SD": true, "TN": true, "TX": true, "UT": true, "VT": true, "VA": true, "WA": true, "WV": true, "WI": true, "WY": true,
	"DC": true,
}

// stateNames maps lower-cased full names to codes. Text is split on whitespace before
// lookup, so the multi-word entries never resolve.
var stateNames = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR",
	"california": "CA", "colorado": "CO", "connecticut": "CT", "delaware": "DE",
	"florida": "FL", "georgia": "GA", "hawaii": "HI", "idaho": "ID",
	"illinois": "IL", "indiana": "IN", "iowa": "IA", "kansas": "KS",
	"kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS",
	"missouri": "MO", "montana": "MT", "nebraska": "NE", "nevada": "NV",
	"new hampshire": "NH", "new jersey": "NJ", "new mexico": "NM", "new york": "NY",
	"north carolina": "NC", "north dakota": "ND", "ohio": "OH", "oklahoma": "OK",
	"oregon": "OR", "pennsylvania": "PA", "rhode island": "RI", "south carolina": "SC",
	"south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "district of columbia": "DC",
}

var skipTokens = map[string]bool{
	"AND": true, "ONLY": true, "THE": true, "IN": true, "US": true, "USA": true,
}

var tokenSplitRe = regexp.MustCompile(`[,\s/]+`)

// ExtractStates returns the sorted, unique state codes named in text.
// "OR" is read as a conjunction when the text splits into more than two tokens and as Oregon otherwise.
func ExtractStates(text string) []string {
	parts := tokenSplitRe.Split(text, -1)
	seen := make(map[string]bool)

	for _, part := range parts {
		part = strings.TrimSpace(part)
		upper := strings.ToUpper(part)
		if skipTokens[upper] {
			continue
		}
		if upper == "OR" && len(parts) > 2 {
			continue
		}
		if usStates[upper] {
			seen[upper] = true
			continue
		}
		if code, ok := stateNames[strings.ToLower(part)]; ok {
			seen[code] = true
		}
	}

	states := make([]string, 0, len(seen))
	for s := range seen {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}

// IsState reports whether code is a known two-letter state code
func IsState(code string) bool {
	return usStates[strings.ToUpper(strings.TrimSpace(code))]
}
