package source

import (
	"regexp"
	"strings"
)

type countryHint struct {
	pattern *regexp.Regexp
	code    string
}

func hint(keyword, code string) countryHint {
	return countryHint{
		pattern: regexp.MustCompile(`\b` + keyword + `\b`),
		code:    code,
	}
}

// countryHints maps location keywords and city names to ISO-2 country
// codes for single-location live requests. First match wins.
var countryHints = []countryHint{
	hint("london", "gb"),
	hint("manchester", "gb"),
	hint("united kingdom", "gb"),
	hint("uk", "gb"),
	hint("england", "gb"),
	hint("berlin", "de"),
	hint("munich", "de"),
	hint("hamburg", "de"),
	hint("germany", "de"),
	hint("paris", "fr"),
	hint("lyon", "fr"),
	hint("france", "fr"),
	hint("madrid", "es"),
	hint("barcelona", "es"),
	hint("spain", "es"),
	hint("amsterdam", "nl"),
	hint("netherlands", "nl"),
	hint("warsaw", "pl"),
	hint("krakow", "pl"),
	hint("poland", "pl"),
	hint("zurich", "ch"),
	hint("switzerland", "ch"),
	hint("stockholm", "se"),
	hint("sweden", "se"),
	hint("lisbon", "pt"),
	hint("portugal", "pt"),
	hint("milan", "it"),
	hint("rome", "it"),
	hint("italy", "it"),
	hint("dublin", "ie"),
	hint("ireland", "ie"),
	hint("vienna", "at"),
	hint("austria", "at"),
	hint("new york", "us"),
	hint("san francisco", "us"),
	hint("seattle", "us"),
	hint("austin", "us"),
	hint("united states", "us"),
	hint("usa", "us"),
	hint("toronto", "ca"),
	hint("vancouver", "ca"),
	hint("canada", "ca"),
	hint("bangalore", "in"),
	hint("india", "in"),
}

// InferCountry guesses an ISO-2 country code from a free-text location.
// Returns "" when nothing matches; the provider then guesses on its own.
func InferCountry(location string) string {
	location = strings.ToLower(strings.TrimSpace(location))
	if location == "" {
		return ""
	}
	for _, h := range countryHints {
		if h.pattern.MatchString(location) {
			return h.code
		}
	}
	return ""
}
