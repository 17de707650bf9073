package cache

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/samber/lo"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9_-]+`)
var underscoreRuns = regexp.MustCompile(`_+`)

// Slug sanitises a string for use as a filename segment: lowercase,
// forbidden characters replaced with underscores, runs collapsed, capped
// at 80 chars. Empty input becomes "any".
func Slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "any"
	}
	s = nonAlnum.ReplaceAllString(s, "_")
	s = underscoreRuns.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 80 {
		s = s[:80]
	}
	if s == "" {
		return "any"
	}
	return s
}

// Fingerprint derives the cache key for a query. Country codes are sorted
// first, so two queries differing only in country order share an entry.
func Fingerprint(query *models.SearchQuery) string {

	parts := []string{
		Slug(query.Role),
		Slug(query.Location),
		Slug(string(query.DatePosted)),
	}

	if countries := sortedCountries(query); len(countries) > 0 {
		parts = append(parts, strings.Join(countries, ","))
	}

	return strings.Join(parts, "__")
}

func sortedCountries(query *models.SearchQuery) []string {
	if len(query.Countries) == 0 {
		return nil
	}
	countries := lo.Map(query.Countries, func(c string, _ int) string {
		return strings.ToLower(strings.TrimSpace(c))
	})
	sort.Strings(countries)
	return countries
}
