package models

import (
	"strings"

	"github.com/samber/lo"
)

type DatePosted string

const (
	DatePostedAll   DatePosted = "all"
	DatePostedToday DatePosted = "today"
	DatePosted3Days DatePosted = "3days"
	DatePostedWeek  DatePosted = "week"
	DatePostedMonth DatePosted = "month"
)

func ToDatePosted(s string) (DatePosted, bool) {
	switch DatePosted(strings.ToLower(strings.TrimSpace(s))) {
	case DatePostedAll, "":
		return DatePostedAll, true
	case DatePostedToday:
		return DatePostedToday, true
	case DatePosted3Days:
		return DatePosted3Days, true
	case DatePostedWeek:
		return DatePostedWeek, true
	case DatePostedMonth:
		return DatePostedMonth, true
	default:
		return DatePostedAll, false
	}
}

// europeTriggers are the location values that switch a search into
// multi-country mode. Matched case-insensitively.
var europeTriggers = []string{"europe", "eu", "european union"}

func IsEuropeLocation(location string) bool {
	return lo.Contains(europeTriggers, strings.ToLower(strings.TrimSpace(location)))
}

// SearchQuery holds the resolved search parameters and post-fetch filter
// preferences. Countries is non-empty only when Location is a Europe
// trigger; the config layer enforces that invariant.
type SearchQuery struct {
	Role       string
	Location   string
	DatePosted DatePosted
	Countries  []string

	LocationTypes  []string
	PositionTypes  []string
	MinimumSalary  *int
	IndustryFilter string
	LanguageFilter string
}

func NewSearchQuery(role, location string, datePosted DatePosted, countries []string) *SearchQuery {
	normalized := lo.FilterMap(countries, func(c string, _ int) (string, bool) {
		c = strings.ToLower(strings.TrimSpace(c))
		return c, c != ""
	})
	return &SearchQuery{
		Role:       role,
		Location:   location,
		DatePosted: datePosted,
		Countries:  lo.Uniq(normalized),
	}
}

// MultiCountry reports whether the query fans out one request per country.
func (q *SearchQuery) MultiCountry() bool {
	return IsEuropeLocation(q.Location) && len(q.Countries) > 0
}
