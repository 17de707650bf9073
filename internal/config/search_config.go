package config

import (
	"fmt"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/samber/lo"
)

var locationTypeChoices = []string{"on-site", "hybrid", "remote"}
var positionTypeChoices = []string{"permanent", "contract", "freelance"}

// OutputChoices are the allowed values of the search.output list.
var OutputChoices = []string{"json", "csv", "html", "json_launch", "csv_launch", "html_launch"}

type SearchConfig struct {
	Role            string   `mapstructure:"role"`
	Location        string   `mapstructure:"location"`
	DatePosted      string   `mapstructure:"date_posted"`
	EuropeCountries []string `mapstructure:"europe_countries"`

	LocationTypes  []string `mapstructure:"location_types"`
	PositionTypes  []string `mapstructure:"position_types"`
	MinimumSalary  *int     `mapstructure:"minimum_salary"`
	IndustryFilter string   `mapstructure:"industry_filter"`
	LanguageFilter string   `mapstructure:"language_filter"`

	Output []string `mapstructure:"output"`
}

func (config SearchConfig) validate() error {

	if strings.TrimSpace(config.Role) == "" {
		return fmt.Errorf("missing variable: role")
	}

	if _, ok := models.ToDatePosted(config.DatePosted); !ok {
		return fmt.Errorf("invalid date_posted value: %q", config.DatePosted)
	}

	if models.IsEuropeLocation(config.Location) && len(config.EuropeCountries) == 0 {
		return fmt.Errorf("european search mode requires at least one country code in europe_countries")
	}

	if len(config.Output) == 0 {
		return fmt.Errorf("output is empty; allowed values: %s", strings.Join(OutputChoices, ", "))
	}
	for _, mode := range config.Output {
		if !lo.Contains(OutputChoices, strings.ToLower(strings.TrimSpace(mode))) {
			return fmt.Errorf("invalid output mode %q; allowed values: %s", mode, strings.Join(OutputChoices, ", "))
		}
	}

	return nil
}

// ToQuery resolves the config section into the query consumed by the
// pipeline. Unknown location/position type entries are dropped, matching
// the original interactive prompts.
func (config SearchConfig) ToQuery() *models.SearchQuery {

	datePosted, _ := models.ToDatePosted(config.DatePosted)

	var countries []string
	if models.IsEuropeLocation(config.Location) {
		countries = config.EuropeCountries
	}

	query := models.NewSearchQuery(config.Role, config.Location, datePosted, countries)
	query.LocationTypes = normalizeChoices(config.LocationTypes, locationTypeChoices)
	query.PositionTypes = normalizeChoices(config.PositionTypes, positionTypeChoices)
	query.MinimumSalary = config.MinimumSalary
	query.IndustryFilter = strings.TrimSpace(config.IndustryFilter)
	query.LanguageFilter = strings.ToLower(strings.TrimSpace(config.LanguageFilter))
	return query
}

func normalizeChoices(values []string, valid []string) []string {
	normalized := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.ToLower(strings.TrimSpace(v))
		return v, lo.Contains(valid, v)
	})
	return lo.Uniq(normalized)
}
