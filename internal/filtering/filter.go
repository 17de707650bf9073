package filtering

import (
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/samber/lo"
)

// Apply runs the user's predicate chain over extracted jobs, preserving
// input order. Each predicate passes everything through when its filter is
// unset.
func Apply(jobs []models.ExtractedJob, query *models.SearchQuery) []models.ExtractedJob {
	return lo.Filter(jobs, func(job models.ExtractedJob, _ int) bool {
		return passesLocationType(job, query) &&
			passesPositionType(job, query) &&
			passesMinimumSalary(job, query) &&
			passesIndustry(job, query) &&
			passesLanguage(job, query)
	})
}

func passesLocationType(job models.ExtractedJob, query *models.SearchQuery) bool {
	if len(query.LocationTypes) == 0 {
		return true
	}
	return lo.Contains(query.LocationTypes, strings.ToLower(string(job.LocationType)))
}

func passesPositionType(job models.ExtractedJob, query *models.SearchQuery) bool {
	if len(query.PositionTypes) == 0 {
		return true
	}
	return lo.Contains(query.PositionTypes, strings.ToLower(string(job.PositionType)))
}

// passesMinimumSalary rejects jobs without a defined minimum salary
// whenever a threshold is set.
func passesMinimumSalary(job models.ExtractedJob, query *models.SearchQuery) bool {
	if query.MinimumSalary == nil {
		return true
	}
	if job.MinSalary == nil {
		return false
	}
	return *job.MinSalary >= *query.MinimumSalary
}

func passesIndustry(job models.ExtractedJob, query *models.SearchQuery) bool {
	if query.IndustryFilter == "" {
		return true
	}
	if job.Industry == "" {
		return false
	}
	return strings.Contains(strings.ToLower(job.Industry), strings.ToLower(query.IndustryFilter))
}

// passesLanguage defaults to English-only; "any" disables the filter. A
// job whose ad language could not be detected fails any concrete filter.
func passesLanguage(job models.ExtractedJob, query *models.SearchQuery) bool {
	filter := strings.ToLower(query.LanguageFilter)
	if filter == "" {
		filter = "en"
	}
	if filter == "any" {
		return true
	}
	language := strings.ToLower(job.AdLanguage)
	if language == "" || language == models.LanguageNotDefined {
		return false
	}
	return strings.HasPrefix(language, filter)
}
