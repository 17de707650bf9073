package normalize

import (
	"github.com/jhagent/job-hunter/internal/domain/models"
	log "github.com/sirupsen/logrus"
)

// Response coerces a raw provider payload into normalized jobs. A missing
// or non-list "data" key yields an empty slice; non-mapping items and items
// without a title are skipped with a warning. Never fails.
func Response(payload map[string]any) []models.NormalizedJob {

	data, ok := payload["data"].([]any)
	if !ok {
		log.Warn("response has no 'data' list; returning empty list")
		return []models.NormalizedJob{}
	}

	jobs := make([]models.NormalizedJob, 0, len(data))
	for i, item := range data {
		raw, ok := item.(map[string]any)
		if !ok {
			log.Warnf("skipping non-mapping item at index %v", i)
			continue
		}
		if asString(raw["job_title"]) == "" {
			log.Warnf("skipping job at index %v (missing job_title): %v", i, jobRef(raw, i))
			continue
		}
		jobs = append(jobs, normalizeJob(raw))
	}
	return jobs
}

// normalizeJob fills the full fixed field set, substituting typed defaults
// for anything the provider omitted.
func normalizeJob(raw map[string]any) models.NormalizedJob {
	return models.NormalizedJob{
		ID:              asString(raw["job_id"]),
		Title:           asString(raw["job_title"]),
		Employer:        asString(raw["employer_name"]),
		Description:     asString(raw["job_description"]),
		IsRemote:        asBoolPtr(raw["job_is_remote"]),
		EmploymentType:  asString(raw["job_employment_type"]),
		EmploymentTypes: asStringSlice(raw["job_employment_types"]),
		Location:        asString(raw["job_location"]),
		City:            asString(raw["job_city"]),
		State:           asString(raw["job_state"]),
		Country:         asString(raw["job_country"]),
		ApplyLink:       asString(raw["job_apply_link"]),
		MinSalary:       asIntPtr(raw["job_min_salary"]),
		MaxSalary:       asIntPtr(raw["job_max_salary"]),
		SalaryPeriod:    asString(raw["job_salary_period"]),
		Highlights:      asHighlights(raw["job_highlights"]),
		Benefits:        asStringSlice(raw["job_benefits"]),
	}
}

func jobRef(raw map[string]any, index int) any {
	if id := asString(raw["job_id"]); id != "" {
		return id
	}
	return index
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

func asBoolPtr(value any) *bool {
	if b, ok := value.(bool); ok {
		return &b
	}
	return nil
}

// asIntPtr accepts the numeric encodings JSON decoding can produce.
// Fractional salaries are truncated.
func asIntPtr(value any) *int {
	switch v := value.(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		return &v
	}
	return nil
}

func asStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asHighlights(value any) map[string][]string {
	raw, ok := value.(map[string]any)
	if !ok {
		return map[string][]string{}
	}
	out := make(map[string][]string, len(raw))
	for key, block := range raw {
		out[key] = asStringSlice(block)
	}
	return out
}
