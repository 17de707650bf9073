package extract

import (
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/samber/lo"
)

const (
	industryPrefixLen  = 2000
	languagePrefixLen  = 5000
	maxRequirements    = 15
	maxRequirementScan = 50
)

// Extractor derives the classification fields of an ExtractedJob. All
// classifiers are pure functions of a single job; the language detector is
// the only shared (read-only) state.
type Extractor struct {
	detector languageDetector
}

func New() *Extractor {
	return &Extractor{detector: newLinguaDetector()}
}

// SetDetector overrides the language detector; used by tests.
func (e *Extractor) SetDetector(detector languageDetector) {
	e.detector = detector
}

func (e *Extractor) All(jobs []models.NormalizedJob) []models.ExtractedJob {
	extracted := make([]models.ExtractedJob, len(jobs))
	for i := range jobs {
		extracted[i] = e.Extract(jobs[i])
	}
	return extracted
}

func (e *Extractor) Extract(job models.NormalizedJob) models.ExtractedJob {
	return models.ExtractedJob{
		Role:         job.Title,
		Employer:     job.Employer,
		Location:     job.Location,
		Country:      job.Country,
		LocationType: locationType(job),
		PositionType: positionType(job),
		MinSalary:    job.MinSalary,
		Industry:     industry(job),
		AdLanguage:   e.adLanguage(job),
		TechStack:    techStack(job),
		Requirements: requirements(job),
		ApplyLink:    job.ApplyLink,
		Source:       &job,
	}
}

func locationType(job models.NormalizedJob) models.LocationType {

	isRemoteFlag := job.IsRemote != nil && *job.IsRemote
	combined := strings.ToLower(job.Title + " " + job.Description)

	if isRemoteFlag {
		return models.LocationRemote
	}
	for _, rule := range locationRules {
		for _, pattern := range rule.patterns {
			if pattern.MatchString(combined) {
				return rule.label
			}
		}
	}
	if job.Location != "" {
		// has a location and is not flagged remote, assume on-site
		return models.LocationOnSite
	}
	return models.LocationNotDefined
}

func positionType(job models.NormalizedJob) models.PositionType {

	types := lo.Map(job.EmploymentTypes, func(t string, _ int) string {
		return strings.ToUpper(t)
	})
	combined := strings.ToLower(job.Title + " " + job.Description + " " +
		job.EmploymentType + " " + strings.Join(types, " "))

	if lo.Contains(types, "CONTRACTOR") {
		return models.PositionContract
	}
	for _, rule := range positionRules {
		if rule.label == models.PositionPermanent &&
			(lo.Contains(types, "FULLTIME") || lo.Contains(types, "PARTTIME")) {
			return models.PositionPermanent
		}
		for _, pattern := range rule.patterns {
			if pattern.MatchString(combined) {
				return rule.label
			}
		}
	}
	return models.PositionNotDefined
}

func industry(job models.NormalizedJob) string {

	text := strings.ToLower(job.Employer + " " + prefix(job.Description, industryPrefixLen))

	for _, group := range industryGroups {
		for _, keyword := range group.keywords {
			if strings.Contains(text, keyword) {
				return group.label
			}
		}
	}
	return ""
}

// adLanguage reports the language the posting is written in, not a
// candidate-language requirement.
func (e *Extractor) adLanguage(job models.NormalizedJob) string {

	description := strings.TrimSpace(job.Description)
	if description == "" {
		return models.LanguageNotDefined
	}

	code, ok := e.detector.Detect(prefix(description, languagePrefixLen))
	if !ok {
		return models.LanguageNotDefined
	}
	return code
}

func techStack(job models.NormalizedJob) []string {

	var blocks []string
	for _, block := range job.Highlights {
		blocks = append(blocks, strings.Join(block, " "))
	}
	combined := strings.ToLower(job.Description + " " + strings.Join(blocks, " "))

	var found []string
	for _, tech := range techVocabulary {
		if strings.Contains(combined, strings.ToLower(tech)) {
			found = append(found, tech)
		}
	}
	return found
}

func requirements(job models.NormalizedJob) []string {

	if quals := job.Highlights["Qualifications"]; len(quals) > 0 {
		if len(quals) > maxRequirements {
			return quals[:maxRequirements]
		}
		return quals
	}

	var candidates []string
	for _, line := range strings.Split(job.Description, "\n") {
		line = strings.TrimSpace(line)
		if len(line) > 20 {
			candidates = append(candidates, line)
		}
	}
	if len(candidates) > maxRequirementScan {
		candidates = candidates[:maxRequirementScan]
	}

	var out []string
	for _, line := range candidates {
		if containsRequirementKeyword(line) || sentenceLike(line) {
			out = append(out, line)
			if len(out) >= maxRequirements {
				break
			}
		}
	}
	return out
}

func containsRequirementKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, keyword := range requirementKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func sentenceLike(line string) bool {
	return strings.HasSuffix(line, ".") && len(line) > 30 && len(line) < 300
}

// prefix bounds text by runes so multi-byte characters are never split.
func prefix(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
