package filtering

import (
	"testing"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func job(locationType models.LocationType, positionType models.PositionType,
	minSalary *int, industry, language string) models.ExtractedJob {
	return models.ExtractedJob{
		LocationType: locationType,
		PositionType: positionType,
		MinSalary:    minSalary,
		Industry:     industry,
		AdLanguage:   language,
	}
}

func englishJob() models.ExtractedJob {
	return job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "Finance / Insurance", "en")
}

func Test_EmptyLocationTypeSet_AcceptsEveryValue(t *testing.T) {

	query := &models.SearchQuery{LanguageFilter: "any"}

	jobs := []models.ExtractedJob{
		job(models.LocationOnSite, models.PositionNotDefined, nil, "", "en"),
		job(models.LocationHybrid, models.PositionNotDefined, nil, "", "en"),
		job(models.LocationRemote, models.PositionNotDefined, nil, "", "en"),
		job(models.LocationNotDefined, models.PositionNotDefined, nil, "", "en"),
	}

	assert.Len(t, Apply(jobs, query), 4)
}

func Test_LocationTypeMembership(t *testing.T) {

	query := &models.SearchQuery{LocationTypes: []string{"remote", "hybrid"}, LanguageFilter: "any"}

	jobs := []models.ExtractedJob{
		job(models.LocationRemote, models.PositionNotDefined, nil, "", "en"),
		job(models.LocationOnSite, models.PositionNotDefined, nil, "", "en"),
		job(models.LocationHybrid, models.PositionNotDefined, nil, "", "en"),
	}

	filtered := Apply(jobs, query)
	assert.Len(t, filtered, 2)
	assert.Equal(t, models.LocationRemote, filtered[0].LocationType)
	assert.Equal(t, models.LocationHybrid, filtered[1].LocationType)
}

func Test_SalaryFilter_UndefinedSalaryFails(t *testing.T) {

	query := &models.SearchQuery{MinimumSalary: intPtr(1), LanguageFilter: "any"}

	noSalary := job(models.LocationRemote, models.PositionPermanent, nil, "", "en")
	assert.Empty(t, Apply([]models.ExtractedJob{noSalary}, query))

	query.MinimumSalary = nil
	assert.Len(t, Apply([]models.ExtractedJob{noSalary}, query), 1)
}

func Test_SalaryFilter_Threshold(t *testing.T) {

	query := &models.SearchQuery{MinimumSalary: intPtr(50000), LanguageFilter: "any"}

	jobs := []models.ExtractedJob{
		job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", "en"),
		job(models.LocationRemote, models.PositionPermanent, intPtr(40000), "", "en"),
		job(models.LocationRemote, models.PositionPermanent, intPtr(50000), "", "en"),
	}

	filtered := Apply(jobs, query)
	assert.Len(t, filtered, 2)
	assert.Equal(t, 70000, *filtered[0].MinSalary)
	assert.Equal(t, 50000, *filtered[1].MinSalary)
}

func Test_IndustryFilter_SubstringCaseInsensitive(t *testing.T) {

	query := &models.SearchQuery{IndustryFilter: "finance", LanguageFilter: "any"}

	match := englishJob()
	noIndustry := job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", "en")
	other := job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "Retail", "en")

	filtered := Apply([]models.ExtractedJob{match, noIndustry, other}, query)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Finance / Insurance", filtered[0].Industry)
}

func Test_LanguageFilter_DefaultsToEnglish(t *testing.T) {

	query := &models.SearchQuery{}

	english := englishJob()
	german := job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", "de")
	undefined := job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", models.LanguageNotDefined)

	filtered := Apply([]models.ExtractedJob{english, german, undefined}, query)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "en", filtered[0].AdLanguage)
}

func Test_LanguageFilter_AnyAcceptsEverything(t *testing.T) {

	query := &models.SearchQuery{LanguageFilter: "any"}

	jobs := []models.ExtractedJob{
		englishJob(),
		job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", "de"),
		job(models.LocationRemote, models.PositionPermanent, intPtr(70000), "", models.LanguageNotDefined),
	}

	assert.Len(t, Apply(jobs, query), 3)
}

func Test_Apply_PreservesOrder(t *testing.T) {

	query := &models.SearchQuery{LanguageFilter: "any"}

	first := englishJob()
	first.Role = "first"
	second := englishJob()
	second.Role = "second"

	filtered := Apply([]models.ExtractedJob{first, second}, query)
	assert.Equal(t, []string{"first", "second"}, []string{filtered[0].Role, filtered[1].Role})
}
