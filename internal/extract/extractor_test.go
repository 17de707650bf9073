package extract

import (
	"strings"
	"testing"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

type stubDetector struct {
	code string
	ok   bool
}

func (d stubDetector) Detect(string) (string, bool) {
	return d.code, d.ok
}

func newTestExtractor() *Extractor {
	e := &Extractor{}
	e.SetDetector(stubDetector{code: "en", ok: true})
	return e
}

func boolPtr(b bool) *bool { return &b }
func intPtr(n int) *int    { return &n }

func Test_LocationType_Precedence(t *testing.T) {

	tests := []struct {
		name string
		job  models.NormalizedJob
		want models.LocationType
	}{
		{"remote flag wins", models.NormalizedJob{IsRemote: boolPtr(true), Description: "on-site role"}, models.LocationRemote},
		{"remote phrase", models.NormalizedJob{Description: "This is a fully remote opportunity."}, models.LocationRemote},
		{"remote beats hybrid", models.NormalizedJob{Description: "remote or hybrid possible"}, models.LocationRemote},
		{"hybrid phrase", models.NormalizedJob{Description: "We offer a hybrid work model."}, models.LocationHybrid},
		{"onsite phrase", models.NormalizedJob{Description: "You will work on-site in our office."}, models.LocationOnSite},
		{"location fallback", models.NormalizedJob{Location: "Berlin, Germany", Description: "Great team."}, models.LocationOnSite},
		{"nothing known", models.NormalizedJob{Description: "Great team."}, models.LocationNotDefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, locationType(tt.job))
		})
	}
}

func Test_PositionType_Precedence(t *testing.T) {

	tests := []struct {
		name string
		job  models.NormalizedJob
		want models.PositionType
	}{
		{"contractor tag", models.NormalizedJob{EmploymentTypes: []string{"CONTRACTOR"}}, models.PositionContract},
		{"contract phrase", models.NormalizedJob{Description: "contract: 6 months with extension"}, models.PositionContract},
		{"contract beats permanent", models.NormalizedJob{EmploymentTypes: []string{"FULLTIME"}, Description: "12 months contract"}, models.PositionContract},
		{"freelance phrase", models.NormalizedJob{Description: "looking for a freelancer"}, models.PositionFreelance},
		{"fulltime tag", models.NormalizedJob{EmploymentTypes: []string{"FULLTIME"}}, models.PositionPermanent},
		{"parttime tag", models.NormalizedJob{EmploymentTypes: []string{"PARTTIME"}}, models.PositionPermanent},
		{"permanent phrase", models.NormalizedJob{Description: "this is a permanent position"}, models.PositionPermanent},
		{"nothing known", models.NormalizedJob{Description: "join us"}, models.PositionNotDefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, positionType(tt.job))
		})
	}
}

func Test_Industry_FirstGroupWins(t *testing.T) {

	job := models.NormalizedJob{Employer: "Acme Fintech", Description: "We also serve retail clients."}
	assert.Equal(t, "Finance / Insurance", industry(job))

	job = models.NormalizedJob{Employer: "Shop Co", Description: "Leading e-commerce platform."}
	assert.Equal(t, "Retail", industry(job))

	job = models.NormalizedJob{Employer: "Plain Software"}
	assert.Equal(t, "", industry(job))
}

func Test_Industry_OnlyScansDescriptionPrefix(t *testing.T) {

	padding := strings.Repeat("x", industryPrefixLen)
	job := models.NormalizedJob{Description: padding + " fintech"}
	assert.Equal(t, "", industry(job))
}

func Test_TechStack_VocabularyOrderNoDuplicates(t *testing.T) {

	job := models.NormalizedJob{
		Description: "Looking for Compose and Kotlin experience. KOTLIN is a must.",
		Highlights:  map[string][]string{"Qualifications": {"Retrofit, Coroutines"}},
	}

	stack := techStack(job)
	assert.Equal(t, []string{"Kotlin", "Compose", "Retrofit", "Coroutines"}, stack)
}

func Test_Requirements_PrefersQualificationsBlock(t *testing.T) {

	quals := make([]string, 20)
	for i := range quals {
		quals[i] = "Requirement entry"
	}
	job := models.NormalizedJob{
		Description: "Line with required skills that would otherwise match.",
		Highlights:  map[string][]string{"Qualifications": quals},
	}

	reqs := requirements(job)
	assert.Len(t, reqs, 15)
	assert.Equal(t, "Requirement entry", reqs[0])
}

func Test_Requirements_DescriptionFallback(t *testing.T) {

	description := strings.Join([]string{
		"short",
		"5+ years of Android experience required",
		"This sentence is long enough and ends with a period.",
		"this line is long enough but has no keyword and no period",
	}, "\n")

	job := models.NormalizedJob{Description: description}

	reqs := requirements(job)
	assert.Equal(t, []string{
		"5+ years of Android experience required",
		"This sentence is long enough and ends with a period.",
	}, reqs)
}

func Test_AdLanguage(t *testing.T) {

	extractor := New()

	english := models.NormalizedJob{Description: "We are looking for a software engineer to join our mobile team and build delightful applications."}
	assert.Equal(t, "en", extractor.adLanguage(english))

	german := models.NormalizedJob{Description: "Wir suchen einen erfahrenen Entwickler für unser Team in München. Gute Deutschkenntnisse sind erforderlich."}
	assert.Equal(t, "de", extractor.adLanguage(german))

	empty := models.NormalizedJob{Description: "   "}
	assert.Equal(t, models.LanguageNotDefined, extractor.adLanguage(empty))
}

func Test_AdLanguage_DetectionFailure(t *testing.T) {

	e := &Extractor{}
	e.SetDetector(stubDetector{ok: false})

	job := models.NormalizedJob{Description: "0101010101"}
	assert.Equal(t, models.LanguageNotDefined, e.adLanguage(job))
}

func Test_Extract_DoesNotMutateInput(t *testing.T) {

	extractor := newTestExtractor()
	job := models.NormalizedJob{
		Title:       "Android Developer",
		Description: "Remote Kotlin role.",
		MinSalary:   intPtr(70000),
	}
	original := job

	extracted := extractor.Extract(job)
	assert.Equal(t, original, job)
	assert.Equal(t, models.LocationRemote, extracted.LocationType)
	assert.Equal(t, 70000, *extracted.MinSalary)
	assert.Equal(t, "Android Developer", extracted.Source.Title)
}
