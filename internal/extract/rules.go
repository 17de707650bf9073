package extract

import (
	"regexp"

	"github.com/jhagent/job-hunter/internal/domain/models"
)

func compile(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

type locationRule struct {
	label    models.LocationType
	patterns []*regexp.Regexp
}

// locationRules are checked in precedence order: remote > hybrid > on-site.
var locationRules = []locationRule{
	{models.LocationRemote, compile(
		`\bremote\b`,
		`work from home`,
		`fully remote`,
		`remote within`,
		`remote opportunity`,
		`100% remote`,
	)},
	{models.LocationHybrid, compile(
		`\bhybrid\b`,
		`hybrid (work|model|way)`,
		`in[- ]?office.*virtual`,
		`primarily in office.*virtual`,
		`flexible.*remote`,
	)},
	{models.LocationOnSite, compile(
		`on[- ]?site`,
		`in[- ]?person`,
		`office location`,
		`locat(e|ion) (requirement|to)`,
		`must be (local|in)`,
	)},
}

type positionRule struct {
	label    models.PositionType
	patterns []*regexp.Regexp
}

// positionRules are checked in precedence order:
// contract > freelance > permanent.
var positionRules = []positionRule{
	{models.PositionContract, compile(
		`\bcontract\b`,
		`contractor`,
		`\bcontract:\s*\d+`,
		`12 months`,
		`6 months`,
	)},
	{models.PositionFreelance, compile(
		`\bfreelance\b`,
		`freelancer`,
		`self[- ]?employed`,
	)},
	{models.PositionPermanent, compile(
		`full[- ]?time`,
		`permanent`,
		`employee`,
		`fulltime`,
	)},
}

type industryGroup struct {
	label    string
	keywords []string
}

// industryGroups are scanned in order; the first group with any keyword
// present in employer name + description prefix wins.
var industryGroups = []industryGroup{
	{"Finance / Insurance", []string{"fintech", "finance", "bank", "payment", "insurance"}},
	{"Retail", []string{"retail", "ecommerce", "e-commerce"}},
	{"Defense / Government", []string{"defense", "security clearance", "ts/sci", "government"}},
	{"Healthcare", []string{"health", "medical"}},
}

// techVocabulary is the curated technology list scanned against the ad
// text; matches keep this order.
var techVocabulary = []string{
	"Kotlin", "Java", "Android", "Android SDK", "Android Studio", "Gradle",
	"Jetpack", "Compose", "MVVM", "MVI", "Room", "SQLite", "Retrofit",
	"REST", "GraphQL", "JSON", "Coroutines", "RxJava", "Dagger", "Hilt",
	"JUnit", "Espresso", "Mockito", "CI/CD", "Git", "GitHub", "GitLab",
	"Azure", "AWS", "GCP", "Firebase", "NDK", "Python", "C++", "Swift",
	"Objective-C", "React", "Node", "TypeScript", "JavaScript", "RESTful",
}

var requirementKeywords = []string{
	"required", "qualifications", "requirements", "must have", "experience",
}
