package models

// LocationType classifies where the work happens. Values are display
// strings, matched case-insensitively by filters.
type LocationType string

const (
	LocationOnSite     LocationType = "on-site"
	LocationHybrid     LocationType = "hybrid"
	LocationRemote     LocationType = "remote"
	LocationNotDefined LocationType = "not defined"
)

type PositionType string

const (
	PositionPermanent  PositionType = "permanent"
	PositionContract   PositionType = "contract"
	PositionFreelance  PositionType = "freelance"
	PositionNotDefined PositionType = "not defined"
)

// LanguageNotDefined is used when the ad language could not be detected.
const LanguageNotDefined = "not defined"

// NormalizedJob is a provider record coerced into a fixed shape. Every
// field is present after normalization; optional provider fields are
// pointers or empty collections. Created only by the normalize package
// and treated as immutable afterwards.
type NormalizedJob struct {
	ID              string
	Title           string
	Employer        string
	Description     string
	IsRemote        *bool
	EmploymentType  string
	EmploymentTypes []string
	Location        string
	City            string
	State           string
	Country         string
	ApplyLink       string
	MinSalary       *int
	MaxSalary       *int
	SalaryPeriod    string
	Highlights      map[string][]string
	Benefits        []string
}

// ExtractedJob is a NormalizedJob plus the heuristically derived
// classification fields. Industry is empty when no category matched.
type ExtractedJob struct {
	Role         string
	Employer     string
	Location     string
	Country      string
	LocationType LocationType
	PositionType PositionType
	MinSalary    *int
	Industry     string
	AdLanguage   string
	TechStack    []string
	Requirements []string
	ApplyLink    string
	Source       *NormalizedJob
}
