package summary

import (
	"html/template"
	"os"
	"strconv"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/samber/lo"
)

type htmlCriterion struct {
	Label string
	Value string
}

type htmlJob struct {
	Number       int
	Role         string
	Employer     string
	Location     string
	LocationType string
	PositionType string
	MinSalary    *int
	Industry     string
	AdLanguage   string
	TechStack    []string
	Requirements []string
	ApplyLink    string
}

type htmlPage struct {
	Role          string
	Criteria      []htmlCriterion
	Jobs          []htmlJob
	Total         int
	CorrelationID string
}

var htmlTemplate = template.Must(template.New("results").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>Job results — {{.Role}}</title>
  <style>
    *, *::before, *::after { box-sizing: border-box; margin: 0; padding: 0; }
    body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #f4f6f9; color: #222; padding: 2rem 1rem; }
    header { max-width: 860px; margin: 0 auto 2rem; }
    header h1 { font-size: 1.7rem; font-weight: 700; color: #1a1a2e; margin-bottom: 1rem; }
    .criteria { background: #fff; border-radius: 10px; box-shadow: 0 2px 8px rgba(0,0,0,.08); padding: 1rem 1.4rem; margin-bottom: 0.75rem; }
    .criteria table { border-collapse: collapse; font-size: 0.88rem; }
    .criteria th { text-align: left; width: 140px; padding: 0.22rem 0.6rem 0.22rem 0; color: #666; font-weight: 600; }
    .criteria td { color: #222; padding: 0.22rem 0; }
    .run-meta { font-size: 0.8rem; color: #888; margin-top: 0.5rem; }
    .cards { max-width: 860px; margin: 0 auto; display: flex; flex-direction: column; gap: 1.25rem; }
    .card { background: #fff; border-radius: 10px; box-shadow: 0 2px 8px rgba(0,0,0,.08); padding: 1.4rem 1.6rem; }
    .card-header { display: flex; align-items: flex-start; gap: 1rem; margin-bottom: 1rem; }
    .job-num { background: #e8edf5; color: #3a5a8c; font-weight: 700; font-size: 0.8rem; padding: 0.25rem 0.55rem; border-radius: 6px; white-space: nowrap; margin-top: 0.2rem; }
    .job-title { font-size: 1.15rem; font-weight: 700; color: #1a1a2e; }
    .company { font-size: 0.95rem; color: #555; margin-top: 0.15rem; }
    table.meta { border-collapse: collapse; width: 100%; font-size: 0.88rem; margin-bottom: 0.9rem; }
    table.meta th { text-align: left; width: 140px; padding: 0.28rem 0.5rem 0.28rem 0; color: #666; font-weight: 600; vertical-align: top; }
    table.meta td { padding: 0.28rem 0; color: #333; vertical-align: top; }
    td.tags { display: flex; flex-wrap: wrap; gap: 0.35rem; }
    .tag { background: #e8f0fe; color: #2a5aad; font-size: 0.78rem; padding: 0.18rem 0.55rem; border-radius: 20px; font-weight: 500; }
    .reqs { font-size: 0.88rem; margin-bottom: 1rem; }
    .reqs strong { display: block; margin-bottom: 0.4rem; color: #444; }
    .reqs ul { padding-left: 1.2rem; color: #333; }
    .reqs li { margin-bottom: 0.25rem; line-height: 1.45; }
    .apply-btn { display: inline-block; background: #2a5aad; color: #fff; text-decoration: none; padding: 0.45rem 1.1rem; border-radius: 7px; font-size: 0.88rem; font-weight: 600; }
    .apply-btn:hover { background: #1e4080; }
    footer { max-width: 860px; margin: 2rem auto 0; font-size: 0.8rem; color: #999; text-align: center; }
  </style>
</head>
<body>
  <header>
    <h1>Job results: {{.Role}}</h1>
    <div class="criteria">
      <table>
        {{- range .Criteria}}
        <tr><th>{{.Label}}</th><td>{{.Value}}</td></tr>
        {{- end}}
      </table>
    </div>
    <div class="run-meta">{{.Total}} job(s) after filtering &nbsp;&middot;&nbsp; Run: {{.CorrelationID}}</div>
  </header>
  <div class="cards">
    {{- range .Jobs}}
    <div class="card">
      <div class="card-header">
        <span class="job-num">#{{.Number}}</span>
        <div>
          <div class="job-title">{{.Role}}</div>
          <div class="company">{{.Employer}}</div>
        </div>
      </div>
      <table class="meta">
        <tr><th>Location</th><td>{{.Location}}</td></tr>
        <tr><th>Location type</th><td>{{.LocationType}}</td></tr>
        <tr><th>Position type</th><td>{{.PositionType}}</td></tr>
        {{- if .MinSalary}}
        <tr><th>Min. salary</th><td>{{.MinSalary}} (annual)</td></tr>
        {{- end}}
        {{- if .Industry}}
        <tr><th>Industry</th><td>{{.Industry}}</td></tr>
        {{- end}}
        {{- if .AdLanguage}}
        <tr><th>Job ad language</th><td>{{.AdLanguage}}</td></tr>
        {{- end}}
        {{- if .TechStack}}
        <tr><th>Tech stack</th><td class="tags">{{range .TechStack}}<span class="tag">{{.}}</span>{{end}}</td></tr>
        {{- end}}
      </table>
      {{- if .Requirements}}
      <div class="reqs"><strong>Key requirements</strong><ul>
        {{- range .Requirements}}
        <li>{{.}}</li>
        {{- end}}
      </ul></div>
      {{- end}}
      {{- if .ApplyLink}}
      <a class="apply-btn" href="{{.ApplyLink}}" target="_blank" rel="noopener">Apply</a>
      {{- end}}
    </div>
    {{- end}}
  </div>
  <footer>Generated by job-hunter</footer>
</body>
</html>
`))

func exportHTML(event events.JobsFound, path string) error {

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	page := htmlPage{
		Role:          event.Query.Role,
		Criteria:      buildCriteria(event.Query),
		Jobs:          buildHTMLJobs(event.Jobs),
		Total:         len(event.Jobs),
		CorrelationID: event.CorrelationID,
	}

	if err := htmlTemplate.Execute(file, page); err != nil {
		return err
	}
	return file.Close()
}

func buildCriteria(query *models.SearchQuery) []htmlCriterion {

	criteria := []htmlCriterion{
		{Label: "Role", Value: query.Role},
		{Label: "Location", Value: orAny(query.Location)},
		{Label: "Date posted", Value: string(query.DatePosted)},
	}

	if len(query.Countries) > 0 {
		criteria = append(criteria, htmlCriterion{
			Label: "Countries",
			Value: strings.ToUpper(strings.Join(query.Countries, ", ")),
		})
	}
	if len(query.LocationTypes) > 0 {
		criteria = append(criteria, htmlCriterion{
			Label: "Location type",
			Value: strings.Join(query.LocationTypes, ", "),
		})
	}
	if len(query.PositionTypes) > 0 {
		criteria = append(criteria, htmlCriterion{
			Label: "Position type",
			Value: strings.Join(query.PositionTypes, ", "),
		})
	}
	if query.MinimumSalary != nil {
		criteria = append(criteria, htmlCriterion{
			Label: "Min. salary",
			Value: strconv.Itoa(*query.MinimumSalary) + " (annual)",
		})
	}
	if query.IndustryFilter != "" {
		criteria = append(criteria, htmlCriterion{Label: "Industry", Value: query.IndustryFilter})
	}
	if query.LanguageFilter != "" && query.LanguageFilter != "any" {
		criteria = append(criteria, htmlCriterion{Label: "Job ad language", Value: query.LanguageFilter})
	}

	return criteria
}

func buildHTMLJobs(jobs []models.ExtractedJob) []htmlJob {
	return lo.Map(jobs, func(job models.ExtractedJob, i int) htmlJob {
		language := job.AdLanguage
		if language == models.LanguageNotDefined {
			language = ""
		}
		return htmlJob{
			Number:       i + 1,
			Role:         job.Role,
			Employer:     job.Employer,
			Location:     orNotSpecified(job.Location),
			LocationType: string(job.LocationType),
			PositionType: string(job.PositionType),
			MinSalary:    job.MinSalary,
			Industry:     job.Industry,
			AdLanguage:   language,
			TechStack:    job.TechStack,
			Requirements: capRequirements(job.Requirements),
			ApplyLink:    job.ApplyLink,
		}
	})
}
