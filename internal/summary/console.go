package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
)

const (
	maxRequirementsShown  = 8
	requirementTruncateAt = 200
)

// Console renders per-job summaries and the run recap. Output goes to a
// writer so tests can capture it; the summaries are the user-facing result
// of a run, not log records.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Handle is subscribed to the jobs-found topic.
func (c *Console) Handle(e events.JobsFound) {

	for i, job := range e.Jobs {
		fmt.Fprint(c.out, buildSummary(job, i))
	}

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "Run recap")
	fmt.Fprintln(c.out, strings.Repeat("-", 40))
	fmt.Fprintf(c.out, "Role: %s\n", e.Query.Role)
	fmt.Fprintf(c.out, "Location: %s\n", orAny(e.Query.Location))
	fmt.Fprintf(c.out, "API called: %s\n", yesNo(e.APICalled))
	fmt.Fprintf(c.out, "Used cache: %s\n", yesNo(e.UsedCache))
	fmt.Fprintf(c.out, "Jobs before filtering: %d\n", e.TotalFetched)
	fmt.Fprintf(c.out, "Jobs after filtering: %d\n", len(e.Jobs))
}

func buildSummary(job models.ExtractedJob, index int) string {

	var b strings.Builder
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Job #%d: %s\n", index+1, job.Role)
	fmt.Fprintf(&b, "Company: %s\n", job.Employer)
	fmt.Fprintf(&b, "Location: %s\n", orNotSpecified(job.Location))
	fmt.Fprintf(&b, "Location type: %s\n", job.LocationType)
	fmt.Fprintf(&b, "Position type: %s\n", job.PositionType)

	if job.MinSalary != nil {
		fmt.Fprintf(&b, "Minimum salary: %d (annual)\n", *job.MinSalary)
	}
	if job.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", job.Industry)
	}
	if job.AdLanguage != "" && job.AdLanguage != models.LanguageNotDefined {
		fmt.Fprintf(&b, "Job ad language: %s\n", job.AdLanguage)
	}
	if len(job.TechStack) > 0 {
		fmt.Fprintf(&b, "Tech stack: %s\n", strings.Join(job.TechStack, ", "))
	}
	if len(job.Requirements) > 0 {
		b.WriteString("Key requirements:\n")
		for _, req := range capRequirements(job.Requirements) {
			fmt.Fprintf(&b, "  - %s\n", req)
		}
	}
	if job.ApplyLink != "" {
		fmt.Fprintf(&b, "Apply: %s\n", job.ApplyLink)
	}
	b.WriteString("\n")
	return b.String()
}

func capRequirements(requirements []string) []string {
	if len(requirements) > maxRequirementsShown {
		requirements = requirements[:maxRequirementsShown]
	}
	out := make([]string, 0, len(requirements))
	for _, req := range requirements {
		out = append(out, truncate(req, requirementTruncateAt))
	}
	return out
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
