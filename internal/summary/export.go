package summary

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/jhagent/job-hunter/internal/cache"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// exportedJob is the flat export shape. The field names are part of the
// output contract; downstream spreadsheets rely on them.
type exportedJob struct {
	Role          string   `json:"role"`
	EmployerName  string   `json:"employer_name"`
	Location      string   `json:"location"`
	LocationType  string   `json:"location_type"`
	PositionType  string   `json:"position_type"`
	MinimumSalary *int     `json:"minimum_salary"`
	Industry      string   `json:"industry"`
	AdLanguage    string   `json:"job_spec_language"`
	TechStack     []string `json:"tech_stack"`
	Requirements  []string `json:"requirements"`
	JobLink       string   `json:"job_link"`
}

func toExported(job models.ExtractedJob) exportedJob {
	return exportedJob{
		Role:          job.Role,
		EmployerName:  job.Employer,
		Location:      job.Location,
		LocationType:  string(job.LocationType),
		PositionType:  string(job.PositionType),
		MinimumSalary: job.MinSalary,
		Industry:      job.Industry,
		AdLanguage:    job.AdLanguage,
		TechStack:     job.TechStack,
		Requirements:  job.Requirements,
		JobLink:       job.ApplyLink,
	}
}

// Exporter writes filtered jobs to the results directory in the formats
// selected by search.output. The *_launch variants additionally open the
// written file with the OS handler; launch failures are warnings.
type Exporter struct {
	resultsDir string
	outputs    []string
	launcher   func(path string) error
}

func NewExporter(resultsDir string, outputs []string) *Exporter {
	return &Exporter{
		resultsDir: resultsDir,
		outputs: lo.Map(outputs, func(mode string, _ int) string {
			return strings.ToLower(strings.TrimSpace(mode))
		}),
		launcher: openInSystem,
	}
}

// SetLauncher overrides the file opener; used by tests.
func (e *Exporter) SetLauncher(launcher func(path string) error) {
	e.launcher = launcher
}

// Handle is subscribed to the jobs-found topic. Nothing is written when no
// jobs survived filtering.
func (e *Exporter) Handle(event events.JobsFound) {

	if len(event.Jobs) == 0 {
		return
	}

	if err := os.MkdirAll(e.resultsDir, 0755); err != nil {
		log.Errorf("failed to create results directory: %v", err)
		return
	}

	prefix := exportPrefix(event.Query, event.CorrelationID)
	exported := lo.Map(event.Jobs, func(job models.ExtractedJob, _ int) exportedJob {
		return toExported(job)
	})

	var generated []string

	if e.wants("json") {
		path := e.exportPath(prefix, "json")
		if err := exportJSON(exported, path); err != nil {
			log.Errorf("failed to export JSON results: %v", err)
		} else {
			generated = append(generated, path)
			e.maybeLaunch("json_launch", path)
		}
	}

	if e.wants("csv") {
		path := e.exportPath(prefix, "csv")
		if err := exportCSV(exported, path); err != nil {
			log.Errorf("failed to export CSV results: %v", err)
		} else {
			generated = append(generated, path)
			e.maybeLaunch("csv_launch", path)
		}
	}

	if e.wants("html") {
		path := e.exportPath(prefix, "html")
		if err := exportHTML(event, path); err != nil {
			log.Errorf("failed to export HTML results: %v", err)
		} else {
			generated = append(generated, path)
			e.maybeLaunch("html_launch", path)
		}
	}

	if len(generated) > 0 {
		log.Infof("exported results: %s", strings.Join(generated, ", "))
	}
}

func (e *Exporter) wants(format string) bool {
	return lo.Contains(e.outputs, format) || lo.Contains(e.outputs, format+"_launch")
}

func (e *Exporter) maybeLaunch(mode, path string) {
	if !lo.Contains(e.outputs, mode) {
		return
	}
	if err := e.launcher(path); err != nil {
		log.Warnf("could not open %v with the system handler: %v", path, err)
	}
}

func (e *Exporter) exportPath(prefix, ext string) string {
	return filepath.Join(e.resultsDir, prefix+"_jobs."+ext)
}

// exportPrefix mirrors the cache fingerprint slugging so exports and cache
// entries for the same search sort together.
func exportPrefix(query *models.SearchQuery, correlationID string) string {

	locationSlug := cache.Slug(query.Location)
	if query.MultiCountry() {
		locationSlug = "europe"
	}

	return cache.Slug(query.Role) + "-" + locationSlug + "-" +
		cache.Slug(string(query.DatePosted)) + "-" + correlationID
}

func exportJSON(jobs []exportedJob, path string) error {

	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func exportCSV(jobs []exportedJob, path string) error {

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{
		"role", "employer_name", "location", "location_type", "position_type",
		"minimum_salary", "industry", "job_spec_language", "tech_stack", "requirements", "job_link",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, job := range jobs {
		salary := ""
		if job.MinimumSalary != nil {
			salary = strconv.Itoa(*job.MinimumSalary)
		}
		requirements := lo.Map(job.Requirements, func(req string, _ int) string {
			return truncateNoEllipsis(req, 100)
		})
		record := []string{
			job.Role, job.EmployerName, job.Location, job.LocationType, job.PositionType,
			salary, job.Industry, job.AdLanguage,
			strings.Join(job.TechStack, "; "), strings.Join(requirements, "; "), job.JobLink,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func truncateNoEllipsis(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func openInSystem(path string) error {

	absolute, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", absolute).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", absolute).Start()
	default:
		return exec.Command("xdg-open", absolute).Start()
	}
}
