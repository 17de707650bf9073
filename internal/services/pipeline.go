package services

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/events"
	"github.com/jhagent/job-hunter/internal/extract"
	"github.com/jhagent/job-hunter/internal/filtering"
	"github.com/jhagent/job-hunter/internal/logger"
	"github.com/jhagent/job-hunter/internal/metrics"
	"github.com/jhagent/job-hunter/internal/normalize"
	"github.com/jhagent/job-hunter/internal/source"
	log "github.com/sirupsen/logrus"
)

type fetcher interface {
	Fetch(query *models.SearchQuery) (*source.FetchResult, error)
}

type runRepository interface {
	Add(ctx context.Context, run models.SearchRun) error
}

// Pipeline runs one full search: fetch, normalize, extract, filter. The
// filtered results are published on the bus; presentation and export are
// subscribers, not pipeline concerns.
type Pipeline struct {
	bus       EventBus.Bus
	gateway   fetcher
	extractor *extract.Extractor
	runs      runRepository
	query     *models.SearchQuery
}

func NewPipeline(bus EventBus.Bus, gateway fetcher, extractor *extract.Extractor,
	runs runRepository, query *models.SearchQuery) *Pipeline {

	return &Pipeline{
		bus:       bus,
		gateway:   gateway,
		extractor: extractor,
		runs:      runs,
		query:     query,
	}
}

func (p *Pipeline) Run() error {

	startTime := time.Now()
	log.Infof("searching: role=%q location=%q", p.query.Role, locationLabel(p.query))

	result, err := p.gateway.Fetch(p.query)
	if err != nil {
		return err
	}

	jobs := normalize.Response(result.Payload)
	totalBefore := len(jobs)
	metrics.JobsFetchedCounter.Add(float64(totalBefore))

	var filtered []models.ExtractedJob
	if totalBefore == 0 {
		log.Info("no jobs found")
	} else {
		log.Infof("found %v job(s) before filtering, extracting key info", totalBefore)
		extracted := p.extractor.All(jobs)
		filtered = filtering.Apply(extracted, p.query)
	}
	metrics.JobsFilteredCounter.Add(float64(len(filtered)))

	if totalBefore > 0 && len(filtered) == 0 {
		log.Info("no jobs matched the filters; try relaxing them " +
			"(e.g. remove minimum salary or broaden location/position type)")
	}

	p.bus.Publish(events.JobsFoundTopic, events.JobsFound{
		Query:         p.query,
		CorrelationID: result.CorrelationID,
		TotalFetched:  totalBefore,
		UsedCache:     result.UsedCache,
		APICalled:     result.APICalled,
		Jobs:          filtered,
	})

	p.recordRun(result, totalBefore, len(filtered))

	executionTime := time.Since(startTime)
	metrics.PipelineDuration.Observe(executionTime.Seconds())
	log.Infof("run finished after %v: api called: %v, used cache: %v, "+
		"jobs before filtering: %v, jobs after filtering: %v",
		executionTime, result.APICalled, result.UsedCache, totalBefore, len(filtered))

	return nil
}

func (p *Pipeline) recordRun(result *source.FetchResult, totalBefore, totalAfter int) {

	if p.runs == nil {
		return
	}

	run := models.SearchRun{
		Role:          p.query.Role,
		Location:      p.query.Location,
		DatePosted:    string(p.query.DatePosted),
		Countries:     strings.Join(p.query.Countries, ","),
		CorrelationID: result.CorrelationID,
		UsedCache:     result.UsedCache,
		APICalled:     result.APICalled,
		JobsFetched:   totalBefore,
		JobsFiltered:  totalAfter,
	}

	if err := p.runs.Add(context.Background(), run); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record search run: %v", err)
	}
}

func locationLabel(query *models.SearchQuery) string {
	if query.Location == "" {
		return "any"
	}
	return query.Location
}
