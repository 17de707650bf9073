package source

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jhagent/job-hunter/internal/clients/jsearch"
	"github.com/jhagent/job-hunter/internal/config"
	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/logger"
	"github.com/jhagent/job-hunter/internal/metrics"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type searchClient interface {
	Search(parameters jsearch.SearchParameters) (map[string]any, error)
}

type cacheStore interface {
	Lookup(query *models.SearchQuery) (map[string]any, bool)
	Save(query *models.SearchQuery, payload map[string]any) error
}

// FetchResult is one resolved fetch: the raw payload plus provenance flags
// and the correlation id shared by the diagnostic snapshot and exports.
type FetchResult struct {
	Payload       map[string]any
	CorrelationID string
	UsedCache     bool
	APICalled     bool
}

// Gateway resolves a logical fetch into a cache hit, live API call(s) or
// the offline dataset. A nil client means no live credentials are
// configured.
type Gateway struct {
	client searchClient
	cache  cacheStore
	cfg    config.SourceConfig
	now    func() time.Time
}

func NewGateway(client searchClient, cache cacheStore, cfg config.SourceConfig) *Gateway {
	return &Gateway{
		client: client,
		cache:  cache,
		cfg:    cfg,
		now:    time.Now,
	}
}

// SetClock overrides the time source; used by tests.
func (g *Gateway) SetClock(now func() time.Time) {
	g.now = now
}

func (g *Gateway) Fetch(query *models.SearchQuery) (*FetchResult, error) {

	correlationID := g.now().Format("20060102_150405")

	if payload, found := g.cache.Lookup(query); found {
		log.Info("using cached response")
		metrics.FetchesCounter.WithLabelValues(metrics.SourceCache).Inc()
		g.writeSnapshot(payload, correlationID)
		return &FetchResult{
			Payload:       payload,
			CorrelationID: correlationID,
			UsedCache:     true,
		}, nil
	}

	var payload map[string]any
	var apiCalled bool
	var err error

	if g.client != nil {
		apiCalled = true
		metrics.FetchesCounter.WithLabelValues(metrics.SourceAPI).Inc()
		if query.MultiCountry() {
			payload = g.fetchMultiCountry(query)
		} else if payload, err = g.fetchSingle(query); err != nil {
			return nil, err
		}
	} else {
		metrics.FetchesCounter.WithLabelValues(metrics.SourceOffline).Inc()
		if payload, err = g.loadOffline(query); err != nil {
			return nil, err
		}
	}

	if err := g.cache.Save(query, payload); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("failed to save response to cache: %v", err)
	}
	g.writeSnapshot(payload, correlationID)

	return &FetchResult{
		Payload:       payload,
		CorrelationID: correlationID,
		APICalled:     apiCalled,
	}, nil
}

func (g *Gateway) fetchSingle(query *models.SearchQuery) (map[string]any, error) {

	params := jsearch.SearchParameters{
		Query:      query.Role,
		Location:   query.Location,
		DatePosted: query.DatePosted,
		Country:    InferCountry(query.Location),
		Page:       1,
		NumPages:   g.cfg.NumPages,
	}

	payload, err := g.client.Search(params)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeJSearchApi).
			Errorf("search request failed: %v", err)
		return nil, err
	}
	return payload, nil
}

// fetchMultiCountry issues one request per configured country, in the
// configured order. A failed country is logged and skipped; it never
// aborts the remaining ones. All-countries-failed yields an empty payload.
func (g *Gateway) fetchMultiCountry(query *models.SearchQuery) map[string]any {

	var merged []any
	for _, country := range query.Countries {

		params := jsearch.SearchParameters{
			Query:      query.Role,
			DatePosted: query.DatePosted,
			Country:    country,
			Page:       1,
			NumPages:   g.cfg.NumPages,
		}

		payload, err := g.client.Search(params)
		if err != nil {
			metrics.CountryFetchErrorsCounter.WithLabelValues(country).Inc()
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeJSearchApi).
				Errorf("search request failed for country %v, skipping: %v", country, err)
			continue
		}

		merged = append(merged, jobList(payload)...)
	}

	return map[string]any{
		"status": "OK",
		"data":   dedupJobs(merged),
	}
}

// dedupJobs keeps the first occurrence of each job id, falling back to the
// job title when the id is absent. Items with neither are kept as-is.
func dedupJobs(items []any) []any {
	blanks := 0
	return lo.UniqBy(items, func(item any) string {
		job, ok := item.(map[string]any)
		if ok {
			if id, _ := job["job_id"].(string); id != "" {
				return "id:" + id
			}
			if title, _ := job["job_title"].(string); title != "" {
				return "title:" + title
			}
		}
		blanks++
		return "blank:" + strconv.Itoa(blanks)
	})
}

func jobList(payload map[string]any) []any {
	items, _ := payload["data"].([]any)
	return items
}

// writeSnapshot persists a timestamped, human-inspectable copy of the
// payload for offline debugging. Best-effort; it is never read back.
func (g *Gateway) writeSnapshot(payload map[string]any, correlationID string) {

	if err := os.MkdirAll(g.cfg.DebugDir, 0755); err != nil {
		log.Errorf("failed to create debug directory: %v", err)
		return
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Errorf("failed to marshal payload snapshot: %v", err)
		return
	}

	path := filepath.Join(g.cfg.DebugDir, correlationID+"_response.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Errorf("failed to write payload snapshot: %v", err)
	}
}
