package source

import (
	"os"
	"strings"

	"github.com/jhagent/job-hunter/internal/domain/models"
	"github.com/jhagent/job-hunter/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// ErrNoDataSource is returned when no live credentials are configured and
// the offline dataset cannot be used. It is fatal for the run.
var ErrNoDataSource = errors.New("RAPID_API_KEY is not set and the offline dataset is unavailable")

func (g *Gateway) loadOffline(query *models.SearchQuery) (map[string]any, error) {

	log.Infof("no API key configured, falling back to offline dataset %v", g.cfg.OfflineDataset)

	content, err := os.ReadFile(g.cfg.OfflineDataset)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOfflineData).
			Errorf("failed to read offline dataset: %v", err)
		return nil, errors.Wrapf(ErrNoDataSource, "reading %v: %v", g.cfg.OfflineDataset, err)
	}

	payload, err := ParseLenient(content)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeOfflineData).
			Errorf("failed to parse offline dataset: %v", err)
		return nil, errors.Wrapf(ErrNoDataSource, "parsing %v: %v", g.cfg.OfflineDataset, err)
	}

	return filterOffline(payload, query), nil
}

// filterOffline approximates the query against the static dataset. The two
// modes intentionally differ: multi-country matches the per-country code
// exactly, single-location substring-matches the free-text location fields.
func filterOffline(payload map[string]any, query *models.SearchQuery) map[string]any {

	items := jobList(payload)

	var filtered []any
	switch {
	case query.MultiCountry():
		filtered = lo.Filter(items, func(item any, _ int) bool {
			job, ok := item.(map[string]any)
			if !ok {
				return false
			}
			country, _ := job["job_country"].(string)
			return lo.Contains(query.Countries, strings.ToLower(country))
		})

	case strings.TrimSpace(query.Location) != "":
		needle := strings.ToLower(strings.TrimSpace(query.Location))
		filtered = lo.Filter(items, func(item any, _ int) bool {
			job, ok := item.(map[string]any)
			if !ok {
				return false
			}
			for _, field := range []string{"job_location", "job_city", "job_state", "job_country"} {
				if value, _ := job[field].(string); value != "" &&
					strings.Contains(strings.ToLower(value), needle) {
					return true
				}
			}
			return false
		})

	default:
		return payload
	}

	out := make(map[string]any, len(payload))
	for key, value := range payload {
		out[key] = value
	}
	out["data"] = filtered
	return out
}
