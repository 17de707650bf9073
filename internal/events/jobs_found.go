package events

import "github.com/jhagent/job-hunter/internal/domain/models"

const JobsFoundTopic = "jobs:found"

// JobsFound is published after every pipeline run, with the jobs that
// survived filtering. Subscribers (exporter, notifier) must not mutate Jobs.
type JobsFound struct {
	Query         *models.SearchQuery
	CorrelationID string
	TotalFetched  int
	UsedCache     bool
	APICalled     bool
	Jobs          []models.ExtractedJob
}
