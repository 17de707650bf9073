package models

import "time"

// SearchRun is one recorded pipeline execution, persisted for the run
// history view and pruned by the runs cleaner.
type SearchRun struct {
	ID            int `gorm:"primaryKey"`
	Role          string
	Location      string
	DatePosted    string
	Countries     string
	CorrelationID string
	UsedCache     bool
	APICalled     bool
	JobsFetched   int
	JobsFiltered  int
	CreatedAt     time.Time
}
