package services

import (
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler re-runs the pipeline on a cron schedule (watch mode). Fetch
// errors in scheduled runs are logged, not fatal: a transient provider
// outage should not kill a long-running watcher.
type Scheduler struct {
	pipeline *Pipeline
	cron     *cron.Cron
}

func NewScheduler(pipeline *Pipeline, spec string) (*Scheduler, error) {

	if spec == "" {
		return nil, errors.New("cron spec must not be empty")
	}

	s := &Scheduler{
		pipeline: pipeline,
		cron:     cron.New(),
	}

	_, err := s.cron.AddFunc(spec, s.runOnce)
	if err != nil {
		return nil, err
	}

	s.cron.Start()
	log.Infof("watch mode started with schedule %q", spec)
	return s, nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	if err := s.pipeline.Run(); err != nil {
		log.Errorf("scheduled run failed: %v", err)
	}
}
