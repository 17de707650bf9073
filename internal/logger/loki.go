package logger

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/jhagent/job-hunter/pkg/loki"
	log "github.com/sirupsen/logrus"
)

// pusherErrors routes the pusher's own failures back through logrus. The
// "source" marker lets the hook skip them, breaking the feedback loop.
type pusherErrors struct{}

func (pusherErrors) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": "loki"}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {

	if entry.Data["source"] == "loki" {
		return nil
	}

	return h.pusher.Push(loki.LogEntry{
		Level:   entry.Level.String(),
		Message: entry.Message,
		Caller:  callerRef(entry),
	})
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

func callerRef(entry *log.Entry) string {
	if entry.Caller == nil {
		return ""
	}
	return filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
}

func addLokiHook(ctx context.Context, cfg loki.Config, minLevel log.Level) error {

	pusher, err := loki.New(ctx, cfg, pusherErrors{})
	if err != nil {
		return err
	}

	log.AddHook(&lokiHook{pusher: pusher, minLevel: minLevel})
	log.Info("Loki logging enabled")
	return nil
}
