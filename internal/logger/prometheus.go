package logger

import (
	"github.com/jhagent/job-hunter/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// prometheusHook counts error-level log records by their error_type field,
// so dashboards can break failures down by subsystem without parsing logs.
type prometheusHook struct{}

func (h *prometheusHook) Fire(entry *log.Entry) error {
	metrics.ErrorsCounter.WithLabelValues(errorType(entry)).Inc()
	return nil
}

func (h *prometheusHook) Levels() []log.Level {
	return []log.Level{log.ErrorLevel, log.FatalLevel, log.PanicLevel}
}

func errorType(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	return "unknown"
}
