package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Fetch source labels.
const (
	SourceCache   = "cache"
	SourceAPI     = "api"
	SourceOffline = "offline"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunter_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	FetchesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunter_fetches_total",
			Help: "Total number of payload fetches by source.",
		},
		[]string{"source"},
	)
	CountryFetchErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobhunter_country_fetch_errors_total",
			Help: "Total number of failed per-country fetch attempts.",
		},
		[]string{"country"},
	)
	JobsFetchedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobhunter_jobs_fetched_total",
			Help: "Total number of jobs after normalization.",
		},
	)
	JobsFilteredCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobhunter_jobs_filtered_total",
			Help: "Total number of jobs that passed all filters.",
		},
	)
	PipelineDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobhunter_pipeline_duration_seconds",
			Help:    "Duration of each full pipeline run in seconds.",
			Buckets: []float64{0.5, 1, 5, 15, 60, 300},
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(FetchesCounter)
	prometheus.MustRegister(CountryFetchErrorsCounter)
	prometheus.MustRegister(JobsFetchedCounter)
	prometheus.MustRegister(JobsFilteredCounter)
	prometheus.MustRegister(PipelineDuration)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), nil))
	}()
}
