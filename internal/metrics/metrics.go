package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_pipeline_runs_total",
		Help: "Pipeline runs by outcome.",
	}, []string{"status"})

	RowsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campaign_rows_dropped_total",
		Help: "Source rows excluded during normalization.",
	})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaign_pipeline_duration_seconds",
		Help:    "Wall time of a full pipeline run.",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaign_http_requests_total",
		Help: "HTTP requests by method, path and status.",
	}, []string{"method", "path", "status"})
)
