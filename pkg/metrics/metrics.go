package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PipelineRuns counts finished description runs by outcome:
	// success, skipped, download_error, decode_error, inference_error.
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "visionbot_pipeline_runs_total",
		Help: "Image description pipeline runs by result.",
	}, []string{"result"})

	// InferenceDuration tracks wall time of the offloaded model call,
	// including time spent queued for a pool worker.
	InferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "visionbot_inference_duration_seconds",
		Help:    "Duration of vision model inference calls.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
