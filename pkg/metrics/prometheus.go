package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	stageLatency  *prometheus.HistogramVec
	externalCalls *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	analysesTotal *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		stageLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shapematch_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"stage"},
		),
		externalCalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shapematch_external_calls_total",
				Help: "Calls issued to upstream data sources",
			},
			[]string{"source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shapematch_pipeline_errors_total",
				Help: "Pipeline failures by taxonomy kind",
			},
			[]string{"kind"},
		),
		analysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shapematch_analyses_total",
				Help: "Completed similarity analyses",
			},
			[]string{"variable", "mode"},
		),
	}
}

// RecordStageLatency records one pipeline stage duration.
func (r *Recorder) RecordStageLatency(stage string, seconds float64) {
	r.stageLatency.WithLabelValues(stage).Observe(seconds)
}

// RecordExternalCall counts one upstream call.
func (r *Recorder) RecordExternalCall(source string) {
	r.externalCalls.WithLabelValues(source).Inc()
}

// RecordError counts one taxonomy failure.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordAnalysis counts one completed analysis.
func (r *Recorder) RecordAnalysis(variable, mode string) {
	r.analysesTotal.WithLabelValues(variable, mode).Inc()
}
