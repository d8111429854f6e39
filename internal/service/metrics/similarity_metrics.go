package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	SimilarityLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shapematch",
			Subsystem: "similarity",
			Name:      "latency_seconds",
			Help:      "Latency of similarity endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	SimilarityErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shapematch",
			Subsystem: "similarity",
			Name:      "errors_total",
			Help:      "Errors by similarity endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(SimilarityLatency, SimilarityErrors)
	})
}
