package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	IngestsTotal     prometheus.Counter
	IngestsSkipped   prometheus.Counter
	RecordsInserted  *prometheus.CounterVec
	RecordsMalformed *prometheus.CounterVec
	ProviderErrors   *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		IngestsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingests_total",
			Help:      "The total number of ingestion requests processed",
		}),
		IngestsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingests_skipped_total",
			Help:      "Ingestion requests short-circuited by the idempotency check",
		}),
		RecordsInserted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_inserted_total",
			Help:      "Rows durably inserted into the store",
		}, []string{"provider"}),
		RecordsMalformed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_malformed_total",
			Help:      "Upstream records skipped for lacking an identifying key",
		}, []string{"provider"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Failed provider fetches",
		}, []string{"provider"}),
		FetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_fetch_duration_seconds",
			Help:      "Time taken by upstream provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
}
