package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine Prometheus metrics.
var (
	BrowseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dinekit",
			Name:      "browse_duration_seconds",
			Help:      "Filter and sort pipeline duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"collection"},
	)

	BrowseResultSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dinekit",
			Name:      "browse_result_size",
			Help:      "Number of records returned by the filter and sort pipeline",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
		[]string{"collection"},
	)

	FallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinekit",
			Name:      "fallbacks_total",
			Help:      "Unknown sort keys and criterion kinds replaced by defaults",
		},
		[]string{"kind"}, // "sort_key" / "criterion_kind"
	)

	CartMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinekit",
			Name:      "cart_mutations_total",
			Help:      "Cart accumulator mutations",
		},
		[]string{"op"},
	)

	SlotsGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dinekit",
			Name:      "slots_generated_total",
			Help:      "Reservation time slots generated",
		},
	)
)

var registerEngine sync.Once

// RegisterEngineMetrics registers the engine metrics with the default registry. Safe to call more than once.
func RegisterEngineMetrics() {
	registerEngine.Do(func() {
		prometheus.MustRegister(
			BrowseDuration,
			BrowseResultSize,
			FallbacksTotal,
			CartMutationsTotal,
			SlotsGeneratedTotal,
		)
	})
}
