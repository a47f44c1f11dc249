package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pipeline Prometheus metrics.
var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry_chef",
			Name:      "provider_requests_total",
			Help:      "Upstream provider calls by outcome",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pantry_chef",
			Name:      "provider_request_duration_seconds",
			Help:      "Upstream provider call duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 12, 20},
		},
		[]string{"provider"},
	)

	WatchdogFiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pantry_chef",
			Name:      "watchdog_fired_total",
			Help:      "Requests answered by the watchdog fallback",
		},
	)

	RecipesReturnedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry_chef",
			Name:      "recipes_returned_total",
			Help:      "Recipes returned to clients by provenance badge",
		},
		[]string{"badge"},
	)

	FilterRelaxedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "pantry_chef",
			Name:      "filter_relaxed_total",
			Help:      "Requests where the relaxed admissibility pass was needed",
		},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pantry_chef",
			Name:      "cache_total",
			Help:      "Cache hits and misses",
		},
		[]string{"namespace", "result"}, // "hit" / "miss"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers the pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRequestDuration)
	prometheus.MustRegister(WatchdogFiredTotal)
	prometheus.MustRegister(RecipesReturnedTotal)
	prometheus.MustRegister(FilterRelaxedTotal)
	prometheus.MustRegister(CacheTotal)
	pipelineMetricsRegistered = true
}

// ObserveProvider records one provider call.
func ObserveProvider(provider, status string, d time.Duration) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// ObserveCache records a cache lookup.
func ObserveCache(namespace string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheTotal.WithLabelValues(namespace, result).Inc()
}
