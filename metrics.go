package graphqlclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the GraphQL request
// lifecycle and the response cache. It is safe for concurrent use and all
// recorders are nil-receiver safe, so a client without metrics pays only a
// nil check.
type MetricsCollector struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSize   *prometheus.GaugeVec

	deduplicationHits *prometheus.CounterVec

	errorsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using supplied registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	mc := &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphqlclient_requests_total",
				Help: "Total number of GraphQL requests executed",
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "graphqlclient_request_duration_seconds",
				Help:    "Duration of GraphQL requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "status_code", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graphqlclient_requests_in_flight",
				Help: "Number of GraphQL requests currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphqlclient_cache_hits_total",
				Help: "Total number of response cache hits",
			},
			[]string{"method", "cache"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphqlclient_cache_misses_total",
				Help: "Total number of response cache misses",
			},
			[]string{"method", "cache"},
		),
		cacheSize: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "graphqlclient_cache_size",
				Help: "Current number of entries in a response cache",
			},
			[]string{"cache"},
		),
		deduplicationHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphqlclient_deduplication_hits_total",
				Help: "Total number of requests coalesced with an identical in-flight request",
			},
			[]string{"method", "endpoint"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "graphqlclient_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type", "method", "endpoint"},
		),
	}

	if r, ok := registry.(*prometheus.Registry); ok {
		mc.registry = r
	}

	return mc
}

// RecordRequest records request count and duration.
func (mc *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	if mc == nil {
		return
	}

	statusCodeStr := strconv.Itoa(statusCode)
	mc.requestsTotal.WithLabelValues(method, statusCodeStr, endpoint).Inc()
	mc.requestDuration.WithLabelValues(method, statusCodeStr, endpoint).Observe(duration.Seconds())
}

// RecordRequestStart increments in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements in-flight gauge.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
}

// RecordCacheHit increments cache hit counter.
func (mc *MetricsCollector) RecordCacheHit(method, cache string) {
	if mc == nil {
		return
	}

	mc.cacheHits.WithLabelValues(method, cache).Inc()
}

// RecordCacheMiss increments cache miss counter.
func (mc *MetricsCollector) RecordCacheMiss(method, cache string) {
	if mc == nil {
		return
	}

	mc.cacheMisses.WithLabelValues(method, cache).Inc()
}

// RecordCacheSize sets cache size gauge.
func (mc *MetricsCollector) RecordCacheSize(cache string, size int) {
	if mc == nil {
		return
	}

	mc.cacheSize.WithLabelValues(cache).Set(float64(size))
}

// RecordDeduplicationHit increments de-dup hit counter.
func (mc *MetricsCollector) RecordDeduplicationHit(method, endpoint string) {
	if mc == nil {
		return
	}

	mc.deduplicationHits.WithLabelValues(method, endpoint).Inc()
}

// RecordError increments error counter by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}

	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}

// GetRegistry exposes the underlying prometheus registry, nil when the
// collector was built on a non-Registry registerer.
func (mc *MetricsCollector) GetRegistry() *prometheus.Registry {
	return mc.registry
}
