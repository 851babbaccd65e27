package providers

import (
	"runlog/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncPersistenceWrites(op string, ok bool)
	SetRunsTotal(count int)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	persistenceWrites   *prometheus.CounterVec
	runsTotal           prometheus.Gauge
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncPersistenceWrites(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.persistenceWrites.WithLabelValues(op, result).Inc()
}

func (m *MetricsProvider) SetRunsTotal(count int) {
	m.runsTotal.Set(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "runlog_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "runlog_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "runlog_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "runlog_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "runlog_persistence_duration_seconds",
			Help:    "Duration of physical writes to the durable store in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		persistenceWrites: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "runlog_persistence_writes_total",
			Help: "Physical operations against the durable store",
		}, []string{"op", "result"}),

		runsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "runlog_runs_total",
			Help: "Number of entries in the run collection",
		}),
	}
}

// noopMetrics is used when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncPersistenceWrites(_ string, _ bool)            {}
func (n *noopMetrics) SetRunsTotal(_ int)                               {}
