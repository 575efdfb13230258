package observability

import (
	"time"

	"github.com/boddenberg/finboard-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the BFA.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	ledgerQueries   *prometheus.CounterVec
	transferEvents  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	cacheEvictions  *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finboard_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		ledgerQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_ledger_queries_total",
				Help: "Total ledger queries by sort key.",
			},
			[]string{"sort"},
		),
		transferEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_transfer_events_total",
				Help: "Total transfer workflow events by outcome.",
			},
			[]string{"event", "outcome"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		cacheEvictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_cache_evictions_total",
				Help: "Total cache entries removed by TTL cleanup.",
			},
			[]string{"cache"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finboard_requests_total",
				Help: "Total HTTP requests processed, by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrLedgerQuery increments the ledger query counter for a sort key.
func (m *Metrics) IncrLedgerQuery(sort string) {
	m.ledgerQueries.WithLabelValues(sort).Inc()
}

// IncrTransferEvent increments the transfer event counter.
func (m *Metrics) IncrTransferEvent(event, outcome string) {
	m.transferEvents.WithLabelValues(event, outcome).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrCacheEviction increments the cache eviction counter.
func (m *Metrics) IncrCacheEviction(cache string) {
	m.cacheEvictions.WithLabelValues(cache).Inc()
}

// IncrRequest increments the HTTP request counter. outcome is "success"
// for 2xx/3xx responses and "error" for 4xx/5xx.
func (m *Metrics) IncrRequest(outcome string) {
	m.requestsTotal.WithLabelValues(outcome).Inc()
}

// GetUsageSnapshot returns a snapshot of usage counters suitable for the
// GET /v1/metrics/usage endpoint.
func (m *Metrics) GetUsageSnapshot() *domain.UsageMetrics {
	// Prometheus counters expose cumulative values.
	queries := float64(0)
	for _, sort := range []string{"", "date-desc", "date-asc", "amount-desc", "amount-asc"} {
		queries += getCounterValue(m.ledgerQueries, sort)
	}

	submits := getCounterValue(m.transferEvents, domain.TransferEventSubmit, "ok") +
		getCounterValue(m.transferEvents, domain.TransferEventSubmit, "rejected")
	confirmed := getCounterValue(m.transferEvents, domain.TransferEventConfirm, "ok")
	rejected := getCounterValue(m.transferEvents, domain.TransferEventSubmit, "rejected")

	cacheHits := getCounterValue(m.cacheHits, "insights")
	cacheMisses := getCounterValue(m.cacheMisses, "insights")
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	errored := getCounterValue(m.requestsTotal, "error")
	requests := getCounterValue(m.requestsTotal, "success") + errored
	errorRate := float64(0)
	if requests > 0 {
		errorRate = errored / requests
	}

	return &domain.UsageMetrics{
		Requests:          int64(requests),
		ErrorRate:         errorRate,
		LedgerQueries:     int64(queries),
		TransferSubmits:   int64(submits),
		TransferConfirmed: int64(confirmed),
		TransferRejected:  int64(rejected),
		CacheHitRate:      cacheHitRate,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for the given labels.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
