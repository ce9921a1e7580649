package server

import (
	"strconv"
	"time"

	"github.com/iwvelando/finance-projection/internal/projection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the projection API. Each
// instance owns its registry so handlers can be built repeatedly in tests.
type Metrics struct {
	Registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	scenarios       prometheus.Counter
	irrUnconverged  prometheus.Counter
	unbalanced      prometheus.Counter
	cacheLookups    *prometheus.CounterVec
	cacheEntries    prometheus.Gauge
}

// NewMetrics creates a private registry and registers every collector in it.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_projection_http_requests_total",
				Help: "HTTP requests by route and status code.",
			},
			[]string{"route", "code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finance_projection_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		scenarios: factory.NewCounter(prometheus.CounterOpts{
			Name: "finance_projection_scenarios_total",
			Help: "Scenarios projected.",
		}),
		irrUnconverged: factory.NewCounter(prometheus.CounterOpts{
			Name: "finance_projection_irr_unconverged_total",
			Help: "Scenarios whose IRR search did not converge.",
		}),
		unbalanced: factory.NewCounter(prometheus.CounterOpts{
			Name: "finance_projection_unbalanced_total",
			Help: "Scenarios whose balance sheet did not reconcile.",
		}),
		cacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finance_projection_cache_lookups_total",
				Help: "Projection cache lookups by result.",
			},
			[]string{"result"},
		),
		cacheEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "finance_projection_cache_entries",
			Help: "Projections held in the cache, including expired ones not yet swept.",
		}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(d.Seconds())
}

// ObserveProjections counts freshly computed scenarios and their failures to
// converge or reconcile.
func (m *Metrics) ObserveProjections(results []projection.Projection) {
	for _, r := range results {
		m.scenarios.Inc()
		if r.Projections == nil {
			continue
		}
		if !r.Projections.Appraisal.IRR.Converged {
			m.irrUnconverged.Inc()
		}
		if !r.Projections.Reconciliation.Balanced {
			m.unbalanced.Inc()
		}
	}
}

// ObserveCache records a cache hit or miss.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// SetCacheEntries reports the current size of the projection cache.
func (m *Metrics) SetCacheEntries(n int) {
	m.cacheEntries.Set(float64(n))
}
