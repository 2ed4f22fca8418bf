package observability

import (
	"time"

	"github.com/boddenberg/momentum-bfa-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the dashboard API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	sessions        *prometheus.CounterVec
	toggles         *prometheus.CounterVec
	calculations    *prometheus.CounterVec
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
				Name:    "momentum_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		sessions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_dashboard_sessions_total",
				Help: "Dashboard session lifecycle events.",
			},
			[]string{"event"},
		),
		toggles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_selection_toggles_total",
				Help: "Transaction type toggles by outcome (applied, ignored).",
			},
			[]string{"outcome"},
		),
		calculations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "momentum_calculations_total",
				Help: "Opportunity value calculations by source and status.",
			},
			[]string{"source", "status"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrSession counts a session lifecycle event ("created", "deleted").
func (m *Metrics) IncrSession(event string) {
	m.sessions.WithLabelValues(event).Inc()
}

// IncrToggle counts a toggle; ignored toggles carried a token outside the catalog.
func (m *Metrics) IncrToggle(applied bool) {
	outcome := "applied"
	if !applied {
		outcome = "ignored"
	}
	m.toggles.WithLabelValues(outcome).Inc()
}

// IncrCalculation counts a calculation. source is "dashboard" or "single";
// status is "ok", "rejected" (guard failed) or "error".
func (m *Metrics) IncrCalculation(source, status string) {
	m.calculations.WithLabelValues(source, status).Inc()
}

// GetCalculatorSnapshot returns a snapshot of the calculator metrics suitable
// for the GET /api/metrics/calculator endpoint.
func (m *Metrics) GetCalculatorSnapshot() *domain.CalculatorMetrics {
	hits := getCounterValue(m.cacheHits, "session")
	misses := getCounterValue(m.cacheMisses, "session")

	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &domain.CalculatorMetrics{
		SessionsCreated:       int64(getCounterValue(m.sessions, "created")),
		TogglesApplied:        int64(getCounterValue(m.toggles, "applied")),
		TogglesIgnored:        int64(getCounterValue(m.toggles, "ignored")),
		DashboardCalculations: int64(getCounterValue(m.calculations, "dashboard", "ok")),
		RejectedCalculations:  int64(getCounterValue(m.calculations, "dashboard", "rejected")),
		SingleCalculations:    int64(getCounterValue(m.calculations, "single", "ok")),
		SessionHitRate:        hitRate,
		Period:                "all_time",
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
