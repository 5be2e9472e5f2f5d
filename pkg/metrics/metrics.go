// Package metrics provides Prometheus metrics for the valuation pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Ingestion quality
	rowsIngested  prometheus.Counter
	rowsRejected  prometheus.Counter
	rowsCollapsed prometheus.Counter

	// Pipeline output
	playersValued    prometheus.Counter
	fallbacksApplied *prometheus.CounterVec

	// Stage performance
	stageDuration *prometheus.HistogramVec

	// Allocation sanity: total expected price per role for the last run
	rolePriceTotal *prometheus.GaugeVec
	lastRunUnix    prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fantacopilot",
		subsystem:        "valuation",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.rowsIngested = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "rows_ingested_total",
		Help: "Raw player-season rows read from the input table.",
	})
	m.rowsRejected = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "rows_rejected_total",
		Help: "Input rows skipped for missing identity or unknown role.",
	})
	m.rowsCollapsed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "rows_collapsed_total",
		Help: "Duplicate (player, season, team) rows merged at ingestion.",
	})
	m.playersValued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "players_valued_total",
		Help: "Players that received a full valuation row.",
	})
	m.fallbacksApplied = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "fallbacks_applied_total",
		Help: "Lenient degradations applied, by pipeline stage.",
	}, []string{"stage"})
	m.stageDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "stage_duration_seconds",
		Help:    "Wall time spent in each pipeline stage.",
		Buckets: m.histogramBuckets,
	}, []string{"stage"})
	m.rolePriceTotal = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "role_price_total_credits",
		Help: "Sum of expected prices per role in the last run.",
	}, []string{"role"})
	m.lastRunUnix = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "last_run_timestamp_seconds",
		Help: "Unix time of the last completed pipeline run.",
	})
}

// Handler exposes the manager's registry over HTTP.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers operating on the global manager.

// AddRowsIngested records raw rows read from the input.
func AddRowsIngested(n int) {
	if globalManager.enabled {
		globalManager.rowsIngested.Add(float64(n))
	}
}

// AddRowsRejected records input rows that were skipped.
func AddRowsRejected(n int) {
	if globalManager.enabled {
		globalManager.rowsRejected.Add(float64(n))
	}
}

// AddRowsCollapsed records duplicate rows merged at ingestion.
func AddRowsCollapsed(n int) {
	if globalManager.enabled {
		globalManager.rowsCollapsed.Add(float64(n))
	}
}

// AddPlayersValued records completed valuation rows.
func AddPlayersValued(n int) {
	if globalManager.enabled {
		globalManager.playersValued.Add(float64(n))
	}
}

// AddFallbacks records lenient degradations for one stage.
func AddFallbacks(stage string, n int) {
	if globalManager.enabled && n > 0 {
		globalManager.fallbacksApplied.WithLabelValues(stage).Add(float64(n))
	}
}

// ObserveStageDuration records the wall time of one stage.
func ObserveStageDuration(stage string, seconds float64) {
	if globalManager.enabled {
		globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
	}
}

// SetRolePriceTotal records the summed expected price of one role.
func SetRolePriceTotal(role string, credits float64) {
	if globalManager.enabled {
		globalManager.rolePriceTotal.WithLabelValues(role).Set(credits)
	}
}

// SetLastRun records the completion time of a pipeline run.
func SetLastRun(unixSeconds float64) {
	if globalManager.enabled {
		globalManager.lastRunUnix.Set(unixSeconds)
	}
}

// Handler exposes the global registry over HTTP.
func Handler() http.Handler {
	return globalManager.Handler()
}
