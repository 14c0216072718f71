// Package metrics provides Prometheus metrics for the fairsplit search engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager manages all Prometheus metrics for the fairsplit engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Search Progress Metrics - the heart of the annealing loop
	iterations    *prometheus.CounterVec
	movesAccepted *prometheus.CounterVec
	movesRejected *prometheus.CounterVec
	bestCost      *prometheus.GaugeVec
	temperature   *prometheus.GaugeVec
	reheats       *prometheus.CounterVec

	// Correctness Safety-Net Metrics
	driftRepairs     prometheus.Counter
	recomputeLatency prometheus.Histogram

	// Race Metrics - orchestration level
	workersActive prometheus.Gauge
	racesTotal    prometheus.Counter
	raceDuration  prometheus.Histogram
	promotions    prometheus.Counter
	cancellations prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Initialize global metrics on a custom registry to avoid default Go metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager()
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairsplit",
		subsystem:        "search",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.iterations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "iterations_total",
			Help:      "Total annealing iterations executed, by scenario",
		},
		[]string{"scenario"},
	)

	m.movesAccepted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "moves_accepted_total",
			Help:      "Accepted moves by scenario and move kind",
		},
		[]string{"scenario", "kind"},
	)

	m.movesRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "moves_rejected_total",
			Help:      "Rejected moves by scenario and move kind",
		},
		[]string{"scenario", "kind"},
	)

	m.bestCost = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "best_cost",
			Help:      "Best cost observed so far, by scenario (rescaled points)",
		},
		[]string{"scenario"},
	)

	m.temperature = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "temperature",
			Help:      "Current annealing temperature, by scenario",
		},
		[]string{"scenario"},
	)

	m.reheats = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reheats_total",
			Help:      "Stagnation reheats performed, by scenario",
		},
		[]string{"scenario"},
	)

	m.driftRepairs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "drift_repairs_total",
		Help:      "Times the paranoid recomputation replaced drifted tracked state",
	})

	m.recomputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recompute_latency_milliseconds",
		Help:      "Latency of full aggregate recomputation in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.workersActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workers_active",
		Help:      "Number of annealing workers currently running",
	})

	m.racesTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "races_total",
		Help:      "Total races started",
	})

	m.raceDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "race_duration_seconds",
		Help:      "Wall-clock duration of completed races in seconds",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.promotions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "champion_promotions_total",
		Help:      "Times a constrained champion overwrote the unconstrained slot",
	})

	m.cancellations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cancellations_total",
		Help:      "Races terminated early by cancellation",
	})
}

// Handler returns an HTTP handler exposing the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers operating on the global manager.

// RecordIterations adds completed iterations for a scenario.
func RecordIterations(scenario string, n int) {
	globalManager.iterations.WithLabelValues(scenario).Add(float64(n))
}

// RecordMovesAccepted adds accepted moves for a scenario and kind.
func RecordMovesAccepted(scenario, kind string, n int64) {
	globalManager.movesAccepted.WithLabelValues(scenario, kind).Add(float64(n))
}

// RecordMovesRejected adds rejected moves for a scenario and kind.
func RecordMovesRejected(scenario, kind string, n int64) {
	globalManager.movesRejected.WithLabelValues(scenario, kind).Add(float64(n))
}

// UpdateBestCost sets the best observed cost for a scenario.
func UpdateBestCost(scenario string, cost float64) {
	globalManager.bestCost.WithLabelValues(scenario).Set(cost)
}

// UpdateTemperature sets the current temperature for a scenario.
func UpdateTemperature(scenario string, t float64) {
	globalManager.temperature.WithLabelValues(scenario).Set(t)
}

// RecordReheat increments the reheat counter for a scenario.
func RecordReheat(scenario string) {
	globalManager.reheats.WithLabelValues(scenario).Inc()
}

// RecordDriftRepair increments the drift repair counter.
func RecordDriftRepair() {
	globalManager.driftRepairs.Inc()
}

// RecordRecomputeLatency observes a full recomputation latency.
func RecordRecomputeLatency(latencyMs float64) {
	globalManager.recomputeLatency.Observe(latencyMs)
}

// UpdateWorkersActive sets the number of running workers.
func UpdateWorkersActive(count int) {
	globalManager.workersActive.Set(float64(count))
}

// RecordRaceStarted increments the race counter.
func RecordRaceStarted() {
	globalManager.racesTotal.Inc()
}

// RecordRaceDuration observes a completed race duration.
func RecordRaceDuration(seconds float64) {
	globalManager.raceDuration.Observe(seconds)
}

// RecordChampionPromotion increments the promotion counter.
func RecordChampionPromotion() {
	globalManager.promotions.Inc()
}

// RecordCancellation increments the cancellation counter.
func RecordCancellation() {
	globalManager.cancellations.Inc()
}

// Handler exposes the global manager's metrics endpoint.
func Handler() http.Handler {
	return globalManager.Handler()
}
