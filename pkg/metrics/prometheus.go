// Package metrics provides Prometheus metrics for the session
// statistics engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns the Prometheus metrics for the engine.
type Manager struct {
	namespace          string
	subsystem          string
	participantBuckets []float64
	enabled            bool
	registry           prometheus.Registerer

	// Recording metrics
	sessionsRecorded    prometheus.Counter
	recordingErrors     prometheus.Counter
	sessionParticipants prometheus.Histogram

	// State scale metrics
	playersTotal  prometheus.Gauge
	sessionsTotal prometheus.Gauge

	// Persistence and backup metrics
	persistenceWriteErrors prometheus.Counter
	exportsTotal           prometheus.Counter
	importsTotal           prometheus.Counter
}

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

var globalManager *Manager //nolint:gochecknoglobals // intentional global for metrics manager

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Default returns the process-wide metrics manager.
func Default() *Manager {
	return globalManager
}

// Registry returns the registry backing the global manager, for
// exposition.
func Registry() *prometheus.Registry {
	return customRegistry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:          "meeple",
		subsystem:          "stats",
		participantBuckets: []float64{2, 3, 4, 5, 6, 8, 10},
		enabled:            true,
		registry:           prometheus.DefaultRegisterer,
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

	m.sessionsRecorded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_recorded_total",
		Help:      "Total number of game sessions committed to the ledger",
	})

	m.recordingErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recording_errors_total",
		Help:      "Total number of rejected session submissions",
	})

	m.sessionParticipants = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "session_participants",
		Help:      "Distribution of scored participants per session",
		Buckets:   m.participantBuckets,
	})

	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Current number of players on the roster",
	})

	m.sessionsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_total",
		Help:      "Current length of the session ledger",
	})

	m.persistenceWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_write_errors_total",
		Help:      "Total number of failed state writes (state kept in memory)",
	})

	m.exportsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total number of backup exports produced",
	})

	m.importsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "imports_total",
		Help:      "Total number of backup imports applied",
	})
}

// SessionRecorded counts a committed session and its participant count.
func (m *Manager) SessionRecorded(participants int) {
	if m == nil || !m.enabled {
		return
	}
	m.sessionsRecorded.Inc()
	m.sessionParticipants.Observe(float64(participants))
}

// RecordingError counts a rejected session submission.
func (m *Manager) RecordingError() {
	if m == nil || !m.enabled {
		return
	}
	m.recordingErrors.Inc()
}

// SetScale updates the roster and ledger size gauges.
func (m *Manager) SetScale(players, sessions int) {
	if m == nil || !m.enabled {
		return
	}
	m.playersTotal.Set(float64(players))
	m.sessionsTotal.Set(float64(sessions))
}

// PersistenceWriteError counts a failed state write.
func (m *Manager) PersistenceWriteError() {
	if m == nil || !m.enabled {
		return
	}
	m.persistenceWriteErrors.Inc()
}

// ExportProduced counts a backup export.
func (m *Manager) ExportProduced() {
	if m == nil || !m.enabled {
		return
	}
	m.exportsTotal.Inc()
}

// ImportApplied counts a backup import.
func (m *Manager) ImportApplied() {
	if m == nil || !m.enabled {
		return
	}
	m.importsTotal.Inc()
}
