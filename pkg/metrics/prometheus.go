// Package metrics provides Prometheus metrics for the scouting briefing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Briefing pipeline
	briefings          *prometheus.CounterVec
	rosterResolutions  *prometheus.CounterVec
	rosterStrategyErrs *prometheus.CounterVec
	narrativeErrors    prometheus.Counter
	remoteCallLatency  *prometheus.HistogramVec
	profilesComputed   prometheus.Counter

	// Scouting log
	recordsLoaded   prometheus.Gauge
	recordsSkipped  prometheus.Gauge
	lastMatchLoaded prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoutbrief",
		subsystem:        "briefing",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	constLabels := prometheus.Labels(m.customLabels)

	m.briefings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "briefings_total",
		Help:        "Total number of briefings by outcome",
		ConstLabels: constLabels,
	}, []string{"outcome"})

	m.rosterResolutions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_resolutions_total",
		Help:        "Rosters resolved, by the strategy that produced them",
		ConstLabels: constLabels,
	}, []string{"source"})

	m.rosterStrategyErrs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "roster_strategy_failures_total",
		Help:        "Roster strategies that failed and handed over to the next one",
		ConstLabels: constLabels,
	}, []string{"strategy"})

	m.narrativeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "narrative_failures_total",
		Help:        "Narrative generator calls that returned an error",
		ConstLabels: constLabels,
	})

	m.remoteCallLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "remote_call_duration_milliseconds",
		Help:        "Latency of calls to external collaborators",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"collaborator", "outcome"})

	m.profilesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "team_profiles_total",
		Help:        "Team profiles computed",
		ConstLabels: constLabels,
	})

	m.recordsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        "records_loaded",
		Help:        "Observations held by the scouting table",
		ConstLabels: constLabels,
	})

	m.recordsSkipped = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        "records_skipped",
		Help:        "Rows dropped at load time because they had no usable match number",
		ConstLabels: constLabels,
	})

	m.lastMatchLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        "last_match_number",
		Help:        "Highest match number present in the scouting table",
		ConstLabels: constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: constLabels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordBriefing counts a finished briefing; outcome is "ok" or an error kind.
func RecordBriefing(outcome string) {
	globalManager.briefings.WithLabelValues(outcome).Inc()
}

// RecordRosterResolution counts the strategy that produced a roster.
func RecordRosterResolution(source string) {
	globalManager.rosterResolutions.WithLabelValues(source).Inc()
}

// RecordRosterStrategyFailure counts a strategy that fell through.
func RecordRosterStrategyFailure(strategy string) {
	globalManager.rosterStrategyErrs.WithLabelValues(strategy).Inc()
}

// RecordNarrativeFailure counts a failed narrative generation.
func RecordNarrativeFailure() {
	globalManager.narrativeErrors.Inc()
}

// RecordRemoteCall observes the latency of a call to an external collaborator.
func RecordRemoteCall(collaborator, outcome string, latencyMs float64) {
	globalManager.remoteCallLatency.WithLabelValues(collaborator, outcome).Observe(latencyMs)
}

// RecordProfilesComputed adds n to the computed profile counter.
func RecordProfilesComputed(n int) {
	globalManager.profilesComputed.Add(float64(n))
}

// UpdateStoreStats publishes the shape of the loaded scouting table.
func UpdateStoreStats(loaded, skipped, lastMatch int) {
	globalManager.recordsLoaded.Set(float64(loaded))
	globalManager.recordsSkipped.Set(float64(skipped))
	globalManager.lastMatchLoaded.Set(float64(lastMatch))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the registry every package-level collector lives on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
