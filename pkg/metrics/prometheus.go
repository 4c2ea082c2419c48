// Package metrics provides Prometheus metrics for the coach assignment service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the assignment service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Engine operations
	operations     *prometheus.CounterVec
	historyEntries *prometheus.CounterVec

	// Failover
	failoverRuns    prometheus.Counter
	failoverResults *prometheus.CounterVec

	// Coverage gauges, refreshed from SystemStats
	athletesTotal       prometheus.Gauge
	athletesWithPrimary prometheus.Gauge
	coverageRate        prometheus.Gauge
	coachesTotal        prometheus.Gauge
	coachesAvailable    prometheus.Gauge

	// Persistence
	persistLatency  *prometheus.HistogramVec
	persistFailures *prometheus.CounterVec
	persistRetries  *prometheus.CounterVec

	// Request decision queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueDequeued      prometheus.Counter
	decisionsApplied   *prometheus.CounterVec
	decisionsDuplicate prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coaches",
		subsystem:        "assignment",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// name applies the optional metric prefix.
func (m *Manager) name(base string) string {
	if m.metricPrefix == "" {
		return base
	}
	return m.metricPrefix + "_" + base
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.operations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("operations_total"),
		Help:        "Engine operations by name and outcome",
		ConstLabels: labels,
	}, []string{"operation", "outcome"})

	m.historyEntries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("history_entries_total"),
		Help:        "Assignment history entries appended by action",
		ConstLabels: labels,
	}, []string{"action"})

	m.failoverRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("failover_runs_total"),
		Help:        "Failover coordinator invocations",
		ConstLabels: labels,
	})

	m.failoverResults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("failover_results_total"),
		Help:        "Per-athlete failover outcomes (reassigned or gap)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.athletesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("athletes_total"),
		Help:        "Athletes with an assignment record",
		ConstLabels: labels,
	})

	m.athletesWithPrimary = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("athletes_with_primary"),
		Help:        "Athletes that currently have a primary coach",
		ConstLabels: labels,
	})

	m.coverageRate = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("coverage_rate_percent"),
		Help:        "Percentage of athletes with a primary coach",
		ConstLabels: labels,
	})

	m.coachesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("coaches_total"),
		Help:        "Coaches in the directory",
		ConstLabels: labels,
	})

	m.coachesAvailable = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("coaches_available"),
		Help:        "Coaches whose status is available",
		ConstLabels: labels,
	})

	m.persistLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("persist_latency_milliseconds"),
		Help:        "Persistence adapter call latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"backend", "op"})

	m.persistFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("persist_failures_total"),
		Help:        "Persistence adapter failures by backend",
		ConstLabels: labels,
	}, []string{"backend"})

	m.persistRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("persist_retries_total"),
		Help:        "Persistence save retries by backend",
		ConstLabels: labels,
	}, []string{"backend"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decision_queue_size"),
		Help:        "Request decisions waiting to be applied",
		ConstLabels: labels,
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decision_queue_capacity"),
		Help:        "Maximum request decision queue capacity",
		ConstLabels: labels,
	})

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decision_queue_enqueued_total"),
		Help:        "Request decisions accepted onto the queue",
		ConstLabels: labels,
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decision_queue_enqueue_errors_total"),
		Help:        "Request decisions refused by the queue",
		ConstLabels: labels,
	})

	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decision_queue_dequeued_total"),
		Help:        "Request decisions handed to workers",
		ConstLabels: labels,
	})

	m.decisionsApplied = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decisions_applied_total"),
		Help:        "Request decisions processed by role and outcome",
		ConstLabels: labels,
	}, []string{"role", "outcome"})

	m.decisionsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("decisions_duplicate_total"),
		Help:        "Request decisions dropped as already applied",
		ConstLabels: labels,
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("worker_count"),
		Help:        "Decision workers running",
		ConstLabels: labels,
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("worker_processing_latency_milliseconds"),
		Help:        "Time to apply one request decision",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Total number of errors by component",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_type_total"),
		Help:        "Total number of errors by type",
		ConstLabels: labels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Total number of errors by endpoint",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_memory_usage_bytes"),
		Help:        "System memory usage in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_goroutine_count"),
		Help:        "Number of goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("system_gc_pause_time_milliseconds"),
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	})
}

// Engine operation metrics.

// RecordOperation counts one engine operation with its outcome
// (ok, not_found, persist_failed, invalid).
func RecordOperation(operation, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordHistoryEntry counts an appended assignment history entry.
func RecordHistoryEntry(action string) {
	if !globalManager.enabled {
		return
	}
	globalManager.historyEntries.WithLabelValues(action).Inc()
}

// RecordFailoverRun counts a failover coordinator invocation.
func RecordFailoverRun() {
	if !globalManager.enabled {
		return
	}
	globalManager.failoverRuns.Inc()
}

// RecordFailoverResult counts a single athlete's failover outcome.
func RecordFailoverResult(success bool) {
	if !globalManager.enabled {
		return
	}
	outcome := "gap"
	if success {
		outcome = "reassigned"
	}
	globalManager.failoverResults.WithLabelValues(outcome).Inc()
}

// UpdateCoverage refreshes the coverage gauges.
func UpdateCoverage(totalAthletes, withPrimary, totalCoaches, availableCoaches int, coverageRate float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.athletesTotal.Set(float64(totalAthletes))
	globalManager.athletesWithPrimary.Set(float64(withPrimary))
	globalManager.coachesTotal.Set(float64(totalCoaches))
	globalManager.coachesAvailable.Set(float64(availableCoaches))
	globalManager.coverageRate.Set(coverageRate)
}

// Persistence metrics.

// RecordPersistLatency records a persistence call latency.
func RecordPersistLatency(backend, op string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.persistLatency.WithLabelValues(backend, op).Observe(latencyMs)
}

// RecordPersistFailure counts a failed persistence call.
func RecordPersistFailure(backend string) {
	if !globalManager.enabled {
		return
	}
	globalManager.persistFailures.WithLabelValues(backend).Inc()
}

// RecordPersistRetry counts a save retry.
func RecordPersistRetry(backend string) {
	if !globalManager.enabled {
		return
	}
	globalManager.persistRetries.WithLabelValues(backend).Inc()
}

// Queue metrics.

// UpdateQueueSize sets the current queue depth.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordDecisionApplied counts a processed request decision.
func RecordDecisionApplied(role, outcome string) {
	globalManager.decisionsApplied.WithLabelValues(role, outcome).Inc()
}

// RecordDecisionDuplicate counts a decision dropped by the deduper.
func RecordDecisionDuplicate() {
	globalManager.decisionsDuplicate.Inc()
}

// Worker metrics.

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records worker processing latency.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
