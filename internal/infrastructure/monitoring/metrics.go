package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics is valid and records nothing.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Service metrics
	ServiceCalls    *prometheus.CounterVec
	ServiceDuration *prometheus.HistogramVec

	// Browser metrics
	Navigations     *prometheus.CounterVec
	ResolveDuration *prometheus.HistogramVec
	StaleResults    prometheus.Counter
	TabsOpen        prometheus.Gauge

	// Cache metrics
	CacheLookups    *prometheus.CounterVec
	CacheHydrations *prometheus.CounterVec
	CacheRecords    prometheus.Gauge

	// Search metrics
	Searches    *prometheus.CounterVec
	Suggestions prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for the JSON health API
type MetricsSnapshot struct {
	TotalRequests int64 `json:"total_requests"`
	TotalErrors   int64 `json:"total_errors"`
	Navigations   int64 `json:"navigations"`
	Searches      int64 `json:"searches"`
	TabsOpen      int64 `json:"tabs_open"`
	CacheRecords  int64 `json:"cache_records"`
}

// NewMetrics creates a metrics collector registered on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "browser_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		ServiceCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_service_calls_total",
				Help: "Total number of service tool calls",
			},
			[]string{"service", "method", "status"},
		),
		ServiceDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "browser_service_duration_seconds",
				Help:    "Service tool call duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"service", "method"},
		),

		Navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_navigations_total",
				Help: "Resolved navigations by location kind and rendered view",
			},
			[]string{"kind", "view"},
		),
		ResolveDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "browser_resolve_duration_seconds",
				Help:    "Location resolution duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
			},
			[]string{"kind"},
		),
		StaleResults: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browser_stale_results_total",
				Help: "Resolutions dropped because the tab moved on",
			},
		),
		TabsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "browser_tabs_open",
				Help: "Number of open tabs",
			},
		),

		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_cache_lookups_total",
				Help: "Result cache address lookups",
			},
			[]string{"result"},
		),
		CacheHydrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_cache_hydrations_total",
				Help: "Persisted tier hydration attempts by outcome",
			},
			[]string{"outcome"},
		),
		CacheRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "browser_cache_records",
				Help: "Records held by the in-process cache tier",
			},
		),

		Searches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_searches_total",
				Help: "Searches by outcome",
			},
			[]string{"outcome"},
		),
		Suggestions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "browser_search_suggestions_total",
				Help: "Searches answered with a corrected query",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "browser_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "browser_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordServiceCall records a service tool call
func (m *Metrics) RecordServiceCall(service, method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.ServiceCalls.WithLabelValues(service, method, status).Inc()
	m.ServiceDuration.WithLabelValues(service, method).Observe(duration.Seconds())
}

// RecordNavigation records one resolved navigation
func (m *Metrics) RecordNavigation(kind, view string, duration time.Duration) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(kind, view).Inc()
	m.ResolveDuration.WithLabelValues(kind).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.Navigations++
	m.mu.Unlock()
}

// IncStaleResults counts a dropped out-of-date resolution
func (m *Metrics) IncStaleResults() {
	if m == nil {
		return
	}
	m.StaleResults.Inc()
}

// SetTabsOpen sets the open tab gauge
func (m *Metrics) SetTabsOpen(count int) {
	if m == nil {
		return
	}
	m.TabsOpen.Set(float64(count))
	m.mu.Lock()
	m.snapshot.TabsOpen = int64(count)
	m.mu.Unlock()
}

// RecordCacheLookup records a cache lookup hit or miss
func (m *Metrics) RecordCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordHydration records a persisted tier hydration outcome
func (m *Metrics) RecordHydration(outcome string) {
	if m == nil {
		return
	}
	m.CacheHydrations.WithLabelValues(outcome).Inc()
}

// SetCacheRecords sets the in-process record gauge
func (m *Metrics) SetCacheRecords(count int) {
	if m == nil {
		return
	}
	m.CacheRecords.Set(float64(count))
	m.mu.Lock()
	m.snapshot.CacheRecords = int64(count)
	m.mu.Unlock()
}

// RecordSearch records a search outcome
func (m *Metrics) RecordSearch(outcome string, suggested bool) {
	if m == nil {
		return
	}
	m.Searches.WithLabelValues(outcome).Inc()
	if suggested {
		m.Suggestions.Inc()
	}
	m.mu.Lock()
	m.snapshot.Searches++
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
}

// Snapshot returns the current JSON-friendly values
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}
