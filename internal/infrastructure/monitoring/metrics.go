package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Each instance owns its registry so
// several servers (or tests) can live in one process.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Desktop metrics
	WindowOps     *prometheus.CounterVec
	WindowsOpen   prometheus.Gauge
	VFSMutations  *prometheus.CounterVec
	TermCommands  *prometheus.CounterVec
	SessionsSaved prometheus.Counter

	// AI metrics
	AIRequests *prometheus.CounterVec
	AIDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time
	snapshot  Snapshot
	mu        sync.RWMutex
}

// Snapshot holds current metric values for the JSON health endpoint.
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	OpenWindows       int64   `json:"open_windows"`
	ActiveConnections int64   `json:"active_connections"`
	AvgLatencyMs      float64 `json:"avg_latency_ms"`
	UptimeSeconds     float64 `json:"uptime_seconds"`

	totalDuration float64
}

// NewMetrics creates a new metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chimera_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_window_operations_total",
				Help: "Window lifecycle operations by kind",
			},
			[]string{"op"},
		),
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chimera_windows_open",
				Help: "Number of window records in the registry",
			},
		),
		VFSMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_vfs_mutations_total",
				Help: "Virtual file system mutations by kind",
			},
			[]string{"op"},
		),
		TermCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_terminal_commands_total",
				Help: "Terminal commands executed by name",
			},
			[]string{"command"},
		),
		SessionsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "chimera_sessions_saved_total",
				Help: "Total number of workspace sessions saved",
			},
		),

		AIRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_ai_requests_total",
				Help: "Text generation requests by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),
		AIDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chimera_ai_duration_seconds",
				Help:    "Text generation latency in seconds",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"kind"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chimera_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chimera_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "chimera_uptime_seconds",
			Help: "Server uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler serves this instance's registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.totalDuration += duration.Seconds()
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp counts a window lifecycle operation and updates the open gauge.
func (m *Metrics) RecordWindowOp(op string, open int) {
	m.WindowOps.WithLabelValues(op).Inc()
	m.WindowsOpen.Set(float64(open))

	m.mu.Lock()
	m.snapshot.OpenWindows = int64(open)
	m.mu.Unlock()
}

// RecordVFSMutation counts a file system mutation.
func (m *Metrics) RecordVFSMutation(op string) {
	m.VFSMutations.WithLabelValues(op).Inc()
}

// RecordCommand counts a terminal command.
func (m *Metrics) RecordCommand(name string) {
	m.TermCommands.WithLabelValues(name).Inc()
}

// RecordAIRequest records a text generation call.
func (m *Metrics) RecordAIRequest(kind, outcome string, duration time.Duration) {
	m.AIRequests.WithLabelValues(kind, outcome).Inc()
	m.AIDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// IncSessionsSaved increments the sessions saved counter.
func (m *Metrics) IncSessionsSaved() {
	m.SessionsSaved.Inc()
}

// RecordWSMessage records a WebSocket message.
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections.
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections.
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for JSON reporting.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	if s.TotalRequests > 0 {
		s.AvgLatencyMs = s.totalDuration / float64(s.TotalRequests) * 1000
	}
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
