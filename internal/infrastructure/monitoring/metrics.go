package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons recorded by RecordDrop.
const (
	DropDecode      = "decode"
	DropUnknownType = "unknown_type"
	DropEncode      = "encode"
	DropSink        = "sink"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// IPC metrics
	IPCRequests *prometheus.CounterVec
	IPCDropped  *prometheus.CounterVec
	IPCDuration *prometheus.HistogramVec

	// Asset server metrics
	AssetRequests *prometheus.CounterVec
	AssetDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time
}

// NewMetrics creates a new metrics collector backed by a fresh registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry:  registry,
		startTime: time.Now(),

		IPCRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webshell_ipc_requests_total",
				Help: "Total number of IPC requests answered, by request type and result shape",
			},
			[]string{"type", "shape"},
		),
		IPCDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webshell_ipc_dropped_total",
				Help: "Total number of IPC messages that produced no response",
			},
			[]string{"reason"},
		),
		IPCDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webshell_ipc_handler_duration_seconds",
				Help:    "IPC handler duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25},
			},
			[]string{"type"},
		),

		AssetRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webshell_asset_requests_total",
				Help: "Total number of asset server requests",
			},
			[]string{"method", "status"},
		),
		AssetDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "webshell_asset_request_duration_seconds",
				Help:    "Asset server request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .5, 1},
			},
			[]string{"method"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "webshell_ws_connections",
				Help: "Number of open WebSocket IPC connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webshell_ws_messages_total",
				Help: "Total number of WebSocket IPC messages",
			},
			[]string{"direction"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "webshell_uptime_seconds",
			Help: "Shell uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry exposes the underlying registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordIPCRequest records an answered IPC request
func (m *Metrics) RecordIPCRequest(requestType, shape string, duration time.Duration) {
	if m == nil {
		return
	}
	m.IPCRequests.WithLabelValues(requestType, shape).Inc()
	m.IPCDuration.WithLabelValues(requestType).Observe(duration.Seconds())
}

// RecordDrop records an IPC message that produced no response
func (m *Metrics) RecordDrop(reason string) {
	if m == nil {
		return
	}
	m.IPCDropped.WithLabelValues(reason).Inc()
}

// RecordAssetRequest records an asset server request
func (m *Metrics) RecordAssetRequest(method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.AssetRequests.WithLabelValues(method, status).Inc()
	m.AssetDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordWSMessage records a WebSocket message ("in" or "out")
func (m *Metrics) RecordWSMessage(direction string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction).Inc()
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
