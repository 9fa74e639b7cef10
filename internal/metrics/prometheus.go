package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const namespace = "elevenlabs_mcp"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeInvalid = "invalid"
)

// Metrics holds the server's Prometheus collectors. Each instance owns its
// registry so tests and multiple servers never collide.
type Metrics struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	apiRequests  *prometheus.CounterVec
	apiDuration  *prometheus.HistogramVec
	rpcRequests  *prometheus.CounterVec
}

// New creates and registers all collectors.
func New(logger *zap.Logger) *Metrics {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{
		logger:   logger,
		registry: prometheus.NewRegistry(),

		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "MCP tool calls by tool and outcome.",
			},
			[]string{"tool", "outcome"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "MCP tool call latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "ElevenLabs API requests by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		apiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "ElevenLabs API latency in seconds.",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"endpoint"},
		),
		rpcRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rpc_requests_total",
				Help:      "JSON-RPC requests by method.",
			},
			[]string{"method"},
		),
	}

	m.registry.MustRegister(
		m.toolCalls,
		m.toolDuration,
		m.apiRequests,
		m.apiDuration,
		m.rpcRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for the HTTP handler and tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveToolCall records one tools/call.
func (m *Metrics) ObserveToolCall(tool, outcome string, elapsed time.Duration) {
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
	m.logger.Debug("tool call observed",
		zap.String("tool", tool),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed))
}

// ObserveAPIRequest records one ElevenLabs API request.
func (m *Metrics) ObserveAPIRequest(endpoint string, err error, elapsed time.Duration) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.apiRequests.WithLabelValues(endpoint, outcome).Inc()
	m.apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveRPC counts one JSON-RPC method invocation.
func (m *Metrics) ObserveRPC(method string) {
	m.rpcRequests.WithLabelValues(method).Inc()
}
