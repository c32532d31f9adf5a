package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the session metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "etp").
	Namespace string

	// Subsystem is the metrics subsystem (default: "session").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the session metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegisterer sets the Prometheus registry.
func WithRegisterer(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "etp",
		Subsystem: "session",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors shared by every session created
// with WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	framesSent     *prometheus.CounterVec
	framesReceived *prometheus.CounterVec
	bytesSent      prometheus.Counter
	bytesReceived  prometheus.Counter
	pingsAnswered  prometheus.Counter
	acksSent       prometheus.Counter
	errors         *prometheus.CounterVec
}

// NewMetrics registers the session collectors.
//
// Metrics collected:
//   - etp_session_frames_sent_total: frames written, by message name
//   - etp_session_frames_received_total: frames read, by message name
//   - etp_session_bytes_sent_total / etp_session_bytes_received_total
//   - etp_session_pings_answered_total: Core.Ping frames absorbed
//   - etp_session_acks_sent_total: acknowledgements sent on request
//   - etp_session_errors_total: failed sends and reads, by operation
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_sent_total",
			Help:        "Total number of ETP frames sent",
			ConstLabels: config.ConstLabels,
		}, []string{"message"}),

		framesReceived: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "frames_received_total",
			Help:        "Total number of ETP frames received",
			ConstLabels: config.ConstLabels,
		}, []string{"message"}),

		bytesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bytes_sent_total",
			Help:        "Total frame bytes written",
			ConstLabels: config.ConstLabels,
		}),

		bytesReceived: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "bytes_received_total",
			Help:        "Total frame bytes read",
			ConstLabels: config.ConstLabels,
		}),

		pingsAnswered: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pings_answered_total",
			Help:        "Total number of Core.Ping messages answered with a Pong",
			ConstLabels: config.ConstLabels,
		}),

		acksSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "acks_sent_total",
			Help:        "Total number of acknowledgements sent",
			ConstLabels: config.ConstLabels,
		}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "errors_total",
			Help:        "Total session errors by operation",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

func (m *Metrics) sent(name string, n int) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(name).Inc()
	m.bytesSent.Add(float64(n))
}

func (m *Metrics) received(name string, n int) {
	if m == nil {
		return
	}
	m.framesReceived.WithLabelValues(name).Inc()
	m.bytesReceived.Add(float64(n))
}

func (m *Metrics) pingAnswered() {
	if m != nil {
		m.pingsAnswered.Inc()
	}
}

func (m *Metrics) ackSent() {
	if m != nil {
		m.acksSent.Inc()
	}
}

func (m *Metrics) failed(op string) {
	if m != nil {
		m.errors.WithLabelValues(op).Inc()
	}
}
