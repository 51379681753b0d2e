package lookupdest

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports lookup metrics through a Prometheus registry.
type PrometheusMetrics struct {
	lookups          *prometheus.CounterVec
	outcomes         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	messagesSent     *prometheus.CounterVec
	messagesReceived *prometheus.CounterVec
	errors           *prometheus.CounterVec
	queuedJobs       prometheus.Gauge
	bytesSent        prometheus.Counter
}

// NewPrometheusMetrics creates the collectors under the "i2cp_lookup"
// namespace and registers them with reg.
func NewPrometheusMetrics(reg prometheus.Registerer) (*PrometheusMetrics, error) {
	const ns = "i2cp_lookup"
	m := &PrometheusMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "requests_total",
			Help: "Destination lookups dispatched, by kind.",
		}, []string{"kind"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "outcomes_total",
			Help: "Destination lookups completed, by kind and result.",
		}, []string{"kind", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Name: "duration_seconds",
			Help:    "Time from dispatch to outcome.",
			Buckets: []float64{.001, .01, .1, .5, 1, 2.5, 5, 10, 15, 30},
		}, []string{"kind"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "messages_sent_total",
			Help: "Reply messages handed to the transport, by I2CP type.",
		}, []string{"type"}),
		messagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "messages_received_total",
			Help: "Lookup messages received, by I2CP type.",
		}, []string{"type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Name: "errors_total",
			Help: "Errors by category.",
		}, []string{"type"}),
		queuedJobs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns, Name: "queued_jobs",
			Help: "Jobs waiting in the lookup job queue.",
		}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Name: "bytes_sent_total",
			Help: "Bytes written to client connections.",
		}),
	}

	collectors := []prometheus.Collector{
		m.lookups, m.outcomes, m.latency, m.messagesSent,
		m.messagesReceived, m.errors, m.queuedJobs, m.bytesSent,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *PrometheusMetrics) IncrementLookup(kind string) {
	m.lookups.WithLabelValues(kind).Inc()
}

func (m *PrometheusMetrics) IncrementOutcome(kind string, resolved bool) {
	result := "failed"
	if resolved {
		result = "resolved"
	}
	m.outcomes.WithLabelValues(kind, result).Inc()
}

func (m *PrometheusMetrics) RecordLookupLatency(kind string, duration time.Duration) {
	m.latency.WithLabelValues(kind).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) IncrementMessageSent(messageType uint8) {
	m.messagesSent.WithLabelValues(strconv.Itoa(int(messageType))).Inc()
}

func (m *PrometheusMetrics) IncrementMessageReceived(messageType uint8) {
	m.messagesReceived.WithLabelValues(strconv.Itoa(int(messageType))).Inc()
}

func (m *PrometheusMetrics) IncrementError(errorType string) {
	m.errors.WithLabelValues(errorType).Inc()
}

func (m *PrometheusMetrics) SetQueuedJobs(count int) {
	m.queuedJobs.Set(float64(count))
}

func (m *PrometheusMetrics) AddBytesSent(bytes uint64) {
	m.bytesSent.Add(float64(bytes))
}
