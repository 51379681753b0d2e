package lookupdest

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines the interface for collecting lookup metrics.
// Applications plug in their own implementation (Prometheus, StatsD,
// logging) for production monitoring.
//
// All methods are safe for concurrent use and should be non-blocking.
type MetricsCollector interface {
	// IncrementLookup counts a dispatched lookup by kind ("hostname", "hash", "blinded").
	IncrementLookup(kind string)

	// IncrementOutcome counts a completed lookup by kind and result.
	IncrementOutcome(kind string, resolved bool)

	// RecordLookupLatency records the time from dispatch to outcome.
	RecordLookupLatency(kind string, duration time.Duration)

	// IncrementMessageSent counts replies handed to the transport by I2CP message type.
	IncrementMessageSent(messageType uint8)

	// IncrementMessageReceived counts lookup requests received by I2CP message type.
	IncrementMessageReceived(messageType uint8)

	// IncrementError counts errors by category: "invalid_argument",
	// "not_found", "transport_send", "queue_full", "parse", "job_panic".
	IncrementError(errorType string)

	// SetQueuedJobs updates the gauge of jobs waiting in the queue.
	SetQueuedJobs(count int)

	// AddBytesSent adds to the total bytes written to clients.
	AddBytesSent(bytes uint64)
}

// InMemoryMetrics provides a simple in-memory implementation of MetricsCollector.
// Suitable for development, testing, and applications that want basic metrics
// without external dependencies.
type InMemoryMetrics struct {
	messagesSent     [256]uint64
	messagesReceived [256]uint64
	queuedJobs       int32
	bytesSent        uint64

	mu        sync.RWMutex
	lookups   map[string]uint64
	resolved  map[string]uint64
	failed    map[string]uint64
	errors    map[string]uint64
	latencies map[string]*latencyStats
}

// latencyStats tracks latency statistics for a lookup kind
type latencyStats struct {
	count      uint64
	totalNanos uint64
	minNanos   uint64
	maxNanos   uint64
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	m := &InMemoryMetrics{}
	m.Reset()
	return m
}

func (m *InMemoryMetrics) IncrementLookup(kind string) {
	m.mu.Lock()
	m.lookups[kind]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) IncrementOutcome(kind string, resolved bool) {
	m.mu.Lock()
	if resolved {
		m.resolved[kind]++
	} else {
		m.failed[kind]++
	}
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordLookupLatency(kind string, duration time.Duration) {
	nanos := uint64(duration.Nanoseconds())

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.latencies[kind]
	if stats == nil {
		stats = &latencyStats{minNanos: nanos, maxNanos: nanos}
		m.latencies[kind] = stats
	}
	stats.count++
	stats.totalNanos += nanos
	if nanos < stats.minNanos {
		stats.minNanos = nanos
	}
	if nanos > stats.maxNanos {
		stats.maxNanos = nanos
	}
}

func (m *InMemoryMetrics) IncrementMessageSent(messageType uint8) {
	atomic.AddUint64(&m.messagesSent[messageType], 1)
}

func (m *InMemoryMetrics) IncrementMessageReceived(messageType uint8) {
	atomic.AddUint64(&m.messagesReceived[messageType], 1)
}

func (m *InMemoryMetrics) IncrementError(errorType string) {
	m.mu.Lock()
	m.errors[errorType]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) SetQueuedJobs(count int) {
	atomic.StoreInt32(&m.queuedJobs, int32(count))
}

func (m *InMemoryMetrics) AddBytesSent(bytes uint64) {
	atomic.AddUint64(&m.bytesSent, bytes)
}

// Getter methods for programmatic access to metrics

// Lookups returns the number of dispatched lookups of a kind.
func (m *InMemoryMetrics) Lookups(kind string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lookups[kind]
}

// Resolved returns the number of successful lookups of a kind.
func (m *InMemoryMetrics) Resolved(kind string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.resolved[kind]
}

// Failed returns the number of failed lookups of a kind.
func (m *InMemoryMetrics) Failed(kind string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.failed[kind]
}

// Errors returns the total count of errors by type.
func (m *InMemoryMetrics) Errors(errorType string) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errors[errorType]
}

// AllErrors returns a copy of all error counts by type.
func (m *InMemoryMetrics) AllErrors() map[string]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]uint64, len(m.errors))
	for k, v := range m.errors {
		result[k] = v
	}
	return result
}

// AvgLatency returns the average latency for a lookup kind.
// Returns 0 if no measurements have been recorded.
func (m *InMemoryMetrics) AvgLatency(kind string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := m.latencies[kind]
	if stats == nil || stats.count == 0 {
		return 0
	}
	return time.Duration(stats.totalNanos / stats.count)
}

// MaxLatency returns the maximum latency for a lookup kind.
func (m *InMemoryMetrics) MaxLatency(kind string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := m.latencies[kind]
	if stats == nil {
		return 0
	}
	return time.Duration(stats.maxNanos)
}

func (m *InMemoryMetrics) MessagesSent(messageType uint8) uint64 {
	return atomic.LoadUint64(&m.messagesSent[messageType])
}

func (m *InMemoryMetrics) MessagesReceived(messageType uint8) uint64 {
	return atomic.LoadUint64(&m.messagesReceived[messageType])
}

func (m *InMemoryMetrics) QueuedJobs() int {
	return int(atomic.LoadInt32(&m.queuedJobs))
}

func (m *InMemoryMetrics) BytesSent() uint64 {
	return atomic.LoadUint64(&m.bytesSent)
}

// Reset clears all metrics. Useful for testing.
func (m *InMemoryMetrics) Reset() {
	for i := range m.messagesSent {
		atomic.StoreUint64(&m.messagesSent[i], 0)
		atomic.StoreUint64(&m.messagesReceived[i], 0)
	}
	atomic.StoreInt32(&m.queuedJobs, 0)
	atomic.StoreUint64(&m.bytesSent, 0)

	m.mu.Lock()
	m.lookups = make(map[string]uint64)
	m.resolved = make(map[string]uint64)
	m.failed = make(map[string]uint64)
	m.errors = make(map[string]uint64)
	m.latencies = make(map[string]*latencyStats)
	m.mu.Unlock()
}
