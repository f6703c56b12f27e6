package goGate

import "sync/atomic"

// MetricID identifies one gate counter.
type MetricID uint16

const (
	// MetricAllow counts evaluations that let the request through.
	MetricAllow MetricID = iota
	// MetricReject counts 403 outcomes.
	MetricReject
	// MetricRedirect counts plain redirect outcomes.
	MetricRedirect
	// MetricRedirectFlash counts redirect-with-flash outcomes.
	MetricRedirectFlash
	// MetricTokenAccepted counts successful token acceptances.
	MetricTokenAccepted
	// MetricTokenRejected counts token pairs the store reported invalid.
	MetricTokenRejected
	// MetricStoreFailure counts token store and flash collaborator failures.
	MetricStoreFailure
	// MetricConfigError counts evaluations aborted by a ConfigError.
	MetricConfigError
	metricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics is a fixed set of atomic counters, one per [MetricID]. All methods
// are nil-safe and safe for concurrent use.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]paddedCounter
}

// NewMetrics builds the counter set; a disabled set turns Inc into a no-op.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being recorded.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc adds one to the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Value returns the current count for id.
func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter. Exporters poll this; it never blocks Inc.
func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}

	s := MetricsSnapshot{
		Counters: make(map[MetricID]uint64, int(metricIDCount)),
	}

	for id := MetricID(0); id < metricIDCount; id++ {
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	return s
}
