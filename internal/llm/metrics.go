package llm

import (
	"sync/atomic"
	"time"
)

// Metrics counts upstream AI calls.
type Metrics struct {
	calls   atomic.Int64
	errors  atomic.Int64
	latency atomic.Int64 // total nanoseconds
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Calls            int64   `json:"calls"`
	Errors           int64   `json:"errors"`
	AvgLatencyMillis float64 `json:"avg_latency_ms"`
}

func (m *Metrics) record(d time.Duration, err error) {
	m.calls.Add(1)
	m.latency.Add(d.Nanoseconds())
	if err != nil {
		m.errors.Add(1)
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	calls := m.calls.Load()
	s := MetricsSnapshot{Calls: calls, Errors: m.errors.Load()}
	if calls > 0 {
		s.AvgLatencyMillis = float64(m.latency.Load()) / float64(calls) / 1e6
	}
	return s
}

// ErrorRate returns the error percentage.
func (s MetricsSnapshot) ErrorRate() float64 {
	if s.Calls == 0 {
		return 0
	}
	return float64(s.Errors) / float64(s.Calls) * 100
}
