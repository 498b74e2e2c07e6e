package mstring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters an MString updates as it allocates storage.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Grows          prometheus.Counter
	AllocatedBytes prometheus.Counter
	ReleasedBytes  prometheus.Counter
	AllocFailures  prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Grows: f.NewCounter(prometheus.CounterOpts{
			Name: "faststring_grow_total",
			Help: "Total number of storage reallocations caused by growth",
		}),
		AllocatedBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "faststring_allocated_bytes_total",
			Help: "Total bytes of storage allocated",
		}),
		ReleasedBytes: f.NewCounter(prometheus.CounterOpts{
			Name: "faststring_released_bytes_total",
			Help: "Total bytes of storage released",
		}),
		AllocFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "faststring_allocation_failures_total",
			Help: "Total number of failed storage allocations",
		}),
	}
}

func (m *Metrics) allocated(n int) {
	if m == nil {
		return
	}
	m.AllocatedBytes.Add(float64(n))
}

func (m *Metrics) released(n int) {
	if m == nil {
		return
	}
	m.ReleasedBytes.Add(float64(n))
}

func (m *Metrics) grew() {
	if m == nil {
		return
	}
	m.Grows.Inc()
}

func (m *Metrics) failed() {
	if m == nil {
		return
	}
	m.AllocFailures.Inc()
}
