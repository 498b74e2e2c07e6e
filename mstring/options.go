package mstring

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
)

// Option configures an MString.
type Option func(*settings)

// settings is shared by value with every buffer derived from the receiver
// (Concat, Repeat, Clone), so derived buffers allocate and report the same way.
type settings struct {
	mem     memory.Allocator
	maxCap  int
	log     *zap.Logger
	metrics *Metrics
}

func defaultSettings() settings {
	return settings{
		mem: memory.NewGoAllocator(),
		log: zap.NewNop(),
	}
}

// WithAllocator sets the allocator that provides storage regions.
func WithAllocator(mem memory.Allocator) Option {
	return func(s *settings) {
		if mem != nil {
			s.mem = mem
		}
	}
}

// WithMaxCapacity caps the capacity a buffer may grow to. Zero means no cap.
// Growth past the cap fails with ErrAllocation.
func WithMaxCapacity(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxCap = n
		}
	}
}

// WithLogger sets the logger used for growth and allocation-failure events.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics attaches counters updated on every allocation and release.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) {
		s.metrics = m
	}
}
