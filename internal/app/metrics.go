package app

import (
	"sync/atomic"
	"time"

	"github.com/dshills/charstr/internal/engine/ustr"
)

// Metrics tracks operation counts, timings and offset cache usage.
type Metrics struct {
	opCount   atomic.Uint64
	opErrors  atomic.Uint64
	opTotalNs atomic.Int64
	opMinNs   atomic.Int64
	opMaxNs   atomic.Int64

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	cacheSteps  atomic.Uint64

	startTime time.Time
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Operations  uint64
	Errors      uint64
	TotalTime   time.Duration
	MinTime     time.Duration
	MaxTime     time.Duration
	CacheHits   uint64
	CacheMisses uint64
	CacheSteps  uint64
	Uptime      time.Duration
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so the first operation will be smaller
	m.opMinNs.Store(1<<63 - 1)
	return m
}

// RecordOperation records one operation's duration and outcome.
func (m *Metrics) RecordOperation(duration time.Duration, err error) {
	ns := duration.Nanoseconds()

	m.opCount.Add(1)
	m.opTotalNs.Add(ns)
	if err != nil {
		m.opErrors.Add(1)
	}

	for {
		old := m.opMinNs.Load()
		if ns >= old {
			break
		}
		if m.opMinNs.CompareAndSwap(old, ns) {
			break
		}
	}

	for {
		old := m.opMaxNs.Load()
		if ns <= old {
			break
		}
		if m.opMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordCache adds a string's offset cache counters.
func (m *Metrics) RecordCache(stats ustr.CacheStats) {
	m.cacheHits.Add(uint64(stats.Hits))
	m.cacheMisses.Add(uint64(stats.Misses))
	m.cacheSteps.Add(uint64(stats.Steps))
}

// Snapshot returns the current values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Operations:  m.opCount.Load(),
		Errors:      m.opErrors.Load(),
		TotalTime:   time.Duration(m.opTotalNs.Load()),
		MaxTime:     time.Duration(m.opMaxNs.Load()),
		CacheHits:   m.cacheHits.Load(),
		CacheMisses: m.cacheMisses.Load(),
		CacheSteps:  m.cacheSteps.Load(),
		Uptime:      time.Since(m.startTime),
	}
	if snap.Operations > 0 {
		snap.MinTime = time.Duration(m.opMinNs.Load())
	}
	return snap
}

// AverageTime returns the mean operation duration.
func (s MetricsSnapshot) AverageTime() time.Duration {
	if s.Operations == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.Operations)
}

// Reset clears all counters.
func (m *Metrics) Reset() {
	m.opCount.Store(0)
	m.opErrors.Store(0)
	m.opTotalNs.Store(0)
	m.opMinNs.Store(1<<63 - 1)
	m.opMaxNs.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
	m.cacheSteps.Store(0)
	m.startTime = time.Now()
}
