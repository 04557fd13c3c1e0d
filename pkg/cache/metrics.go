package cache

import (
	"sync/atomic"
	"time"
)

// Metrics tracks cache performance statistics. All counters are lock-free and
// safe for concurrent request handlers.
type Metrics struct {
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
	cacheErrors atomic.Uint64

	getOperations    atomic.Uint64
	setOperations    atomic.Uint64
	deleteOperations atomic.Uint64

	totalGetLatency    atomic.Uint64 // nanoseconds
	totalSetLatency    atomic.Uint64
	totalDeleteLatency atomic.Uint64

	invalidationCount atomic.Uint64
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordCacheHit increments the cache hit counter.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss increments the cache miss counter.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordCacheError increments the cache error counter.
func (m *Metrics) RecordCacheError() {
	m.cacheErrors.Add(1)
}

// RecordGet records a get operation with latency.
func (m *Metrics) RecordGet(duration time.Duration) {
	m.getOperations.Add(1)
	m.totalGetLatency.Add(uint64(duration.Nanoseconds()))
}

// RecordSet records a set operation with latency.
func (m *Metrics) RecordSet(duration time.Duration) {
	m.setOperations.Add(1)
	m.totalSetLatency.Add(uint64(duration.Nanoseconds()))
}

// RecordDelete records a delete operation with latency.
func (m *Metrics) RecordDelete(duration time.Duration) {
	m.deleteOperations.Add(1)
	m.totalDeleteLatency.Add(uint64(duration.Nanoseconds()))
}

// RecordInvalidation increments the pattern invalidation counter.
func (m *Metrics) RecordInvalidation() {
	m.invalidationCount.Add(1)
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	CacheHits     uint64 `json:"cache_hits"`
	CacheMisses   uint64 `json:"cache_misses"`
	CacheErrors   uint64 `json:"cache_errors"`
	Gets          uint64 `json:"gets"`
	Sets          uint64 `json:"sets"`
	Deletes       uint64 `json:"deletes"`
	Invalidations uint64 `json:"invalidations"`
}

// Snapshot returns a consistent-enough view of the counters for reporting.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		CacheHits:     m.cacheHits.Load(),
		CacheMisses:   m.cacheMisses.Load(),
		CacheErrors:   m.cacheErrors.Load(),
		Gets:          m.getOperations.Load(),
		Sets:          m.setOperations.Load(),
		Deletes:       m.deleteOperations.Load(),
		Invalidations: m.invalidationCount.Load(),
	}
}
