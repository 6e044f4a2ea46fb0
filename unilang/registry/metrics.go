// File: metrics.go
// Title: Lookup Metrics
// Description: Per-instance lookup counters for observability. Counters are
//              updated with atomics and never influence lookup results.
// Author: msto63 with Claude Sonnet 4.0
// Version: v0.1.0
// Created: 2025-11-06
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-06 v0.1.0: Initial implementation

package registry

import "sync/atomic"

// Metrics counts registry lookups
type Metrics struct {
	totalLookups   atomic.Uint64
	staticLookups  atomic.Uint64
	dynamicLookups atomic.Uint64
	cacheHits      atomic.Uint64
	cacheMisses    atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the counters
type MetricsSnapshot struct {
	TotalLookups   uint64 `json:"total_lookups"`
	StaticLookups  uint64 `json:"static_lookups"`
	DynamicLookups uint64 `json:"dynamic_lookups"`
	CacheHits      uint64 `json:"cache_hits"`
	CacheMisses    uint64 `json:"cache_misses"`
}

// NewMetrics creates zeroed counters
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordLookup() {
	m.totalLookups.Add(1)
}

func (m *Metrics) recordStatic() {
	m.staticLookups.Add(1)
}

func (m *Metrics) recordDynamic() {
	m.dynamicLookups.Add(1)
}

func (m *Metrics) recordCache(hit bool) {
	if hit {
		m.cacheHits.Add(1)
	} else {
		m.cacheMisses.Add(1)
	}
}

// Snapshot returns the current counter values
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		TotalLookups:   m.totalLookups.Load(),
		StaticLookups:  m.staticLookups.Load(),
		DynamicLookups: m.dynamicLookups.Load(),
		CacheHits:      m.cacheHits.Load(),
		CacheMisses:    m.cacheMisses.Load(),
	}
}

// Reset sets all counters to zero
func (m *Metrics) Reset() {
	m.totalLookups.Store(0)
	m.staticLookups.Store(0)
	m.dynamicLookups.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
}

// CacheHitRate returns hits / (hits + misses), or 0 without cache traffic
func (s MetricsSnapshot) CacheHitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// StaticRatio returns the share of layer lookups that went to the static
// layer
func (s MetricsSnapshot) StaticRatio() float64 {
	layered := s.StaticLookups + s.DynamicLookups
	if layered == 0 {
		return 0
	}
	return float64(s.StaticLookups) / float64(layered)
}
