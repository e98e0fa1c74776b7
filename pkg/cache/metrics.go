package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by info type.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlproxy_cache_hits_total",
			Help: "Total number of cache hits by info type",
		},
		[]string{"type"},
	)

	// CacheMisses tracks cache misses by info type.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlproxy_cache_misses_total",
			Help: "Total number of cache misses by info type",
		},
		[]string{"type"},
	)

	// CacheEntries tracks the current number of cached entries.
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hlproxy_cache_entries",
			Help: "Current number of cache entries",
		},
	)

	// CacheEvictions tracks entry removals by reason.
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hlproxy_cache_evictions_total",
			Help: "Total number of cache evictions by reason",
		},
		[]string{"reason"}, // "expired", "invalidated", "cleared"
	)
)
