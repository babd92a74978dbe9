package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by store backend
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_hits_total",
			Help: "Total number of offline cache hits",
		},
		[]string{"store"}, // "redis", "memory"
	)

	// CacheMisses tracks cache misses by store backend
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_misses_total",
			Help: "Total number of offline cache misses",
		},
		[]string{"store"},
	)

	// StoredBytes tracks body bytes written into the store
	StoredBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_stored_bytes_total",
			Help: "Total response body bytes written into the offline cache",
		},
		[]string{"store"},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offline_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "match", "put", "keys"
	)
)
