package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total number of cache hits.",
	}, []string{"backend"})

	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total number of cache misses, including expired entries.",
	}, []string{"backend"})

	cacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "cache",
		Name:      "evictions_total",
		Help:      "Entries removed by capacity or TTL.",
	}, []string{"backend", "cause"})

	cacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marketplace",
		Subsystem: "cache",
		Name:      "errors_total",
		Help:      "Backend errors swallowed by the cache.",
	}, []string{"backend", "op"})
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
)
