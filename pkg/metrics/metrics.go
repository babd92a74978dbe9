// Package metrics exposes the Prometheus registry used by the offline cache.
// Metrics are declared next to the code that records them (cache, offline)
// via promauto on the default registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the registerer every offline-cache metric is created on.
var Registry = prometheus.DefaultRegisterer

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Metrics Documentation
//
// Cache Store (pkg/cache):
//   - offline_cache_hits_total{store} (Counter): Match found an entry
//   - offline_cache_misses_total{store} (Counter): Match found nothing
//   - offline_cache_stored_bytes_total{store} (Counter): Body bytes written by Put
//   - offline_cache_errors_total{operation} (Counter): Backend failures (match, put, keys)
//
// Offline Handler (pkg/offline):
//   - offline_network_fetches_total{phase, outcome} (Counter): Network calls during install or fetch
//   - offline_installs_total{result} (Counter): Install attempts (success, failure)
//   - offline_install_duration_seconds (Histogram): Install duration
//
// Example Prometheus Queries:
//
//   # Offline hit rate
//   sum(rate(offline_cache_hits_total[5m])) /
//   (sum(rate(offline_cache_hits_total[5m])) + sum(rate(offline_cache_misses_total[5m])))
//
//   # Requests that fell through to a failing network
//   rate(offline_network_fetches_total{phase="fetch",outcome="error"}[5m])
