// Package metrics provides the centralized Prometheus metrics registry for
// the caching proxy. All metrics are defined in their respective packages
// (cache, upstream, proxy) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their respective
// packages and exposed on GET /metrics.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - hlproxy_cache_hits_total{type} (Counter): Cache hits by info type
//   - hlproxy_cache_misses_total{type} (Counter): Cache misses by info type
//   - hlproxy_cache_entries (Gauge): Current number of cache entries
//   - hlproxy_cache_evictions_total{reason} (Counter): Evictions by reason
//     (expired, invalidated, cleared)
//
// Upstream Metrics (pkg/upstream):
//   - hlproxy_upstream_requests_total{endpoint, status} (Counter): Forwarded
//     requests by upstream endpoint and HTTP status
//   - hlproxy_upstream_request_duration_seconds{endpoint} (Histogram):
//     Upstream request duration
//   - hlproxy_upstream_errors_total{class} (Counter): Network errors by class
//     (timeout, unreachable)
//
// Proxy Metrics (pkg/proxy):
//   - hlproxy_requests_total{endpoint, status} (Counter): Inbound requests by
//     endpoint and HTTP status
//   - hlproxy_request_duration_seconds{endpoint} (Histogram): Inbound request
//     duration
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(hlproxy_cache_hits_total[5m])) /
//   (sum(rate(hlproxy_cache_hits_total[5m])) + sum(rate(hlproxy_cache_misses_total[5m])))
//
//   # Upstream Error Rate
//   rate(hlproxy_upstream_errors_total[5m])
//
//   # P95 Inbound Latency
//   histogram_quantile(0.95, rate(hlproxy_request_duration_seconds_bucket[5m]))
//
//   # Weight saved (requests answered without touching upstream)
//   rate(hlproxy_requests_total{endpoint="/info"}[5m]) -
//   rate(hlproxy_upstream_requests_total{endpoint="/info"}[5m])
