// Package proxy implements the HTTP surface of the caching proxy: the
// cached /info read path, the pass-through /exchange write path with
// post-success invalidation, and the management endpoints.
package proxy

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hyperliquid-tools/hl-proxy/pkg/cache"
	"github.com/hyperliquid-tools/hl-proxy/pkg/logging"
	"github.com/hyperliquid-tools/hl-proxy/pkg/upstream"
)

// Prometheus metrics for the proxy's own HTTP surface.
var (
	proxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hlproxy_requests_total",
		Help: "Total proxy requests by endpoint and status",
	}, []string{"endpoint", "status"})

	proxyRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hlproxy_request_duration_seconds",
		Help:    "Proxy request duration in seconds by endpoint",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})
)

// Server owns the cache store and the upstream client and serves the proxy
// endpoints.
type Server struct {
	store     *cache.Store
	upstream  *upstream.Client
	logger    zerolog.Logger
	startTime time.Time
}

// NewServer creates a proxy server over the given store and upstream client.
func NewServer(store *cache.Store, up *upstream.Client) *Server {
	return &Server{
		store:     store,
		upstream:  up,
		logger:    logging.NewLogger("proxy"),
		startTime: time.Now(),
	}
}

// Handler returns the HTTP handler with all proxy routes mounted.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/info", s.instrument("/info", s.handleInfo))
	mux.HandleFunc("/exchange", s.instrument("/exchange", s.handleExchange))
	mux.HandleFunc("/health", s.instrument("/health", s.handleHealth))
	mux.HandleFunc("/cache/stats", s.instrument("/cache/stats", s.handleStats))
	mux.HandleFunc("/cache/clear", s.instrument("/cache/clear", s.handleClear))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// instrument wraps a handler with request metrics and debug logging.
func (s *Server) instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		duration := time.Since(start)
		proxyRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(rec.status)).Inc()
		proxyRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
		s.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", rec.status).
			Dur("duration", duration).
			Msg("Request handled")
	}
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
