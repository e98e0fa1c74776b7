// Package upstream provides the outbound HTTP client used to forward
// requests to the real exchange API.
package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/hyperliquid-tools/hl-proxy/pkg/logging"
)

// Prometheus metrics for upstream calls.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hlproxy_upstream_requests_total",
		Help: "Total upstream requests by endpoint and status",
	}, []string{"endpoint", "status"})

	upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hlproxy_upstream_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hlproxy_upstream_errors_total",
		Help: "Total upstream network errors by class",
	}, []string{"class"})
)

// Connection pool and timeout constants. The connect timeout is deliberately
// shorter than the total request timeout so a dead upstream fails fast while
// a slow response still gets room to finish.
const (
	connectTimeout = 10 * time.Second
	requestTimeout = 30 * time.Second

	maxConnsPerHost     = 50
	maxIdleConnsPerHost = 20
)

const (
	infoPath     = "/info"
	exchangePath = "/exchange"
)

// Response carries an upstream status code and raw body for passthrough.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK returns true for a 200 upstream response.
func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Client forwards raw request bodies to the exchange API.
// Safe for concurrent use; the underlying pool is shared.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a client for the given upstream base URL.
func NewClient(baseURL string) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		MaxConnsPerHost:     maxConnsPerHost,
		MaxIdleConnsPerHost: maxIdleConnsPerHost,
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logging.NewLogger("upstream"),
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Info forwards a raw /info request body and returns the upstream response.
func (c *Client) Info(ctx context.Context, body []byte) (*Response, error) {
	return c.post(ctx, infoPath, body)
}

// Exchange forwards a raw /exchange request body and returns the upstream
// response.
func (c *Client) Exchange(ctx context.Context, body []byte) (*Response, error) {
	return c.post(ctx, exchangePath, body)
}

func (c *Client) post(ctx context.Context, path string, body []byte) (*Response, error) {
	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		class := classify(err)
		upstreamErrorsTotal.WithLabelValues(string(class)).Inc()
		upstreamRequestsTotal.WithLabelValues(path, "network_error").Inc()
		c.logger.Warn().
			Err(err).
			Str("endpoint", path).
			Str("class", string(class)).
			Msg("Upstream request failed")
		if class == classTimeout {
			return nil, fmt.Errorf("post %s: %w", path, ErrTimeout)
		}
		return nil, fmt.Errorf("post %s: %w", path, ErrUnreachable)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(classUnreachable)).Inc()
		return nil, fmt.Errorf("read %s response: %w", path, ErrUnreachable)
	}

	upstreamRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
	return &Response{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}

// Close releases idle connections in the pool.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
