// Package testutil provides testing utilities for the caching proxy.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock upstream endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockUpstream is a configurable stub exchange API for testing. It records
// every request so tests can assert exactly how often the proxy forwarded.
type MockUpstream struct {
	server    *httptest.Server
	mu        sync.RWMutex
	responses map[string]MockResponse

	infoCount     int
	exchangeCount int
	lastBody      []byte
	lastHeader    http.Header
}

// NewMockUpstream creates a stub upstream. Defaults: /info answers
// {"mock":"data"}, /exchange answers {"status":"ok"}, both 200.
func NewMockUpstream() *MockUpstream {
	mock := &MockUpstream{
		responses: map[string]MockResponse{
			"/info":     {StatusCode: http.StatusOK, Body: `{"mock":"data"}`},
			"/exchange": {StatusCode: http.StatusOK, Body: `{"status":"ok"}`},
		},
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		mock.mu.Lock()
		switch r.URL.Path {
		case "/info":
			mock.infoCount++
		case "/exchange":
			mock.exchangeCount++
		}
		mock.lastBody = body
		mock.lastHeader = r.Header.Clone()
		resp, exists := mock.responses[r.URL.Path]
		mock.mu.Unlock()

		if !exists {
			http.NotFound(w, r)
			return
		}
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		w.Write([]byte(resp.Body))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockUpstream) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// SetResponse configures the response for a path.
func (m *MockUpstream) SetResponse(path string, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[path] = resp
}

// InfoCount returns how many /info requests reached the upstream.
func (m *MockUpstream) InfoCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.infoCount
}

// ExchangeCount returns how many /exchange requests reached the upstream.
func (m *MockUpstream) ExchangeCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exchangeCount
}

// LastBody returns the body of the most recent forwarded request.
func (m *MockUpstream) LastBody() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastBody
}

// Reset clears all tracking counters.
func (m *MockUpstream) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoCount = 0
	m.exchangeCount = 0
	m.lastBody = nil
	m.lastHeader = nil
}
